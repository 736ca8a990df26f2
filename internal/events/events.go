// Package events wraps Discord's guild scheduled events REST resource.
// It converts between the wire JSON documented at
// https://discord.com/developers/docs/resources/guild-scheduled-event
// and typed in-memory records. All requests go through a caller-supplied
// dispatcher; rate limiting and retries are owned by that transport.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// PrivacyLevel is the privacy level of a scheduled event.
type PrivacyLevel int

const (
	PrivacyLevelGuildOnly PrivacyLevel = 2
)

// Status is the lifecycle status of a scheduled event. Events move
// SCHEDULED -> ACTIVE -> COMPLETED, or SCHEDULED -> CANCELED.
// COMPLETED and CANCELED are terminal.
type Status int

const (
	StatusScheduled Status = 1
	StatusActive    Status = 2
	StatusCompleted Status = 3
	StatusCanceled  Status = 4
)

// EntityType describes where a scheduled event is hosted. Voice and
// stage events require a channel, external events require a location.
type EntityType int

const (
	EntityTypeStageInstance EntityType = 1
	EntityTypeVoice         EntityType = 2
	EntityTypeExternal      EntityType = 3
)

// EntityMetadata holds additional metadata for a scheduled event.
// Location is required when the entity type is external.
type EntityMetadata struct {
	Location string `json:"location,omitempty"`
}

// ScheduledEvent is one guild scheduled event. Instances are built from
// payloads returned by fetch/create/edit calls and are never cached;
// each call returns a fresh value.
type ScheduledEvent struct {
	ID             string
	GuildID        string
	ChannelID      string // empty for external events
	CreatorID      string
	Creator        *discordgo.User
	Name           string
	Description    string
	StartTime      time.Time
	EndTime        *time.Time
	PrivacyLevel   PrivacyLevel
	Status         Status
	EntityType     EntityType
	EntityID       string // server-assigned, opaque
	EntityMetadata EntityMetadata
	UserCount      int // populated only when requested with a user count
}

// eventPayload mirrors the wire object field for field. Pointer fields
// let decoding distinguish missing keys from zero values.
type eventPayload struct {
	ID             *string         `json:"id"`
	GuildID        *string         `json:"guild_id"`
	ChannelID      *string         `json:"channel_id"`
	CreatorID      *string         `json:"creator_id"`
	Creator        *discordgo.User `json:"creator"`
	Name           *string         `json:"name"`
	Description    *string         `json:"description"`
	StartTime      *time.Time      `json:"scheduled_start_time"`
	EndTime        *time.Time      `json:"scheduled_end_time"`
	PrivacyLevel   *int            `json:"privacy_level"`
	Status         *int            `json:"status"`
	EntityType     *int            `json:"entity_type"`
	EntityID       *string         `json:"entity_id"`
	EntityMetadata *EntityMetadata `json:"entity_metadata"`
	UserCount      *int            `json:"user_count"`
}

func (p *eventPayload) validate() error {
	switch {
	case p.ID == nil:
		return fmt.Errorf("scheduled event payload missing required field %q", "id")
	case p.GuildID == nil:
		return fmt.Errorf("scheduled event payload missing required field %q", "guild_id")
	case p.Name == nil:
		return fmt.Errorf("scheduled event payload missing required field %q", "name")
	case p.StartTime == nil:
		return fmt.Errorf("scheduled event payload missing required field %q", "scheduled_start_time")
	case p.PrivacyLevel == nil:
		return fmt.Errorf("scheduled event payload missing required field %q", "privacy_level")
	case p.Status == nil:
		return fmt.Errorf("scheduled event payload missing required field %q", "status")
	case p.EntityType == nil:
		return fmt.Errorf("scheduled event payload missing required field %q", "entity_type")
	}
	return nil
}

func (p *eventPayload) event() *ScheduledEvent {
	ev := &ScheduledEvent{
		ID:           *p.ID,
		GuildID:      *p.GuildID,
		Name:         *p.Name,
		Creator:      p.Creator,
		StartTime:    *p.StartTime,
		EndTime:      p.EndTime,
		PrivacyLevel: PrivacyLevel(*p.PrivacyLevel),
		Status:       Status(*p.Status),
		EntityType:   EntityType(*p.EntityType),
	}
	if p.ChannelID != nil {
		ev.ChannelID = *p.ChannelID
	}
	if p.CreatorID != nil {
		ev.CreatorID = *p.CreatorID
	}
	if p.Description != nil {
		ev.Description = *p.Description
	}
	if p.EntityID != nil {
		ev.EntityID = *p.EntityID
	}
	if p.EntityMetadata != nil {
		ev.EntityMetadata = *p.EntityMetadata
	}
	if p.UserCount != nil {
		ev.UserCount = *p.UserCount
	}
	return ev
}

func decodeEvent(raw []byte) (*ScheduledEvent, error) {
	var payload eventPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode scheduled event: %w", err)
	}
	if err := payload.validate(); err != nil {
		return nil, err
	}
	return payload.event(), nil
}

func decodeEvents(raw []byte) ([]ScheduledEvent, error) {
	var payloads []eventPayload
	if err := json.Unmarshal(raw, &payloads); err != nil {
		return nil, fmt.Errorf("failed to decode scheduled event list: %w", err)
	}

	result := make([]ScheduledEvent, 0, len(payloads))
	for _, payload := range payloads {
		if err := payload.validate(); err != nil {
			return nil, err
		}
		result = append(result, *payload.event())
	}
	return result, nil
}
