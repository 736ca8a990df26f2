package events

import "time"

// Nullable is a tri-state field value for partial updates: unset (leave
// the server state untouched), explicit null (clear the field), or a
// concrete value. The zero value is unset.
type Nullable[T any] struct {
	value T
	set   bool
	null  bool
}

// NewNullable returns a Nullable holding a concrete value.
func NewNullable[T any](v T) Nullable[T] {
	return Nullable[T]{value: v, set: true}
}

// NullValue returns a Nullable that clears the field on the server.
func NullValue[T any]() Nullable[T] {
	return Nullable[T]{set: true, null: true}
}

// IsSet reports whether the field was supplied at all.
func (n Nullable[T]) IsSet() bool { return n.set }

// Get returns the held value; ok is false when the field is unset or null.
func (n Nullable[T]) Get() (v T, ok bool) {
	if !n.set || n.null {
		return v, false
	}
	return n.value, true
}

// CreateParams are the fields sent when creating a scheduled event.
// The caller is responsible for supplying ChannelID for voice and stage
// events, and EntityMetadata.Location for external ones; the server
// rejects requests that violate this.
type CreateParams struct {
	Name           string
	PrivacyLevel   PrivacyLevel
	StartTime      time.Time
	EndTime        *time.Time
	EntityType     EntityType
	EntityMetadata *EntityMetadata
	ChannelID      string
	Description    string
}

func (p CreateParams) payload() map[string]any {
	body := map[string]any{
		"name":                 p.Name,
		"privacy_level":        int(p.PrivacyLevel),
		"scheduled_start_time": p.StartTime.Format(time.RFC3339),
		"entity_type":          int(p.EntityType),
	}
	if p.EndTime != nil {
		body["scheduled_end_time"] = p.EndTime.Format(time.RFC3339)
	}
	if p.ChannelID != "" {
		body["channel_id"] = p.ChannelID
	}
	if p.EntityMetadata != nil {
		body["entity_metadata"] = p.EntityMetadata
	}
	if p.Description != "" {
		body["description"] = p.Description
	}
	return body
}

// EditParams describe a partial update. Only supplied fields are sent;
// everything else is left untouched on the server. Clearable fields use
// Nullable so that "set to null" and "not supplied" stay distinct.
type EditParams struct {
	Name         *string
	PrivacyLevel *PrivacyLevel
	StartTime    *time.Time
	EntityType   *EntityType
	Status       *Status

	ChannelID      Nullable[string]
	EndTime        Nullable[time.Time]
	Description    Nullable[string]
	EntityMetadata Nullable[EntityMetadata]
}

func (p EditParams) payload() map[string]any {
	body := map[string]any{}
	if p.Name != nil {
		body["name"] = *p.Name
	}
	if p.PrivacyLevel != nil {
		body["privacy_level"] = int(*p.PrivacyLevel)
	}
	if p.StartTime != nil {
		body["scheduled_start_time"] = p.StartTime.Format(time.RFC3339)
	}
	if p.EntityType != nil {
		body["entity_type"] = int(*p.EntityType)
	}
	if p.Status != nil {
		body["status"] = int(*p.Status)
	}
	if p.ChannelID.IsSet() {
		if v, ok := p.ChannelID.Get(); ok {
			body["channel_id"] = v
		} else {
			body["channel_id"] = nil
		}
	}
	if p.EndTime.IsSet() {
		if v, ok := p.EndTime.Get(); ok {
			body["scheduled_end_time"] = v.Format(time.RFC3339)
		} else {
			body["scheduled_end_time"] = nil
		}
	}
	if p.Description.IsSet() {
		if v, ok := p.Description.Get(); ok {
			body["description"] = v
		} else {
			body["description"] = nil
		}
	}
	if p.EntityMetadata.IsSet() {
		if v, ok := p.EntityMetadata.Get(); ok {
			body["entity_metadata"] = v
		} else {
			body["entity_metadata"] = nil
		}
	}
	return body
}

// UsersParams control a FetchUsers page. Before and After are opaque
// user ID cursors; the caller drives repeated calls to page through.
type UsersParams struct {
	Limit      int
	WithMember bool
	Before     string
	After      string
}
