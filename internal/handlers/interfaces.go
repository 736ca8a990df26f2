package handlers

import (
	"context"

	"guild-event-manager/internal/events"
)

// EventService defines the scheduled event operations handlers need.
// *events.Client satisfies it; tests use mocks.
type EventService interface {
	List(ctx context.Context, guildID string, withUserCount bool) ([]events.ScheduledEvent, error)
	Create(ctx context.Context, guildID string, params events.CreateParams) (*events.ScheduledEvent, error)
	Fetch(ctx context.Context, guildID, eventID string) (*events.ScheduledEvent, error)
	Edit(ctx context.Context, guildID, eventID string, params events.EditParams) (*events.ScheduledEvent, error)
	Delete(ctx context.Context, guildID, eventID string) error
	FetchUsers(ctx context.Context, guildID, eventID string, params events.UsersParams) ([]events.EventUser, error)
}
