// Package reminder announces soon-starting scheduled events to each
// guild's configured channel. It polls on a ticker; the scheduled
// events API has no push notification for "event starts soon".
package reminder

import (
	"context"
	"log/slog"
	"time"

	"guild-event-manager/internal/config"
	"guild-event-manager/internal/events"
	"guild-event-manager/internal/formatting"
	"guild-event-manager/internal/metrics"
	"guild-event-manager/internal/storage"
)

// reminderRetention bounds the dedupe table; a reminder row is useless
// once its event is long past.
const reminderRetention = 30 * 24 * time.Hour

// EventLister is the slice of the events client the service needs.
type EventLister interface {
	List(ctx context.Context, guildID string, withUserCount bool) ([]events.ScheduledEvent, error)
}

type Notifier interface {
	Announce(channelID, message string) error
}

type Service struct {
	config   *config.Config
	store    storage.Storage
	events   EventLister
	notifier Notifier
}

func NewService(cfg *config.Config, store storage.Storage, lister EventLister, notifier Notifier) *Service {
	return &Service{
		config:   cfg,
		store:    store,
		events:   lister,
		notifier: notifier,
	}
}

func (s *Service) Start(ctx context.Context) {
	ticker := time.NewTicker(s.config.ReminderInterval)
	defer ticker.Stop()

	slog.Info("Reminder service started",
		"interval", s.config.ReminderInterval, "lead", s.config.ReminderLead)

	s.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Service) runOnce(ctx context.Context) {
	watches, err := s.store.GetWatches(ctx)
	if err != nil {
		slog.Error("Failed to fetch watched guilds", "error", err)
		return
	}

	for guildID, channelID := range watches {
		s.processGuild(ctx, guildID, channelID)
	}

	if deleted, err := s.store.DeleteOldReminders(ctx, reminderRetention); err != nil {
		slog.Error("Failed to clean up old reminders", "error", err)
	} else if deleted > 0 {
		slog.Info("Cleaned up old reminders", "deleted", deleted)
	}
}

func (s *Service) processGuild(ctx context.Context, guildID, channelID string) {
	list, err := s.events.List(ctx, guildID, false)
	if err != nil {
		slog.Error("Failed to list scheduled events", "guild_id", guildID, "error", err)
		return
	}

	now := time.Now()
	for i := range list {
		ev := &list[i]
		if ev.Status != events.StatusScheduled {
			continue
		}
		if ev.StartTime.Before(now) || ev.StartTime.After(now.Add(s.config.ReminderLead)) {
			continue
		}

		first, err := s.store.MarkReminded(ctx, ev.ID)
		if err != nil {
			slog.Error("Failed to mark event reminded", "event_id", ev.ID, "error", err)
			continue
		}
		if !first {
			continue
		}

		if err := s.notifier.Announce(channelID, formatting.MsgEventReminder(ev)); err != nil {
			slog.Error("Failed to announce event", "event_id", ev.ID, "channel_id", channelID, "error", err)
			continue
		}
		metrics.RemindersSent.Inc()
		slog.Info("Announced upcoming event", "event_id", ev.ID, "name", ev.Name, "guild_id", guildID)
	}
}
