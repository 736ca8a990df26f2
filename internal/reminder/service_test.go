package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"guild-event-manager/internal/config"
	"guild-event-manager/internal/events"
)

type mockStorage struct {
	GetWatchesFunc   func(ctx context.Context) (map[string]string, error)
	MarkRemindedFunc func(ctx context.Context, eventID string) (bool, error)

	reminded []string
	deleted  int
}

func (m *mockStorage) SaveGuildWatch(ctx context.Context, guildID, channelID string) error {
	return nil
}

func (m *mockStorage) DeleteGuildWatch(ctx context.Context, guildID string) error {
	return nil
}

func (m *mockStorage) GetWatches(ctx context.Context) (map[string]string, error) {
	if m.GetWatchesFunc != nil {
		return m.GetWatchesFunc(ctx)
	}
	return map[string]string{"42": "555"}, nil
}

func (m *mockStorage) MarkReminded(ctx context.Context, eventID string) (bool, error) {
	m.reminded = append(m.reminded, eventID)
	if m.MarkRemindedFunc != nil {
		return m.MarkRemindedFunc(ctx, eventID)
	}
	return true, nil
}

func (m *mockStorage) DeleteOldReminders(ctx context.Context, threshold time.Duration) (int64, error) {
	m.deleted++
	return 0, nil
}

func (m *mockStorage) Close() {}

type mockLister struct {
	ListFunc func(ctx context.Context, guildID string, withUserCount bool) ([]events.ScheduledEvent, error)
}

func (m *mockLister) List(ctx context.Context, guildID string, withUserCount bool) ([]events.ScheduledEvent, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, guildID, withUserCount)
	}
	return nil, nil
}

type mockNotifier struct {
	AnnounceFunc func(channelID, message string) error

	announced []string
}

func (m *mockNotifier) Announce(channelID, message string) error {
	m.announced = append(m.announced, channelID)
	if m.AnnounceFunc != nil {
		return m.AnnounceFunc(channelID, message)
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		ReminderInterval: time.Minute,
		ReminderLead:     30 * time.Minute,
	}
}

func scheduledIn(id string, in time.Duration) events.ScheduledEvent {
	return events.ScheduledEvent{
		ID:        id,
		GuildID:   "42",
		Name:      "Meetup " + id,
		StartTime: time.Now().Add(in),
		Status:    events.StatusScheduled,
	}
}

func TestService_AnnouncesEventsInWindow(t *testing.T) {
	store := &mockStorage{}
	lister := &mockLister{
		ListFunc: func(ctx context.Context, guildID string, withUserCount bool) ([]events.ScheduledEvent, error) {
			return []events.ScheduledEvent{
				scheduledIn("soon", 10*time.Minute),
				scheduledIn("far", 3*time.Hour),
			}, nil
		},
	}
	notifier := &mockNotifier{}

	svc := NewService(testConfig(), store, lister, notifier)
	svc.runOnce(context.Background())

	if len(store.reminded) != 1 || store.reminded[0] != "soon" {
		t.Errorf("expected only the in-window event marked, got %v", store.reminded)
	}
	if len(notifier.announced) != 1 || notifier.announced[0] != "555" {
		t.Errorf("expected one announcement to channel 555, got %v", notifier.announced)
	}
	if store.deleted != 1 {
		t.Errorf("expected one cleanup pass, got %d", store.deleted)
	}
}

func TestService_SkipsNonScheduledAndPastEvents(t *testing.T) {
	active := scheduledIn("active", 10*time.Minute)
	active.Status = events.StatusActive
	past := scheduledIn("past", -10*time.Minute)

	lister := &mockLister{
		ListFunc: func(ctx context.Context, guildID string, withUserCount bool) ([]events.ScheduledEvent, error) {
			return []events.ScheduledEvent{active, past}, nil
		},
	}
	store := &mockStorage{}
	notifier := &mockNotifier{}

	svc := NewService(testConfig(), store, lister, notifier)
	svc.runOnce(context.Background())

	if len(store.reminded) != 0 {
		t.Errorf("nothing should be marked, got %v", store.reminded)
	}
	if len(notifier.announced) != 0 {
		t.Errorf("nothing should be announced, got %v", notifier.announced)
	}
}

func TestService_AnnouncesAtMostOnce(t *testing.T) {
	lister := &mockLister{
		ListFunc: func(ctx context.Context, guildID string, withUserCount bool) ([]events.ScheduledEvent, error) {
			return []events.ScheduledEvent{scheduledIn("soon", 10 * time.Minute)}, nil
		},
	}
	seen := map[string]bool{}
	store := &mockStorage{
		MarkRemindedFunc: func(ctx context.Context, eventID string) (bool, error) {
			if seen[eventID] {
				return false, nil
			}
			seen[eventID] = true
			return true, nil
		},
	}
	notifier := &mockNotifier{}

	svc := NewService(testConfig(), store, lister, notifier)
	svc.runOnce(context.Background())
	svc.runOnce(context.Background())

	if len(notifier.announced) != 1 {
		t.Errorf("expected exactly one announcement across runs, got %d", len(notifier.announced))
	}
}

func TestService_ListFailureSkipsGuild(t *testing.T) {
	lister := &mockLister{
		ListFunc: func(ctx context.Context, guildID string, withUserCount bool) ([]events.ScheduledEvent, error) {
			return nil, errors.New("api down")
		},
	}
	store := &mockStorage{}
	notifier := &mockNotifier{}

	svc := NewService(testConfig(), store, lister, notifier)
	svc.runOnce(context.Background())

	if len(notifier.announced) != 0 {
		t.Errorf("nothing should be announced on list failure, got %v", notifier.announced)
	}
	if store.deleted != 1 {
		t.Error("cleanup should still run after a guild failure")
	}
}

func TestService_StartStopsOnContextCancel(t *testing.T) {
	store := &mockStorage{
		GetWatchesFunc: func(ctx context.Context) (map[string]string, error) {
			return nil, nil
		},
	}
	svc := NewService(testConfig(), store, &mockLister{}, &mockNotifier{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after context cancellation")
	}
}
