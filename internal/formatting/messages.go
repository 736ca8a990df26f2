package formatting

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"guild-event-manager/internal/events"
)

const (
	MsgAdminRequired   = "You need Administrator permissions to use this command."
	MsgGuildOnly       = "This command can only be used inside a server."
	MsgNameRequired    = "Event name is required."
	MsgEventNotFound   = "No scheduled event with that ID was found."
	MsgInvalidStart    = "Start time must be an RFC 3339 timestamp, e.g. 2026-09-01T18:00:00Z."
	MsgCreateError     = "Failed to create the event."
	MsgEditError       = "Failed to update the event."
	MsgDeleteError     = "Failed to delete the event."
	MsgListError       = "Failed to list scheduled events."
	MsgUsersError      = "Failed to fetch event subscribers."
	MsgWatchError      = "Failed to save the announcement channel."
	MsgUnwatchError    = "Failed to remove the announcement channel."
	MsgUnwatchSuccess  = "Event announcements disabled for this server."
	MsgNoEvents        = "This server has no scheduled events."
	MsgNoSubscribers   = "Nobody is subscribed to this event yet."
	MsgChannelRequired = "A text channel is required."
)

var titleCaser = cases.Title(language.English)

// DisplayName normalizes a user-supplied name for display.
func DisplayName(name string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(name)))
}

func MsgEventCreated(ev *events.ScheduledEvent) string {
	where := eventLocation(ev)
	return fmt.Sprintf("Event **%s** created for %s at %s (ID %s).",
		ev.Name, ev.StartTime.Format(time.RFC1123), where, ev.ID)
}

func MsgEventUpdated(ev *events.ScheduledEvent) string {
	return fmt.Sprintf("Event **%s** updated.", ev.Name)
}

func MsgEventCanceled(ev *events.ScheduledEvent) string {
	return fmt.Sprintf("Event **%s** canceled.", ev.Name)
}

func MsgEventDeleted(eventID string) string {
	return fmt.Sprintf("Event %s deleted.", eventID)
}

func MsgEventReminder(ev *events.ScheduledEvent) string {
	return fmt.Sprintf("**%s** starts %s at %s!",
		ev.Name, relativeStart(ev.StartTime), eventLocation(ev))
}

func MsgWatchSuccess(channelID string) string {
	return fmt.Sprintf("Upcoming events will be announced in <#%s>.", channelID)
}

func MsgEventLine(ev *events.ScheduledEvent) string {
	line := fmt.Sprintf("`%s` **%s** — %s — %s",
		ev.ID, ev.Name, ev.StartTime.Format("Mon, 02 Jan 15:04 MST"), eventLocation(ev))
	if ev.UserCount > 0 {
		line += fmt.Sprintf(" — %d interested", ev.UserCount)
	}
	return line
}

func MsgEventList(list []events.ScheduledEvent) string {
	if len(list) == 0 {
		return MsgNoEvents
	}

	lines := make([]string, 0, len(list)+1)
	lines = append(lines, fmt.Sprintf("%d scheduled event(s):", len(list)))
	for i := range list {
		lines = append(lines, MsgEventLine(&list[i]))
	}
	return strings.Join(lines, "\n")
}

func MsgEventInfo(ev *events.ScheduledEvent) string {
	lines := []string{
		fmt.Sprintf("**%s** (`%s`)", ev.Name, ev.ID),
		fmt.Sprintf("Status: %s", StatusName(ev.Status)),
		fmt.Sprintf("Starts: %s", ev.StartTime.Format(time.RFC1123)),
	}
	if ev.EndTime != nil {
		lines = append(lines, fmt.Sprintf("Ends: %s", ev.EndTime.Format(time.RFC1123)))
	}
	lines = append(lines, fmt.Sprintf("Where: %s", eventLocation(ev)))
	if ev.Description != "" {
		lines = append(lines, ev.Description)
	}
	if ev.UserCount > 0 {
		lines = append(lines, fmt.Sprintf("%d interested", ev.UserCount))
	}
	return strings.Join(lines, "\n")
}

func MsgEventUsers(users []events.EventUser) string {
	if len(users) == 0 {
		return MsgNoSubscribers
	}

	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.User.Username)
	}
	return fmt.Sprintf("%d subscriber(s): %s", len(users), strings.Join(names, ", "))
}

func MsgEventInvite(userID string, ev *events.ScheduledEvent) string {
	return fmt.Sprintf("<@%s> you are invited to **%s** on %s!",
		userID, ev.Name, ev.StartTime.Format(time.RFC1123))
}

func StatusName(s events.Status) string {
	switch s {
	case events.StatusScheduled:
		return "Scheduled"
	case events.StatusActive:
		return "Active"
	case events.StatusCompleted:
		return "Completed"
	case events.StatusCanceled:
		return "Canceled"
	}
	return fmt.Sprintf("Unknown (%d)", int(s))
}

func eventLocation(ev *events.ScheduledEvent) string {
	if ev.EntityType == events.EntityTypeExternal && ev.EntityMetadata.Location != "" {
		return DisplayName(ev.EntityMetadata.Location)
	}
	if ev.ChannelID != "" {
		return fmt.Sprintf("<#%s>", ev.ChannelID)
	}
	return "TBD"
}

func relativeStart(start time.Time) string {
	d := time.Until(start).Round(time.Minute)
	if d <= 0 {
		return "now"
	}
	return fmt.Sprintf("in %s", d)
}
