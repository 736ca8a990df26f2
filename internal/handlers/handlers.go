package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"

	"guild-event-manager/internal/command"
	"guild-event-manager/internal/events"
	"guild-event-manager/internal/formatting"
	"guild-event-manager/internal/storage"
)

// BotHandler holds the collaborators the slash command callbacks need.
type BotHandler struct {
	Events EventService
	Store  storage.Storage
}

func ReadyHandler(session *discordgo.Session, ready *discordgo.Ready) {
	slog.Info("Guild Event Manager is online!", "user", session.State.User.Username)
}

// AdminOnly is a command check refusing non-administrators.
func AdminOnly(ctx *command.Context) bool {
	i := ctx.Interaction
	if i.Member == nil || i.Member.Permissions&discordgo.PermissionAdministrator == 0 {
		respondEphemeral(ctx, formatting.MsgAdminRequired)
		return false
	}
	return true
}

// GuildOnly is a command check refusing invocations outside a guild.
func GuildOnly(ctx *command.Context) bool {
	if ctx.GuildID() == "" {
		respondEphemeral(ctx, formatting.MsgGuildOnly)
		return false
	}
	return true
}

// EventCreate creates an external scheduled event at the given
// location. The duration option sets the end time relative to start.
func (h *BotHandler) EventCreate(ctx *command.Context, name, start, location string, duration int64, description string) {
	if name == "" {
		respondEphemeral(ctx, formatting.MsgNameRequired)
		return
	}

	startTime, err := time.Parse(time.RFC3339, start)
	if err != nil {
		respondEphemeral(ctx, formatting.MsgInvalidStart)
		return
	}
	endTime := startTime.Add(time.Duration(duration) * time.Minute)

	ev, err := h.Events.Create(context.Background(), ctx.GuildID(), events.CreateParams{
		Name:           formatting.DisplayName(name),
		PrivacyLevel:   events.PrivacyLevelGuildOnly,
		StartTime:      startTime,
		EndTime:        &endTime,
		EntityType:     events.EntityTypeExternal,
		EntityMetadata: &events.EntityMetadata{Location: location},
		Description:    description,
	})
	if err != nil {
		slog.Error("Failed to create event", "guild_id", ctx.GuildID(), "error", err)
		respondEphemeral(ctx, formatting.MsgCreateError)
		return
	}

	respond(ctx, formatting.MsgEventCreated(ev))
}

// EventList lists the guild's scheduled events with subscriber counts.
func (h *BotHandler) EventList(ctx *command.Context) {
	list, err := h.Events.List(context.Background(), ctx.GuildID(), true)
	if err != nil {
		slog.Error("Failed to list events", "guild_id", ctx.GuildID(), "error", err)
		respondEphemeral(ctx, formatting.MsgListError)
		return
	}

	respond(ctx, formatting.MsgEventList(list))
}

// EventInfo shows one event in detail.
func (h *BotHandler) EventInfo(ctx *command.Context, eventID string) {
	ev, err := h.Events.Fetch(context.Background(), ctx.GuildID(), eventID)
	if err != nil {
		if isNotFound(err) {
			respondEphemeral(ctx, formatting.MsgEventNotFound)
			return
		}
		slog.Error("Failed to fetch event", "event_id", eventID, "error", err)
		respondEphemeral(ctx, formatting.MsgListError)
		return
	}

	respond(ctx, formatting.MsgEventInfo(ev))
}

// EventEdit applies a partial update; only supplied options are sent.
// clear_description removes the description, which is distinct from
// leaving it untouched.
func (h *BotHandler) EventEdit(ctx *command.Context, eventID, name, start, location, description string, clearDescription bool) {
	var params events.EditParams

	if name != "" {
		display := formatting.DisplayName(name)
		params.Name = &display
	}
	if start != "" {
		startTime, err := time.Parse(time.RFC3339, start)
		if err != nil {
			respondEphemeral(ctx, formatting.MsgInvalidStart)
			return
		}
		params.StartTime = &startTime
	}
	if location != "" {
		params.EntityMetadata = events.NewNullable(events.EntityMetadata{Location: location})
	}
	if clearDescription {
		params.Description = events.NullValue[string]()
	} else if description != "" {
		params.Description = events.NewNullable(description)
	}

	ev, err := h.Events.Edit(context.Background(), ctx.GuildID(), eventID, params)
	if err != nil {
		if isNotFound(err) {
			respondEphemeral(ctx, formatting.MsgEventNotFound)
			return
		}
		slog.Error("Failed to edit event", "event_id", eventID, "error", err)
		respondEphemeral(ctx, formatting.MsgEditError)
		return
	}

	respond(ctx, formatting.MsgEventUpdated(ev))
}

// EventCancel moves a scheduled event to the canceled state.
func (h *BotHandler) EventCancel(ctx *command.Context, eventID string) {
	status := events.StatusCanceled
	ev, err := h.Events.Edit(context.Background(), ctx.GuildID(), eventID, events.EditParams{
		Status: &status,
	})
	if err != nil {
		if isNotFound(err) {
			respondEphemeral(ctx, formatting.MsgEventNotFound)
			return
		}
		slog.Error("Failed to cancel event", "event_id", eventID, "error", err)
		respondEphemeral(ctx, formatting.MsgEditError)
		return
	}

	respond(ctx, formatting.MsgEventCanceled(ev))
}

// EventDelete removes an event outright.
func (h *BotHandler) EventDelete(ctx *command.Context, eventID string) {
	if err := h.Events.Delete(context.Background(), ctx.GuildID(), eventID); err != nil {
		if isNotFound(err) {
			respondEphemeral(ctx, formatting.MsgEventNotFound)
			return
		}
		slog.Error("Failed to delete event", "event_id", eventID, "error", err)
		respondEphemeral(ctx, formatting.MsgDeleteError)
		return
	}

	respond(ctx, formatting.MsgEventDeleted(eventID))
}

// EventUsers lists who subscribed to an event.
func (h *BotHandler) EventUsers(ctx *command.Context, eventID string, limit int64) {
	users, err := h.Events.FetchUsers(context.Background(), ctx.GuildID(), eventID, events.UsersParams{
		Limit: int(limit),
	})
	if err != nil {
		if isNotFound(err) {
			respondEphemeral(ctx, formatting.MsgEventNotFound)
			return
		}
		slog.Error("Failed to fetch event users", "event_id", eventID, "error", err)
		respondEphemeral(ctx, formatting.MsgUsersError)
		return
	}

	respond(ctx, formatting.MsgEventUsers(users))
}

// EventInvite mentions a member with an invitation to the event.
func (h *BotHandler) EventInvite(ctx *command.Context, eventID string, member *discordgo.Member) {
	if member == nil || member.User == nil {
		respondEphemeral(ctx, "A server member is required.")
		return
	}

	ev, err := h.Events.Fetch(context.Background(), ctx.GuildID(), eventID)
	if err != nil {
		if isNotFound(err) {
			respondEphemeral(ctx, formatting.MsgEventNotFound)
			return
		}
		slog.Error("Failed to fetch event", "event_id", eventID, "error", err)
		respondEphemeral(ctx, formatting.MsgListError)
		return
	}

	respond(ctx, formatting.MsgEventInvite(member.User.ID, ev))
}

// EventWatch enables reminder announcements in the given text channel.
func (h *BotHandler) EventWatch(ctx *command.Context, channel *discordgo.Channel) {
	if channel == nil || channel.Type != discordgo.ChannelTypeGuildText {
		respondEphemeral(ctx, formatting.MsgChannelRequired)
		return
	}

	if err := h.Store.SaveGuildWatch(context.Background(), ctx.GuildID(), channel.ID); err != nil {
		slog.Error("Failed to save guild watch", "guild_id", ctx.GuildID(), "error", err)
		respondEphemeral(ctx, formatting.MsgWatchError)
		return
	}

	respond(ctx, formatting.MsgWatchSuccess(channel.ID))
}

// EventUnwatch disables reminder announcements for the guild.
func (h *BotHandler) EventUnwatch(ctx *command.Context) {
	if err := h.Store.DeleteGuildWatch(context.Background(), ctx.GuildID()); err != nil {
		slog.Error("Failed to delete guild watch", "guild_id", ctx.GuildID(), "error", err)
		respondEphemeral(ctx, formatting.MsgUnwatchError)
		return
	}

	respond(ctx, formatting.MsgUnwatchSuccess)
}

func respond(ctx *command.Context, msg string) {
	if err := ctx.Respond(msg); err != nil {
		slog.Error("Failed to respond to interaction", "error", err)
	}
}

func respondEphemeral(ctx *command.Context, msg string) {
	if err := ctx.RespondEphemeral(msg); err != nil {
		slog.Error("Failed to respond to interaction", "error", err)
	}
}

// isNotFound reports whether a transport error is Discord's 404; the
// error itself is surfaced unchanged by the events client.
func isNotFound(err error) bool {
	var restErr *discordgo.RESTError
	return errors.As(err, &restErr) &&
		restErr.Response != nil &&
		restErr.Response.StatusCode == http.StatusNotFound
}
