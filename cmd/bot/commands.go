package main

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"guild-event-manager/internal/command"
	"guild-event-manager/internal/handlers"
)

var adminPerms = int64(discordgo.PermissionAdministrator)

// BuildCommands assembles the bot's command set. Command names come
// from the callback names; an empty guildID registers them globally.
func BuildCommands(h *handlers.BotHandler, guildID string) (*command.Registry, error) {
	reg := command.NewRegistry()

	create, err := command.New(h.EventCreate,
		command.Field{Name: "name", Description: "Event name", Required: true},
		command.Field{Name: "start", Description: "Start time, RFC 3339 (e.g. 2026-09-01T18:00:00Z)", Required: true},
		command.Field{Name: "location", Description: "Where the event takes place", Required: true},
		command.Field{Name: "duration", Description: "Duration in minutes", Default: int64(60), MinValue: f64(5), MaxValue: f64(24 * 60)},
		command.Field{Name: "description", Description: "Event description"},
	)
	if err != nil {
		return nil, fmt.Errorf("event-create: %w", err)
	}
	create.Description = "Create an external scheduled event"
	create.DefaultMemberPermissions = &adminPerms
	create.Check = checks(handlers.GuildOnly, handlers.AdminOnly)

	list, err := command.New(h.EventList)
	if err != nil {
		return nil, fmt.Errorf("event-list: %w", err)
	}
	list.Description = "List this server's scheduled events"
	list.Check = handlers.GuildOnly

	info, err := command.New(h.EventInfo,
		command.Field{Name: "event", Description: "Event ID", Required: true},
	)
	if err != nil {
		return nil, fmt.Errorf("event-info: %w", err)
	}
	info.Description = "Show one scheduled event in detail"
	info.Check = handlers.GuildOnly

	edit, err := command.New(h.EventEdit,
		command.Field{Name: "event", Description: "Event ID", Required: true},
		command.Field{Name: "name", Description: "New event name"},
		command.Field{Name: "start", Description: "New start time, RFC 3339"},
		command.Field{Name: "location", Description: "New location"},
		command.Field{Name: "description", Description: "New description"},
		command.Field{Name: "clear_description", Description: "Remove the description"},
	)
	if err != nil {
		return nil, fmt.Errorf("event-edit: %w", err)
	}
	edit.Description = "Update fields of a scheduled event"
	edit.DefaultMemberPermissions = &adminPerms
	edit.Check = checks(handlers.GuildOnly, handlers.AdminOnly)

	cancel, err := command.New(h.EventCancel,
		command.Field{Name: "event", Description: "Event ID", Required: true},
	)
	if err != nil {
		return nil, fmt.Errorf("event-cancel: %w", err)
	}
	cancel.Description = "Cancel a scheduled event"
	cancel.DefaultMemberPermissions = &adminPerms
	cancel.Check = checks(handlers.GuildOnly, handlers.AdminOnly)

	del, err := command.New(h.EventDelete,
		command.Field{Name: "event", Description: "Event ID", Required: true},
	)
	if err != nil {
		return nil, fmt.Errorf("event-delete: %w", err)
	}
	del.Description = "Delete a scheduled event"
	del.DefaultMemberPermissions = &adminPerms
	del.Check = checks(handlers.GuildOnly, handlers.AdminOnly)

	users, err := command.New(h.EventUsers,
		command.Field{Name: "event", Description: "Event ID", Required: true},
		command.Field{Name: "limit", Description: "How many subscribers to show", Default: int64(10), MinValue: f64(1), MaxValue: f64(100)},
	)
	if err != nil {
		return nil, fmt.Errorf("event-users: %w", err)
	}
	users.Description = "List who subscribed to an event"
	users.Check = handlers.GuildOnly

	invite, err := command.New(h.EventInvite,
		command.Field{Name: "event", Description: "Event ID", Required: true},
		command.Field{Name: "user", Description: "Member to invite", Required: true},
	)
	if err != nil {
		return nil, fmt.Errorf("event-invite: %w", err)
	}
	invite.Description = "Invite a member to a scheduled event"
	invite.Check = handlers.GuildOnly

	watch, err := command.New(h.EventWatch,
		command.Field{
			Name:         "channel",
			Description:  "Channel for event announcements",
			Required:     true,
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("event-watch: %w", err)
	}
	watch.Description = "Announce upcoming events in a channel"
	watch.Ephemeral = true
	watch.DefaultMemberPermissions = &adminPerms
	watch.Check = checks(handlers.GuildOnly, handlers.AdminOnly)

	unwatch, err := command.New(h.EventUnwatch)
	if err != nil {
		return nil, fmt.Errorf("event-unwatch: %w", err)
	}
	unwatch.Description = "Stop announcing upcoming events"
	unwatch.Ephemeral = true
	unwatch.DefaultMemberPermissions = &adminPerms
	unwatch.Check = checks(handlers.GuildOnly, handlers.AdminOnly)

	for _, cmd := range []*command.Command{create, list, info, edit, cancel, del, users, invite, watch, unwatch} {
		cmd.GuildID = guildID
		reg.Register(cmd)
	}

	return reg, nil
}

func f64(v float64) *float64 { return &v }

func checks(fns ...func(*command.Context) bool) func(*command.Context) bool {
	return func(ctx *command.Context) bool {
		for _, fn := range fns {
			if !fn(ctx) {
				return false
			}
		}
		return true
	}
}
