// Package command builds Discord application command schemas from Go
// callbacks, resolves received option values, and keeps registered
// commands in an explicit registry. Registration itself goes through a
// caller-supplied dispatcher; this package performs no retries and owns
// no transport state.
package command

import "github.com/bwmarrin/discordgo"

// Choice is one selectable value of a string, integer or number option.
type Choice struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Option is one declared parameter of a command, mirroring Discord's
// application command option object field for field. Default is local
// only: it is substituted when an invocation omits the option.
type Option struct {
	Type         discordgo.ApplicationCommandOptionType `json:"type"`
	Name         string                                 `json:"name"`
	Description  string                                 `json:"description,omitempty"`
	Required     bool                                   `json:"required"`
	Choices      []Choice                               `json:"choices,omitempty"`
	Options      []Option                               `json:"options,omitempty"`
	ChannelTypes []discordgo.ChannelType                `json:"channel_types,omitempty"`
	MinValue     *float64                               `json:"min_value,omitempty"`
	MaxValue     *float64                               `json:"max_value,omitempty"`
	Autocomplete bool                                   `json:"autocomplete,omitempty"`

	Default any `json:"-"`
}

// Command is one registrable application command. ID, ApplicationID and
// Version are empty until the registrar submits the command; they are
// the only fields mutated after construction. Commands live in a
// registry for the process lifetime.
type Command struct {
	ID                       string                           `json:"id,omitempty"`
	ApplicationID            string                           `json:"application_id,omitempty"`
	Version                  string                           `json:"version,omitempty"`
	Type                     discordgo.ApplicationCommandType `json:"type,omitempty"`
	GuildID                  string                           `json:"-"`
	Name                     string                           `json:"name"`
	Description              string                           `json:"description,omitempty"`
	Options                  []Option                         `json:"options,omitempty"`
	DefaultPermission        *bool                            `json:"default_permission,omitempty"`
	DefaultMemberPermissions *int64                           `json:"default_member_permissions,string,omitempty"`
	DMPermission             *bool                            `json:"dm_permission,omitempty"`

	// Callback is invoked when the command is dispatched. Its typed
	// parameters were inspected by New to produce Options.
	Callback any `json:"-"`
	// Ephemeral makes Context.Respond default to an ephemeral reply.
	Ephemeral bool `json:"-"`
	// Check runs before the callback; returning false stops dispatch.
	// The check is expected to have responded to the interaction.
	Check func(*Context) bool `json:"-"`

	// bindings pair callback parameters with their options, including
	// parameters that produced no option and are filled with zero values.
	bindings []paramBinding
}

type paramBinding struct {
	optionName string
	skipped    bool
}

// Mentionable marks a callback parameter as Discord's user-or-role
// option. Resolution of received mentionable values is not implemented
// and always yields nil.
type Mentionable interface {
	Mention() string
}
