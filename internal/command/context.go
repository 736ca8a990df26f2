package command

import "github.com/bwmarrin/discordgo"

// Session is the slice of the Discord session needed to answer an
// interaction. *discordgo.Session satisfies it; tests use mocks.
type Session interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

// Context carries one command invocation into its callback.
type Context struct {
	Session     Session
	Interaction *discordgo.InteractionCreate

	// Ephemeral mirrors the command's display flag and controls the
	// default visibility of Respond.
	Ephemeral bool
}

func (c *Context) GuildID() string {
	return c.Interaction.GuildID
}

// Respond sends the interaction response, ephemeral when the command
// was declared so.
func (c *Context) Respond(msg string) error {
	return c.respond(msg, c.Ephemeral)
}

// RespondEphemeral sends a response visible only to the invoking user,
// regardless of the command's display flag.
func (c *Context) RespondEphemeral(msg string) error {
	return c.respond(msg, true)
}

func (c *Context) respond(msg string, ephemeral bool) error {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	return c.Session.InteractionRespond(c.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   flags,
		},
	})
}
