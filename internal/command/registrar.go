package command

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// Dispatcher issues one Discord REST request and returns the raw JSON
// response. *discordgo.Session satisfies it.
type Dispatcher interface {
	Request(method, url string, data any, options ...discordgo.RequestOption) ([]byte, error)
}

// Registrar submits built commands to Discord and tears them down
// again. Commands with a GuildID register on that guild, the rest
// globally.
type Registrar struct {
	d     Dispatcher
	appID string
}

func NewRegistrar(d Dispatcher, appID string) *Registrar {
	return &Registrar{d: d, appID: appID}
}

// Register creates one command and writes the server-assigned ID,
// application ID and version back into it.
func (r *Registrar) Register(ctx context.Context, cmd *Command) error {
	endpoint := discordgo.EndpointApplicationGlobalCommands(r.appID)
	if cmd.GuildID != "" {
		endpoint = discordgo.EndpointApplicationGuildCommands(r.appID, cmd.GuildID)
	}

	resp, err := r.d.Request("POST", endpoint, cmd, discordgo.WithContext(ctx))
	if err != nil {
		return err
	}

	var assigned struct {
		ID            string `json:"id"`
		ApplicationID string `json:"application_id"`
		Version       string `json:"version"`
	}
	if err := json.Unmarshal(resp, &assigned); err != nil {
		return fmt.Errorf("failed to decode command registration response: %w", err)
	}

	cmd.ID = assigned.ID
	cmd.ApplicationID = assigned.ApplicationID
	cmd.Version = assigned.Version
	return nil
}

// Unregister deletes a previously registered command.
func (r *Registrar) Unregister(ctx context.Context, cmd *Command) error {
	if cmd.ID == "" {
		return fmt.Errorf("command %q was never registered", cmd.Name)
	}

	endpoint := discordgo.EndpointApplicationGlobalCommand(r.appID, cmd.ID)
	if cmd.GuildID != "" {
		endpoint = discordgo.EndpointApplicationGuildCommand(r.appID, cmd.GuildID, cmd.ID)
	}

	_, err := r.d.Request("DELETE", endpoint, nil, discordgo.WithContext(ctx))
	return err
}

// RegisterAll submits every command in the registry, logging and
// skipping failures so one bad command does not block the rest.
func (r *Registrar) RegisterAll(ctx context.Context, reg *Registry) {
	for _, cmd := range reg.Commands() {
		if err := r.Register(ctx, cmd); err != nil {
			slog.Error("Cannot create command", "name", cmd.Name, "error", err)
			continue
		}
		slog.Info("Registered command", "name", cmd.Name, "id", cmd.ID, "guild", cmd.GuildID)
	}
}

// UnregisterAll deletes every registered command in the registry.
func (r *Registrar) UnregisterAll(ctx context.Context, reg *Registry) {
	for _, cmd := range reg.Commands() {
		if cmd.ID == "" {
			continue
		}
		if err := r.Unregister(ctx, cmd); err != nil {
			slog.Error("Cannot delete command", "name", cmd.Name, "error", err)
		}
	}
}
