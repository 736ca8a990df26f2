package main

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"guild-event-manager/internal/config"
)

func NewDiscordSession(cfg *config.Config) (*discordgo.Session, error) {
	discord, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		slog.Error("Failed to create discord session", "error", err)
		return nil, err
	}

	discord.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentGuildScheduledEvents

	return discord, nil
}
