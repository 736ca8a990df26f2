package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"guild-event-manager/internal/command"
	"guild-event-manager/internal/config"
	"guild-event-manager/internal/events"
	"guild-event-manager/internal/handlers"
	"guild-event-manager/internal/metrics"
	"guild-event-manager/internal/reminder"
	"guild-event-manager/internal/storage"
)

type App struct {
	config          *config.Config
	store           *storage.PostgresStore
	discord         *discordgo.Session
	registry        *command.Registry
	registrar       *command.Registrar
	reminderService *reminder.Service
	metricsServer   *http.Server
	reminderCancel  context.CancelFunc
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := storage.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to storage", "error", err)
		return nil, err
	}

	discord, err := NewDiscordSession(cfg)
	if err != nil {
		return nil, err
	}

	dispatcher := &measuredDispatcher{session: discord}
	eventsClient := events.NewClient(dispatcher)

	botHandlers := &handlers.BotHandler{Events: eventsClient, Store: store}
	registry, err := BuildCommands(botHandlers, cfg.DiscordGuildID)
	if err != nil {
		return nil, err
	}

	notifier := reminder.NewDiscordNotifier(discord)
	reminderService := reminder.NewService(cfg, store, eventsClient, notifier)

	discord.AddHandler(handlers.ReadyHandler)
	discord.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type == discordgo.InteractionApplicationCommand {
			metrics.CommandInvocations.WithLabelValues(i.ApplicationCommandData().Name).Inc()
		}
		registry.Handle(s, i, s.State)
	})

	return &App{
		config:          cfg,
		store:           store,
		discord:         discord,
		registry:        registry,
		reminderService: reminderService,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	if err := a.discord.Open(); err != nil {
		slog.Error("Failed to open discord session", "error", err)
		return err
	}

	a.registrar = command.NewRegistrar(&measuredDispatcher{session: a.discord}, a.discord.State.User.ID)
	a.registrar.RegisterAll(ctx, a.registry)

	reminderCtx, cancel := context.WithCancel(context.Background())
	a.reminderCancel = cancel
	go a.reminderService.Start(reminderCtx)

	a.startMetrics()

	return nil
}

func (a *App) startMetrics() {
	if a.config.MetricsAddr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	a.metricsServer = &http.Server{Addr: a.config.MetricsAddr, Handler: mux}

	go func() {
		if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server error", "error", err)
		}
	}()

	slog.Info("Metrics endpoint listening", "addr", a.config.MetricsAddr)
}

func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down...")

	var errs []error

	if a.reminderCancel != nil {
		a.reminderCancel()
	}

	if a.registrar != nil {
		a.registrar.UnregisterAll(ctx, a.registry)
	}

	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if a.discord != nil {
		if err := a.discord.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if a.store != nil {
		a.store.Close()
	}

	return errors.Join(errs...)
}
