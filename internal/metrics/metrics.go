package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DiscordAPIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "event_manager_discord_api_requests_total",
		Help: "Total number of Discord REST API requests",
	}, []string{"method", "status"})

	DiscordAPIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "event_manager_discord_api_request_duration_seconds",
		Help:    "Duration of Discord REST API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status"})

	CommandInvocations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "event_manager_command_invocations_total",
		Help: "Total number of slash command invocations",
	}, []string{"command"})

	RemindersSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "event_manager_reminders_sent_total",
		Help: "The total number of event reminders announced",
	})

	AnnouncementsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "event_manager_announcements_sent_total",
		Help: "Total number of Discord channel announcements sent",
	}, []string{"status"})
)
