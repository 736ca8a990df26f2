package main

import (
	"errors"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"guild-event-manager/internal/metrics"
)

// measuredDispatcher decorates the session's raw request method with
// request counters and timing. The session itself still owns rate
// limiting and retry behavior.
type measuredDispatcher struct {
	session *discordgo.Session
}

func (d *measuredDispatcher) Request(method, url string, data any, options ...discordgo.RequestOption) ([]byte, error) {
	start := time.Now()
	resp, err := d.session.Request(method, url, data, options...)

	status := requestStatus(err)
	metrics.DiscordAPIRequests.WithLabelValues(method, status).Inc()
	metrics.DiscordAPIRequestDuration.WithLabelValues(method, status).Observe(time.Since(start).Seconds())

	return resp, err
}

func requestStatus(err error) string {
	if err == nil {
		return "ok"
	}
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		return strconv.Itoa(restErr.Response.StatusCode)
	}
	return "error"
}
