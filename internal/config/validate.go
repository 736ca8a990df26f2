package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation constants define acceptable bounds for configuration values
const (
	// Token validation
	minTokenLength = 50 // Discord tokens are typically 50+ characters

	// ReminderInterval validation
	minReminderInterval = 1 * time.Minute // Minimum to avoid excessive API calls
	maxReminderInterval = 24 * time.Hour  // Maximum reasonable interval

	// ReminderLead validation
	minReminderLead = 5 * time.Minute
	maxReminderLead = 7 * 24 * time.Hour
)

// Validate checks if the configuration values are valid and within
// acceptable ranges. It returns all validation errors at once using
// errors.Join.
func (c *Config) Validate() error {
	var errs []error

	if err := c.validateToken(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateReminderInterval(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateReminderLead(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateMetricsAddr(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %w", errors.Join(errs...))
	}

	return nil
}

// validateToken ensures the Discord token is present and has valid length
func (c *Config) validateToken() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required but not set")
	}

	if len(c.Token) < minTokenLength {
		return fmt.Errorf(
			"DISCORD_TOKEN appears invalid (too short: %d chars, expected %d+)",
			len(c.Token), minTokenLength,
		)
	}

	return nil
}

func (c *Config) validateReminderInterval() error {
	if c.ReminderInterval < minReminderInterval {
		return fmt.Errorf(
			"REMINDER_INTERVAL must be at least %v to avoid excessive API calls, got %v (hint: recommended range is 1m-10m)",
			minReminderInterval, c.ReminderInterval,
		)
	}

	if c.ReminderInterval > maxReminderInterval {
		return fmt.Errorf(
			"REMINDER_INTERVAL must be at most %v, got %v",
			maxReminderInterval, c.ReminderInterval,
		)
	}

	return nil
}

func (c *Config) validateReminderLead() error {
	if c.ReminderLead < minReminderLead {
		return fmt.Errorf(
			"REMINDER_LEAD must be at least %v, got %v",
			minReminderLead, c.ReminderLead,
		)
	}

	if c.ReminderLead > maxReminderLead {
		return fmt.Errorf(
			"REMINDER_LEAD must be at most %v, got %v",
			maxReminderLead, c.ReminderLead,
		)
	}

	return nil
}

// validateMetricsAddr ensures the metrics listen address looks like a
// host:port pair. An empty address disables the metrics endpoint.
func (c *Config) validateMetricsAddr() error {
	if c.MetricsAddr == "" {
		return nil
	}

	if !strings.Contains(c.MetricsAddr, ":") {
		return fmt.Errorf("METRICS_ADDR must be a host:port address, got %q", c.MetricsAddr)
	}

	return nil
}
