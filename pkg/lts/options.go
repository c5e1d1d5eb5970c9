package lts

import (
	"errors"
	"log/slog"
	"time"
)

// StageOption configures a Stage.
type StageOption func(*stageConfig) error

// stageConfig holds the configuration for a Stage.
type stageConfig struct {
	pollingInterval time.Duration
	settingsTimeout time.Duration
	moveTimeout     time.Duration
	logger          *slog.Logger
}

// defaultConfig returns the default stage configuration.
func defaultConfig() *stageConfig {
	return &stageConfig{
		pollingInterval: DefaultPollingInterval,
		settingsTimeout: DefaultSettingsTimeout,
		moveTimeout:     DefaultMoveTimeout,
		logger:          nil,
	}
}

// WithPollingInterval sets the interval of the backend's status polling
// loop. Default is 250 milliseconds.
func WithPollingInterval(d time.Duration) StageOption {
	return func(c *stageConfig) error {
		if d <= 0 {
			return errors.New("polling interval must be positive")
		}
		c.pollingInterval = d
		return nil
	}
}

// WithSettingsTimeout sets the timeout for waiting on the backend's
// settings initialization during Connect. Default is 7 seconds.
func WithSettingsTimeout(d time.Duration) StageOption {
	return func(c *stageConfig) error {
		if d <= 0 {
			return errors.New("settings timeout must be positive")
		}
		c.settingsTimeout = d
		return nil
	}
}

// WithMoveTimeout sets the timeout for blocking Home and MoveToPosition
// calls. Default is 100 seconds.
func WithMoveTimeout(d time.Duration) StageOption {
	return func(c *stageConfig) error {
		if d <= 0 {
			return errors.New("move timeout must be positive")
		}
		c.moveTimeout = d
		return nil
	}
}

// WithLogger sets a structured logger for debug and warning logging.
// By default, no logging is performed.
func WithLogger(logger *slog.Logger) StageOption {
	return func(c *stageConfig) error {
		c.logger = logger
		return nil
	}
}
