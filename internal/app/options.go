package app

import (
	"log/slog"

	"github.com/thenoetrevino/hue/internal/config"
	"github.com/thenoetrevino/hue/internal/events"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	eventClient events.EventPublisher
	logger      *slog.Logger
	config      *config.Config
	closers     []func() error
}

// WithEventPublisher sets the event publisher for the application
func WithEventPublisher(ec events.EventPublisher) Option {
	return func(cfg *appConfig) {
		cfg.eventClient = ec
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithConfig sets the loaded configuration
func WithConfig(c *config.Config) Option {
	return func(cfg *appConfig) {
		cfg.config = c
	}
}

// WithCloser registers a cleanup run by App.Close, in reverse order
func WithCloser(fn func() error) Option {
	return func(cfg *appConfig) {
		cfg.closers = append(cfg.closers, fn)
	}
}
