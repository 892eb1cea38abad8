package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/hue/internal/config"
	"github.com/thenoetrevino/hue/internal/database"
	"github.com/thenoetrevino/hue/internal/events"
	"github.com/thenoetrevino/hue/internal/graphstore"
	labelservice "github.com/thenoetrevino/hue/internal/services/label"
	projectservice "github.com/thenoetrevino/hue/internal/services/project"
	sessionservice "github.com/thenoetrevino/hue/internal/services/session"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct database access)
	repo database.DataStore

	// Event system for live updates
	eventClient events.EventPublisher

	Config *config.Config
	Logger *slog.Logger

	// Service layer (business logic)
	LabelService   labelservice.Service
	ProjectService projectservice.Service
	SessionService sessionservice.Service

	closers []func() error
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(repo database.DataStore, opts ...Option) *App {
	cfg := &appConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.config == nil {
		cfg.config = config.Default()
	}

	return &App{
		repo:           repo,
		eventClient:    cfg.eventClient,
		Config:         cfg.config,
		Logger:         cfg.logger,
		LabelService:   labelservice.NewService(repo, cfg.eventClient),
		ProjectService: projectservice.NewService(repo, cfg.eventClient),
		SessionService: sessionservice.NewService(repo),
		closers:        cfg.closers,
	}
}

// Open builds the store selected by cfg, an event broker, and the App over
// them. Close releases both.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	repo, closeRepo, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	broker := events.NewBroker()
	opts = append([]Option{
		WithConfig(cfg),
		WithEventPublisher(broker),
		WithCloser(closeRepo),
		WithCloser(broker.Close),
	}, opts...)

	return New(repo, opts...), nil
}

// OpenStore opens the persistence backend named in cfg
func OpenStore(ctx context.Context, cfg *config.Config) (database.DataStore, func() error, error) {
	switch cfg.Store.Backend {
	case config.BackendNeo4j:
		n := cfg.Store.Neo4j
		store, err := graphstore.Open(ctx, n.URI, n.User, n.Password, n.Database)
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { return store.Close(context.Background()) }, nil

	case config.BackendSQLite, "":
		path := cfg.Store.Path
		if path == "" {
			p, err := database.DefaultPath()
			if err != nil {
				return nil, nil, err
			}
			path = p
		}
		db, err := database.InitDB(ctx, path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		return database.NewRepository(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// Repo returns the underlying repository for direct database access
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Events returns the event publisher, nil when none was configured
func (a *App) Events() events.EventPublisher {
	return a.eventClient
}

// Local returns the in-process label store and project lookup used by the
// optimistic coordinator when no remote is configured
func (a *App) Local() *Local {
	return &Local{labels: a.LabelService, projects: a.ProjectService}
}

// Close releases registered resources, last registered first
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
