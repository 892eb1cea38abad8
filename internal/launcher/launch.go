// Package launcher prepares and runs the labels settings screen against the
// local store or a hued server.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/hue/internal/app"
	"github.com/thenoetrevino/hue/internal/client"
	"github.com/thenoetrevino/hue/internal/config"
	"github.com/thenoetrevino/hue/internal/logging"
	"github.com/thenoetrevino/hue/internal/optimistic"
	sessionservice "github.com/thenoetrevino/hue/internal/services/session"
	"github.com/thenoetrevino/hue/internal/tui/labels"
)

// Screen is a labels settings screen whose caller passed the admin check
type Screen struct {
	Access sessionservice.Access

	cfg     *config.Config
	coord   *optimistic.Coordinator
	writer  labels.Writer
	opts    []labels.Option
	closers []func() error
}

// Local prepares the screen over an open App. The caller must be a member or
// owner of the project.
func Local(ctx context.Context, a *app.App, scope optimistic.Scope) (*Screen, error) {
	access, err := a.SessionService.RequireAdmin(ctx, scope.Workspace, scope.ProjectID, a.Config.User)
	if err != nil {
		return nil, err
	}

	local := a.Local()
	s := &Screen{
		Access: access,
		cfg:    a.Config,
		coord:  optimistic.NewCoordinator(scope, local, local, optimistic.WithLogger(a.Logger)),
		writer: local,
	}

	// Writes through this App publish to its broker; refetch on each one
	if listener, ok := a.Events().(labels.Listener); ok {
		listenCtx, cancel := context.WithCancel(context.Background())
		ch, err := listener.Listen(listenCtx, scope.ProjectID)
		if err != nil {
			cancel()
			slog.Warn("continuing without live updates", "error", err)
		} else {
			s.opts = append(s.opts, labels.WithUpdates(ch))
			s.closers = append(s.closers, func() error { cancel(); return nil })
		}
	}

	return s, nil
}

// Remote prepares the screen against the hued server at baseURL
func Remote(ctx context.Context, cfg *config.Config, scope optimistic.Scope, baseURL string) (*Screen, error) {
	c, err := client.New(baseURL, cfg.User,
		client.WithTimeout(cfg.Client.Timeout),
		client.WithCacheSize(cfg.Client.CacheSize),
	)
	if err != nil {
		return nil, err
	}

	access, err := c.Access(ctx, scope.Workspace, scope.ProjectID)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to check access: %w", err)
	}
	if !access.CanManageLabels() {
		_ = c.Close()
		return nil, sessionservice.ErrForbidden
	}

	return &Screen{
		Access:  access,
		cfg:     cfg,
		coord:   optimistic.NewCoordinator(scope, c, c),
		writer:  remoteWriter{c: c},
		closers: []func() error{c.Close},
	}, nil
}

// Close cancels in-flight deletes and releases the screen's resources
func (s *Screen) Close() error {
	errs := []error{s.coord.Close()}
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	s.closers = nil
	return errors.Join(errs...)
}

// Run starts the screen and blocks until the user quits or a signal arrives
func (s *Screen) Run(ctx context.Context) error {
	// Initialize logging to file before anything else
	if err := logging.Init("", s.cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	// Create root context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	model := labels.New(ctx, s.coord, s.writer, s.cfg, s.opts...)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	// goroutine to monitor cancellation
	errChan := make(chan error, 1)
	go func() {
		_, err := p.Run()
		errChan <- err
	}()

	// Wait for program completion or cancellation
	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("error running program: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received, cleaning up")
		// The program stops on its own once the context is done
		if err := <-errChan; err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			slog.Error("program exited with error", "error", err)
		}
	}

	return nil
}
