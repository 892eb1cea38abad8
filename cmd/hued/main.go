package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"

	"github.com/thenoetrevino/hue/internal/api"
	"github.com/thenoetrevino/hue/internal/app"
	"github.com/thenoetrevino/hue/internal/config"
	"github.com/thenoetrevino/hue/internal/logging"
)

// shutdownTimeout bounds how long in-flight requests may take after a signal
const shutdownTimeout = 5 * time.Second

func main() {
	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load(afero.NewOsFs())
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logging.InitJSON(os.Stderr, cfg.LogLevel)

	if err := run(ctx, cfg); err != nil {
		slog.Error("hued error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	application, err := app.Open(ctx, cfg, app.WithLogger(logging.Logger))
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			slog.Error("error closing store", "error", err)
		}
	}()

	handler := api.NewServer(
		application.LabelService,
		application.ProjectService,
		application.SessionService,
		api.WithLogger(logging.Logger),
	)
	srv := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("hued starting", "listen", cfg.Server.Listen, "store", cfg.Store.Backend, "pid", os.Getpid())
		errChan <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("hued shutting down gracefully")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}
