package cli

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/thenoetrevino/hue/internal/app"
	"github.com/thenoetrevino/hue/internal/config"
	"github.com/thenoetrevino/hue/internal/testutil"
)

// CLI represents the CLI application context
type CLI struct {
	App *app.App // Application container with services

	// owned is false when the App was injected and is closed by its creator
	owned bool
}

// NewCLI loads the config, opens the configured store and builds the App
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load(afero.NewOsFs())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	application, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize app: %w", err)
	}

	return &CLI{App: application, owned: true}, nil
}

// GetCLIFromContext returns the CLI for a command. Tests inject an App through
// the command context; otherwise a new CLI is opened.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if a, ok := ctx.Value(testutil.TestAppKey).(*app.App); ok && a != nil {
		return &CLI{App: a}, nil
	}
	return NewCLI(ctx)
}

// User is the caller identity from config
func (c *CLI) User() string {
	return c.App.Config.User
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return c.App.Close()
}
