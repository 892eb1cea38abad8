package settings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hue/internal/cli"
	"github.com/thenoetrevino/hue/internal/cli/handler"
	"github.com/thenoetrevino/hue/internal/launcher"
	"github.com/thenoetrevino/hue/internal/optimistic"
)

// LabelsCmd returns the settings labels subcommand
func LabelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Manage labels in an interactive screen",
		Long: `Open the labels settings screen of a project. Only members and owners
may open it.

Keys (configurable under key_mappings):
  n new   e edit   g add to group   d delete   r refresh   q quit

With --remote the screen talks to a hued server instead of the local store.

Examples:
  hue settings labels --workspace=acme --project=$PROJECT_ID
  hue settings labels --remote=http://127.0.0.1:7420
  hue settings labels --check
`,
		RunE: runLabels,
	}

	handler.AddScopeFlags(cmd)
	cmd.Flags().String("remote", "", "hued base URL (uses HUE_REMOTE or client.remote if not specified)")
	cmd.Flags().Bool("check", false, "Only check that you may manage labels")

	return cmd
}

func runLabels(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	p := handler.NewFlagParser(cmd)
	scope, err := p.ParseScope()
	if err != nil {
		return err
	}
	remote, _ := p.ParseStringOptional("remote")
	check, _ := p.ParseBool("check")

	screen, closeApp, err := prepare(ctx, optimistic.Scope{Workspace: scope.Workspace, ProjectID: scope.ProjectID}, remote)
	if err != nil {
		return err
	}
	defer closeApp()
	defer func() {
		if err := screen.Close(); err != nil {
			slog.Error("failed to close labels screen", "error", err)
		}
	}()

	if check {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ You can manage labels of %s/%s (%s)\n",
			scope.Workspace, scope.ProjectID, screen.Access.Role)
		return nil
	}

	return screen.Run(ctx)
}

// prepare builds the screen against the remote when one is given or
// configured, and against the local store otherwise
func prepare(ctx context.Context, scope optimistic.Scope, remote string) (*launcher.Screen, func(), error) {
	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("initialization error: %w", err)
	}
	closeCLI := func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}

	if remote == "" {
		remote = cliInstance.App.Config.Client.Remote
	}

	var screen *launcher.Screen
	if remote != "" {
		screen, err = launcher.Remote(ctx, cliInstance.App.Config, scope, remote)
	} else {
		screen, err = launcher.Local(ctx, cliInstance.App, scope)
	}
	if err != nil {
		closeCLI()
		return nil, nil, err
	}
	return screen, closeCLI, nil
}
