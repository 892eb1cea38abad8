package workspace

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hue/internal/cli"
	"github.com/thenoetrevino/hue/internal/cli/handler"
	"github.com/thenoetrevino/hue/internal/models"
	projectservice "github.com/thenoetrevino/hue/internal/services/project"
)

// CreateCmd returns the workspace create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new workspace",
		Long: `Create a workspace that groups projects.

Examples:
  # Slug only, the name defaults to the slug
  hue workspace create --slug=acme

  # With a display name
  hue workspace create --slug=acme --name="Acme Corp" --json
`,
		RunE: handler.Command(handler.HandlerFunc(runCreate), parseCreateFlags),
	}

	// Required flags
	cmd.Flags().String("slug", "", "Workspace slug: lowercase letters, digits and dashes (required)")
	if err := cmd.MarkFlagRequired("slug"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	// Optional flags
	cmd.Flags().String("name", "", "Display name (defaults to the slug)")

	handler.AddOutputFlags(cmd)

	return cmd
}

func parseCreateFlags(cmd *cobra.Command) error {
	_, err := handler.NewFlagParser(cmd).ParseString("slug")
	return err
}

func runCreate(ctx context.Context, args *handler.Arguments) (any, error) {
	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialization error: %w", err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	ws, err := cliInstance.App.ProjectService.CreateWorkspace(ctx, projectservice.CreateWorkspaceRequest{
		Slug: args.MustGetString("slug"),
		Name: args.GetString("name", ""),
	})
	if err != nil {
		return nil, err
	}
	return &createResult{Workspace: ws}, nil
}

// createResult is the created workspace
type createResult struct {
	*models.Workspace
}

// GetID implements cli.Identifiable
func (r *createResult) GetID() string {
	return r.Slug
}

// Print implements cli.Printable
func (r *createResult) Print() string {
	return fmt.Sprintf("✓ Workspace '%s' created successfully (slug: %s)\n", r.Name, r.Slug)
}
