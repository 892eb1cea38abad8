// Package project holds all cli commands related to projects
//
// e.g., hue project ...
package project

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hue/internal/cli"
	"github.com/thenoetrevino/hue/internal/cli/handler"
	"github.com/thenoetrevino/hue/internal/models"
	projectservice "github.com/thenoetrevino/hue/internal/services/project"
)

// CreateCmd returns the project create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		Long: `Create a project in a workspace. The configured user becomes its owner.

Examples:
  # Simple project (human-readable output)
  hue project create --workspace=acme --name="Web"

  # Quiet mode for bash capture
  PROJECT_ID=$(hue project create --workspace=acme --name="Web" --quiet)

  # With description
  hue project create \
    --workspace=acme \
    --name="Web" \
    --description="Customer facing site"
`,
		RunE: handler.Command(handler.HandlerFunc(runCreate), parseCreateFlags),
	}

	// Required flags
	cmd.Flags().String("workspace", "", "Workspace slug (uses HUE_WORKSPACE env var if not specified)")
	cmd.Flags().String("name", "", "Project name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	// Optional flags
	cmd.Flags().String("description", "", "Project description")

	handler.AddOutputFlags(cmd)

	return cmd
}

func parseCreateFlags(cmd *cobra.Command) error {
	if _, err := workspaceFlag(cmd); err != nil {
		return err
	}
	_, err := handler.NewFlagParser(cmd).ParseString("name")
	return err
}

func runCreate(ctx context.Context, args *handler.Arguments) (any, error) {
	workspace, err := workspaceFlag(args.GetCmd())
	if err != nil {
		return nil, err
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialization error: %w", err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	project, err := cliInstance.App.ProjectService.CreateProject(ctx, projectservice.CreateProjectRequest{
		Workspace:   workspace,
		Name:        args.MustGetString("name"),
		Description: args.GetString("description", ""),
		Owner:       cliInstance.User(),
	})
	if err != nil {
		return nil, err
	}
	return &projectResult{Project: project, Owner: cliInstance.User()}, nil
}

// projectResult is a created project
type projectResult struct {
	*models.Project
	Owner string `json:"owner,omitempty"`
}

// GetID implements cli.Identifiable
func (r *projectResult) GetID() string {
	return r.ID
}

// Print implements cli.Printable
func (r *projectResult) Print() string {
	var b strings.Builder
	fmt.Fprintf(&b, "✓ Project '%s' created successfully (ID: %s)\n", r.Name, r.ID)
	fmt.Fprintf(&b, "  Workspace: %s\n", r.WorkspaceSlug)
	if r.Description != "" {
		fmt.Fprintf(&b, "  Description: %s\n", r.Description)
	}
	if r.Owner != "" {
		fmt.Fprintf(&b, "  Owner: %s\n", r.Owner)
	}
	return b.String()
}

// workspaceFlag reads --workspace with the HUE_WORKSPACE fallback
func workspaceFlag(cmd *cobra.Command) (string, error) {
	ws, _ := cmd.Flags().GetString("workspace")
	if ws == "" {
		ws = cli.WorkspaceFromEnv()
	}
	if strings.TrimSpace(ws) == "" {
		return "", fmt.Errorf("%w: no workspace specified: use --workspace or set HUE_WORKSPACE", cli.ErrUsage)
	}
	return ws, nil
}
