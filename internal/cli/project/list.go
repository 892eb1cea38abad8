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
)

// ListCmd returns the project list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the projects of a workspace",
		Long:  "List all projects of a workspace with their details.",
		RunE: handler.Command(handler.HandlerFunc(runList), func(cmd *cobra.Command) error {
			_, err := workspaceFlag(cmd)
			return err
		}),
	}

	cmd.Flags().String("workspace", "", "Workspace slug (uses HUE_WORKSPACE env var if not specified)")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runList(ctx context.Context, args *handler.Arguments) (any, error) {
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

	projects, err := cliInstance.App.ProjectService.ListProjects(ctx, workspace)
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []*models.Project{}
	}
	return projectList(projects), nil
}

// projectList is the list output
type projectList []*models.Project

// GetIDs prints one ID per line in quiet mode
func (l projectList) GetIDs() []string {
	ids := make([]string, len(l))
	for i, p := range l {
		ids[i] = p.ID
	}
	return ids
}

// Print implements cli.Printable
func (l projectList) Print() string {
	if len(l) == 0 {
		return "No projects found\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d projects:\n\n", len(l))
	for _, p := range l {
		fmt.Fprintf(&b, "  [%s] %s", p.ID, p.Name)
		if p.Description != "" {
			fmt.Fprintf(&b, " - %s", p.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}
