package use

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hue/internal/cli"
)

// ProjectCmd returns the use project subcommand
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [workspace] [project-id]",
		Short: "Set project context for current shell session",
		Long: `Set the current project context using environment variables.
This command outputs shell commands that should be evaluated:

  eval $(hue use project acme $PROJECT_ID)  # Use a project
  eval $(hue use project --clear)           # Clear project context
  hue use project --show                    # Show current project

HUE_WORKSPACE and HUE_PROJECT are set in your current shell session only.
The --workspace and --project flags on other commands take precedence.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runUseProject,
	}

	cmd.Flags().Bool("clear", false, "Clear the current project context")
	cmd.Flags().Bool("show", false, "Show the current project context")
	cmd.Flags().Bool("dry-run", false, "Show what would be exported without outputting shell commands")

	return cmd
}

func runUseProject(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	clearFlag, _ := cmd.Flags().GetBool("clear")
	showFlag, _ := cmd.Flags().GetBool("show")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	out := cmd.OutOrStdout()
	msg := cmd.ErrOrStderr()

	if showFlag {
		return showCurrentProject(ctx, cmd)
	}

	if clearFlag {
		if dryRun {
			fmt.Fprintf(msg, "Would clear %s and %s\n", cli.WorkspaceEnv, cli.ProjectEnv)
			return nil
		}
		fmt.Fprintf(out, "unset %s %s\n", cli.WorkspaceEnv, cli.ProjectEnv)
		fmt.Fprintf(msg, "Cleared project context\n")
		return nil
	}

	if len(args) != 2 {
		return fmt.Errorf("%w: workspace and project ID required\nUsage: eval $(hue use project <workspace> <project-id>)", cli.ErrUsage)
	}
	workspace, projectID := args[0], args[1]

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return fmt.Errorf("initialization error: %w", err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	project, err := cliInstance.App.ProjectService.GetProject(ctx, workspace, projectID)
	if err != nil {
		fmt.Fprintf(msg, "Error: project %s not found in workspace %s\n", projectID, workspace)
		fmt.Fprintf(msg, "Suggestion: Use 'hue project list --workspace %s' to see available projects\n", workspace)
		return err
	}

	if dryRun {
		fmt.Fprintf(msg, "Would set %s=%s %s=%s (%s)\n", cli.WorkspaceEnv, project.WorkspaceSlug, cli.ProjectEnv, project.ID, project.Name)
		return nil
	}

	fmt.Fprintf(out, "export %s=%s %s=%s\n", cli.WorkspaceEnv, project.WorkspaceSlug, cli.ProjectEnv, project.ID)
	fmt.Fprintf(msg, "Now using project %s: %s\n", project.ID, project.Name)

	return nil
}

func showCurrentProject(ctx context.Context, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	workspace := os.Getenv(cli.WorkspaceEnv)
	projectID := os.Getenv(cli.ProjectEnv)
	if workspace == "" || projectID == "" {
		fmt.Fprintln(out, "No project context set")
		fmt.Fprintln(out, "Use 'eval $(hue use project <workspace> <project-id>)' to set one")
		return nil
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return fmt.Errorf("initialization error: %w", err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	project, err := cliInstance.App.ProjectService.GetProject(ctx, workspace, projectID)
	if err != nil {
		fmt.Fprintf(out, "Current project: %s/%s (project not found)\n", workspace, projectID)
		return nil
	}

	fmt.Fprintf(out, "Current project: %s/%s (%s)\n", project.WorkspaceSlug, project.ID, project.Name)
	return nil
}
