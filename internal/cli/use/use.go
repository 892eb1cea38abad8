// Package use holds all cli commands related to setting contextual information
// e.g., hue use ...
package use

import (
	"github.com/spf13/cobra"
)

// UseCmd returns the use parent command
func UseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use",
		Short: "Manage the shell's workspace and project context",
		Long: `Set the workspace and project that label, member and settings commands
act on when --workspace and --project are not given.

Examples:
  eval $(hue use project acme $PROJECT_ID)  # Use a project
  eval $(hue use project --clear)           # Clear project context
  hue use project --show                    # Show current project`,
	}

	cmd.AddCommand(ProjectCmd())

	return cmd
}
