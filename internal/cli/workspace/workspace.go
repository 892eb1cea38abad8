// Package workspace holds all cli commands related to workspaces
//
// e.g., hue workspace ...
package workspace

import (
	"github.com/spf13/cobra"
)

// WorkspaceCmd returns the workspace parent command
func WorkspaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Manage workspaces",
	}

	cmd.AddCommand(CreateCmd())

	return cmd
}
