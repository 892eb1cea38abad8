// Package member holds all cli commands related to project membership
//
// e.g., hue member ...
package member

import (
	"github.com/spf13/cobra"
)

// MemberCmd returns the member parent command
func MemberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage project members and their roles",
	}

	cmd.AddCommand(AddCmd())
	cmd.AddCommand(ListCmd())

	return cmd
}
