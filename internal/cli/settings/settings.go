// Package settings holds the commands that open settings screens
// e.g., hue settings ...
package settings

import (
	"github.com/spf13/cobra"
)

// SettingsCmd returns the settings parent command
func SettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Open project settings screens",
	}

	cmd.AddCommand(LabelsCmd())

	return cmd
}
