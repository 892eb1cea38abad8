// Package cmd wires the hue command tree
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hue/internal/cli/label"
	"github.com/thenoetrevino/hue/internal/cli/member"
	"github.com/thenoetrevino/hue/internal/cli/project"
	"github.com/thenoetrevino/hue/internal/cli/settings"
	"github.com/thenoetrevino/hue/internal/cli/use"
	"github.com/thenoetrevino/hue/internal/cli/workspace"
)

// NewRootCmd builds the hue command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hue",
		Short: "Hue - hierarchical issue labels for projects",
		Long: `Hue manages the issue labels of projects. Labels can be grouped one level
deep under a parent label and edited from the command line or from the
interactive settings screen.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(workspace.WorkspaceCmd())
	rootCmd.AddCommand(project.ProjectCmd())
	rootCmd.AddCommand(member.MemberCmd())
	rootCmd.AddCommand(label.LabelCmd())
	rootCmd.AddCommand(settings.SettingsCmd())
	rootCmd.AddCommand(use.UseCmd())

	return rootCmd
}

// Execute runs the command tree
func Execute() error {
	return NewRootCmd().Execute()
}
