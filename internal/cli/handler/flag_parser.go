// Package handler provides flag parsing utilities
package handler

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hue/internal/cli"
	"github.com/thenoetrevino/hue/internal/models"
)

// FlagParser provides common flag extraction patterns
type FlagParser struct {
	cmd *cobra.Command
}

// NewFlagParser creates a new flag parser
func NewFlagParser(cmd *cobra.Command) *FlagParser {
	return &FlagParser{cmd: cmd}
}

// ParseScope extracts the workspace and project from flags or environment
func (p *FlagParser) ParseScope() (cli.Scope, error) {
	scope, err := cli.GetScope(p.cmd)
	if err != nil {
		return cli.Scope{}, fmt.Errorf("%w: %v", cli.ErrUsage, err)
	}
	return scope, nil
}

// ParseString extracts a required string flag
func (p *FlagParser) ParseString(flagName string) (string, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: --%s is required", cli.ErrUsage, flagName)
	}
	return value, nil
}

// ParseStringOptional extracts an optional string flag
func (p *FlagParser) ParseStringOptional(flagName string) (string, error) {
	return p.cmd.Flags().GetString(flagName)
}

// ParseBool extracts a boolean flag
func (p *FlagParser) ParseBool(flagName string) (bool, error) {
	return p.cmd.Flags().GetBool(flagName)
}

// ParseColor extracts and validates a color flag. An empty value is allowed
// so the service default applies.
func (p *FlagParser) ParseColor(flagName string) (string, error) {
	color, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	if color == "" {
		return "", nil
	}
	if err := cli.ValidateColorHex(color); err != nil {
		return "", fmt.Errorf("%w: %v", cli.ErrValidation, err)
	}
	return color, nil
}

// ParseRole extracts a role name
func (p *FlagParser) ParseRole(flagName string) (models.Role, error) {
	value, err := p.ParseString(flagName)
	if err != nil {
		return models.RoleNone, err
	}
	role, err := models.ParseRole(value)
	if err != nil {
		return models.RoleNone, fmt.Errorf("%w: %v", cli.ErrValidation, err)
	}
	return role, nil
}

// OutputFormats extracts JSON and Quiet output flags
func (p *FlagParser) OutputFormats() (jsonOutput bool, quietMode bool, err error) {
	jsonOutput, err = p.cmd.Flags().GetBool("json")
	if err != nil {
		return false, false, fmt.Errorf("failed to parse json flag: %w", err)
	}

	quietMode, err = p.cmd.Flags().GetBool("quiet")
	if err != nil {
		return false, false, fmt.Errorf("failed to parse quiet flag: %w", err)
	}

	return jsonOutput, quietMode, nil
}

// AddScopeFlags registers --workspace and --project
func AddScopeFlags(cmd *cobra.Command) {
	cmd.Flags().String("workspace", "", "Workspace slug (uses HUE_WORKSPACE env var if not specified)")
	cmd.Flags().String("project", "", "Project ID (uses HUE_PROJECT env var if not specified)")
}

// AddOutputFlags registers the agent-friendly --json and --quiet flags
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")
}
