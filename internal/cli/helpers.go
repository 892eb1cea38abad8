package cli

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hue/internal/config"
	"github.com/thenoetrevino/hue/internal/models"
	labelservice "github.com/thenoetrevino/hue/internal/services/label"
	projectservice "github.com/thenoetrevino/hue/internal/services/project"
	sessionservice "github.com/thenoetrevino/hue/internal/services/session"
)

// Environment variables set by `hue use project`
const (
	WorkspaceEnv = "HUE_WORKSPACE"
	ProjectEnv   = "HUE_PROJECT"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidateColorHex validates that a color string is in valid hex format #RRGGBB
func ValidateColorHex(color string) error {
	if !hexColor.MatchString(color) {
		return fmt.Errorf("color must be in hex format #RRGGBB (e.g., #FF0000), got: %s", color)
	}
	return nil
}

// Scope names the workspace and project a command works on
type Scope struct {
	Workspace string
	ProjectID string
}

// GetScope reads --workspace and --project, falling back to HUE_WORKSPACE and
// HUE_PROJECT. Flags take precedence over the environment.
func GetScope(cmd *cobra.Command) (Scope, error) {
	workspace, _ := cmd.Flags().GetString("workspace")
	if workspace == "" {
		workspace = WorkspaceFromEnv()
	}
	project, _ := cmd.Flags().GetString("project")
	if project == "" {
		project = os.Getenv(ProjectEnv)
	}

	workspace = strings.TrimSpace(workspace)
	project = strings.TrimSpace(project)
	if workspace == "" || project == "" {
		return Scope{}, errors.New("no project specified: use --workspace and --project or 'eval $(hue use project <workspace> <project-id>)'")
	}
	return Scope{Workspace: workspace, ProjectID: project}, nil
}

// WorkspaceFromEnv returns the workspace set by `hue use project`
func WorkspaceFromEnv() string {
	return os.Getenv(WorkspaceEnv)
}

// ExitCodeFor maps a command error onto the exit codes in exitcodes.go
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess

	case errors.Is(err, models.ErrNotFound),
		errors.Is(err, labelservice.ErrLabelNotFound),
		errors.Is(err, labelservice.ErrParentNotFound),
		errors.Is(err, projectservice.ErrProjectNotFound),
		errors.Is(err, projectservice.ErrWorkspaceNotFound),
		errors.Is(err, sessionservice.ErrProjectNotFound):
		return ExitNotFound

	case errors.Is(err, labelservice.ErrEmptyName),
		errors.Is(err, labelservice.ErrNameTooLong),
		errors.Is(err, labelservice.ErrInvalidColor),
		errors.Is(err, labelservice.ErrInvalidParent),
		errors.Is(err, labelservice.ErrNoChildren),
		errors.Is(err, projectservice.ErrEmptyName),
		errors.Is(err, projectservice.ErrNameTooLong),
		errors.Is(err, projectservice.ErrInvalidSlug),
		errors.Is(err, projectservice.ErrWorkspaceExists),
		errors.Is(err, sessionservice.ErrInvalidRole),
		errors.Is(err, sessionservice.ErrEmptyUser),
		errors.Is(err, ErrValidation):
		return ExitValidation

	case errors.Is(err, ErrUsage):
		return ExitUsage

	case errors.Is(err, config.ErrInvalidConfig):
		return ExitDataErr
	}
	return ExitError
}

// Errors raised by flag parsing, matched by ExitCodeFor
var (
	ErrUsage      = errors.New("usage error")
	ErrValidation = errors.New("validation error")
)

// ErrorCodeFor is the OutputFormatter code for err
func ErrorCodeFor(err error) string {
	switch ExitCodeFor(err) {
	case ExitNotFound:
		return "NOT_FOUND"
	case ExitValidation:
		return "VALIDATION_ERROR"
	case ExitUsage:
		return "USAGE_ERROR"
	}
	if errors.Is(err, sessionservice.ErrForbidden) || errors.Is(err, sessionservice.ErrNotMember) {
		return "FORBIDDEN"
	}
	return "ERROR"
}

// reportedError is an error the OutputFormatter already printed
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error {
	return e.error
}

// MarkReported records that err was already shown to the user
func MarkReported(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{err}
}

// IsReported reports whether err was already shown to the user
func IsReported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}
