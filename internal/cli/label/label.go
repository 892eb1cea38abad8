package label

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hue/internal/cli"
	"github.com/thenoetrevino/hue/internal/cli/handler"
	"github.com/thenoetrevino/hue/internal/models"
	labelservice "github.com/thenoetrevino/hue/internal/services/label"
)

// LabelCmd returns the label parent command
func LabelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Manage labels",
		Long: `Manage the labels of a project.

Labels can be grouped one level deep: a label with a parent is shown inside
its parent's group. Every command takes --workspace and --project, or reads
them from HUE_WORKSPACE and HUE_PROJECT (see 'hue use project').`,
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(TreeCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(GroupCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// session is an open CLI scoped to one project with the caller's access checked
type session struct {
	cli   *cli.CLI
	scope cli.Scope
}

// openSession checks the caller's role before any label is read or written.
// Writes require a member or owner.
func openSession(ctx context.Context, cmd *cobra.Command, write bool) (*session, error) {
	scope, err := handler.NewFlagParser(cmd).ParseScope()
	if err != nil {
		return nil, err
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialization error: %w", err)
	}

	sessions := cliInstance.App.SessionService
	if write {
		_, err = sessions.RequireAdmin(ctx, scope.Workspace, scope.ProjectID, cliInstance.User())
	} else {
		_, err = sessions.Authorize(ctx, scope.Workspace, scope.ProjectID, cliInstance.User())
	}
	if err != nil {
		closeCLI(cliInstance)
		return nil, err
	}

	return &session{cli: cliInstance, scope: scope}, nil
}

func (s *session) labels() labelservice.Service {
	return s.cli.App.LabelService
}

// projectLabel fetches a label of the scoped project; labels of other
// projects are reported as not found
func (s *session) projectLabel(ctx context.Context, id string) (*models.Label, error) {
	label, err := s.labels().GetLabel(ctx, id)
	if err != nil {
		return nil, err
	}
	if label.ProjectID != s.scope.ProjectID {
		return nil, labelservice.ErrLabelNotFound
	}
	return label, nil
}

func (s *session) close() {
	closeCLI(s.cli)
}

func closeCLI(c *cli.CLI) {
	if err := c.Close(); err != nil {
		slog.Error("failed to close CLI", "error", err)
	}
}

// labelResult is a single label
type labelResult struct {
	*models.Label
	action string
}

// GetID implements cli.Identifiable
func (r *labelResult) GetID() string {
	return r.ID
}

// Print implements cli.Printable
func (r *labelResult) Print() string {
	s := fmt.Sprintf("✓ Label '%s' %s successfully (ID: %s)\n", r.Name, r.action, r.ID)
	s += fmt.Sprintf("  Color: %s\n", r.Color)
	if r.Parent != "" {
		s += fmt.Sprintf("  Parent: %s\n", r.Parent)
	}
	return s
}
