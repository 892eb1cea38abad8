package member

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hue/internal/cli"
	"github.com/thenoetrevino/hue/internal/cli/handler"
	"github.com/thenoetrevino/hue/internal/models"
)

// AddCmd returns the member add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Grant a user a role on a project",
		Long: `Grant a user a role on a project, replacing any previous role.
Only members and owners may change membership.

Roles, lowest first: guest, viewer, member, owner.
Members and owners can manage labels.

Examples:
  hue member add --workspace=acme --project=$PROJECT_ID --user=ada --role=member
  hue member add --user=vic --role=viewer --json
`,
		RunE: handler.Command(handler.HandlerFunc(runAdd), parseAddFlags),
	}

	handler.AddScopeFlags(cmd)
	cmd.Flags().String("user", "", "User name (required)")
	cmd.Flags().String("role", "", "Role: guest, viewer, member or owner (required)")
	for _, name := range []string{"user", "role"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "error", err)
		}
	}

	handler.AddOutputFlags(cmd)

	return cmd
}

func parseAddFlags(cmd *cobra.Command) error {
	p := handler.NewFlagParser(cmd)
	if _, err := p.ParseScope(); err != nil {
		return err
	}
	if _, err := p.ParseString("user"); err != nil {
		return err
	}
	_, err := p.ParseRole("role")
	return err
}

func runAdd(ctx context.Context, args *handler.Arguments) (any, error) {
	p := handler.NewFlagParser(args.GetCmd())
	scope, err := p.ParseScope()
	if err != nil {
		return nil, err
	}
	role, err := p.ParseRole("role")
	if err != nil {
		return nil, err
	}
	user, err := p.ParseString("user")
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

	sessions := cliInstance.App.SessionService
	if _, err := sessions.RequireAdmin(ctx, scope.Workspace, scope.ProjectID, cliInstance.User()); err != nil {
		return nil, err
	}
	if err := sessions.AddMember(ctx, scope.Workspace, scope.ProjectID, user, role); err != nil {
		return nil, err
	}

	return &memberResult{
		Member: &models.Member{
			WorkspaceSlug: scope.Workspace,
			ProjectID:     scope.ProjectID,
			User:          user,
			Role:          role,
		},
		RoleName: role.String(),
	}, nil
}

// memberResult is a granted membership
type memberResult struct {
	*models.Member
	RoleName string `json:"role_name"`
}

// GetID implements cli.Identifiable
func (r *memberResult) GetID() string {
	return r.User
}

// Print implements cli.Printable
func (r *memberResult) Print() string {
	return fmt.Sprintf("✓ %s is now %s of project %s\n", r.User, r.Role, r.ProjectID)
}
