package member

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hue/internal/cli"
	"github.com/thenoetrevino/hue/internal/cli/handler"
	"github.com/thenoetrevino/hue/internal/models"
)

// ListCmd returns the member list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the members of a project",
		RunE: handler.Command(handler.HandlerFunc(runList), func(cmd *cobra.Command) error {
			_, err := handler.NewFlagParser(cmd).ParseScope()
			return err
		}),
	}

	handler.AddScopeFlags(cmd)
	handler.AddOutputFlags(cmd)

	return cmd
}

func runList(ctx context.Context, args *handler.Arguments) (any, error) {
	scope, err := handler.NewFlagParser(args.GetCmd()).ParseScope()
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
	if _, err := sessions.Authorize(ctx, scope.Workspace, scope.ProjectID, cliInstance.User()); err != nil {
		return nil, err
	}
	members, err := sessions.ListMembers(ctx, scope.Workspace, scope.ProjectID)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []*models.Member{}
	}
	return memberList(members), nil
}

// memberList is the list output
type memberList []*models.Member

// GetIDs prints one user per line in quiet mode
func (l memberList) GetIDs() []string {
	users := make([]string, len(l))
	for i, m := range l {
		users[i] = m.User
	}
	return users
}

// Print implements cli.Printable
func (l memberList) Print() string {
	if len(l) == 0 {
		return "No members found\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  %-20s %s\n", "User", "Role")
	b.WriteString("  " + strings.Repeat("-", 30) + "\n")
	for _, m := range l {
		fmt.Fprintf(&b, "  %-20s %s\n", m.User, m.Role)
	}
	return b.String()
}
