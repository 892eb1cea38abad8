package label

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hue/internal/cli/handler"
)

// DeleteCmd returns the label delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a label",
		Long: `Delete a label by ID (requires confirmation unless --force or --quiet).
Children of a deleted group become top-level labels.

Examples:
  # Delete with confirmation
  hue label delete --id=$ID

  # Skip confirmation
  hue label delete --id=$ID --force
`,
		RunE: handler.Command(handler.HandlerFunc(runDelete), func(cmd *cobra.Command) error {
			_, err := handler.NewFlagParser(cmd).ParseString("id")
			return err
		}),
	}

	// Required flags
	cmd.Flags().String("id", "", "Label ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	// Optional flags
	cmd.Flags().Bool("force", false, "Skip confirmation")

	handler.AddScopeFlags(cmd)
	handler.AddOutputFlags(cmd)

	return cmd
}

func runDelete(ctx context.Context, args *handler.Arguments) (any, error) {
	s, err := openSession(ctx, args.GetCmd(), true)
	if err != nil {
		return nil, err
	}
	defer s.close()

	label, err := s.projectLabel(ctx, args.MustGetString("id"))
	if err != nil {
		return nil, err
	}

	// Ask for confirmation unless force or quiet mode
	if !args.GetBool("force") && !args.GetBool("quiet") && !args.GetBool("json") {
		fmt.Printf("Delete label '%s' (%s)? (y/N): ", label.Name, label.ID)
		response, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			slog.Debug("failed to read confirmation", "error", err)
		}
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			return &deleteResult{ID: label.ID, Name: label.Name, Cancelled: true}, nil
		}
	}

	if err := s.cli.App.Local().DeleteLabel(ctx, s.scope.Workspace, s.scope.ProjectID, label.ID); err != nil {
		return nil, err
	}

	return &deleteResult{ID: label.ID, Name: label.Name}, nil
}

// deleteResult reports a deleted or kept label
type deleteResult struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Cancelled bool   `json:"cancelled,omitempty"`
}

// Print implements cli.Printable
func (r *deleteResult) Print() string {
	if r.Cancelled {
		return "Cancelled\n"
	}
	return fmt.Sprintf("✓ Label '%s' deleted successfully\n", r.Name)
}
