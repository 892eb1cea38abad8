package label

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hue/internal/cli"
	"github.com/thenoetrevino/hue/internal/cli/handler"
	labelservice "github.com/thenoetrevino/hue/internal/services/label"
)

// UpdateCmd returns the label update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a label",
		Long: `Rename, recolor or move a label.

Examples:
  # Update both name and color
  hue label update --id=$ID --name="critical-bug" --color="#FF0000"

  # Move into a group
  hue label update --id=$ID --parent=$BUG_ID

  # Take out of its group
  hue label update --id=$ID --detach
`,
		RunE: handler.Command(handler.HandlerFunc(runUpdate), parseUpdateFlags),
	}

	cmd.Flags().String("id", "", "Label ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cmd.Flags().String("name", "", "New label name")
	cmd.Flags().String("color", "", "New label color in hex format #RRGGBB")
	cmd.Flags().String("parent", "", "New parent label ID")
	cmd.Flags().Bool("detach", false, "Remove the label from its group")

	handler.AddScopeFlags(cmd)
	handler.AddOutputFlags(cmd)

	return cmd
}

func parseUpdateFlags(cmd *cobra.Command) error {
	p := handler.NewFlagParser(cmd)
	if _, err := p.ParseString("id"); err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("name") && !flags.Changed("color") && !flags.Changed("parent") && !flags.Changed("detach") {
		return fmt.Errorf("%w: at least one of --name, --color, --parent or --detach must be provided", cli.ErrUsage)
	}
	if flags.Changed("parent") && flags.Changed("detach") {
		return fmt.Errorf("%w: --parent and --detach cannot be combined", cli.ErrUsage)
	}
	if flags.Changed("color") {
		color, _ := flags.GetString("color")
		if err := cli.ValidateColorHex(color); err != nil {
			return fmt.Errorf("%w: %v", cli.ErrValidation, err)
		}
	}
	return nil
}

func runUpdate(ctx context.Context, args *handler.Arguments) (any, error) {
	s, err := openSession(ctx, args.GetCmd(), true)
	if err != nil {
		return nil, err
	}
	defer s.close()

	current, err := s.projectLabel(ctx, args.MustGetString("id"))
	if err != nil {
		return nil, err
	}

	req := labelservice.UpdateLabelRequest{
		ID:     current.ID,
		Name:   args.StringIfSet("name"),
		Color:  args.StringIfSet("color"),
		Parent: args.StringIfSet("parent"),
	}
	if args.GetBool("detach") {
		detached := ""
		req.Parent = &detached
	}

	updated, err := s.labels().UpdateLabel(ctx, req)
	if err != nil {
		return nil, err
	}

	return &labelResult{Label: updated, action: "updated"}, nil
}
