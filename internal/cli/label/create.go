// Package label holds all cli commands related to labels
// e.g., hue label ...
package label

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hue/internal/cli/handler"
	labelservice "github.com/thenoetrevino/hue/internal/services/label"
)

// CreateCmd returns the label create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new label",
		Long: `Create a new label with a name and an optional color and parent.

Examples:
  # Create label (human-readable output)
  hue label create --name="bug" --color="#FF0000"

  # Inside an existing group
  hue label create --name="ui" --parent=$BUG_ID

  # Quiet mode for bash capture
  LABEL_ID=$(hue label create --name="bug" --quiet)
`,
		RunE: handler.Command(handler.HandlerFunc(runCreate), parseCreateFlags),
	}

	// Required flags
	cmd.Flags().String("name", "", "Label name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	// Optional flags
	cmd.Flags().String("color", "", "Label color in hex format #RRGGBB (defaults to "+labelservice.DefaultColor+")")
	cmd.Flags().String("parent", "", "Parent label ID")

	handler.AddScopeFlags(cmd)
	handler.AddOutputFlags(cmd)

	return cmd
}

func parseCreateFlags(cmd *cobra.Command) error {
	p := handler.NewFlagParser(cmd)
	if _, err := p.ParseString("name"); err != nil {
		return err
	}
	_, err := p.ParseColor("color")
	return err
}

func runCreate(ctx context.Context, args *handler.Arguments) (any, error) {
	color, err := handler.NewFlagParser(args.GetCmd()).ParseColor("color")
	if err != nil {
		return nil, err
	}

	s, err := openSession(ctx, args.GetCmd(), true)
	if err != nil {
		return nil, err
	}
	defer s.close()

	label, err := s.labels().CreateLabel(ctx, labelservice.CreateLabelRequest{
		ProjectID: s.scope.ProjectID,
		Name:      args.MustGetString("name"),
		Color:     color,
		Parent:    args.GetString("parent", ""),
	})
	if err != nil {
		return nil, err
	}

	return &labelResult{Label: label, action: "created"}, nil
}
