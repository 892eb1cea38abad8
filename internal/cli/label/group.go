package label

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hue/internal/cli/handler"
)

// GroupCmd returns the label group subcommand
func GroupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Add existing labels to a group",
		Long: `Make existing labels children of a parent label. All children are moved
in one transaction; labels already in another group are moved.

Examples:
  hue label group --parent=$BUG_ID --child=$UI_ID --child=$API_ID
`,
		RunE: handler.Command(handler.HandlerFunc(runGroup), parseGroupFlags),
	}

	cmd.Flags().String("parent", "", "Parent label ID (required)")
	cmd.Flags().StringArray("child", nil, "Child label ID (repeatable, required)")
	for _, name := range []string{"parent", "child"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "error", err)
		}
	}

	handler.AddScopeFlags(cmd)
	handler.AddOutputFlags(cmd)

	return cmd
}

func parseGroupFlags(cmd *cobra.Command) error {
	_, err := handler.NewFlagParser(cmd).ParseString("parent")
	return err
}

func runGroup(ctx context.Context, args *handler.Arguments) (any, error) {
	s, err := openSession(ctx, args.GetCmd(), true)
	if err != nil {
		return nil, err
	}
	defer s.close()

	parent, err := s.projectLabel(ctx, args.MustGetString("parent"))
	if err != nil {
		return nil, err
	}
	children := args.GetStringSlice("child", nil)

	if err := s.labels().AddLabelsToGroup(ctx, parent.ID, children); err != nil {
		return nil, err
	}

	return &groupResult{Parent: parent.ID, ParentName: parent.Name, Children: children}, nil
}

// groupResult lists the labels moved into a group
type groupResult struct {
	Parent     string   `json:"parent"`
	ParentName string   `json:"parent_name"`
	Children   []string `json:"children"`
}

// GetID implements cli.Identifiable
func (r *groupResult) GetID() string {
	return r.Parent
}

// Print implements cli.Printable
func (r *groupResult) Print() string {
	return fmt.Sprintf("✓ Added %d label(s) to group '%s': %s\n",
		len(r.Children), r.ParentName, strings.Join(r.Children, ", "))
}
