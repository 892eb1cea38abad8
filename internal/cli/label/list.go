package label

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hue/internal/cli/handler"
	"github.com/thenoetrevino/hue/internal/cli/styles"
	"github.com/thenoetrevino/hue/internal/models"
)

// ListCmd returns the label list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the labels of a project",
		Long: `List every label of a project in creation order.

Examples:
  # Human-readable table
  hue label list

  # JSON for scripts
  hue label list --json

  # IDs only
  hue label list --quiet
`,
		RunE: handler.SimpleCommand(handler.HandlerFunc(runList)),
	}

	handler.AddScopeFlags(cmd)
	handler.AddOutputFlags(cmd)

	return cmd
}

func runList(ctx context.Context, args *handler.Arguments) (any, error) {
	s, err := openSession(ctx, args.GetCmd(), false)
	if err != nil {
		return nil, err
	}
	defer s.close()

	labels, err := s.labels().GetLabelsByProject(ctx, s.scope.ProjectID)
	if err != nil {
		return nil, err
	}
	if labels == nil {
		labels = []*models.Label{}
	}

	return labelList(labels), nil
}

// labelList is the flat label listing
type labelList []*models.Label

// GetIDs implements the quiet listing
func (l labelList) GetIDs() []string {
	ids := make([]string, len(l))
	for i, label := range l {
		ids[i] = label.ID
	}
	return ids
}

// Print implements cli.Printable
func (l labelList) Print() string {
	if len(l) == 0 {
		return "No labels found\n"
	}

	names := make(map[string]string, len(l))
	for _, label := range l {
		names[label.ID] = label.Name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", styles.TitleStyle.Render(fmt.Sprintf("Labels (%d)", len(l))))
	for _, label := range l {
		fmt.Fprintf(&b, "  %s %-24s %s  %s",
			styles.Swatch(label.Color), label.Name,
			styles.SubtitleStyle.Render(label.Color),
			styles.SubtitleStyle.Render(label.ID))
		if label.HasParent() {
			parent, ok := names[label.Parent]
			if !ok {
				parent = label.Parent
			}
			fmt.Fprintf(&b, "  %s", styles.ValueStyle.Render("in "+parent))
		}
		b.WriteString("\n")
	}
	return b.String()
}
