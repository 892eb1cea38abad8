package label

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hue/internal/cli/handler"
	"github.com/thenoetrevino/hue/internal/cli/styles"
	"github.com/thenoetrevino/hue/internal/hierarchy"
)

// TreeCmd returns the label tree subcommand
func TreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show labels grouped by parent",
		Long: `Show the labels of a project the way the settings screen lays them out:
standalone labels and groups with their children. Labels whose parent no
longer exists are listed separately.

Examples:
  hue label tree
  hue label tree --json
`,
		RunE: handler.SimpleCommand(handler.HandlerFunc(runTree)),
	}

	handler.AddScopeFlags(cmd)
	handler.AddOutputFlags(cmd)

	return cmd
}

func runTree(ctx context.Context, args *handler.Arguments) (any, error) {
	s, err := openSession(ctx, args.GetCmd(), false)
	if err != nil {
		return nil, err
	}
	defer s.close()

	labels, err := s.labels().GetLabelsByProject(ctx, s.scope.ProjectID)
	if err != nil {
		return nil, err
	}

	return &treeResult{Tree: hierarchy.BuildTree(labels)}, nil
}

// treeResult wraps the resolved rows for output
type treeResult struct {
	hierarchy.Tree
}

// GetIDs lists the label IDs in display order
func (r *treeResult) GetIDs() []string {
	var ids []string
	for _, d := range r.Directives {
		ids = append(ids, d.Label.ID)
		for _, c := range d.Children {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// Print implements cli.Printable
func (r *treeResult) Print() string {
	if len(r.Directives) == 0 && len(r.Orphans) == 0 {
		return "No labels found\n"
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Labels") + "\n\n")
	for _, d := range r.Directives {
		fmt.Fprintf(&b, "  %s\n", styles.RenderLabelChip(d.Label))
		for i, child := range d.Children {
			branch := "├─"
			if i == len(d.Children)-1 {
				branch = "└─"
			}
			fmt.Fprintf(&b, "  %s %s\n", styles.BranchStyle.Render(branch), styles.RenderLabelChip(child))
		}
	}

	if len(r.Orphans) > 0 {
		fmt.Fprintf(&b, "\n%s\n", styles.OrphanStyle.Render(fmt.Sprintf("Hidden (%d): parent no longer exists", len(r.Orphans))))
		for _, o := range r.Orphans {
			fmt.Fprintf(&b, "  %s %s\n", styles.RenderLabelChip(o), styles.SubtitleStyle.Render("parent "+o.Parent))
		}
	}
	return b.String()
}
