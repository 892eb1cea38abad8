// Package hierarchy groups a flat label collection into the rows shown on the
// labels settings screen: standalone labels and parent labels with their
// direct children.
package hierarchy

import (
	"fmt"

	"github.com/thenoetrevino/hue/internal/models"
)

// PlaceholderRows is the number of loading rows shown while the label
// collection has not arrived yet.
const PlaceholderRows = 4

// Kind distinguishes the two row shapes
type Kind int

const (
	KindStandalone Kind = iota
	KindGroup
)

func (k Kind) String() string {
	if k == KindGroup {
		return "group"
	}
	return "standalone"
}

// MarshalText encodes the kind by name
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "standalone":
		*k = KindStandalone
	case "group":
		*k = KindGroup
	default:
		return fmt.Errorf("unknown directive kind %q", text)
	}
	return nil
}

// Directive is one top-level row. Children is only set for KindGroup.
type Directive struct {
	Kind     Kind            `json:"kind"`
	Label    *models.Label   `json:"label"`
	Children []*models.Label `json:"children,omitempty"`
}

// Standalone renders a label on its own
func Standalone(label *models.Label) Directive {
	return Directive{Kind: KindStandalone, Label: label}
}

// Group renders a label as a header followed by its children
func Group(label *models.Label, children []*models.Label) Directive {
	return Directive{Kind: KindGroup, Label: label, Children: children}
}

// Collection is a label list that may not have been fetched yet. The zero
// value is unloaded.
type Collection struct {
	labels []*models.Label
	loaded bool
}

// Unloaded returns a collection whose fetch has not completed
func Unloaded() Collection {
	return Collection{}
}

// Loaded wraps a fetched label list. A nil or empty list is a loaded, empty
// collection.
func Loaded(labels []*models.Label) Collection {
	return Collection{labels: labels, loaded: true}
}

// IsLoaded reports whether the labels have arrived
func (c Collection) IsLoaded() bool {
	return c.loaded
}

// Labels returns the labels in server order, nil when unloaded
func (c Collection) Labels() []*models.Label {
	return c.labels
}

// Len returns the number of labels
func (c Collection) Len() int {
	return len(c.labels)
}

// ChildIndex maps each parent ID to its children in input order
func ChildIndex(labels []*models.Label) map[string][]*models.Label {
	index := make(map[string][]*models.Label)
	for _, l := range labels {
		if l.HasParent() {
			index[l.Parent] = append(index[l.Parent], l)
		}
	}
	return index
}

// Children returns the labels whose parent is id, in input order
func Children(labels []*models.Label, id string) []*models.Label {
	var children []*models.Label
	for _, l := range labels {
		if l.Parent == id && id != "" {
			children = append(children, l)
		}
	}
	return children
}

// Resolve classifies every label on its own:
//
//   - children, with or without a parent: Group(label, children)
//   - no children, no parent: Standalone(label)
//   - no children, a parent: nothing at top level
//
// A label that has both a parent and children therefore shows up twice, once
// inside its parent's group and once as its own group header. Grandchildren
// are not followed.
func Resolve(labels []*models.Label) []Directive {
	index := ChildIndex(labels)

	directives := make([]Directive, 0, len(labels))
	for _, l := range labels {
		children := index[l.ID]
		switch {
		case len(children) > 0:
			directives = append(directives, Group(l, children))
		case !l.HasParent():
			directives = append(directives, Standalone(l))
		}
	}
	return directives
}

// Orphans returns the labels that Resolve hides entirely: their parent is not
// in the collection and they have no children of their own.
func Orphans(labels []*models.Label) []*models.Label {
	index := ChildIndex(labels)
	present := make(map[string]bool, len(labels))
	for _, l := range labels {
		present[l.ID] = true
	}

	var orphans []*models.Label
	for _, l := range labels {
		if l.HasParent() && !present[l.Parent] && len(index[l.ID]) == 0 {
			orphans = append(orphans, l)
		}
	}
	return orphans
}

// View is what the settings screen draws for a collection
type View struct {
	Loading      bool
	Placeholders int
	Directives   []Directive
}

// Render turns a collection into a view: loading placeholders while
// unloaded, resolved rows once loaded.
func Render(c Collection) View {
	if !c.loaded {
		return View{Loading: true, Placeholders: PlaceholderRows}
	}
	return View{Directives: Resolve(c.labels)}
}

// Tree is the resolved rows plus the labels they hide, as served by
// `hue label tree` and the API
type Tree struct {
	Directives []Directive     `json:"directives"`
	Orphans    []*models.Label `json:"orphans"`
}

// BuildTree resolves labels and collects their orphans. Both lists are
// non-nil so they encode as JSON arrays.
func BuildTree(labels []*models.Label) Tree {
	t := Tree{
		Directives: Resolve(labels),
		Orphans:    Orphans(labels),
	}
	if t.Directives == nil {
		t.Directives = []Directive{}
	}
	if t.Orphans == nil {
		t.Orphans = []*models.Label{}
	}
	return t
}
