package models

import "time"

// Label represents a named, colored classification attachable to issues.
// Labels are project-specific and may be nested one level under a parent label.
type Label struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`                // Hex color code (e.g., "#7D56F4")
	ProjectID string    `json:"project"`              // ID of the project this label belongs to
	Parent    string    `json:"parent,omitempty"`     // ID of the parent label, empty for top-level labels
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// HasParent reports whether the label points at a parent label
func (l *Label) HasParent() bool {
	return l.Parent != ""
}

// Clone returns a shallow copy so cached collections never alias caller data
func (l *Label) Clone() *Label {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}

// CloneLabels copies every label in the slice, preserving order
func CloneLabels(labels []*Label) []*Label {
	if labels == nil {
		return nil
	}
	out := make([]*Label, len(labels))
	for i, l := range labels {
		out[i] = l.Clone()
	}
	return out
}
