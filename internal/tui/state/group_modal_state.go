package state

import "github.com/thenoetrevino/hue/internal/models"

// GroupModalState tracks the "add existing labels to a group" modal. It is
// independent of the label form: both may be open at once.
type GroupModalState struct {
	open   bool
	parent *models.Label

	// cursor and selected drive the candidate list inside the modal
	cursor   int
	selected map[string]bool
}

// NewGroupModalState returns a closed modal
func NewGroupModalState() *GroupModalState {
	return &GroupModalState{selected: make(map[string]bool)}
}

// IsOpen reports whether the modal is shown.
func (s *GroupModalState) IsOpen() bool {
	return s.open
}

// Parent returns the label that will receive the children. The last parent
// is kept after the modal closes until the next AddLabelToGroup.
func (s *GroupModalState) Parent() *models.Label {
	return s.parent
}

// AddLabelToGroup opens the modal with label as the group parent
func (s *GroupModalState) AddLabelToGroup(label *models.Label) {
	s.open = true
	s.parent = label
	s.cursor = 0
	s.selected = make(map[string]bool)
}

// CloseGroupModal hides the modal
func (s *GroupModalState) CloseGroupModal() {
	s.open = false
}

// Candidates returns the labels that may be added under the parent: every
// other label that is not already one of its children.
func (s *GroupModalState) Candidates(labels []*models.Label) []*models.Label {
	if s.parent == nil {
		return nil
	}
	var out []*models.Label
	for _, l := range labels {
		if l.ID == s.parent.ID || l.Parent == s.parent.ID {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Cursor returns the highlighted candidate index.
func (s *GroupModalState) Cursor() int {
	return s.cursor
}

// MoveCursor moves the highlight by delta, clamped to [0, n)
func (s *GroupModalState) MoveCursor(delta, n int) {
	if n == 0 {
		s.cursor = 0
		return
	}
	s.cursor = max(0, min(n-1, s.cursor+delta))
}

// Toggle flips the selection of a candidate
func (s *GroupModalState) Toggle(id string) {
	if s.selected[id] {
		delete(s.selected, id)
		return
	}
	if s.selected == nil {
		s.selected = make(map[string]bool)
	}
	s.selected[id] = true
}

// IsSelected reports whether a candidate is selected
func (s *GroupModalState) IsSelected(id string) bool {
	return s.selected[id]
}

// Selected returns the selected candidate IDs in the order of labels
func (s *GroupModalState) Selected(labels []*models.Label) []string {
	var ids []string
	for _, l := range labels {
		if s.selected[l.ID] {
			ids = append(ids, l.ID)
		}
	}
	return ids
}
