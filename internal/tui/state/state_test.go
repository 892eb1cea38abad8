package state

import (
	"fmt"
	"testing"

	"github.com/thenoetrevino/hue/internal/models"
)

// ============================================================================
// LABEL FORM
// ============================================================================

func TestLabelFormState_StartsIdle(t *testing.T) {
	s := NewLabelFormState()
	if s.Mode() != FormIdle {
		t.Errorf("Mode() = %s, want idle", s.Mode())
	}
	if s.IsOpen() || s.Editing() != nil {
		t.Error("new form state should be closed")
	}
}

// TestLabelFormState_Transitions walks every operation from every mode.
func TestLabelFormState_Transitions(t *testing.T) {
	label := &models.Label{ID: "1", Name: "bug"}
	other := &models.Label{ID: "2", Name: "docs"}

	setups := map[string]func(*LabelFormState){
		"idle":     func(*LabelFormState) {},
		"creating": func(s *LabelFormState) { s.NewLabel() },
		"editing":  func(s *LabelFormState) { s.EditLabel(other) },
	}

	tests := []struct {
		op          string
		apply       func(*LabelFormState)
		wantMode    FormMode
		wantEditing *models.Label
	}{
		{"NewLabel", func(s *LabelFormState) { s.NewLabel() }, FormCreating, nil},
		{"EditLabel", func(s *LabelFormState) { s.EditLabel(label) }, FormEditing, label},
		{"Submit", func(s *LabelFormState) { s.Submit() }, FormIdle, nil},
		{"Cancel", func(s *LabelFormState) { s.Cancel() }, FormIdle, nil},
	}

	for from, setup := range setups {
		for _, tt := range tests {
			t.Run(fmt.Sprintf("%s from %s", tt.op, from), func(t *testing.T) {
				s := NewLabelFormState()
				setup(s)
				tt.apply(s)

				if s.Mode() != tt.wantMode {
					t.Errorf("Mode() = %s, want %s", s.Mode(), tt.wantMode)
				}
				if s.Editing() != tt.wantEditing {
					t.Errorf("Editing() = %v, want %v", s.Editing(), tt.wantEditing)
				}
			})
		}
	}
}

func TestLabelFormState_EditReplacesLabel(t *testing.T) {
	s := NewLabelFormState()
	a := &models.Label{ID: "a"}
	b := &models.Label{ID: "b"}

	s.EditLabel(a)
	s.EditLabel(b)
	if s.Editing() != b {
		t.Errorf("Editing() = %v, want b", s.Editing())
	}

	s.NewLabel()
	if s.Editing() != nil {
		t.Error("creating must not keep the edited label")
	}
}

// ============================================================================
// GROUP MODAL
// ============================================================================

func TestGroupModalState_OpenClose(t *testing.T) {
	s := NewGroupModalState()
	if s.IsOpen() || s.Parent() != nil {
		t.Fatal("new modal should be closed without a parent")
	}

	parent := &models.Label{ID: "p"}
	s.AddLabelToGroup(parent)
	if !s.IsOpen() || s.Parent() != parent {
		t.Fatalf("modal should be open with parent p, got open=%v parent=%v", s.IsOpen(), s.Parent())
	}

	s.CloseGroupModal()
	if s.IsOpen() {
		t.Error("modal should be closed")
	}
	if s.Parent() != parent {
		t.Error("parent is kept after close")
	}
}

func TestGroupModalState_IndependentOfForm(t *testing.T) {
	form := NewLabelFormState()
	modal := NewGroupModalState()

	form.NewLabel()
	modal.AddLabelToGroup(&models.Label{ID: "p"})
	form.Cancel()

	if !modal.IsOpen() {
		t.Error("closing the form must not close the modal")
	}
}

func TestGroupModalState_CandidatesAndSelection(t *testing.T) {
	labels := []*models.Label{
		{ID: "p"},
		{ID: "a"},
		{ID: "b", Parent: "p"},
		{ID: "c", Parent: "x"},
	}

	s := NewGroupModalState()
	if s.Candidates(labels) != nil {
		t.Error("no candidates without a parent")
	}

	s.AddLabelToGroup(labels[0])
	candidates := s.Candidates(labels)
	if len(candidates) != 2 || candidates[0].ID != "a" || candidates[1].ID != "c" {
		t.Fatalf("unexpected candidates: %v", candidates)
	}

	s.Toggle("c")
	s.Toggle("a")
	s.Toggle("a")
	if got := s.Selected(candidates); len(got) != 1 || got[0] != "c" {
		t.Errorf("Selected() = %v, want [c]", got)
	}

	s.MoveCursor(5, len(candidates))
	if s.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", s.Cursor())
	}
	s.MoveCursor(-5, len(candidates))
	if s.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", s.Cursor())
	}

	// Reopening resets the selection
	s.AddLabelToGroup(labels[0])
	if s.IsSelected("c") {
		t.Error("selection should reset on open")
	}
}

func TestGroupModalState_ZeroValue(t *testing.T) {
	var s GroupModalState
	if s.IsOpen() || s.Parent() != nil {
		t.Fatal("zero value should be closed with no parent")
	}

	s.Toggle("a")
	if !s.IsSelected("a") {
		t.Error("Toggle on a zero value should select")
	}
	s.Toggle("a")
	if s.IsSelected("a") {
		t.Error("second Toggle should deselect")
	}
}

// ============================================================================
// NOTIFICATIONS
// ============================================================================

func TestNotificationState_KeepsMostRecent(t *testing.T) {
	s := NewNotificationState()
	if _, ok := s.Latest(); ok {
		t.Fatal("empty state has no latest notification")
	}

	for i := 0; i < maxNotifications+3; i++ {
		s.Add(LevelInfo, fmt.Sprintf("n%d", i))
	}
	s.Add(LevelError, "delete failed")

	if len(s.All()) != maxNotifications {
		t.Errorf("len(All()) = %d, want %d", len(s.All()), maxNotifications)
	}
	latest, ok := s.Latest()
	if !ok || latest.Level != LevelError || latest.Message != "delete failed" {
		t.Errorf("Latest() = %+v", latest)
	}

	s.Clear()
	if s.HasAny() {
		t.Error("Clear should remove everything")
	}
}
