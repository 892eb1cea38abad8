package state

import "github.com/thenoetrevino/hue/internal/models"

// FormMode is the label form's mode on the labels settings screen
type FormMode int

const (
	// FormIdle means no form is shown
	FormIdle FormMode = iota
	// FormCreating shows an empty form for a new label
	FormCreating
	// FormEditing shows the form filled with an existing label
	FormEditing
)

func (m FormMode) String() string {
	switch m {
	case FormCreating:
		return "creating"
	case FormEditing:
		return "editing"
	default:
		return "idle"
	}
}

// LabelFormState tracks whether the create or edit form is open.
// Opening one mode always replaces the other.
type LabelFormState struct {
	mode    FormMode
	editing *models.Label
}

// NewLabelFormState returns an idle form state
func NewLabelFormState() *LabelFormState {
	return &LabelFormState{mode: FormIdle}
}

// Mode returns the current mode.
func (s *LabelFormState) Mode() FormMode {
	return s.mode
}

// Editing returns the label being edited, or nil unless the mode is FormEditing.
func (s *LabelFormState) Editing() *models.Label {
	if s.mode != FormEditing {
		return nil
	}
	return s.editing
}

// IsOpen reports whether a form is shown
func (s *LabelFormState) IsOpen() bool {
	return s.mode != FormIdle
}

// NewLabel opens the create form from any mode
func (s *LabelFormState) NewLabel() {
	s.mode = FormCreating
	s.editing = nil
}

// EditLabel opens the edit form for label from any mode
func (s *LabelFormState) EditLabel(label *models.Label) {
	s.mode = FormEditing
	s.editing = label
}

// Submit closes the form after it was saved
func (s *LabelFormState) Submit() {
	s.reset()
}

// Cancel closes the form without saving
func (s *LabelFormState) Cancel() {
	s.reset()
}

func (s *LabelFormState) reset() {
	s.mode = FormIdle
	s.editing = nil
}
