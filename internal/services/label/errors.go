package label

import "errors"

// Label-related errors
var (
	// Validation errors
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrNameTooLong      = errors.New("name cannot exceed 50 characters")
	ErrInvalidColor     = errors.New("invalid color format (must be hex color like #FFFFFF)")
	ErrInvalidLabelID   = errors.New("invalid label ID")
	ErrInvalidProjectID = errors.New("invalid project ID")
	ErrNoChildren       = errors.New("at least one child label is required")

	// Business logic errors
	ErrLabelNotFound  = errors.New("label not found")
	ErrParentNotFound = errors.New("parent label not found")
	ErrInvalidParent  = errors.New("parent must be a label of the same project outside the child's subtree")
)
