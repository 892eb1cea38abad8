package models

import "errors"

// Domain-specific errors shared by the stores
var (
	// ErrNotFound indicates that a requested record does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates that a record with the same identity already exists
	ErrConflict = errors.New("already exists")

	// ErrInvalidParent indicates a parent label outside the child's project,
	// or a parent that is the label itself or one of its descendants
	ErrInvalidParent = errors.New("invalid parent label")
)
