package session

import "errors"

// Authorization errors
var (
	ErrEmptyUser       = errors.New("user cannot be empty")
	ErrInvalidRole     = errors.New("invalid role (must be guest, viewer, member or owner)")
	ErrProjectNotFound = errors.New("project not found")
	ErrNotMember       = errors.New("user is not a member of this project")
	ErrForbidden       = errors.New("admin access required")
)
