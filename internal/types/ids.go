// Package types holds identifier helpers shared by the stores and surfaces
package types

import (
	"strings"

	"github.com/google/uuid"
)

// Identifiers are opaque strings. Projects and labels use UUIDs generated
// by the store; workspaces are addressed by their slug.

// NewID returns a fresh random identifier for a project or label
func NewID() string {
	return uuid.New().String()
}

// IsValidID reports whether id is a well-formed identifier produced by NewID
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// NormalizeSlug lowercases and trims a workspace slug
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// IsValidSlug reports whether slug only holds lowercase letters, digits and dashes
func IsValidSlug(slug string) bool {
	if slug == "" || len(slug) > 48 {
		return false
	}
	for i, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case r == '-' && i > 0 && i < len(slug)-1:
		default:
			return false
		}
	}
	return true
}
