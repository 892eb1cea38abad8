package models

import "time"

// Project represents a container for issues and their labels.
// Every project belongs to exactly one workspace.
type Project struct {
	ID            string    `json:"id"`
	WorkspaceSlug string    `json:"workspace"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
