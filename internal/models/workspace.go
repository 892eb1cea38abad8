package models

import "time"

// Workspace is the top-level tenant grouping multiple projects
type Workspace struct {
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
