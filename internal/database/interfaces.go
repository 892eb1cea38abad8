// Package database defines repository interfaces for data access
package database

import (
	"context"

	"github.com/thenoetrevino/hue/internal/models"
)

// WorkspaceRepository defines workspace operations.
type WorkspaceRepository interface {
	CreateWorkspace(ctx context.Context, slug, name string) (*models.Workspace, error)
	GetWorkspace(ctx context.Context, slug string) (*models.Workspace, error)
}

// ProjectReader defines read operations for projects.
type ProjectReader interface {
	GetProject(ctx context.Context, id string) (*models.Project, error)
	GetProjectsByWorkspace(ctx context.Context, slug string) ([]*models.Project, error)
}

// ProjectWriter defines write operations for projects.
type ProjectWriter interface {
	CreateProject(ctx context.Context, workspaceSlug, name, description string) (*models.Project, error)
}

// LabelReader defines read operations for labels.
type LabelReader interface {
	// GetLabelsByProject returns labels in creation order.
	GetLabelsByProject(ctx context.Context, projectID string) ([]*models.Label, error)
	GetLabel(ctx context.Context, id string) (*models.Label, error)
}

// LabelWriter defines write operations for labels.
type LabelWriter interface {
	CreateLabel(ctx context.Context, projectID, name, color, parentID string) (*models.Label, error)
	UpdateLabel(ctx context.Context, id, name, color, parentID string) error
	// DeleteLabel removes the label and detaches its children.
	DeleteLabel(ctx context.Context, id string) error
	// SetLabelParent points every child at parentID in a single transaction.
	SetLabelParent(ctx context.Context, parentID string, childIDs []string) error
}

// MemberRepository defines project membership operations.
type MemberRepository interface {
	UpsertMember(ctx context.Context, member *models.Member) error
	GetMemberRole(ctx context.Context, projectID, user string) (models.Role, error)
	GetMembersByProject(ctx context.Context, projectID string) ([]*models.Member, error)
}

// LabelRepository combines all label-related operations.
type LabelRepository interface {
	LabelReader
	LabelWriter
}

// DataStore defines the unified interface for all data operations.
// Both the SQLite Repository and the Neo4j graph store implement it.
type DataStore interface {
	WorkspaceRepository
	ProjectReader
	ProjectWriter
	LabelRepository
	MemberRepository
}

// Compile-time verification that *Repository implements DataStore
var _ DataStore = (*Repository)(nil)
