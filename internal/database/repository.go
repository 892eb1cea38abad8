package database

import "database/sql"

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*WorkspaceRepo
	*ProjectRepo
	*LabelRepo
	*MemberRepo
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		WorkspaceRepo: &WorkspaceRepo{db: db},
		ProjectRepo:   &ProjectRepo{db: db},
		LabelRepo:     &LabelRepo{db: db},
		MemberRepo:    &MemberRepo{db: db},
	}
}
