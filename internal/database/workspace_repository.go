package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/hue/internal/models"
)

// WorkspaceRepo handles workspace persistence
type WorkspaceRepo struct {
	db *sql.DB
}

// CreateWorkspace inserts a workspace. An existing slug yields models.ErrConflict.
func (r *WorkspaceRepo) CreateWorkspace(ctx context.Context, slug, name string) (*models.Workspace, error) {
	var createdAt sql.NullString
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO workspaces (slug, name) VALUES (?, ?)
		 ON CONFLICT(slug) DO NOTHING
		 RETURNING created_at`,
		slug, name,
	).Scan(&createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("workspace %q: %w", slug, models.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	return &models.Workspace{
		Slug:      slug,
		Name:      name,
		CreatedAt: parseTimestamp(createdAt),
	}, nil
}

// GetWorkspace retrieves a workspace by slug
func (r *WorkspaceRepo) GetWorkspace(ctx context.Context, slug string) (*models.Workspace, error) {
	var (
		ws        models.Workspace
		createdAt sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT slug, name, created_at FROM workspaces WHERE slug = ?`, slug,
	).Scan(&ws.Slug, &ws.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("workspace %q: %w", slug, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	ws.CreatedAt = parseTimestamp(createdAt)
	return &ws, nil
}
