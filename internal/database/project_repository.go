package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/hue/internal/models"
	"github.com/thenoetrevino/hue/internal/types"
)

// ProjectRepo handles project persistence
type ProjectRepo struct {
	db *sql.DB
}

// CreateProject creates a project inside an existing workspace
func (r *ProjectRepo) CreateProject(ctx context.Context, workspaceSlug, name, description string) (*models.Project, error) {
	project := &models.Project{
		ID:            types.NewID(),
		WorkspaceSlug: workspaceSlug,
		Name:          name,
		Description:   description,
	}

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM workspaces WHERE slug = ?`, workspaceSlug).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("workspace %q: %w", workspaceSlug, models.ErrNotFound)
		}
		if err != nil {
			return err
		}

		var createdAt, updatedAt sql.NullString
		err = tx.QueryRowContext(ctx,
			`INSERT INTO projects (id, workspace_slug, name, description) VALUES (?, ?, ?, ?)
			 RETURNING created_at, updated_at`,
			project.ID, workspaceSlug, name, description,
		).Scan(&createdAt, &updatedAt)
		if err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}
		project.CreatedAt = parseTimestamp(createdAt)
		project.UpdatedAt = parseTimestamp(updatedAt)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// GetProject retrieves a project by ID
func (r *ProjectRepo) GetProject(ctx context.Context, id string) (*models.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, workspace_slug, name, description, created_at, updated_at
		 FROM projects WHERE id = ?`, id)

	project, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// GetProjectsByWorkspace lists the projects of a workspace by name
func (r *ProjectRepo) GetProjectsByWorkspace(ctx context.Context, slug string) ([]*models.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, workspace_slug, name, description, created_at, updated_at
		 FROM projects WHERE workspace_slug = ? ORDER BY name, id`, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer closeRows(rows)

	projects := make([]*models.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	var (
		p                    models.Project
		createdAt, updatedAt sql.NullString
	)
	if err := row.Scan(&p.ID, &p.WorkspaceSlug, &p.Name, &p.Description, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt = parseTimestamp(createdAt)
	p.UpdatedAt = parseTimestamp(updatedAt)
	return &p, nil
}
