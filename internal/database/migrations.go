package database

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS workspaces (
		slug TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		workspace_slug TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (workspace_slug) REFERENCES workspaces(slug) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_workspace ON projects(workspace_slug)`,
	`CREATE TABLE IF NOT EXISTS labels (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		name TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT '#7D56F4',
		parent_id TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
		FOREIGN KEY (parent_id) REFERENCES labels(id) ON DELETE SET NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_labels_project ON labels(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_labels_parent ON labels(parent_id)`,
	`CREATE TABLE IF NOT EXISTS members (
		project_id TEXT NOT NULL,
		workspace_slug TEXT NOT NULL,
		user_name TEXT NOT NULL,
		role INTEGER NOT NULL,
		PRIMARY KEY (project_id, user_name),
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
	)`,
}

// runMigrations creates the database schema if needed
func runMigrations(ctx context.Context, db *sql.DB) error {
	return withTx(ctx, db, func(tx *sql.Tx) error {
		for i, stmt := range schema {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migration step %d: %w", i, err)
			}
		}
		return nil
	})
}
