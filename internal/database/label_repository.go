package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/hue/internal/models"
	"github.com/thenoetrevino/hue/internal/types"
)

// LabelRepo handles label persistence
type LabelRepo struct {
	db *sql.DB
}

const labelColumns = `id, project_id, name, color, parent_id, created_at`

// CreateLabel creates a new label in the database for a specific project
func (r *LabelRepo) CreateLabel(ctx context.Context, projectID, name, color, parentID string) (*models.Label, error) {
	label := &models.Label{
		ID:        types.NewID(),
		Name:      name,
		Color:     color,
		ProjectID: projectID,
		Parent:    parentID,
	}

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if parentID != "" {
			if err := checkParent(ctx, tx, projectID, parentID); err != nil {
				return err
			}
		}

		var createdAt sql.NullString
		err := tx.QueryRowContext(ctx,
			`INSERT INTO labels (id, project_id, name, color, parent_id) VALUES (?, ?, ?, ?, ?)
			 RETURNING created_at`,
			label.ID, projectID, name, color, nullString(parentID),
		).Scan(&createdAt)
		if err != nil {
			return fmt.Errorf("failed to create label: %w", err)
		}
		label.CreatedAt = parseTimestamp(createdAt)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return label, nil
}

// GetLabelsByProject retrieves all labels for a project in creation order
func (r *LabelRepo) GetLabelsByProject(ctx context.Context, projectID string) ([]*models.Label, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+labelColumns+` FROM labels WHERE project_id = ? ORDER BY rowid`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	defer closeRows(rows)

	labels := make([]*models.Label, 0)
	for rows.Next() {
		label, err := scanLabel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

// GetLabel retrieves a single label by ID
func (r *LabelRepo) GetLabel(ctx context.Context, id string) (*models.Label, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+labelColumns+` FROM labels WHERE id = ?`, id)
	label, err := scanLabel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("label %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get label: %w", err)
	}
	return label, nil
}

// UpdateLabel overwrites a label's name, color and parent. An empty parentID
// detaches the label.
func (r *LabelRepo) UpdateLabel(ctx context.Context, id, name, color, parentID string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var projectID string
		err := tx.QueryRowContext(ctx, `SELECT project_id FROM labels WHERE id = ?`, id).Scan(&projectID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("label %s: %w", id, models.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to get label: %w", err)
		}

		if parentID != "" {
			if parentID == id {
				return fmt.Errorf("label %s cannot be its own parent: %w", id, models.ErrInvalidParent)
			}
			if err := checkParent(ctx, tx, projectID, parentID); err != nil {
				return err
			}
			if err := checkCycle(ctx, tx, id, parentID); err != nil {
				return err
			}
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE labels SET name = ?, color = ?, parent_id = ? WHERE id = ?`,
			name, color, nullString(parentID), id,
		)
		if err != nil {
			return fmt.Errorf("failed to update label: %w", err)
		}
		return nil
	})
}

// DeleteLabel removes a label. Its children are kept and become top-level.
func (r *LabelRepo) DeleteLabel(ctx context.Context, id string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE labels SET parent_id = NULL WHERE parent_id = ?`, id); err != nil {
			return fmt.Errorf("failed to detach children: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM labels WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete label: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("label %s: %w", id, models.ErrNotFound)
		}
		return nil
	})
}

// SetLabelParent moves every child under parentID. Either all children move
// or none do.
func (r *LabelRepo) SetLabelParent(ctx context.Context, parentID string, childIDs []string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var projectID string
		err := tx.QueryRowContext(ctx, `SELECT project_id FROM labels WHERE id = ?`, parentID).Scan(&projectID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("parent label %s: %w", parentID, models.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to get parent label: %w", err)
		}

		for _, childID := range childIDs {
			if childID == parentID {
				return fmt.Errorf("label %s cannot be its own parent: %w", childID, models.ErrInvalidParent)
			}
			if err := checkCycle(ctx, tx, childID, parentID); err != nil {
				return err
			}

			result, err := tx.ExecContext(ctx,
				`UPDATE labels SET parent_id = ? WHERE id = ? AND project_id = ?`,
				parentID, childID, projectID,
			)
			if err != nil {
				return fmt.Errorf("failed to set parent of %s: %w", childID, err)
			}
			n, err := result.RowsAffected()
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("label %s in project %s: %w", childID, projectID, models.ErrNotFound)
			}
		}
		return nil
	})
}

// checkParent verifies that parentID names a label of projectID
func checkParent(ctx context.Context, tx *sql.Tx, projectID, parentID string) error {
	var parentProject string
	err := tx.QueryRowContext(ctx, `SELECT project_id FROM labels WHERE id = ?`, parentID).Scan(&parentProject)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("parent label %s: %w", parentID, models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get parent label: %w", err)
	}
	if parentProject != projectID {
		return fmt.Errorf("parent label %s belongs to another project: %w", parentID, models.ErrInvalidParent)
	}
	return nil
}

// checkCycle walks up from parentID and fails if it reaches childID. A chain
// that ends at a missing label stops the walk.
func checkCycle(ctx context.Context, tx *sql.Tx, childID, parentID string) error {
	seen := make(map[string]bool)
	for id := parentID; id != "" && !seen[id]; {
		if id == childID {
			return fmt.Errorf("label %s is an ancestor of %s: %w", childID, parentID, models.ErrInvalidParent)
		}
		seen[id] = true

		var next sql.NullString
		err := tx.QueryRowContext(ctx, `SELECT parent_id FROM labels WHERE id = ?`, id).Scan(&next)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to walk label ancestors: %w", err)
		}
		id = NullStringToString(next)
	}
	return nil
}

func scanLabel(row rowScanner) (*models.Label, error) {
	var (
		l         models.Label
		parent    sql.NullString
		createdAt sql.NullString
	)
	if err := row.Scan(&l.ID, &l.ProjectID, &l.Name, &l.Color, &parent, &createdAt); err != nil {
		return nil, err
	}
	l.Parent = NullStringToString(parent)
	l.CreatedAt = parseTimestamp(createdAt)
	return &l, nil
}
