package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/hue/internal/models"
)

// MemberRepo handles project membership persistence
type MemberRepo struct {
	db *sql.DB
}

// UpsertMember grants a role, replacing any previous role of the user
func (r *MemberRepo) UpsertMember(ctx context.Context, member *models.Member) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO members (project_id, workspace_slug, user_name, role) VALUES (?, ?, ?, ?)
		 ON CONFLICT(project_id, user_name) DO UPDATE SET role = excluded.role`,
		member.ProjectID, member.WorkspaceSlug, member.User, int(member.Role),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert member: %w", err)
	}
	return nil
}

// GetMemberRole returns the user's role, or models.ErrNotFound when the user
// is not a member of the project
func (r *MemberRepo) GetMemberRole(ctx context.Context, projectID, user string) (models.Role, error) {
	var role int
	err := r.db.QueryRowContext(ctx,
		`SELECT role FROM members WHERE project_id = ? AND user_name = ?`, projectID, user,
	).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RoleNone, fmt.Errorf("member %s: %w", user, models.ErrNotFound)
	}
	if err != nil {
		return models.RoleNone, fmt.Errorf("failed to get member role: %w", err)
	}
	return models.Role(role), nil
}

// GetMembersByProject lists members, highest role first
func (r *MemberRepo) GetMembersByProject(ctx context.Context, projectID string) ([]*models.Member, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT workspace_slug, project_id, user_name, role FROM members
		 WHERE project_id = ? ORDER BY role DESC, user_name`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer closeRows(rows)

	members := make([]*models.Member, 0)
	for rows.Next() {
		var (
			m    models.Member
			role int
		)
		if err := rows.Scan(&m.WorkspaceSlug, &m.ProjectID, &m.User, &role); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.Role = models.Role(role)
		members = append(members, &m)
	}
	return members, rows.Err()
}
