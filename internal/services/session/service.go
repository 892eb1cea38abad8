// Package session resolves a caller's role on a project and gates the label
// settings surfaces on it.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/thenoetrevino/hue/internal/database"
	"github.com/thenoetrevino/hue/internal/models"
	"github.com/thenoetrevino/hue/internal/types"
)

// AdminRole is the lowest role allowed to manage labels
const AdminRole = models.RoleMember

// Access is the caller's resolved role. Exactly one flag is set.
type Access struct {
	Role     models.Role `json:"role"`
	IsOwner  bool        `json:"is_owner"`
	IsMember bool        `json:"is_member"`
	IsViewer bool        `json:"is_viewer"`
	IsGuest  bool        `json:"is_guest"`
}

// CanManageLabels reports whether the role passes RequireAdmin
func (a Access) CanManageLabels() bool {
	return a.Role.AtLeast(AdminRole)
}

// NewAccess derives the flags from a role
func NewAccess(role models.Role) Access {
	return Access{
		Role:     role,
		IsOwner:  role == models.RoleOwner,
		IsMember: role == models.RoleMember,
		IsViewer: role == models.RoleViewer,
		IsGuest:  role == models.RoleGuest,
	}
}

// Service defines membership and authorization operations
type Service interface {
	RoleFor(ctx context.Context, workspace, projectID, user string) (models.Role, error)
	// Authorize allows any member
	Authorize(ctx context.Context, workspace, projectID, user string) (Access, error)
	// RequireAdmin allows members and owners
	RequireAdmin(ctx context.Context, workspace, projectID, user string) (Access, error)
	AddMember(ctx context.Context, workspace, projectID, user string, role models.Role) error
	ListMembers(ctx context.Context, workspace, projectID string) ([]*models.Member, error)
}

type repository interface {
	database.ProjectReader
	database.MemberRepository
}

type service struct {
	repo repository
}

// NewService creates a new session service
func NewService(repo repository) Service {
	return &service{repo: repo}
}

// RoleFor returns the user's role on the project
func (s *service) RoleFor(ctx context.Context, workspace, projectID, user string) (models.Role, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return models.RoleNone, ErrEmptyUser
	}
	if err := s.checkProject(ctx, workspace, projectID); err != nil {
		return models.RoleNone, err
	}

	role, err := s.repo.GetMemberRole(ctx, projectID, user)
	if errors.Is(err, models.ErrNotFound) {
		return models.RoleNone, ErrNotMember
	}
	if err != nil {
		return models.RoleNone, fmt.Errorf("failed to resolve role: %w", err)
	}
	return role, nil
}

// Authorize resolves the caller's access for read-only surfaces
func (s *service) Authorize(ctx context.Context, workspace, projectID, user string) (Access, error) {
	role, err := s.RoleFor(ctx, workspace, projectID, user)
	if err != nil {
		return Access{}, err
	}
	return NewAccess(role), nil
}

// RequireAdmin resolves the caller's access and rejects anyone below AdminRole
func (s *service) RequireAdmin(ctx context.Context, workspace, projectID, user string) (Access, error) {
	access, err := s.Authorize(ctx, workspace, projectID, user)
	if err != nil {
		return Access{}, err
	}
	if !access.CanManageLabels() {
		return access, ErrForbidden
	}
	return access, nil
}

// AddMember grants or changes a user's role
func (s *service) AddMember(ctx context.Context, workspace, projectID, user string, role models.Role) error {
	user = strings.TrimSpace(user)
	if user == "" {
		return ErrEmptyUser
	}
	if !role.Valid() {
		return ErrInvalidRole
	}
	if err := s.checkProject(ctx, workspace, projectID); err != nil {
		return err
	}

	err := s.repo.UpsertMember(ctx, &models.Member{
		WorkspaceSlug: types.NormalizeSlug(workspace),
		ProjectID:     projectID,
		User:          user,
		Role:          role,
	})
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// ListMembers lists the members of a project
func (s *service) ListMembers(ctx context.Context, workspace, projectID string) ([]*models.Member, error) {
	if err := s.checkProject(ctx, workspace, projectID); err != nil {
		return nil, err
	}
	return s.repo.GetMembersByProject(ctx, projectID)
}

func (s *service) checkProject(ctx context.Context, workspace, projectID string) error {
	project, err := s.repo.GetProject(ctx, projectID)
	if errors.Is(err, models.ErrNotFound) {
		return ErrProjectNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get project: %w", err)
	}
	if project.WorkspaceSlug != types.NormalizeSlug(workspace) {
		return ErrProjectNotFound
	}
	return nil
}
