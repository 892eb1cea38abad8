package project

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/thenoetrevino/hue/internal/database"
	"github.com/thenoetrevino/hue/internal/events"
	"github.com/thenoetrevino/hue/internal/models"
	"github.com/thenoetrevino/hue/internal/types"
)

// Service defines all project- and workspace-related business operations
type Service interface {
	// Read operations
	GetProject(ctx context.Context, workspace, projectID string) (*models.Project, error)
	ListProjects(ctx context.Context, workspace string) ([]*models.Project, error)
	GetWorkspace(ctx context.Context, slug string) (*models.Workspace, error)

	// Write operations
	CreateWorkspace(ctx context.Context, req CreateWorkspaceRequest) (*models.Workspace, error)
	CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error)
}

// CreateWorkspaceRequest encapsulates data for creating a workspace
type CreateWorkspaceRequest struct {
	Slug string
	Name string // Defaults to the slug
}

// CreateProjectRequest encapsulates data for creating a project
type CreateProjectRequest struct {
	Workspace   string
	Name        string
	Description string
	Owner       string // Optional user granted RoleOwner on the new project
}

// repository defines the data access methods needed by the project service
type repository interface {
	database.WorkspaceRepository
	database.ProjectReader
	database.ProjectWriter
	UpsertMember(ctx context.Context, member *models.Member) error
}

// service implements Service interface with private repository
type service struct {
	repo        repository
	eventClient events.EventPublisher
}

// NewService creates a new project service
func NewService(repo repository, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// GetProject retrieves a project, which must belong to workspace
func (s *service) GetProject(ctx context.Context, workspace, projectID string) (*models.Project, error) {
	if projectID == "" {
		return nil, ErrInvalidProjectID
	}
	project, err := s.repo.GetProject(ctx, projectID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	// A project addressed through the wrong workspace does not exist there
	if project.WorkspaceSlug != types.NormalizeSlug(workspace) {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

// ListProjects lists the projects of a workspace
func (s *service) ListProjects(ctx context.Context, workspace string) ([]*models.Project, error) {
	ws, err := s.GetWorkspace(ctx, workspace)
	if err != nil {
		return nil, err
	}
	return s.repo.GetProjectsByWorkspace(ctx, ws.Slug)
}

// GetWorkspace retrieves a workspace by slug
func (s *service) GetWorkspace(ctx context.Context, slug string) (*models.Workspace, error) {
	slug = types.NormalizeSlug(slug)
	if !types.IsValidSlug(slug) {
		return nil, ErrInvalidSlug
	}
	ws, err := s.repo.GetWorkspace(ctx, slug)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrWorkspaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	return ws, nil
}

// CreateWorkspace creates a new workspace with validation
func (s *service) CreateWorkspace(ctx context.Context, req CreateWorkspaceRequest) (*models.Workspace, error) {
	slug := types.NormalizeSlug(req.Slug)
	if !types.IsValidSlug(slug) {
		return nil, ErrInvalidSlug
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = slug
	}
	if len(name) > 100 {
		return nil, ErrNameTooLong
	}

	ws, err := s.repo.CreateWorkspace(ctx, slug, name)
	if errors.Is(err, models.ErrConflict) {
		return nil, ErrWorkspaceExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return ws, nil
}

// CreateProject creates a new project and optionally grants its owner
func (s *service) CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validateCreateProject(req); err != nil {
		return nil, err
	}

	ws, err := s.GetWorkspace(ctx, req.Workspace)
	if err != nil {
		return nil, err
	}

	project, err := s.repo.CreateProject(ctx, ws.Slug, req.Name, req.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	if owner := strings.TrimSpace(req.Owner); owner != "" {
		err := s.repo.UpsertMember(ctx, &models.Member{
			WorkspaceSlug: ws.Slug,
			ProjectID:     project.ID,
			User:          owner,
			Role:          models.RoleOwner,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to add project owner: %w", err)
		}
	}

	// Publish event after successful commit
	s.publishProjectEvent(project.ID)

	return project, nil
}

// validateCreateProject validates a CreateProjectRequest
func (s *service) validateCreateProject(req CreateProjectRequest) error {
	if req.Name == "" {
		return ErrEmptyName
	}
	if len(req.Name) > 100 {
		return ErrNameTooLong
	}
	return nil
}

// publishProjectEvent publishes a project event
func (s *service) publishProjectEvent(projectID string) {
	if s.eventClient == nil {
		return
	}
	_ = events.PublishWithRetry(s.eventClient, events.Event{
		Type:      events.EventProjectChanged,
		ProjectID: projectID,
	}, 3)
}
