package label

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/thenoetrevino/hue/internal/database"
	"github.com/thenoetrevino/hue/internal/events"
	"github.com/thenoetrevino/hue/internal/models"
)

// Hex color regex pattern
var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// DefaultColor is used when a label is created without a color
const DefaultColor = "#7D56F4"

const maxNameLength = 50

// Service defines all label-related business operations
type Service interface {
	// Read operations
	GetLabelsByProject(ctx context.Context, projectID string) ([]*models.Label, error)
	GetLabel(ctx context.Context, id string) (*models.Label, error)

	// Write operations
	CreateLabel(ctx context.Context, req CreateLabelRequest) (*models.Label, error)
	UpdateLabel(ctx context.Context, req UpdateLabelRequest) (*models.Label, error)
	AddLabelsToGroup(ctx context.Context, parentID string, childIDs []string) error
	DeleteLabel(ctx context.Context, id string) error
}

// CreateLabelRequest encapsulates data for creating a label
type CreateLabelRequest struct {
	ProjectID string
	Name      string
	Color     string // Hex color like #FF5733, DefaultColor when empty
	Parent    string // Optional parent label ID
}

// UpdateLabelRequest encapsulates data for updating a label.
// Nil fields are left unchanged; a Parent of "" detaches the label.
type UpdateLabelRequest struct {
	ID     string
	Name   *string
	Color  *string
	Parent *string
}

// service implements Service interface
type service struct {
	repo        database.LabelRepository
	eventClient events.EventPublisher
}

// NewService creates a new label service
func NewService(repo database.LabelRepository, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// GetLabelsByProject retrieves all labels for a project
func (s *service) GetLabelsByProject(ctx context.Context, projectID string) ([]*models.Label, error) {
	if projectID == "" {
		return nil, ErrInvalidProjectID
	}
	return s.repo.GetLabelsByProject(ctx, projectID)
}

// GetLabel retrieves a single label
func (s *service) GetLabel(ctx context.Context, id string) (*models.Label, error) {
	if id == "" {
		return nil, ErrInvalidLabelID
	}
	label, err := s.repo.GetLabel(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, ErrLabelNotFound)
	}
	return label, nil
}

// CreateLabel creates a new label with validation
func (s *service) CreateLabel(ctx context.Context, req CreateLabelRequest) (*models.Label, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Color == "" {
		req.Color = DefaultColor
	}
	if err := s.validateCreateLabel(req); err != nil {
		return nil, err
	}

	if req.Parent != "" {
		if err := s.checkParent(ctx, req.ProjectID, "", req.Parent); err != nil {
			return nil, err
		}
	}

	label, err := s.repo.CreateLabel(ctx, req.ProjectID, req.Name, req.Color, req.Parent)
	if err != nil {
		return nil, fmt.Errorf("failed to create label: %w", mapRepoError(err, ErrParentNotFound))
	}

	s.publishLabelEvent(label.ProjectID)

	return label, nil
}

// UpdateLabel renames, recolors or reparents a label
func (s *service) UpdateLabel(ctx context.Context, req UpdateLabelRequest) (*models.Label, error) {
	if req.ID == "" {
		return nil, ErrInvalidLabelID
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
		if err := validateName(trimmed); err != nil {
			return nil, err
		}
	}
	if req.Color != nil && !hexColorRegex.MatchString(*req.Color) {
		return nil, ErrInvalidColor
	}

	existing, err := s.GetLabel(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	updated := existing.Clone()
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Color != nil {
		updated.Color = *req.Color
	}
	if req.Parent != nil {
		updated.Parent = *req.Parent
		if updated.Parent != "" {
			if err := s.checkParent(ctx, existing.ProjectID, existing.ID, updated.Parent); err != nil {
				return nil, err
			}
		}
	}

	if err := s.repo.UpdateLabel(ctx, updated.ID, updated.Name, updated.Color, updated.Parent); err != nil {
		return nil, fmt.Errorf("failed to update label: %w", mapRepoError(err, ErrLabelNotFound))
	}

	s.publishLabelEvent(existing.ProjectID)

	return updated, nil
}

// AddLabelsToGroup makes every child a direct child of parentID
func (s *service) AddLabelsToGroup(ctx context.Context, parentID string, childIDs []string) error {
	if parentID == "" {
		return ErrInvalidLabelID
	}
	if len(childIDs) == 0 {
		return ErrNoChildren
	}
	for _, id := range childIDs {
		if id == "" {
			return ErrInvalidLabelID
		}
		if id == parentID {
			return ErrInvalidParent
		}
	}

	parent, err := s.repo.GetLabel(ctx, parentID)
	if err != nil {
		return mapRepoError(err, ErrParentNotFound)
	}

	if err := s.repo.SetLabelParent(ctx, parentID, childIDs); err != nil {
		return fmt.Errorf("failed to group labels: %w", mapRepoError(err, ErrLabelNotFound))
	}

	s.publishLabelEvent(parent.ProjectID)

	return nil
}

// DeleteLabel deletes a label; its children become top-level labels
func (s *service) DeleteLabel(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidLabelID
	}

	// Get label to find project ID for event
	existing, err := s.GetLabel(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteLabel(ctx, id); err != nil {
		return fmt.Errorf("failed to delete label: %w", mapRepoError(err, ErrLabelNotFound))
	}

	s.publishLabelEvent(existing.ProjectID)

	return nil
}

// checkParent verifies parentID is a label of projectID other than selfID
func (s *service) checkParent(ctx context.Context, projectID, selfID, parentID string) error {
	if parentID == selfID {
		return ErrInvalidParent
	}
	parent, err := s.repo.GetLabel(ctx, parentID)
	if err != nil {
		return mapRepoError(err, ErrParentNotFound)
	}
	if parent.ProjectID != projectID {
		return ErrInvalidParent
	}
	return nil
}

// validateCreateLabel validates a CreateLabelRequest
func (s *service) validateCreateLabel(req CreateLabelRequest) error {
	if req.ProjectID == "" {
		return ErrInvalidProjectID
	}
	if err := validateName(req.Name); err != nil {
		return err
	}
	if !hexColorRegex.MatchString(req.Color) {
		return ErrInvalidColor
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > maxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// mapRepoError turns store sentinels into service errors
func mapRepoError(err error, notFound error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return notFound
	case errors.Is(err, models.ErrInvalidParent):
		return ErrInvalidParent
	default:
		return err
	}
}

// publishLabelEvent notifies listeners that the project's labels changed
func (s *service) publishLabelEvent(projectID string) {
	if s.eventClient == nil {
		return
	}
	// A lost event only delays a refetch; PublishWithRetry logs the failure
	_ = events.PublishWithRetry(s.eventClient, events.Event{
		Type:      events.EventLabelsChanged,
		ProjectID: projectID,
	}, 3)
}
