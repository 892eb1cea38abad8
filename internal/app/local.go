package app

import (
	"context"

	"github.com/thenoetrevino/hue/internal/models"
	"github.com/thenoetrevino/hue/internal/optimistic"
	labelservice "github.com/thenoetrevino/hue/internal/services/label"
	projectservice "github.com/thenoetrevino/hue/internal/services/project"
)

// Local adapts the services to the coordinator's store contracts.
// Every call is scoped by workspace and project like the HTTP API.
type Local struct {
	labels   labelservice.Service
	projects projectservice.Service
}

var (
	_ optimistic.LabelStore    = (*Local)(nil)
	_ optimistic.ProjectLookup = (*Local)(nil)
)

// GetProject returns the project if it belongs to workspace
func (l *Local) GetProject(ctx context.Context, workspace, projectID string) (*models.Project, error) {
	return l.projects.GetProject(ctx, workspace, projectID)
}

// ListLabels lists a project's labels in store order
func (l *Local) ListLabels(ctx context.Context, workspace, projectID string) ([]*models.Label, error) {
	if _, err := l.projects.GetProject(ctx, workspace, projectID); err != nil {
		return nil, err
	}
	return l.labels.GetLabelsByProject(ctx, projectID)
}

// DeleteLabel deletes labelID, which must belong to the scoped project
func (l *Local) DeleteLabel(ctx context.Context, workspace, projectID, labelID string) error {
	if _, err := l.scopedLabel(ctx, workspace, projectID, labelID); err != nil {
		return err
	}
	return l.labels.DeleteLabel(ctx, labelID)
}

// CreateLabel creates a label in the scoped project. An empty color picks
// the default.
func (l *Local) CreateLabel(ctx context.Context, workspace, projectID, name, color, parent string) (*models.Label, error) {
	if _, err := l.projects.GetProject(ctx, workspace, projectID); err != nil {
		return nil, err
	}
	return l.labels.CreateLabel(ctx, labelservice.CreateLabelRequest{
		ProjectID: projectID,
		Name:      name,
		Color:     color,
		Parent:    parent,
	})
}

// UpdateLabel renames and recolors a label of the scoped project. An empty
// color keeps the current one.
func (l *Local) UpdateLabel(ctx context.Context, workspace, projectID, labelID, name, color string) (*models.Label, error) {
	if _, err := l.scopedLabel(ctx, workspace, projectID, labelID); err != nil {
		return nil, err
	}
	req := labelservice.UpdateLabelRequest{ID: labelID, Name: &name}
	if color != "" {
		req.Color = &color
	}
	return l.labels.UpdateLabel(ctx, req)
}

// AddLabelsToGroup moves childIDs under parentID
func (l *Local) AddLabelsToGroup(ctx context.Context, workspace, projectID, parentID string, childIDs []string) error {
	if _, err := l.scopedLabel(ctx, workspace, projectID, parentID); err != nil {
		return err
	}
	return l.labels.AddLabelsToGroup(ctx, parentID, childIDs)
}

func (l *Local) scopedLabel(ctx context.Context, workspace, projectID, labelID string) (*models.Label, error) {
	if _, err := l.projects.GetProject(ctx, workspace, projectID); err != nil {
		return nil, err
	}
	label, err := l.labels.GetLabel(ctx, labelID)
	if err != nil {
		return nil, err
	}
	if label.ProjectID != projectID {
		return nil, labelservice.ErrLabelNotFound
	}
	return label, nil
}
