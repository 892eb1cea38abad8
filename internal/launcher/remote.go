package launcher

import (
	"context"

	"github.com/thenoetrevino/hue/internal/api"
	"github.com/thenoetrevino/hue/internal/client"
	"github.com/thenoetrevino/hue/internal/models"
	"github.com/thenoetrevino/hue/internal/tui/labels"
)

// remoteWriter saves labels through hued
type remoteWriter struct {
	c *client.Client
}

var _ labels.Writer = remoteWriter{}

func (w remoteWriter) CreateLabel(ctx context.Context, workspace, projectID, name, color, parent string) (*models.Label, error) {
	return w.c.CreateLabel(ctx, workspace, projectID, api.CreateLabelBody{
		Name:   name,
		Color:  color,
		Parent: parent,
	})
}

func (w remoteWriter) UpdateLabel(ctx context.Context, workspace, projectID, labelID, name, color string) (*models.Label, error) {
	body := api.UpdateLabelBody{Name: &name}
	if color != "" {
		body.Color = &color
	}
	return w.c.UpdateLabel(ctx, workspace, projectID, labelID, body)
}

func (w remoteWriter) AddLabelsToGroup(ctx context.Context, workspace, projectID, parentID string, childIDs []string) error {
	return w.c.AddLabelsToGroup(ctx, workspace, projectID, parentID, childIDs)
}
