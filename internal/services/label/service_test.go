package label

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/thenoetrevino/hue/internal/database"
	"github.com/thenoetrevino/hue/internal/events"
	"github.com/thenoetrevino/hue/internal/models"
	"github.com/thenoetrevino/hue/internal/testutil"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

// recordingPublisher records every event sent to it
type recordingPublisher struct {
	mu   sync.Mutex
	sent []events.Event
}

func (p *recordingPublisher) SendEvent(e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, e)
	return nil
}

func (p *recordingPublisher) Listen(context.Context, string) (<-chan events.Event, error) {
	return nil, nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sent)
}

func setup(t *testing.T) (Service, *database.Repository, *models.Project, *recordingPublisher) {
	t.Helper()
	repo := testutil.SetupTestRepository(t)
	project := testutil.SeedProject(t, repo)
	pub := &recordingPublisher{}
	return NewService(repo, pub), repo, project, pub
}

func strPtr(s string) *string { return &s }

// ============================================================================
// TEST CASES
// ============================================================================

func TestCreateLabel(t *testing.T) {
	t.Parallel()
	svc, _, project, pub := setup(t)

	result, err := svc.CreateLabel(context.Background(), CreateLabelRequest{
		ProjectID: project.ID,
		Name:      "  Bug ",
		Color:     "#FF5733",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Name != "Bug" {
		t.Errorf("Expected name 'Bug', got '%s'", result.Name)
	}
	if result.Color != "#FF5733" {
		t.Errorf("Expected color '#FF5733', got '%s'", result.Color)
	}
	if result.ProjectID != project.ID {
		t.Errorf("Expected project ID %s, got %s", project.ID, result.ProjectID)
	}
	if result.ID == "" {
		t.Error("Expected label ID to be set")
	}

	if pub.count() != 1 || pub.sent[0].Type != events.EventLabelsChanged || pub.sent[0].ProjectID != project.ID {
		t.Errorf("Expected one labels_changed event, got %+v", pub.sent)
	}
}

func TestCreateLabel_DefaultColor(t *testing.T) {
	t.Parallel()
	svc, _, project, _ := setup(t)

	result, err := svc.CreateLabel(context.Background(), CreateLabelRequest{ProjectID: project.ID, Name: "docs"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Color != DefaultColor {
		t.Errorf("Expected default color, got %s", result.Color)
	}
}

func TestCreateLabel_Validation(t *testing.T) {
	t.Parallel()
	svc, _, project, pub := setup(t)

	tests := []struct {
		name    string
		req     CreateLabelRequest
		wantErr error
	}{
		{"empty name", CreateLabelRequest{ProjectID: project.ID, Name: "", Color: "#FF5733"}, ErrEmptyName},
		{"blank name", CreateLabelRequest{ProjectID: project.ID, Name: "   ", Color: "#FF5733"}, ErrEmptyName},
		{"name too long", CreateLabelRequest{ProjectID: project.ID, Name: strings.Repeat("a", 51), Color: "#FF5733"}, ErrNameTooLong},
		{"missing project", CreateLabelRequest{Name: "Bug", Color: "#FF5733"}, ErrInvalidProjectID},
		{"missing hash", CreateLabelRequest{ProjectID: project.ID, Name: "Bug", Color: "FF5733"}, ErrInvalidColor},
		{"too short", CreateLabelRequest{ProjectID: project.ID, Name: "Bug", Color: "#FF573"}, ErrInvalidColor},
		{"too long", CreateLabelRequest{ProjectID: project.ID, Name: "Bug", Color: "#FF57333"}, ErrInvalidColor},
		{"invalid chars", CreateLabelRequest{ProjectID: project.ID, Name: "Bug", Color: "#GG5733"}, ErrInvalidColor},
		{"missing parent", CreateLabelRequest{ProjectID: project.ID, Name: "Bug", Color: "#FF5733", Parent: "nope"}, ErrParentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateLabel(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if pub.count() != 0 {
		t.Errorf("Expected no events for rejected requests, got %d", pub.count())
	}
}

func TestCreateLabel_NameAtLimit(t *testing.T) {
	t.Parallel()
	svc, _, project, _ := setup(t)

	_, err := svc.CreateLabel(context.Background(), CreateLabelRequest{
		ProjectID: project.ID,
		Name:      strings.Repeat("a", 50),
		Color:     "#FF5733",
	})
	if err != nil {
		t.Errorf("Expected 50 character name to be accepted, got %v", err)
	}
}

func TestCreateLabel_ParentFromOtherProject(t *testing.T) {
	t.Parallel()
	svc, repo, project, _ := setup(t)

	other := testutil.CreateTestProject(t, repo, "acme", "Other")
	foreign := testutil.CreateTestLabel(t, repo, other.ID, "foreign", "#000000", "")

	_, err := svc.CreateLabel(context.Background(), CreateLabelRequest{
		ProjectID: project.ID,
		Name:      "Bug",
		Parent:    foreign.ID,
	})
	if !errors.Is(err, ErrInvalidParent) {
		t.Errorf("Expected ErrInvalidParent, got %v", err)
	}
}

func TestUpdateLabel_PartialFields(t *testing.T) {
	t.Parallel()
	svc, repo, project, pub := setup(t)
	ctx := context.Background()

	parent := testutil.CreateTestLabel(t, repo, project.ID, "area", "#111111", "")
	label := testutil.CreateTestLabel(t, repo, project.ID, "bug", "#FF0000", "")

	updated, err := svc.UpdateLabel(ctx, UpdateLabelRequest{ID: label.ID, Color: strPtr("#00FF00")})
	if err != nil {
		t.Fatalf("UpdateLabel failed: %v", err)
	}
	if updated.Name != "bug" || updated.Color != "#00FF00" {
		t.Errorf("Unexpected label after recolor: %+v", updated)
	}

	updated, err = svc.UpdateLabel(ctx, UpdateLabelRequest{ID: label.ID, Name: strPtr("defect"), Parent: strPtr(parent.ID)})
	if err != nil {
		t.Fatalf("UpdateLabel failed: %v", err)
	}
	if updated.Name != "defect" || updated.Parent != parent.ID || updated.Color != "#00FF00" {
		t.Errorf("Unexpected label after rename/reparent: %+v", updated)
	}

	stored, _ := svc.GetLabel(ctx, label.ID)
	if stored.Parent != parent.ID {
		t.Errorf("Expected stored parent %s, got %s", parent.ID, stored.Parent)
	}

	if _, err := svc.UpdateLabel(ctx, UpdateLabelRequest{ID: label.ID, Parent: strPtr("")}); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}
	stored, _ = svc.GetLabel(ctx, label.ID)
	if stored.Parent != "" {
		t.Errorf("Expected detached label, got parent %s", stored.Parent)
	}

	if pub.count() != 3 {
		t.Errorf("Expected 3 events, got %d", pub.count())
	}
}

func TestUpdateLabel_Errors(t *testing.T) {
	t.Parallel()
	svc, repo, project, _ := setup(t)
	ctx := context.Background()
	label := testutil.CreateTestLabel(t, repo, project.ID, "bug", "#FF0000", "")

	tests := []struct {
		name    string
		req     UpdateLabelRequest
		wantErr error
	}{
		{"missing id", UpdateLabelRequest{}, ErrInvalidLabelID},
		{"unknown label", UpdateLabelRequest{ID: "missing", Name: strPtr("x")}, ErrLabelNotFound},
		{"empty name", UpdateLabelRequest{ID: label.ID, Name: strPtr("")}, ErrEmptyName},
		{"bad color", UpdateLabelRequest{ID: label.ID, Color: strPtr("red")}, ErrInvalidColor},
		{"self parent", UpdateLabelRequest{ID: label.ID, Parent: strPtr(label.ID)}, ErrInvalidParent},
		{"missing parent", UpdateLabelRequest{ID: label.ID, Parent: strPtr("missing")}, ErrParentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateLabel(ctx, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAddLabelsToGroup(t *testing.T) {
	t.Parallel()
	svc, repo, project, pub := setup(t)
	ctx := context.Background()

	parent := testutil.CreateTestLabel(t, repo, project.ID, "area", "#111111", "")
	a := testutil.CreateTestLabel(t, repo, project.ID, "ui", "#222222", "")
	b := testutil.CreateTestLabel(t, repo, project.ID, "api", "#333333", "")

	if err := svc.AddLabelsToGroup(ctx, parent.ID, []string{a.ID, b.ID}); err != nil {
		t.Fatalf("AddLabelsToGroup failed: %v", err)
	}

	labels, _ := svc.GetLabelsByProject(ctx, project.ID)
	for _, l := range labels {
		if l.ID != parent.ID && l.Parent != parent.ID {
			t.Errorf("Label %s not grouped under parent", l.Name)
		}
	}
	if pub.count() != 1 {
		t.Errorf("Expected a single event for the batch, got %d", pub.count())
	}
}

func TestAddLabelsToGroup_Errors(t *testing.T) {
	t.Parallel()
	svc, repo, project, _ := setup(t)
	ctx := context.Background()
	parent := testutil.CreateTestLabel(t, repo, project.ID, "area", "#111111", "")

	tests := []struct {
		name     string
		parentID string
		children []string
		wantErr  error
	}{
		{"missing parent id", "", []string{"x"}, ErrInvalidLabelID},
		{"no children", parent.ID, nil, ErrNoChildren},
		{"self", parent.ID, []string{parent.ID}, ErrInvalidParent},
		{"unknown parent", "missing", []string{"x"}, ErrParentNotFound},
		{"unknown child", parent.ID, []string{"missing"}, ErrLabelNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.AddLabelsToGroup(ctx, tt.parentID, tt.children)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParentCycles(t *testing.T) {
	t.Parallel()

	// Each case starts from the chain root <- mid <- leaf
	tests := []struct {
		name    string
		move    func(svc Service, root, mid, leaf *models.Label) error
		wantErr error
	}{
		{"update root under its child", func(svc Service, root, mid, _ *models.Label) error {
			_, err := svc.UpdateLabel(context.Background(), UpdateLabelRequest{ID: root.ID, Parent: strPtr(mid.ID)})
			return err
		}, ErrInvalidParent},
		{"update root under its grandchild", func(svc Service, root, _, leaf *models.Label) error {
			_, err := svc.UpdateLabel(context.Background(), UpdateLabelRequest{ID: root.ID, Parent: strPtr(leaf.ID)})
			return err
		}, ErrInvalidParent},
		{"group root under its child", func(svc Service, root, mid, _ *models.Label) error {
			return svc.AddLabelsToGroup(context.Background(), mid.ID, []string{root.ID})
		}, ErrInvalidParent},
		{"group root under its grandchild", func(svc Service, root, _, leaf *models.Label) error {
			return svc.AddLabelsToGroup(context.Background(), leaf.ID, []string{root.ID})
		}, ErrInvalidParent},
		{"move leaf up to root", func(svc Service, root, _, leaf *models.Label) error {
			_, err := svc.UpdateLabel(context.Background(), UpdateLabelRequest{ID: leaf.ID, Parent: strPtr(root.ID)})
			return err
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, repo, project, _ := setup(t)
			root := testutil.CreateTestLabel(t, repo, project.ID, "root", "#111111", "")
			mid := testutil.CreateTestLabel(t, repo, project.ID, "mid", "#222222", root.ID)
			leaf := testutil.CreateTestLabel(t, repo, project.ID, "leaf", "#333333", mid.ID)

			err := tt.move(svc, root, mid, leaf)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}

			got, err := svc.GetLabel(context.Background(), root.ID)
			if err != nil {
				t.Fatalf("GetLabel failed: %v", err)
			}
			if got.Parent != "" {
				t.Errorf("Rejected move must leave root top-level, parent = %s", got.Parent)
			}
		})
	}
}

func TestDeleteLabel_DetachesChildren(t *testing.T) {
	t.Parallel()
	svc, repo, project, _ := setup(t)
	ctx := context.Background()

	parent := testutil.CreateTestLabel(t, repo, project.ID, "area", "#111111", "")
	child := testutil.CreateTestLabel(t, repo, project.ID, "ui", "#222222", parent.ID)

	if err := svc.DeleteLabel(ctx, parent.ID); err != nil {
		t.Fatalf("DeleteLabel failed: %v", err)
	}

	got, err := svc.GetLabel(ctx, child.ID)
	if err != nil {
		t.Fatalf("Child should survive: %v", err)
	}
	if got.Parent != "" {
		t.Errorf("Expected child to be detached, parent = %s", got.Parent)
	}

	if err := svc.DeleteLabel(ctx, parent.ID); !errors.Is(err, ErrLabelNotFound) {
		t.Errorf("Expected ErrLabelNotFound, got %v", err)
	}
	if err := svc.DeleteLabel(ctx, ""); !errors.Is(err, ErrInvalidLabelID) {
		t.Errorf("Expected ErrInvalidLabelID, got %v", err)
	}
}

func TestGetLabelsByProject(t *testing.T) {
	t.Parallel()
	svc, repo, project, _ := setup(t)

	testutil.CreateTestLabel(t, repo, project.ID, "b", "#111111", "")
	testutil.CreateTestLabel(t, repo, project.ID, "a", "#111111", "")

	labels, err := svc.GetLabelsByProject(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("GetLabelsByProject failed: %v", err)
	}
	if len(labels) != 2 || labels[0].Name != "b" {
		t.Errorf("Expected labels in creation order, got %d", len(labels))
	}

	if _, err := svc.GetLabelsByProject(context.Background(), ""); !errors.Is(err, ErrInvalidProjectID) {
		t.Errorf("Expected ErrInvalidProjectID, got %v", err)
	}
}

func TestNilPublisher(t *testing.T) {
	t.Parallel()
	repo := testutil.SetupTestRepository(t)
	project := testutil.SeedProject(t, repo)
	svc := NewService(repo, nil)

	if _, err := svc.CreateLabel(context.Background(), CreateLabelRequest{ProjectID: project.ID, Name: "Bug"}); err != nil {
		t.Fatalf("CreateLabel without publisher failed: %v", err)
	}
}
