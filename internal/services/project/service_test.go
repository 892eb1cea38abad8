package project

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/thenoetrevino/hue/internal/models"
	"github.com/thenoetrevino/hue/internal/testutil"
)

func TestCreateWorkspace(t *testing.T) {
	t.Parallel()
	svc := NewService(testutil.SetupTestRepository(t), nil)
	ctx := context.Background()

	ws, err := svc.CreateWorkspace(ctx, CreateWorkspaceRequest{Slug: " Acme ", Name: ""})
	if err != nil {
		t.Fatalf("CreateWorkspace failed: %v", err)
	}
	if ws.Slug != "acme" || ws.Name != "acme" {
		t.Errorf("Expected normalized slug and defaulted name, got %+v", ws)
	}

	if _, err := svc.CreateWorkspace(ctx, CreateWorkspaceRequest{Slug: "acme"}); !errors.Is(err, ErrWorkspaceExists) {
		t.Errorf("Expected ErrWorkspaceExists, got %v", err)
	}

	for _, slug := range []string{"", "-bad", "has space", strings.Repeat("a", 49)} {
		if _, err := svc.CreateWorkspace(ctx, CreateWorkspaceRequest{Slug: slug}); !errors.Is(err, ErrInvalidSlug) {
			t.Errorf("slug %q: expected ErrInvalidSlug, got %v", slug, err)
		}
	}
}

func TestCreateProject(t *testing.T) {
	t.Parallel()
	repo := testutil.SetupTestRepository(t)
	svc := NewService(repo, nil)
	ctx := context.Background()

	testutil.CreateTestWorkspace(t, repo, "acme")

	project, err := svc.CreateProject(ctx, CreateProjectRequest{
		Workspace:   "acme",
		Name:        "Web",
		Description: "frontend",
		Owner:       "ada",
	})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if project.ID == "" || project.WorkspaceSlug != "acme" {
		t.Errorf("Unexpected project: %+v", project)
	}

	role, err := repo.GetMemberRole(ctx, project.ID, "ada")
	if err != nil {
		t.Fatalf("Owner not recorded: %v", err)
	}
	if role != models.RoleOwner {
		t.Errorf("Expected owner role, got %s", role)
	}
}

func TestCreateProject_Validation(t *testing.T) {
	t.Parallel()
	repo := testutil.SetupTestRepository(t)
	svc := NewService(repo, nil)
	testutil.CreateTestWorkspace(t, repo, "acme")

	tests := []struct {
		name    string
		req     CreateProjectRequest
		wantErr error
	}{
		{"empty name", CreateProjectRequest{Workspace: "acme"}, ErrEmptyName},
		{"long name", CreateProjectRequest{Workspace: "acme", Name: strings.Repeat("x", 101)}, ErrNameTooLong},
		{"unknown workspace", CreateProjectRequest{Workspace: "nope", Name: "Web"}, ErrWorkspaceNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProject(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGetProject_ScopedByWorkspace(t *testing.T) {
	t.Parallel()
	repo := testutil.SetupTestRepository(t)
	svc := NewService(repo, nil)
	ctx := context.Background()

	project := testutil.SeedProject(t, repo)
	testutil.CreateTestWorkspace(t, repo, "other")

	got, err := svc.GetProject(ctx, "acme", project.ID)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if got.Name != "Web" {
		t.Errorf("Expected Web, got %s", got.Name)
	}

	if _, err := svc.GetProject(ctx, "other", project.ID); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Expected ErrProjectNotFound through wrong workspace, got %v", err)
	}
	if _, err := svc.GetProject(ctx, "acme", "missing"); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Expected ErrProjectNotFound, got %v", err)
	}
	if _, err := svc.GetProject(ctx, "acme", ""); !errors.Is(err, ErrInvalidProjectID) {
		t.Errorf("Expected ErrInvalidProjectID, got %v", err)
	}
}

func TestListProjects(t *testing.T) {
	t.Parallel()
	repo := testutil.SetupTestRepository(t)
	svc := NewService(repo, nil)
	ctx := context.Background()

	testutil.SeedProject(t, repo)
	testutil.CreateTestProject(t, repo, "acme", "Api")

	projects, err := svc.ListProjects(ctx, "acme")
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(projects) != 2 {
		t.Errorf("Expected 2 projects, got %d", len(projects))
	}

	if _, err := svc.ListProjects(ctx, "nope"); !errors.Is(err, ErrWorkspaceNotFound) {
		t.Errorf("Expected ErrWorkspaceNotFound, got %v", err)
	}
}
