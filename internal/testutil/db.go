package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/thenoetrevino/hue/internal/database"
	"github.com/thenoetrevino/hue/internal/models"
)

// SetupTestDB creates an in-memory database with full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.InitDB(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// SetupTestRepository returns a repository over a fresh in-memory database
func SetupTestRepository(t *testing.T) *database.Repository {
	t.Helper()
	return database.NewRepository(SetupTestDB(t))
}

// CreateTestWorkspace creates a workspace with the given slug
func CreateTestWorkspace(t *testing.T, repo database.DataStore, slug string) *models.Workspace {
	t.Helper()
	ws, err := repo.CreateWorkspace(context.Background(), slug, "Workspace "+slug)
	if err != nil {
		t.Fatalf("Failed to create test workspace: %v", err)
	}
	return ws
}

// CreateTestProject creates a project in an existing workspace
func CreateTestProject(t *testing.T, repo database.DataStore, workspace, name string) *models.Project {
	t.Helper()
	project, err := repo.CreateProject(context.Background(), workspace, name, "Test Description")
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	return project
}

// CreateTestLabel creates a label, optionally under parent
func CreateTestLabel(t *testing.T, repo database.DataStore, projectID, name, color, parent string) *models.Label {
	t.Helper()
	label, err := repo.CreateLabel(context.Background(), projectID, name, color, parent)
	if err != nil {
		t.Fatalf("Failed to create test label: %v", err)
	}
	return label
}

// AddTestMember grants user a role on a project
func AddTestMember(t *testing.T, repo database.DataStore, project *models.Project, user string, role models.Role) {
	t.Helper()
	err := repo.UpsertMember(context.Background(), &models.Member{
		WorkspaceSlug: project.WorkspaceSlug,
		ProjectID:     project.ID,
		User:          user,
		Role:          role,
	})
	if err != nil {
		t.Fatalf("Failed to add test member: %v", err)
	}
}

// SeedProject creates workspace "acme" with project "Web" owned by "owner"
func SeedProject(t *testing.T, repo database.DataStore) *models.Project {
	t.Helper()
	CreateTestWorkspace(t, repo, "acme")
	project := CreateTestProject(t, repo, "acme", "Web")
	AddTestMember(t, repo, project, "owner", models.RoleOwner)
	return project
}
