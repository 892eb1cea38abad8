package cli

import (
	"testing"

	"github.com/thenoetrevino/hue/internal/app"
	"github.com/thenoetrevino/hue/internal/config"
	"github.com/thenoetrevino/hue/internal/database"
	"github.com/thenoetrevino/hue/internal/models"
	"github.com/thenoetrevino/hue/internal/testutil"
)

// TestUser is the caller identity of CLI test apps
const TestUser = "owner"

// SetupCLITest creates an in-memory repository and returns both it and an App
// over it. This function is only for CLI tests and is isolated in a separate
// package to avoid import cycles when service tests import testutil.
func SetupCLITest(t *testing.T) (*database.Repository, *app.App) {
	t.Helper()
	repo := testutil.SetupTestRepository(t)

	cfg := config.Default()
	cfg.User = TestUser

	// EventPublisher is nil - event publishing is tested elsewhere
	appInstance := app.New(repo, app.WithConfig(cfg))

	return repo, appInstance
}

// SeedProject wraps testutil.SeedProject for CLI tests.
// Creates workspace "acme" with project "Web" owned by TestUser.
func SeedProject(t *testing.T, repo database.DataStore) *models.Project {
	t.Helper()
	return testutil.SeedProject(t, repo)
}

// CreateTestLabel wraps testutil.CreateTestLabel for CLI tests
func CreateTestLabel(t *testing.T, repo database.DataStore, projectID, name, color, parent string) *models.Label {
	t.Helper()
	return testutil.CreateTestLabel(t, repo, projectID, name, color, parent)
}

// ScopeArgs returns the --workspace and --project flags for project
func ScopeArgs(project *models.Project) []string {
	return []string{"--workspace", project.WorkspaceSlug, "--project", project.ID}
}
