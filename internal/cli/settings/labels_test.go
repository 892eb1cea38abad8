package settings

import (
	"errors"
	"strings"
	"testing"

	"github.com/thenoetrevino/hue/internal/cli"
	"github.com/thenoetrevino/hue/internal/models"
	sessionservice "github.com/thenoetrevino/hue/internal/services/session"
	"github.com/thenoetrevino/hue/internal/testutil"
	cliutil "github.com/thenoetrevino/hue/internal/testutil/cli"
)

func TestSettingsLabels_CheckOwner(t *testing.T) {
	repo, app := cliutil.SetupCLITest(t)
	project := cliutil.SeedProject(t, repo)

	args := append([]string{"labels", "--check"}, cliutil.ScopeArgs(project)...)
	output, err := cliutil.ExecuteCLICommand(t, app, SettingsCmd(), args)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.Contains(output, "You can manage labels") || !strings.Contains(output, "owner") {
		t.Errorf("Unexpected output %q", output)
	}
}

func TestSettingsLabels_ViewerRejected(t *testing.T) {
	repo, app := cliutil.SetupCLITest(t)
	testutil.CreateTestWorkspace(t, repo, "acme")
	project := testutil.CreateTestProject(t, repo, "acme", "Web")
	testutil.AddTestMember(t, repo, project, cliutil.TestUser, models.RoleViewer)

	args := append([]string{"labels", "--check"}, cliutil.ScopeArgs(project)...)
	_, err := cliutil.ExecuteCLICommand(t, app, SettingsCmd(), args)
	if !errors.Is(err, sessionservice.ErrForbidden) {
		t.Errorf("Expected ErrForbidden, got %v", err)
	}
}

func TestSettingsLabels_MissingScope(t *testing.T) {
	t.Setenv(cli.WorkspaceEnv, "")
	t.Setenv(cli.ProjectEnv, "")
	_, app := cliutil.SetupCLITest(t)

	_, err := cliutil.ExecuteCLICommand(t, app, SettingsCmd(), []string{"labels", "--check"})
	if cli.ExitCodeFor(err) != cli.ExitUsage {
		t.Errorf("Expected usage error, got %v", err)
	}
}
