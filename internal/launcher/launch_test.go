package launcher

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/hue/internal/api"
	"github.com/thenoetrevino/hue/internal/app"
	"github.com/thenoetrevino/hue/internal/config"
	"github.com/thenoetrevino/hue/internal/database"
	"github.com/thenoetrevino/hue/internal/events"
	"github.com/thenoetrevino/hue/internal/models"
	"github.com/thenoetrevino/hue/internal/optimistic"
	labelservice "github.com/thenoetrevino/hue/internal/services/label"
	projectservice "github.com/thenoetrevino/hue/internal/services/project"
	sessionservice "github.com/thenoetrevino/hue/internal/services/session"
	"github.com/thenoetrevino/hue/internal/testutil"
)

func seed(t *testing.T) (*database.Repository, *models.Project) {
	t.Helper()
	repo := testutil.SetupTestRepository(t)
	project := testutil.SeedProject(t, repo)
	testutil.AddTestMember(t, repo, project, "vic", models.RoleViewer)
	testutil.AddTestMember(t, repo, project, "mel", models.RoleMember)
	return repo, project
}

func configFor(user string) *config.Config {
	cfg := config.Default()
	cfg.User = user
	return cfg
}

func scopeOf(p *models.Project) optimistic.Scope {
	return optimistic.Scope{Workspace: p.WorkspaceSlug, ProjectID: p.ID}
}

func TestLocal_Gate(t *testing.T) {
	repo, project := seed(t)
	ctx := context.Background()

	tests := []struct {
		user    string
		wantErr error
	}{
		{"owner", nil},
		{"mel", nil},
		{"vic", sessionservice.ErrForbidden},
		{"stranger", sessionservice.ErrNotMember},
	}

	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			a := app.New(repo, app.WithConfig(configFor(tt.user)))
			screen, err := Local(ctx, a, scopeOf(project))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, screen)
				return
			}
			require.NoError(t, err)
			assert.True(t, screen.Access.CanManageLabels())
			assert.NoError(t, screen.Close())
		})
	}
}

func TestLocal_ListensToBroker(t *testing.T) {
	repo, project := seed(t)
	broker := events.NewBroker()
	t.Cleanup(func() { _ = broker.Close() })

	a := app.New(repo, app.WithConfig(configFor("owner")), app.WithEventPublisher(broker))
	screen, err := Local(context.Background(), a, scopeOf(project))
	require.NoError(t, err)
	defer func() { _ = screen.Close() }()

	assert.Len(t, screen.opts, 1, "expected a live update subscription")
	assert.Len(t, screen.closers, 1)
}

func startServer(t *testing.T, repo *database.Repository) string {
	t.Helper()
	srv := api.NewServer(
		labelservice.NewService(repo, nil),
		projectservice.NewService(repo, nil),
		sessionservice.NewService(repo),
		api.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts.URL
}

func TestRemote_Gate(t *testing.T) {
	repo, project := seed(t)
	url := startServer(t, repo)
	ctx := context.Background()

	_, err := Remote(ctx, configFor("vic"), scopeOf(project), url)
	assert.ErrorIs(t, err, sessionservice.ErrForbidden)

	screen, err := Remote(ctx, configFor("mel"), scopeOf(project), url)
	require.NoError(t, err)
	assert.True(t, screen.Access.IsMember)
	assert.NoError(t, screen.Close())
}

func TestRemoteWriter(t *testing.T) {
	repo, project := seed(t)
	url := startServer(t, repo)
	ctx := context.Background()

	screen, err := Remote(ctx, configFor("owner"), scopeOf(project), url)
	require.NoError(t, err)
	defer func() { _ = screen.Close() }()
	w := screen.writer

	bug, err := w.CreateLabel(ctx, "acme", project.ID, "Bug", "#FF0000", "")
	require.NoError(t, err)
	ui, err := w.CreateLabel(ctx, "acme", project.ID, "UI", "", "")
	require.NoError(t, err)
	assert.Equal(t, labelservice.DefaultColor, ui.Color)

	renamed, err := w.UpdateLabel(ctx, "acme", project.ID, bug.ID, "Defect", "")
	require.NoError(t, err)
	assert.Equal(t, "Defect", renamed.Name)
	assert.Equal(t, "#FF0000", renamed.Color)

	require.NoError(t, w.AddLabelsToGroup(ctx, "acme", project.ID, bug.ID, []string{ui.ID}))
	got, err := repo.GetLabel(ctx, ui.ID)
	require.NoError(t, err)
	assert.Equal(t, bug.ID, got.Parent)
}
