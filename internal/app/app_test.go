package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/thenoetrevino/hue/internal/config"
	"github.com/thenoetrevino/hue/internal/events"
	"github.com/thenoetrevino/hue/internal/optimistic"
	labelservice "github.com/thenoetrevino/hue/internal/services/label"
	projectservice "github.com/thenoetrevino/hue/internal/services/project"
	"github.com/thenoetrevino/hue/internal/testutil"
)

func TestNew(t *testing.T) {
	t.Parallel()
	repo := testutil.SetupTestRepository(t)

	// Create app with no event publisher
	app := New(repo)

	if app == nil {
		t.Fatal("Expected app to be created, got nil")
	}
	if app.LabelService == nil {
		t.Error("Expected LabelService to be initialized")
	}
	if app.ProjectService == nil {
		t.Error("Expected ProjectService to be initialized")
	}
	if app.SessionService == nil {
		t.Error("Expected SessionService to be initialized")
	}
	if app.Config == nil || app.Config.Store.Backend != config.BackendSQLite {
		t.Error("Expected default config")
	}
	if app.Events() != nil {
		t.Error("Expected no event publisher")
	}
}

func TestClose_RunsClosersInReverse(t *testing.T) {
	t.Parallel()
	var order []int
	boom := errors.New("boom")

	app := New(testutil.SetupTestRepository(t),
		WithCloser(func() error { order = append(order, 1); return nil }),
		WithCloser(func() error { order = append(order, 2); return boom }),
	)

	if err := app.Close(); !errors.Is(err, boom) {
		t.Errorf("Expected joined closer error, got %v", err)
	}
	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Errorf("Closers ran in order %v, want [2 1]", order)
	}
	if err := app.Close(); err != nil {
		t.Errorf("Second Close should be a no-op, got %v", err)
	}
}

func TestOpen_SQLite(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.Store.Path = filepath.Join(t.TempDir(), "hue.db")

	app, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = app.Close() }()

	if _, ok := app.Events().(*events.Broker); !ok {
		t.Errorf("Expected a broker, got %T", app.Events())
	}
	if _, err := app.ProjectService.CreateWorkspace(context.Background(), projectservice.CreateWorkspaceRequest{Slug: "acme"}); err != nil {
		t.Fatalf("CreateWorkspace through opened app failed: %v", err)
	}
}

func TestOpenStore_UnknownBackend(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.Store.Backend = "postgres"

	if _, _, err := OpenStore(context.Background(), cfg); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

func TestLocal_ScopesByWorkspaceAndProject(t *testing.T) {
	t.Parallel()
	repo := testutil.SetupTestRepository(t)
	project := testutil.SeedProject(t, repo)
	other := testutil.CreateTestProject(t, repo, "acme", "Api")
	bug := testutil.CreateTestLabel(t, repo, project.ID, "Bug", "#FF0000", "")
	foreign := testutil.CreateTestLabel(t, repo, other.ID, "Ops", "#00FF00", "")
	ctx := context.Background()

	local := New(repo).Local()

	labels, err := local.ListLabels(ctx, "acme", project.ID)
	if err != nil {
		t.Fatalf("ListLabels failed: %v", err)
	}
	if len(labels) != 1 || labels[0].ID != bug.ID {
		t.Errorf("Expected only Bug, got %d labels", len(labels))
	}

	if _, err := local.ListLabels(ctx, "other", project.ID); !errors.Is(err, projectservice.ErrProjectNotFound) {
		t.Errorf("Expected ErrProjectNotFound through wrong workspace, got %v", err)
	}

	if err := local.DeleteLabel(ctx, "acme", project.ID, foreign.ID); !errors.Is(err, labelservice.ErrLabelNotFound) {
		t.Errorf("Expected ErrLabelNotFound for label of another project, got %v", err)
	}
	if err := local.DeleteLabel(ctx, "acme", project.ID, bug.ID); err != nil {
		t.Fatalf("DeleteLabel failed: %v", err)
	}
}

func TestLocal_DrivesCoordinator(t *testing.T) {
	t.Parallel()
	repo := testutil.SetupTestRepository(t)
	project := testutil.SeedProject(t, repo)
	bug := testutil.CreateTestLabel(t, repo, project.ID, "Bug", "#FF0000", "")
	testutil.CreateTestLabel(t, repo, project.ID, "UI", "#00FF00", bug.ID)
	ctx := context.Background()

	local := New(repo).Local()
	coord := optimistic.NewCoordinator(optimistic.Scope{Workspace: "acme", ProjectID: project.ID}, local, local)
	defer func() { _ = coord.Close() }()

	if err := coord.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	pending, err := coord.DeleteLabel(ctx, bug.ID)
	if err != nil {
		t.Fatalf("DeleteLabel failed: %v", err)
	}
	if err := pending.Wait(ctx); err != nil {
		t.Fatalf("Remote delete failed: %v", err)
	}

	labels, err := repo.GetLabelsByProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetLabelsByProject failed: %v", err)
	}
	if len(labels) != 1 || labels[0].Parent != "" {
		t.Errorf("Expected the detached child to remain, got %+v", labels)
	}
}

func TestLocal_Writes(t *testing.T) {
	t.Parallel()
	repo := testutil.SetupTestRepository(t)
	project := testutil.SeedProject(t, repo)
	other := testutil.CreateTestProject(t, repo, "acme", "Api")
	foreign := testutil.CreateTestLabel(t, repo, other.ID, "Ops", "#00FF00", "")
	ctx := context.Background()

	local := New(repo).Local()

	bug, err := local.CreateLabel(ctx, "acme", project.ID, "Bug", "", "")
	if err != nil {
		t.Fatalf("CreateLabel failed: %v", err)
	}
	if bug.Color != labelservice.DefaultColor {
		t.Errorf("Expected default color, got %s", bug.Color)
	}
	ui, err := local.CreateLabel(ctx, "acme", project.ID, "UI", "#00FF00", "")
	if err != nil {
		t.Fatalf("CreateLabel failed: %v", err)
	}

	renamed, err := local.UpdateLabel(ctx, "acme", project.ID, bug.ID, "Defect", "")
	if err != nil {
		t.Fatalf("UpdateLabel failed: %v", err)
	}
	if renamed.Name != "Defect" || renamed.Color != labelservice.DefaultColor {
		t.Errorf("Expected rename keeping the color, got %+v", renamed)
	}

	if err := local.AddLabelsToGroup(ctx, "acme", project.ID, bug.ID, []string{ui.ID}); err != nil {
		t.Fatalf("AddLabelsToGroup failed: %v", err)
	}
	got, err := repo.GetLabel(ctx, ui.ID)
	if err != nil {
		t.Fatalf("GetLabel failed: %v", err)
	}
	if got.Parent != bug.ID {
		t.Errorf("Expected UI under Bug, got parent %q", got.Parent)
	}

	if _, err := local.UpdateLabel(ctx, "acme", project.ID, foreign.ID, "x", ""); !errors.Is(err, labelservice.ErrLabelNotFound) {
		t.Errorf("Expected ErrLabelNotFound for label of another project, got %v", err)
	}
	if _, err := local.CreateLabel(ctx, "other", project.ID, "x", "", ""); !errors.Is(err, projectservice.ErrProjectNotFound) {
		t.Errorf("Expected ErrProjectNotFound through wrong workspace, got %v", err)
	}
}
