package config

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
)

// clearEnv blanks every override so the host environment cannot leak in
func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{
		"HUE_DB_PATH", "HUE_STORE", "HUE_NEO4J_URI", "HUE_NEO4J_USER", "HUE_NEO4J_PASSWORD",
		"HUE_LISTEN", "HUE_USER", "HUE_REMOTE", "HUE_LOG_LEVEL", "HUE_CACHE_SIZE",
	} {
		t.Setenv(env, "")
	}
}

func TestDefaultKeyMappings(t *testing.T) {
	defaults := DefaultKeyMappings()

	if defaults.Quit != "q" {
		t.Errorf("Default Quit key = %s, want q", defaults.Quit)
	}
	if defaults.NewLabel != "n" {
		t.Errorf("Default NewLabel key = %s, want n", defaults.NewLabel)
	}
	if defaults.ToggleChild != " " {
		t.Errorf("Default ToggleChild key = %q, want space", defaults.ToggleChild)
	}
}

func TestLoadConfigWithoutFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("USER", "ada")

	cfg, err := Load(afero.NewMemMapFs())
	if err != nil {
		t.Fatalf("Load() without config file failed: %v", err)
	}

	if cfg.Store.Backend != BackendSQLite {
		t.Errorf("Backend = %s, want sqlite", cfg.Store.Backend)
	}
	if cfg.Server.Listen != DefaultListen {
		t.Errorf("Listen = %s, want %s", cfg.Server.Listen, DefaultListen)
	}
	if cfg.Client.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %s, want %s", cfg.Client.Timeout, DefaultTimeout)
	}
	if cfg.User != "ada" {
		t.Errorf("User = %s, want ada from $USER", cfg.User)
	}
	if cfg.ColorScheme.Accent == "" {
		t.Error("Color scheme defaults not applied")
	}
}

func TestLoadConfigWithFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	fs := afero.NewMemMapFs()

	content := `store:
  backend: neo4j
  neo4j:
    uri: neo4j://graph:7687
client:
  timeout: 3s
key_mappings:
  quit: "x"
theme:
  preset: monochrome
user: mia
`
	if err := afero.WriteFile(fs, filepath.Join("/cfg", "hue", "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load() with config file failed: %v", err)
	}

	if cfg.Store.Backend != BackendNeo4j || cfg.Store.Neo4j.URI != "neo4j://graph:7687" {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Store.Neo4j.User != "neo4j" {
		t.Errorf("Neo4j user default not applied: %q", cfg.Store.Neo4j.User)
	}
	if cfg.Client.Timeout != 3*time.Second {
		t.Errorf("Timeout = %s, want 3s", cfg.Client.Timeout)
	}
	if cfg.KeyMappings.Quit != "x" {
		t.Errorf("Loaded Quit key = %s, want x", cfg.KeyMappings.Quit)
	}
	// Unspecified values should use defaults
	if cfg.KeyMappings.EditLabel != "e" {
		t.Errorf("Loaded EditLabel key = %s, want e (default)", cfg.KeyMappings.EditLabel)
	}
	if cfg.ColorScheme.Accent != "#FFFFFF" {
		t.Errorf("Monochrome preset not applied, accent = %s", cfg.ColorScheme.Accent)
	}
	if cfg.User != "mia" {
		t.Errorf("User = %s, want mia", cfg.User)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("HUE_DB_PATH", "/tmp/hue.db")
	t.Setenv("HUE_LISTEN", ":9000")
	t.Setenv("HUE_USER", "ops")
	t.Setenv("HUE_CACHE_SIZE", "8")

	cfg, err := Load(afero.NewMemMapFs())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Store.Path != "/tmp/hue.db" {
		t.Errorf("Store.Path = %s", cfg.Store.Path)
	}
	if cfg.Server.Listen != ":9000" {
		t.Errorf("Listen = %s", cfg.Server.Listen)
	}
	if cfg.User != "ops" {
		t.Errorf("User = %s", cfg.User)
	}
	if cfg.Client.CacheSize != 8 {
		t.Errorf("CacheSize = %d", cfg.Client.CacheSize)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	clearEnv(t)
	fs := afero.NewMemMapFs()

	tests := []struct {
		name    string
		content string
	}{
		{"unknown backend", "store:\n  backend: postgres\n"},
		{"neo4j without uri", "store:\n  backend: neo4j\n"},
		{"bad yaml", "store: [\n"},
	}
	for _, tt := range tests {
		path := filepath.Join("/cfg", tt.name+".yaml")
		if err := afero.WriteFile(fs, path, []byte(tt.content), 0o644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}
		_, err := LoadFile(fs, path)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", tt.name, err)
		}
	}
}

func TestSaveConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	fs := afero.NewMemMapFs()

	cfg := Default()
	cfg.KeyMappings.Quit = "x"
	cfg.Client.Remote = "http://hue.internal:7420"

	if err := cfg.Save(fs); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	exists, err := afero.Exists(fs, "/cfg/hue/config.yaml")
	if err != nil || !exists {
		t.Fatalf("Config file not created: %v", err)
	}

	cfg2, err := Load(fs)
	if err != nil {
		t.Fatalf("Load() after Save() failed: %v", err)
	}
	if cfg2.KeyMappings.Quit != "x" {
		t.Errorf("Reloaded Quit key = %s, want x", cfg2.KeyMappings.Quit)
	}
	if cfg2.Client.Remote != "http://hue.internal:7420" {
		t.Errorf("Reloaded Remote = %s", cfg2.Client.Remote)
	}
	if cfg2.Client.Timeout != DefaultTimeout {
		t.Errorf("Reloaded Timeout = %s", cfg2.Client.Timeout)
	}
}
