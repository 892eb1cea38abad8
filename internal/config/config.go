package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/hue/internal/user"
)

// Store backends
const (
	BackendSQLite = "sqlite"
	BackendNeo4j  = "neo4j"
)

// Config represents the application configuration
type Config struct {
	Store       StoreConfig  `yaml:"store"`
	Server      ServerConfig `yaml:"server"`
	Client      ClientConfig `yaml:"client"`
	KeyMappings KeyMappings  `yaml:"key_mappings"`
	ColorScheme ColorScheme  `yaml:"theme"`
	LogLevel    string       `yaml:"log_level"`
	// User is the caller identity sent to hued and checked against project membership
	User string `yaml:"user"`
}

// StoreConfig selects and configures the persistence backend
type StoreConfig struct {
	Backend string      `yaml:"backend"` // sqlite (default) or neo4j
	Path    string      `yaml:"path"`    // SQLite file; empty means ~/.hue/hue.db
	Neo4j   Neo4jConfig `yaml:"neo4j"`
}

// Neo4jConfig holds graph store connection settings
type Neo4jConfig struct {
	URI      string `yaml:"uri"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// ServerConfig configures hued
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// ClientConfig configures the remote client used by `hue --remote`
type ClientConfig struct {
	Remote    string        `yaml:"remote"`
	Timeout   time.Duration `yaml:"timeout"`
	CacheSize int           `yaml:"cache_size"` // project details kept in the LRU
}

// Defaults
const (
	DefaultListen    = "127.0.0.1:7420"
	DefaultTimeout   = 10 * time.Second
	DefaultCacheSize = 64
	DefaultLogLevel  = "info"
)

// ErrInvalidConfig wraps config files that cannot be parsed or validated
var ErrInvalidConfig = errors.New("invalid config")

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads the config from fs at the user's config path, applies defaults
// and then HUE_* environment overrides. A missing file is not an error.
func Load(fs afero.Fs) (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		config := Default()
		config.applyEnv()
		return config, nil
	}
	return LoadFile(fs, configPath)
}

// LoadFile reads the config at path. A missing file yields the defaults.
func LoadFile(fs afero.Fs, path string) (*Config, error) {
	var config Config

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, err
	}
	if exists {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfig, path, err)
		}
	}

	config.applyDefaults()
	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save(fs afero.Fs) error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(fs, configPath)
}

// SaveFile writes the config to path, creating its directory
func (c *Config) SaveFile(fs afero.Fs, path string) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return afero.WriteFile(fs, path, data, 0o644)
}

// Validate rejects values the rest of the program cannot act on
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendSQLite:
	case BackendNeo4j:
		if c.Store.Neo4j.URI == "" {
			return fmt.Errorf("store.neo4j.uri is required for the neo4j backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q (must be sqlite or neo4j)", c.Store.Backend)
	}
	if c.Client.Timeout < 0 {
		return fmt.Errorf("client.timeout must not be negative")
	}
	return nil
}

// ConfigPath returns the path Load reads from
func ConfigPath() (string, error) {
	return getConfigPath()
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "hue", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "hue", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Store.Backend == "" {
		c.Store.Backend = BackendSQLite
	}
	if c.Store.Neo4j.User == "" {
		c.Store.Neo4j.User = "neo4j"
	}
	if c.Server.Listen == "" {
		c.Server.Listen = DefaultListen
	}
	if c.Client.Timeout == 0 {
		c.Client.Timeout = DefaultTimeout
	}
	if c.Client.CacheSize <= 0 {
		c.Client.CacheSize = DefaultCacheSize
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.User == "" {
		c.User = user.Default()
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}

// applyEnv overrides file values with HUE_* environment variables
func (c *Config) applyEnv() {
	overrides := []struct {
		env string
		dst *string
	}{
		{"HUE_DB_PATH", &c.Store.Path},
		{"HUE_STORE", &c.Store.Backend},
		{"HUE_NEO4J_URI", &c.Store.Neo4j.URI},
		{"HUE_NEO4J_USER", &c.Store.Neo4j.User},
		{"HUE_NEO4J_PASSWORD", &c.Store.Neo4j.Password},
		{"HUE_LISTEN", &c.Server.Listen},
		{"HUE_USER", &c.User},
		{"HUE_REMOTE", &c.Client.Remote},
		{"HUE_LOG_LEVEL", &c.LogLevel},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}

	if v := os.Getenv("HUE_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Client.CacheSize = n
		}
	}
}
