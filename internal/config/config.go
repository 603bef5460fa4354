package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gap "github.com/muesli/go-app-paths"
	yaml "gopkg.in/yaml.v3"

	"github.com/nikbrunner/reservoir/internal/search"
	"github.com/nikbrunner/reservoir/internal/storage"
)

// FileName is the config file inside the per-user config directory.
const FileName = "config.yml"

// Config holds application configuration.
type Config struct {
	Backend       string        `yaml:"backend"`        // "json" | "sqlite"
	DataDir       string        `yaml:"data_dir"`       // empty = per-user data dir
	ExportDir     string        `yaml:"export_dir"`     // empty = downloads dir
	LogLevel      string        `yaml:"log_level"`      // "debug" | "info" | "warn" | "error"
	LogPretty     bool          `yaml:"log_pretty"`     // console encoder instead of JSON
	NoticeTimeout time.Duration `yaml:"notice_timeout"` // how long transient notices stay up
	DefaultSort   string        `yaml:"default_sort"`   // relevance | newest | oldest
	DefaultFilter string        `yaml:"default_filter"` // all | title | link | tags
	Check         CheckConfig   `yaml:"check"`
}

// CheckConfig configures the dead link checker.
type CheckConfig struct {
	Concurrency    int           `yaml:"concurrency"`
	Timeout        time.Duration `yaml:"timeout"`
	ExcludeDomains []string      `yaml:"exclude_domains"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Backend:       storage.BackendJSON,
		LogLevel:      "info",
		NoticeTimeout: 3 * time.Second,
		DefaultSort:   search.SortRelevance.String(),
		DefaultFilter: search.FieldAll.String(),
		Check: CheckConfig{
			Concurrency:    10,
			Timeout:        10 * time.Second,
			ExcludeDomains: []string{"github.com", "gitlab.com"},
		},
	}
}

// DefaultPath returns the default config path, e.g. ~/.config/reservoir/config.yml.
func DefaultPath() (string, error) {
	scope := gap.NewScope(gap.User, storage.AppName)
	path, err := scope.ConfigPath(FileName)
	if err != nil {
		return "", fmt.Errorf("getting config path: %w", err)
	}
	return path, nil
}

// Load reads config from the YAML file.
// Creates the file with defaults if it doesn't exist. Environment
// variables override file values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Non-fatal: keep defaults even if the file cannot be written
		_ = Save(path, &cfg)
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to the YAML file.
// Creates the directory if it doesn't exist.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// applyDefaults fills fields left empty in the file.
func (c *Config) applyDefaults() {
	defaults := Default()
	if c.Backend == "" {
		c.Backend = defaults.Backend
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.NoticeTimeout <= 0 {
		c.NoticeTimeout = defaults.NoticeTimeout
	}
	if c.DefaultSort == "" {
		c.DefaultSort = defaults.DefaultSort
	}
	if c.DefaultFilter == "" {
		c.DefaultFilter = defaults.DefaultFilter
	}
	if c.Check.Concurrency <= 0 {
		c.Check.Concurrency = defaults.Check.Concurrency
	}
	if c.Check.Timeout <= 0 {
		c.Check.Timeout = defaults.Check.Timeout
	}
	if c.Check.ExcludeDomains == nil {
		c.Check.ExcludeDomains = defaults.Check.ExcludeDomains
	}
}

func (c *Config) applyEnv() {
	c.DataDir = getenv("RESERVOIR_DATA_DIR", c.DataDir)
	c.ExportDir = getenv("RESERVOIR_EXPORT_DIR", c.ExportDir)
	c.LogLevel = getenv("RESERVOIR_LOG_LEVEL", c.LogLevel)
	c.Backend = getenv("RESERVOIR_BACKEND", c.Backend)
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.Backend {
	case storage.BackendJSON, storage.BackendSQLite:
	default:
		return fmt.Errorf("invalid backend %q", c.Backend)
	}
	if _, err := search.ParseSortMode(c.DefaultSort); err != nil {
		return err
	}
	if _, err := search.ParseFilterField(c.DefaultFilter); err != nil {
		return err
	}
	return nil
}

// Query returns the initial list query from the defaults.
// Validate must have succeeded.
func (c *Config) Query() search.Query {
	sort, _ := search.ParseSortMode(c.DefaultSort)
	field, _ := search.ParseFilterField(c.DefaultFilter)
	return search.Query{Field: field, Sort: sort}
}

// ResolveDataDir returns DataDir, or the per-user data directory.
func (c *Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	return storage.DefaultDataDir()
}

// ResolveExportDir returns ExportDir, or the downloads directory.
func (c *Config) ResolveExportDir() (string, error) {
	if c.ExportDir != "" {
		return c.ExportDir, nil
	}
	return storage.DefaultDownloadsDir()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
