package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for tiempo.
type Config struct {
	DataDir string       `toml:"data_dir"` // holds timer_count.db
	LogDir  string       `toml:"log_dir"`
	Lock    LockConfig   `toml:"lock"`
	Notion  NotionConfig `toml:"notion"`
}

// LockConfig controls the screen-lock watcher.
type LockConfig struct {
	// PollSeconds is the interval between lock-state probes.
	// Zero disables the watcher.
	PollSeconds int `toml:"poll_seconds"`
}

// NotionConfig holds the credentials for the Notion sync.
// The token can also come from the NOTION_TOKEN environment variable,
// which takes precedence over the file.
type NotionConfig struct {
	Token      string `toml:"token,omitempty"`
	DatabaseID string `toml:"database_id,omitempty"`
	UserID     string `toml:"user_id,omitempty"`
}

// NewConfig creates a Config with the provided base directory and defaults.
func NewConfig(baseDir string) *Config {
	return &Config{
		DataDir: baseDir,
		LogDir:  filepath.Join(baseDir, "log"),
		Lock:    LockConfig{PollSeconds: 2},
	}
}

// DatabasePath returns the path of the SQLite file inside the data dir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "timer_count.db")
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the
// provided Config. Refuses to overwrite an existing file.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
