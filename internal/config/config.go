// Package config resolves bubblesea settings from defaults, an optional
// YAML file and BUBBLESEA_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store kinds
const (
	StoreSQLite = "sqlite"
	StoreDir    = "dir"
	StoreRemote = "remote"
)

const (
	DefaultDir    = "~/Documents/bubbles"
	DefaultRemote = "http://127.0.0.1:4000"
	DefaultRoot   = "0x0"
	DefaultAddr   = "127.0.0.1:4000"
)

// Config holds every setting shared by the binaries
type Config struct {
	Store  string       `yaml:"store"`
	DB     string       `yaml:"db"`
	Dir    string       `yaml:"dir"`
	Remote string       `yaml:"remote"`
	Root   string       `yaml:"root"`
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
}

// LogConfig selects the logger
type LogConfig struct {
	Level       string `yaml:"level"`
	Environment string `yaml:"environment"`
	File        string `yaml:"file"`
}

// ServerConfig configures bubblesea-server
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	Static      string   `yaml:"static"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// Default returns the settings used when nothing else is given
func Default() *Config {
	return &Config{
		Store:  StoreSQLite,
		DB:     DefaultDatabasePath(),
		Dir:    DefaultDir,
		Remote: DefaultRemote,
		Root:   DefaultRoot,
		Log: LogConfig{
			Level:       "info",
			Environment: "development",
		},
		Server: ServerConfig{
			Addr: DefaultAddr,
		},
	}
}

// DefaultDatabasePath returns the sqlite file under the XDG data directory
func DefaultDatabasePath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "bubblesea", "sea.db")
}

// DefaultFilePath returns the config file location, BUBBLESEA_CONFIG overriding it
func DefaultFilePath() string {
	if env := os.Getenv("BUBBLESEA_CONFIG"); env != "" {
		return env
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "bubblesea", "config.yaml")
}

// Load reads the default config file, if any, then applies the environment
func Load() (*Config, error) {
	return LoadFile(DefaultFilePath())
}

// LoadFile is Load with an explicit file. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(ExpandHome(path))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	set := func(dst *string, key string) {
		if env := os.Getenv(key); env != "" {
			*dst = env
		}
	}
	set(&c.Store, "BUBBLESEA_STORE")
	set(&c.DB, "BUBBLESEA_DB")
	set(&c.Dir, "BUBBLESEA_DIR")
	set(&c.Remote, "BUBBLESEA_REMOTE")
	set(&c.Root, "BUBBLESEA_ROOT")
	set(&c.Log.Level, "BUBBLESEA_LOG_LEVEL")
	set(&c.Log.Environment, "BUBBLESEA_ENV")
	set(&c.Log.File, "BUBBLESEA_LOG_FILE")
	set(&c.Server.Addr, "BUBBLESEA_ADDR")
	set(&c.Server.Static, "BUBBLESEA_STATIC")
	if env := os.Getenv("BUBBLESEA_CORS_ORIGINS"); env != "" {
		c.Server.CORSOrigins = splitList(env)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the store selection
func (c *Config) Validate() error {
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	switch c.Store {
	case StoreSQLite:
		if c.DB == "" {
			return errors.New("config: db path is required for the sqlite store")
		}
	case StoreDir:
		if c.Dir == "" {
			return errors.New("config: dir is required for the dir store")
		}
	case StoreRemote:
		if c.Remote == "" {
			return errors.New("config: remote URL is required for the remote store")
		}
	default:
		return fmt.Errorf("config: unknown store %q (want sqlite, dir or remote)", c.Store)
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
