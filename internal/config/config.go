package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath overrides the location of the global config file.
const EnvConfigPath = "NGM_CONFIG"

// Defaults for unset values.
const (
	DefaultGit              = "git"
	DefaultRefreshMS        = 100
	DefaultIndexConcurrency = 8
)

// DiscoveryConfig holds repository discovery settings
type DiscoveryConfig struct {
	Ignore []string `toml:"ignore"` // base-name globs, e.g. "node_modules"
}

// ThemeConfig holds UI theming settings
type ThemeConfig struct {
	Name     string `toml:"name"`     // preset: "default", "dracula", "nord", "gruvbox", "catppuccin", "none"
	Mode     string `toml:"mode"`     // "auto", "light" or "dark"
	Primary  string `toml:"primary"`  // color overrides
	Accent   string `toml:"accent"`
	Success  string `toml:"success"`
	Error    string `toml:"error"`
	Muted    string `toml:"muted"`
	Normal   string `toml:"normal"`
	Info     string `toml:"info"`
	Warning  string `toml:"warning"`
	Nerdfont bool   `toml:"nerdfont"` // use nerd font symbols
}

// Config holds the ngm configuration
type Config struct {
	Git              string          `toml:"git"`
	RefreshMS        int             `toml:"refresh_ms"`
	IndexConcurrency int             `toml:"index_concurrency"`
	Discovery        DiscoveryConfig `toml:"discovery"`
	Theme            ThemeConfig     `toml:"theme"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Git:              DefaultGit,
		RefreshMS:        DefaultRefreshMS,
		IndexConcurrency: DefaultIndexConcurrency,
	}
}

// RefreshInterval returns the progress display tick.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshMS) * time.Millisecond
}

// Path returns the path to the global config file
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ngm", "config.toml"), nil
}

// Load reads the global config file.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from path. Keys missing from the file keep their
// default values.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

const defaultConfig = `# ngm configuration

# git binary used for every repository command
git = "git"

# Refresh interval of the live progress display in milliseconds
refresh_ms = 100

# Number of repositories indexed in parallel by "ngm index"
index_concurrency = 8

# Discovery settings
# Directories whose base name matches one of these globs are not searched.
# Hidden directories (starting with ".") are always skipped.
# [discovery]
# ignore = ["node_modules"]

# Theme settings
# [theme]
# name = "default"   # default, dracula, nord, gruvbox, catppuccin, none
# mode = "auto"      # auto, light, dark
# nerdfont = false   # use nerd font symbols
# primary = "#89b4fa"
# warning = "#fab387"
`

// DefaultConfig returns the commented default config file content.
func DefaultConfig() string {
	return defaultConfig
}

// Init creates a default config file at Path().
// If force is true, overwrites existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return "", err
	}

	return path, nil
}
