package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalDir is the per-workspace directory holding the snapshot and local config.
const LocalDir = ".ngm"

// LocalConfigFileName is the name of the workspace-local config inside LocalDir.
const LocalConfigFileName = "config.toml"

// LocalConfig holds per-workspace overrides from <root>/.ngm/config.toml.
// Pointer fields and zero-value strings indicate "not set" (inherit from global).
type LocalConfig struct {
	Git              string         `toml:"git"`
	RefreshMS        *int           `toml:"refresh_ms"`
	IndexConcurrency *int           `toml:"index_concurrency"`
	Discovery        LocalDiscovery `toml:"discovery"`
}

// LocalDiscovery holds local discovery overrides
type LocalDiscovery struct {
	Ignore []string `toml:"ignore"` // appended to global
}

// LocalConfigPath returns the local config path for a workspace root.
func LocalConfigPath(root string) string {
	return filepath.Join(root, LocalDir, LocalConfigFileName)
}

// LoadLocal reads the workspace-local config below root.
// Returns nil (no error) if the file doesn't exist.
// Returns an error only on parse or validation failure.
func LoadLocal(root string) (*LocalConfig, error) {
	configFile := LocalConfigPath(root)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	var local LocalConfig
	if err := toml.Unmarshal(data, &local); err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}

	if local.RefreshMS != nil && *local.RefreshMS <= 0 {
		return nil, fmt.Errorf("invalid refresh_ms %d in %s: must be positive", *local.RefreshMS, configFile)
	}
	if local.IndexConcurrency != nil && *local.IndexConcurrency <= 0 {
		return nil, fmt.Errorf("invalid index_concurrency %d in %s: must be positive", *local.IndexConcurrency, configFile)
	}
	if err := validateIgnorePatterns(local.Discovery.Ignore, configFile); err != nil {
		return nil, err
	}

	return &local, nil
}
