// Package storage provides atomic, lock-guarded file operations for the
// JSON data ngm keeps in <root>/.ngm/.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// DirName is the per-workspace data directory.
const DirName = ".ngm"

// Dir returns the path to <root>/.ngm/, creating it if needed
func Dir(root string) (string, error) {
	dir := filepath.Join(root, DirName)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	return dir, nil
}

// SaveJSON atomically writes data as JSON to the specified path.
// It ensures the parent directory exists, writes to a temp file,
// then renames to the final path for atomic operation.
func SaveJSON(path string, data any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tempPath := path + ".tmp"

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	jsonData = append(jsonData, '\n')

	if err := os.WriteFile(tempPath, jsonData, 0o600); err != nil {
		return err
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return err
	}
	return nil
}

// LoadJSON reads JSON from the specified path into dest.
// Returns os.ErrNotExist if file doesn't exist (caller should handle).
func LoadJSON(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}
