package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raphi011/ngm/internal/repo"
	"github.com/raphi011/ngm/internal/storage"
)

// File names inside the workspace data directory.
const (
	FileName = ".ngm-map.json"
	LockName = ".ngm-map.lock"
)

// ErrNotFound is returned by Load when the workspace has no snapshot yet.
var ErrNotFound = errors.New("no snapshot found")

// Path returns the snapshot file of the workspace at root.
func Path(root string) string {
	return filepath.Join(root, storage.DirName, FileName)
}

func lockPath(root string) string {
	return filepath.Join(root, storage.DirName, LockName)
}

// Load reads the snapshot of the workspace at root.
func Load(root string) (*Snapshot, error) {
	var s Snapshot
	if err := storage.LoadJSON(Path(root), &s); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	if s.Repositories == nil {
		s.Repositories = []repo.Repository{}
	}
	if s.Projects == nil {
		s.Projects = []Project{}
	}
	for i := range s.Projects {
		s.Projects[i] = s.Projects[i].clone()
	}
	// The lists are authoritative; the maps are derived.
	s.reindex()

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("corrupt snapshot %s: %w", Path(root), err)
	}
	return &s, nil
}

// Save validates s and writes it to the workspace at root, holding the
// workspace lock for the duration of the write.
func Save(root string, s *Snapshot) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid snapshot: %w", err)
	}

	if _, err := storage.Dir(root); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	return storage.WithLock(lockPath(root), func() error {
		if err := storage.SaveJSON(Path(root), s); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
		return nil
	})
}
