package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// MarkerName is the entry that marks a directory as a repository root.
const MarkerName = ".git"

// DiscoverOptions tunes Discover.
type DiscoverOptions struct {
	// Ignore holds glob patterns matched against directory base names.
	// Matching directories are not descended into.
	Ignore []string
}

func (o DiscoverOptions) ignored(name string) bool {
	for _, pattern := range o.Ignore {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// Discover walks root and returns the absolute paths of all repository roots.
//
// A directory containing a .git entry (directory, or file for worktrees and
// submodules) is a repository root: it is returned and not descended into, so
// repositories nested inside another working tree are not indexed. Hidden
// directories are skipped. Subdirectories are walked in parallel and the
// result order is unspecified.
//
// Any unreadable directory aborts the whole walk: a partial index is worse
// than none.
func Discover(ctx context.Context, root string, opts DiscoverOptions) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	var (
		mu    sync.Mutex
		found []string
	)

	var walk func(dir string) error
	walk = func(dir string) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("read directory %s: %w", dir, err)
		}

		if hasMarker(entries) {
			mu.Lock()
			found = append(found, dir)
			mu.Unlock()
			return nil
		}

		for _, entry := range entries {
			name := entry.Name()
			if !entry.IsDir() || strings.HasPrefix(name, ".") || opts.ignored(name) {
				continue
			}
			sub := filepath.Join(dir, name)
			// No limit on the group: walkers schedule further walkers and
			// a bounded group would deadlock on deep trees.
			g.Go(func() error { return walk(sub) })
		}
		return nil
	}

	g.Go(func() error { return walk(absRoot) })

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return found, nil
}

func hasMarker(entries []os.DirEntry) bool {
	for _, entry := range entries {
		if entry.Name() != MarkerName {
			continue
		}
		if entry.IsDir() || entry.Type().IsRegular() {
			return true
		}
	}
	return false
}

// isGitRepo checks if a path is a git repository (has .git dir or file)
func isGitRepo(path string) bool {
	info, err := os.Stat(filepath.Join(path, MarkerName))
	if err != nil {
		return false
	}
	return info.IsDir() || info.Mode().IsRegular()
}
