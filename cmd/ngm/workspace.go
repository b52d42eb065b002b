package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/raphi011/ngm/internal/config"
	"github.com/raphi011/ngm/internal/filter"
	"github.com/raphi011/ngm/internal/git"
	"github.com/raphi011/ngm/internal/log"
	"github.com/raphi011/ngm/internal/repo"
	"github.com/raphi011/ngm/internal/snapshot"
	"github.com/raphi011/ngm/internal/ui/progress"
)

type rootKey struct{}

func withRoot(ctx context.Context, root string) context.Context {
	return context.WithValue(ctx, rootKey{}, root)
}

// rootFromContext returns the workspace root, falling back to the working
// directory.
func rootFromContext(ctx context.Context) string {
	if root, ok := ctx.Value(rootKey{}).(string); ok {
		return root
	}
	return config.WorkDirFromContext(ctx)
}

// runnerFor returns the git runner for the configured binary.
func runnerFor(ctx context.Context) git.Runner {
	return git.NewRunner(config.FromContext(ctx).Git)
}

// uiWriter is where progress feedback goes: stderr, or nowhere with --quiet.
func uiWriter() io.Writer {
	if quiet {
		return io.Discard
	}
	return os.Stderr
}

func projectArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// loadSnapshot loads the workspace snapshot, indexing the workspace and
// saving a fresh snapshot when none exists yet.
func loadSnapshot(ctx context.Context) (*snapshot.Snapshot, error) {
	root := rootFromContext(ctx)

	s, err := snapshot.Load(root)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, snapshot.ErrNotFound) {
		return nil, err
	}

	log.FromContext(ctx).Debug("no snapshot, indexing workspace", "root", root)

	repos, err := indexWorkspace(ctx)
	if err != nil {
		return nil, err
	}

	s = snapshot.New(repos)
	if err := snapshot.Save(root, s); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}
	return s, nil
}

// indexWorkspace discovers every repository below the workspace root and
// indexes them. Repositories that fail to index are reported as warnings
// and left out.
func indexWorkspace(ctx context.Context) ([]repo.Repository, error) {
	l := log.FromContext(ctx)
	cfg := config.FromContext(ctx)
	root := rootFromContext(ctx)
	workDir := config.WorkDirFromContext(ctx)
	w := uiWriter()

	paths, err := progress.Track(ctx, w, "Discovering repositories", func(ctx context.Context) ([]string, error) {
		return git.Discover(ctx, root, git.DiscoverOptions{Ignore: cfg.Discovery.Ignore})
	})
	if err != nil {
		return nil, fmt.Errorf("discover repositories: %w", err)
	}
	l.Debug("discovered repositories", "root", root, "count", len(paths))

	opts := git.IndexOptions{Concurrency: cfg.IndexConcurrency}
	var bar *progress.ProgressBar
	if progress.IsTerminal(w) {
		bar = progress.NewProgressBar(w, len(paths))
		bar.Start()
		opts.OnIndexed = bar.Indexed
	}

	repos, errs := git.IndexAll(ctx, runnerFor(ctx), workDir, paths, opts)
	if bar != nil {
		bar.Stop()
	}
	for _, err := range errs {
		l.Printf("Warning: %v\n", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return repos, nil
}

// selectRepositories loads the snapshot and applies the project and
// --filter selection.
func selectRepositories(ctx context.Context, project string) (*snapshot.Snapshot, []repo.Repository, error) {
	s, err := loadSnapshot(ctx)
	if err != nil {
		return nil, nil, err
	}

	repos, err := filter.Select(s, filter.Selection{
		Project: project,
		Query:   fuzzyFlag,
		WorkDir: config.WorkDirFromContext(ctx),
	})
	if err != nil {
		return nil, nil, err
	}

	log.FromContext(ctx).Debug("selected repositories", "project", project, "filter", fuzzyFlag, "count", len(repos))
	return s, repos, nil
}
