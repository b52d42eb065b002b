package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/raphi011/ngm/internal/repo"
)

// DefaultIndexConcurrency bounds parallel git calls in IndexAll.
const DefaultIndexConcurrency = 8

// IndexError reports a repository whose identity could not be determined.
// It is fatal for that repository only.
type IndexError struct {
	Path  string // absolute path
	Label string // path relative to the working directory
	Err   error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %s: %v", e.Label, e.Err)
}

func (e *IndexError) Unwrap() error {
	return e.Err
}

// IndexRepository reads the remotes and current branch of the repository at
// path and returns it with its identity stamped. workDir is only used to make
// error messages relative.
func IndexRepository(ctx context.Context, r Runner, workDir, path string) (repo.Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return repo.Repository{}, &IndexError{Path: path, Label: path, Err: err}
	}
	fail := func(err error) (repo.Repository, error) {
		return repo.Repository{}, &IndexError{Path: absPath, Label: repo.Label(workDir, absPath), Err: err}
	}

	if !isGitRepo(absPath) {
		return fail(errors.New("not a git repository"))
	}

	remoteOut, err := r.Run(ctx, absPath, "remote", "-v")
	if err != nil {
		return fail(fmt.Errorf("failed to get remote: %w", err))
	}

	branchOut, err := r.Run(ctx, absPath, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return fail(fmt.Errorf("failed to get branch: %w", err))
	}
	branch := strings.TrimSpace(branchOut)
	if branch == "" {
		return fail(errors.New("failed to get branch: empty output"))
	}

	remotes := repo.ParseRemotes(remoteOut)

	return repo.New(repo.Partial{
		Path:    absPath,
		Remotes: remotes,
		Branch:  branch,
		URL:     repo.URLFor(remotes),
	}), nil
}

// IndexOptions tunes IndexAll.
type IndexOptions struct {
	// Concurrency bounds parallel repositories; <= 0 uses DefaultIndexConcurrency.
	Concurrency int
	// OnIndexed is called after each repository finished (successfully or not)
	// with the number finished so far. It may be called from several goroutines.
	OnIndexed func(done, total int)
}

// IndexAll indexes every path in parallel. A failing repository does not stop
// its siblings: the repositories that indexed are returned in input order,
// and the failures are returned as *IndexError values.
func IndexAll(ctx context.Context, r Runner, workDir string, paths []string, opts IndexOptions) ([]repo.Repository, []error) {
	type result struct {
		repo repo.Repository
		err  error
	}

	results := make([]result, len(paths))

	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultIndexConcurrency
	}

	var finished atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		g.Go(func() error {
			rp, err := IndexRepository(ctx, r, workDir, path)
			results[i] = result{repo: rp, err: err}
			if opts.OnIndexed != nil {
				opts.OnIndexed(int(finished.Add(1)), len(paths))
			}
			return nil // Never fail — errors are collected per repository
		})
	}

	_ = g.Wait()

	repos := make([]repo.Repository, 0, len(paths))
	var errs []error
	for _, res := range results {
		if res.err != nil {
			errs = append(errs, res.err)
			continue
		}
		repos = append(repos, res.repo)
	}
	return repos, errs
}
