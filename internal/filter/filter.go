// Package filter selects the repositories a command runs against.
//
// A selection starts from every repository in the snapshot, or from the
// members of a named project, and is then optionally narrowed by a fuzzy
// match on the repository labels (paths relative to the working directory).
package filter

import (
	"fmt"
	"slices"

	"github.com/sahilm/fuzzy"

	"github.com/raphi011/ngm/internal/repo"
	"github.com/raphi011/ngm/internal/snapshot"
)

// Selection describes which repositories to pick.
type Selection struct {
	Project string // project name, "" for all repositories
	Query   string // fuzzy pattern on labels, "" matches everything
	WorkDir string // base for labels
}

// Select returns the repositories matching sel, in snapshot order.
func Select(s *snapshot.Snapshot, sel Selection) ([]repo.Repository, error) {
	repos := s.Repositories
	if sel.Project != "" {
		p, ok := s.Project(sel.Project)
		if !ok {
			return nil, fmt.Errorf("%w: %s", snapshot.ErrNoProject, sel.Project)
		}
		repos = s.ProjectRepositories(p)
	}
	return Fuzzy(repos, sel.WorkDir, sel.Query), nil
}

// labelSource implements fuzzy.Source over repository labels.
type labelSource struct {
	repos   []repo.Repository
	workDir string
}

func (s labelSource) String(i int) string { return s.repos[i].Label(s.workDir) }
func (s labelSource) Len() int            { return len(s.repos) }

// Fuzzy keeps the repositories whose label fuzzy-matches query. The input
// order is preserved rather than ranking by score, so output stays stable.
func Fuzzy(repos []repo.Repository, workDir, query string) []repo.Repository {
	if query == "" {
		return slices.Clone(repos)
	}

	matches := fuzzy.FindFrom(query, labelSource{repos: repos, workDir: workDir})
	idx := make([]int, len(matches))
	for i, m := range matches {
		idx[i] = m.Index
	}
	slices.Sort(idx)

	out := make([]repo.Repository, len(idx))
	for i, j := range idx {
		out[i] = repos[j]
	}
	return out
}
