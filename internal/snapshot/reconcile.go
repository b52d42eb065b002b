package snapshot

import (
	"slices"
	"strings"

	"github.com/raphi011/ngm/internal/repo"
)

// Change is a repository whose identity changed between two indexes.
type Change struct {
	Old repo.Repository
	New repo.Repository
}

// Diff summarizes what a re-index changed, each list in path order.
type Diff struct {
	Created []repo.Repository
	Changed []Change
	Removed []repo.Repository
}

// Empty reports whether nothing changed.
func (d Diff) Empty() bool {
	return len(d.Created) == 0 && len(d.Changed) == 0 && len(d.Removed) == 0
}

// Reconcile merges a freshly indexed repository set into old.
//
// Repositories are matched by path. A matched repository whose identity
// differs is reported as changed, an unmatched old one as removed and an
// unmatched fresh one as created. A moved repository therefore shows up as
// removed plus created. Known branches are carried over by path.
//
// Projects keep their ids; removed members are dropped and changed members
// are replaced by their new identity. old is not modified, and reconciling
// the same fresh set twice yields an empty diff the second time.
func Reconcile(old *Snapshot, fresh []repo.Repository) (*Snapshot, Diff) {
	if old == nil {
		old = New(nil)
	}

	oldByPath := make(map[string]repo.Repository, len(old.Repositories))
	for _, r := range old.Repositories {
		oldByPath[r.Path] = r
	}

	var diff Diff
	replaced := make(map[repo.ID]repo.ID)
	seen := make(map[string]bool, len(fresh))
	repos := make([]repo.Repository, 0, len(fresh))

	for _, f := range sortedByPath(fresh) {
		if seen[f.Path] {
			continue
		}
		seen[f.Path] = true
		f = f.WithBranches()
		f.ID = f.Identify()

		o, ok := oldByPath[f.Path]
		if !ok {
			diff.Created = append(diff.Created, f)
			repos = append(repos, f)
			continue
		}

		f.Branches = o.WithBranches(f.Branches...).Branches
		if !repo.Equal(o, f) {
			diff.Changed = append(diff.Changed, Change{Old: o, New: f})
		}
		// A stored id can be stale even when the record is equal.
		if o.ID != f.ID {
			replaced[o.ID] = f.ID
		}
		repos = append(repos, f)
	}

	removed := make(map[repo.ID]bool)
	for _, o := range old.Repositories {
		if !seen[o.Path] {
			diff.Removed = append(diff.Removed, o)
			removed[o.ID] = true
		}
	}

	projects := make([]Project, len(old.Projects))
	for i, p := range old.Projects {
		ids := make([]repo.ID, 0, len(p.RepositoryIDs))
		for _, id := range p.RepositoryIDs {
			if removed[id] {
				continue
			}
			if to, ok := replaced[id]; ok {
				id = to
			}
			if !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
		p.RepositoryIDs = ids
		projects[i] = p
	}

	next := &Snapshot{Repositories: repos, Projects: projects}
	next.reindex()

	// Drop project members that never referenced a known repository.
	for i := range next.Projects {
		next.Projects[i].RepositoryIDs = slices.DeleteFunc(next.Projects[i].RepositoryIDs, func(id repo.ID) bool {
			_, ok := next.RepositoryMap[id]
			return !ok
		})
		next.ProjectMap[next.Projects[i].ID] = next.Projects[i]
	}

	slices.SortFunc(diff.Removed, func(a, b repo.Repository) int { return strings.Compare(a.Path, b.Path) })
	return next, diff
}
