package snapshot

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/raphi011/ngm/internal/repo"
)

var (
	// ErrProjectExists is returned when creating a project whose name is taken.
	ErrProjectExists = errors.New("project already exists")
	// ErrNoProject is returned for operations on an unknown project.
	ErrNoProject = errors.New("no such project")
	// ErrUnknownRepository is returned when a repository id is not in the snapshot.
	ErrUnknownRepository = errors.New("unknown repository")
)

// ProjectID identifies a project. It is fixed at creation.
type ProjectID string

// Project is a named subset of repositories with a working branch.
type Project struct {
	ID            ProjectID `json:"id"`
	Name          string    `json:"name"`
	Branch        string    `json:"branch"`
	RepositoryIDs []repo.ID `json:"repository_ids"`
}

// IdentifyProject derives the id of a new, empty project.
func IdentifyProject(name, branch string) ProjectID {
	data, _ := json.Marshal(Project{Name: name, Branch: branch, RepositoryIDs: []repo.ID{}}.partial())
	sum := md5.Sum(data)
	return ProjectID(hex.EncodeToString(sum[:]))
}

type projectPartial struct {
	Name          string    `json:"name"`
	Branch        string    `json:"branch"`
	RepositoryIDs []repo.ID `json:"repository_ids"`
}

func (p Project) partial() projectPartial {
	return projectPartial{Name: p.Name, Branch: p.Branch, RepositoryIDs: p.RepositoryIDs}
}

// Has reports whether id is a member of the project.
func (p Project) Has(id repo.ID) bool {
	return slices.Contains(p.RepositoryIDs, id)
}

func (p Project) clone() Project {
	p.RepositoryIDs = slices.Clone(p.RepositoryIDs)
	if p.RepositoryIDs == nil {
		p.RepositoryIDs = []repo.ID{}
	}
	return p
}

// Snapshot is the persisted workspace state.
type Snapshot struct {
	Repositories  []repo.Repository           `json:"repositories"`
	RepositoryMap map[repo.ID]repo.Repository `json:"repository_map"`
	Projects      []Project                   `json:"projects"`
	ProjectMap    map[ProjectID]Project       `json:"project_map"`
}

// New builds a snapshot of repos without projects. Repositories are kept
// in path order.
func New(repos []repo.Repository) *Snapshot {
	s := &Snapshot{
		Repositories: sortedByPath(repos),
		Projects:     []Project{},
	}
	s.reindex()
	return s
}

func sortedByPath(repos []repo.Repository) []repo.Repository {
	out := slices.Clone(repos)
	if out == nil {
		out = []repo.Repository{}
	}
	slices.SortFunc(out, func(a, b repo.Repository) int {
		return strings.Compare(a.Path, b.Path)
	})
	return out
}

// reindex rebuilds both maps from the lists.
func (s *Snapshot) reindex() {
	s.RepositoryMap = make(map[repo.ID]repo.Repository, len(s.Repositories))
	for _, r := range s.Repositories {
		s.RepositoryMap[r.ID] = r
	}
	s.ProjectMap = make(map[ProjectID]Project, len(s.Projects))
	for _, p := range s.Projects {
		s.ProjectMap[p.ID] = p
	}
}

// clone returns a copy that shares no slices or maps with s.
func (s *Snapshot) clone() *Snapshot {
	c := &Snapshot{
		Repositories: make([]repo.Repository, len(s.Repositories)),
		Projects:     make([]Project, len(s.Projects)),
	}
	for i, r := range s.Repositories {
		c.Repositories[i] = r.WithBranches()
	}
	for i, p := range s.Projects {
		c.Projects[i] = p.clone()
	}
	c.reindex()
	return c
}

// Repository looks up a repository by id.
func (s *Snapshot) Repository(id repo.ID) (repo.Repository, bool) {
	r, ok := s.RepositoryMap[id]
	return r, ok
}

// RepositoryByPath looks up a repository by its absolute path.
func (s *Snapshot) RepositoryByPath(path string) (repo.Repository, bool) {
	for _, r := range s.Repositories {
		if r.Path == path {
			return r, true
		}
	}
	return repo.Repository{}, false
}

// RepositoryContaining returns the repository whose path is path or its
// closest ancestor.
func (s *Snapshot) RepositoryContaining(path string) (repo.Repository, bool) {
	var (
		best  repo.Repository
		found bool
	)
	for _, r := range s.Repositories {
		if r.Path != path && !strings.HasPrefix(path, r.Path+string(filepath.Separator)) {
			continue
		}
		if !found || len(r.Path) > len(best.Path) {
			best, found = r, true
		}
	}
	return best, found
}

// Project looks up a project by name.
func (s *Snapshot) Project(name string) (Project, bool) {
	for _, p := range s.Projects {
		if p.Name == name {
			return p, true
		}
	}
	return Project{}, false
}

// ProjectRepositories returns the members of p in snapshot order.
func (s *Snapshot) ProjectRepositories(p Project) []repo.Repository {
	var out []repo.Repository
	for _, r := range s.Repositories {
		if p.Has(r.ID) {
			out = append(out, r)
		}
	}
	return out
}

// CreateProject adds an empty project.
func (s *Snapshot) CreateProject(name, branch string) (*Snapshot, Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, Project{}, errors.New("project name must not be empty")
	}
	if _, ok := s.Project(name); ok {
		return nil, Project{}, fmt.Errorf("%w: %s", ErrProjectExists, name)
	}

	p := Project{
		ID:            IdentifyProject(name, branch),
		Name:          name,
		Branch:        branch,
		RepositoryIDs: []repo.ID{},
	}

	c := s.clone()
	c.Projects = append(c.Projects, p)
	c.ProjectMap[p.ID] = p
	return c, p, nil
}

// DeleteProject removes a project. Its repositories are untouched.
func (s *Snapshot) DeleteProject(name string) (*Snapshot, error) {
	p, ok := s.Project(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoProject, name)
	}

	c := s.clone()
	c.Projects = slices.DeleteFunc(c.Projects, func(q Project) bool { return q.ID == p.ID })
	delete(c.ProjectMap, p.ID)
	return c, nil
}

// AddToProject adds repositories to a project, ignoring ids already present.
func (s *Snapshot) AddToProject(name string, ids ...repo.ID) (*Snapshot, error) {
	return s.updateProject(name, ids, func(p *Project) {
		for _, id := range ids {
			if !p.Has(id) {
				p.RepositoryIDs = append(p.RepositoryIDs, id)
			}
		}
	})
}

// RemoveFromProject removes repositories from a project.
func (s *Snapshot) RemoveFromProject(name string, ids ...repo.ID) (*Snapshot, error) {
	return s.updateProject(name, ids, func(p *Project) {
		p.RepositoryIDs = slices.DeleteFunc(p.RepositoryIDs, func(id repo.ID) bool {
			return slices.Contains(ids, id)
		})
	})
}

func (s *Snapshot) updateProject(name string, ids []repo.ID, update func(*Project)) (*Snapshot, error) {
	if _, ok := s.Project(name); !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoProject, name)
	}
	for _, id := range ids {
		if _, ok := s.RepositoryMap[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRepository, id)
		}
	}

	c := s.clone()
	for i := range c.Projects {
		if c.Projects[i].Name != name {
			continue
		}
		update(&c.Projects[i])
		c.ProjectMap[c.Projects[i].ID] = c.Projects[i]
	}
	return c, nil
}

// WithKnownBranches records branches as known for the repository id.
// Known branches are not part of the identity, so id stays valid.
func (s *Snapshot) WithKnownBranches(id repo.ID, branches ...string) (*Snapshot, error) {
	if _, ok := s.RepositoryMap[id]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRepository, id)
	}

	c := s.clone()
	for i := range c.Repositories {
		if c.Repositories[i].ID == id {
			c.Repositories[i] = c.Repositories[i].WithBranches(branches...)
			c.RepositoryMap[id] = c.Repositories[i]
		}
	}
	return c, nil
}

// Validate checks that the maps mirror the lists and that every project
// references existing repositories.
func (s *Snapshot) Validate() error {
	var errs []error

	if len(s.RepositoryMap) != len(s.Repositories) {
		errs = append(errs, fmt.Errorf("repository map has %d entries, list has %d", len(s.RepositoryMap), len(s.Repositories)))
	}
	for _, r := range s.Repositories {
		if _, ok := s.RepositoryMap[r.ID]; !ok {
			errs = append(errs, fmt.Errorf("repository %s missing from map", r.Path))
		}
	}

	if len(s.ProjectMap) != len(s.Projects) {
		errs = append(errs, fmt.Errorf("project map has %d entries, list has %d", len(s.ProjectMap), len(s.Projects)))
	}
	names := make(map[string]bool, len(s.Projects))
	for _, p := range s.Projects {
		if names[p.Name] {
			errs = append(errs, fmt.Errorf("duplicate project name %q", p.Name))
		}
		names[p.Name] = true
		if _, ok := s.ProjectMap[p.ID]; !ok {
			errs = append(errs, fmt.Errorf("project %q missing from map", p.Name))
		}
		for _, id := range p.RepositoryIDs {
			if _, ok := s.RepositoryMap[id]; !ok {
				errs = append(errs, fmt.Errorf("project %q references unknown repository %s", p.Name, id))
			}
		}
	}

	return errors.Join(errs...)
}
