package repo

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

// ID is the content hash identifying a Repository.
type ID string

// Short returns the first 8 characters of the id for display.
func (id ID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// Partial holds the attributes an ID is computed from.
// Field order is the serialization order and must not change.
type Partial struct {
	Path    string            `json:"path"`
	Remotes map[string]string `json:"remote"`
	Branch  string            `json:"branch"`
	URL     string            `json:"url"`
}

// Repository is one discovered working tree.
type Repository struct {
	ID       ID                `json:"id"`
	Path     string            `json:"path"`
	Remotes  map[string]string `json:"remote"`
	Branch   string            `json:"branch"`
	URL      string            `json:"url"`
	Branches []string          `json:"branches,omitempty"`
}

// Identify computes the ID for p. It is pure: equal input gives equal output.
func Identify(p Partial) ID {
	if p.Remotes == nil {
		p.Remotes = map[string]string{}
	}
	// encoding/json writes struct fields in declaration order and sorts map keys.
	data, err := json.Marshal(p)
	if err != nil {
		// Partial only holds strings and a string map.
		panic("repo: marshal partial: " + err.Error())
	}
	sum := md5.Sum(data)
	return ID(hex.EncodeToString(sum[:]))
}

// New builds a Repository from p with its ID stamped.
func New(p Partial) Repository {
	return Repository{
		ID:      Identify(p),
		Path:    p.Path,
		Remotes: maps.Clone(p.Remotes),
		Branch:  p.Branch,
		URL:     p.URL,
	}
}

// Partial returns the identity-relevant attributes of r.
func (r Repository) Partial() Partial {
	return Partial{
		Path:    r.Path,
		Remotes: r.Remotes,
		Branch:  r.Branch,
		URL:     r.URL,
	}
}

// Identify recomputes r's identity from its current attributes,
// ignoring the stored ID.
func (r Repository) Identify() ID {
	return Identify(r.Partial())
}

// Equal reports whether a and b have the same recomputed identity.
func Equal(a, b Repository) bool {
	return a.Identify() == b.Identify()
}

// WithBranches returns a copy of r whose known branches also contain branches.
// Existing entries keep their order; new ones are appended once.
func (r Repository) WithBranches(branches ...string) Repository {
	out := r
	out.Remotes = maps.Clone(r.Remotes)
	out.Branches = slices.Clone(r.Branches)
	for _, b := range branches {
		if b != "" && !slices.Contains(out.Branches, b) {
			out.Branches = append(out.Branches, b)
		}
	}
	return out
}

// Label returns the path of r relative to workDir, or "./" for workDir itself.
// Paths outside workDir are returned absolute.
func (r Repository) Label(workDir string) string {
	return Label(workDir, r.Path)
}

// Label returns path relative to workDir for display.
func Label(workDir, path string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	if rel == "." {
		return "./"
	}
	return rel
}
