package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/ngm/internal/repo"
	"github.com/raphi011/ngm/internal/snapshot"
)

func paths(repos []repo.Repository) []string {
	out := make([]string, len(repos))
	for i, r := range repos {
		out[i] = r.Path
	}
	return out
}

func workspace(t *testing.T) *snapshot.Snapshot {
	t.Helper()
	var repos []repo.Repository
	for _, p := range []string{"/ws/services/api", "/ws/services/billing", "/ws/web/frontend", "/ws/tools/cli"} {
		repos = append(repos, repo.New(repo.Partial{Path: p, Branch: "main"}))
	}
	s := snapshot.New(repos)

	s, _, err := s.CreateProject("payments", "feat/pay")
	require.NoError(t, err)
	api, _ := s.RepositoryByPath("/ws/services/api")
	billing, _ := s.RepositoryByPath("/ws/services/billing")
	s, err = s.AddToProject("payments", billing.ID, api.ID)
	require.NoError(t, err)
	return s
}

func TestSelect(t *testing.T) {
	t.Parallel()

	s := workspace(t)

	tests := []struct {
		name string
		sel  Selection
		want []string
	}{
		{
			name: "everything",
			sel:  Selection{WorkDir: "/ws"},
			want: []string{"/ws/services/api", "/ws/services/billing", "/ws/tools/cli", "/ws/web/frontend"},
		},
		{
			name: "project in snapshot order",
			sel:  Selection{Project: "payments", WorkDir: "/ws"},
			want: []string{"/ws/services/api", "/ws/services/billing"},
		},
		{
			name: "fuzzy",
			sel:  Selection{Query: "svcbil", WorkDir: "/ws"},
			want: []string{"/ws/services/billing"},
		},
		{
			name: "fuzzy keeps input order",
			sel:  Selection{Query: "/", WorkDir: "/ws"},
			want: []string{"/ws/services/api", "/ws/services/billing", "/ws/tools/cli", "/ws/web/frontend"},
		},
		{
			name: "project and fuzzy",
			sel:  Selection{Project: "payments", Query: "api", WorkDir: "/ws"},
			want: []string{"/ws/services/api"},
		},
		{
			name: "no match",
			sel:  Selection{Query: "zzz", WorkDir: "/ws"},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Select(s, tt.sel)
			require.NoError(t, err)
			assert.Equal(t, tt.want, paths(got))
		})
	}
}

func TestSelect_UnknownProject(t *testing.T) {
	t.Parallel()

	_, err := Select(workspace(t), Selection{Project: "nope"})
	assert.ErrorIs(t, err, snapshot.ErrNoProject)
}

func TestFuzzy_DoesNotAlias(t *testing.T) {
	t.Parallel()

	repos := []repo.Repository{repo.New(repo.Partial{Path: "/ws/a", Branch: "main"})}
	out := Fuzzy(repos, "/ws", "")
	out[0].Branch = "changed"
	assert.Equal(t, "main", repos[0].Branch)
}
