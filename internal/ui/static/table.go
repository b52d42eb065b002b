// Package static provides non-interactive terminal output components.
//
// This package renders formatted output that does not require user
// interaction, such as the repository and project tables.
package static

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/ngm/internal/repo"
	"github.com/raphi011/ngm/internal/ui/styles"
)

// RepositoryHeaders are the columns of RepositoryRow.
var RepositoryHeaders = []string{"PATH", "BRANCH", "ID", "URL"}

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// RepositoryRow returns the table cells for one repository, matching
// RepositoryHeaders. The URL cell is a terminal hyperlink.
func RepositoryRow(r repo.Repository, workDir string) []string {
	url := "-"
	if r.URL != "" {
		url = styles.Link(r.URL, r.URL)
	}
	return []string{
		r.Label(workDir),
		r.Branch,
		styles.MutedStyle.Render(r.ID.Short()),
		url,
	}
}

// RenderRepositories renders the repository table.
func RenderRepositories(repos []repo.Repository, workDir string) string {
	rows := make([][]string, len(repos))
	for i, r := range repos {
		rows[i] = RepositoryRow(r, workDir)
	}
	return RenderTable(RepositoryHeaders, rows)
}

// ProjectHeaders are the columns of RenderProjects.
var ProjectHeaders = []string{"PROJECT", "BRANCH", "REPOSITORIES"}

// ProjectRow holds the display data of one project.
type ProjectRow struct {
	Name         string
	Branch       string
	Repositories []string // member labels
}

// RenderProjects renders the project table, one member label per line.
func RenderProjects(projects []ProjectRow) string {
	rows := make([][]string, len(projects))
	for i, p := range projects {
		branch := p.Branch
		if branch == "" {
			branch = "-"
		}
		members := styles.MutedStyle.Render("(empty)")
		if len(p.Repositories) > 0 {
			members = strings.Join(p.Repositories, "\n")
		}
		rows[i] = []string{p.Name, styles.BranchName(branch), members}
	}
	return RenderTable(ProjectHeaders, rows)
}
