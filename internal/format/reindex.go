package format

import (
	"encoding/json"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/raphi011/ngm/internal/repo"
	"github.com/raphi011/ngm/internal/snapshot"
	"github.com/raphi011/ngm/internal/ui/styles"
)

// Section titles of a re-index report.
const (
	RemovedTitle = "Removed Repositories"
	AddedTitle   = "Added Repositories"
	ChangedTitle = "Changed Repositories"
	NoChanges    = "No Changes"
)

// Reindex renders what a re-index changed. Empty sections are omitted and
// an empty diff renders as NoChanges.
func Reindex(d snapshot.Diff, workDir string) string {
	if d.Empty() {
		return styles.MutedStyle.Render(NoChanges)
	}

	var sections []string

	if len(d.Removed) > 0 {
		lines := []string{styles.Bold.Render(RemovedTitle)}
		for _, r := range d.Removed {
			lines = append(lines, styles.ErrorStyle.Render("  - "+r.Label(workDir)))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if len(d.Created) > 0 {
		lines := []string{styles.Bold.Render(AddedTitle)}
		for _, r := range d.Created {
			lines = append(lines, styles.SuccessStyle.Render("  + "+r.Label(workDir)))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if len(d.Changed) > 0 {
		lines := []string{styles.Bold.Render(ChangedTitle)}
		for _, c := range d.Changed {
			lines = append(lines, Change(c, workDir))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	return strings.Join(sections, "\n\n")
}

// Change renders a unified diff between the stored and the freshly indexed
// record of a repository.
func Change(c snapshot.Change, workDir string) string {
	label := c.New.Label(workDir)
	diff := udiff.Unified(label+" (stored)", label+" (indexed)", record(c.Old), record(c.New))
	return colorDiff(strings.TrimRight(diff, "\n"))
}

// record is the identity-relevant part of r as indented JSON.
func record(r repo.Repository) string {
	p := r.Partial()
	if p.Remotes == nil {
		p.Remotes = map[string]string{}
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return ""
	}
	return string(data) + "\n"
}

func colorDiff(diff string) string {
	lines := strings.Split(diff, "\n")
	for i, l := range lines {
		switch {
		case strings.HasPrefix(l, "+++"), strings.HasPrefix(l, "---"):
			lines[i] = styles.Bold.Render(l)
		case strings.HasPrefix(l, "@@"):
			lines[i] = styles.InfoStyle.Render(l)
		case strings.HasPrefix(l, "+"):
			lines[i] = styles.SuccessStyle.Render(l)
		case strings.HasPrefix(l, "-"):
			lines[i] = styles.ErrorStyle.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}
