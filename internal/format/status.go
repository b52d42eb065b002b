package format

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/raphi011/ngm/internal/git"
	"github.com/raphi011/ngm/internal/repo"
	"github.com/raphi011/ngm/internal/ui/styles"
)

// Entry is a repository together with its queried status.
type Entry struct {
	Repository repo.Repository
	Status     git.Status
}

// BranchSummary renders the branch line of a status in brackets.
//
// A branch in sync with its upstream renders as [origin/main]; otherwise
// the local branch is shown with its ahead and behind counts.
func BranchSummary(h git.Head) string {
	branch := styles.BranchName(h.Branch)
	if !h.HasUpstream {
		return fmt.Sprintf("[%s | no upstream]", branch)
	}
	if h.Ahead == 0 && h.Behind == 0 {
		return fmt.Sprintf("[%s]", h.Upstream)
	}
	return fmt.Sprintf("[%s | %d ahead and %d behind of %s]", branch, h.Ahead, h.Behind, h.Upstream)
}

// Status renders the status block of a single repository.
func Status(r repo.Repository, st git.Status, workDir string) string {
	var b strings.Builder

	header := styles.PrimaryStyle
	if git.HasChanges(st) {
		header = styles.WarningStyle
	}
	b.WriteString(header.Bold(true).Render(r.Label(workDir)))
	b.WriteString(" ")
	b.WriteString(styles.MutedStyle.Render(BranchSummary(st.Head)))

	writeChanges(&b, st.Staged, styles.SuccessStyle)
	writeChanges(&b, st.Unstaged, styles.ErrorStyle)
	for _, p := range st.Untracked {
		b.WriteString("\n")
		b.WriteString(styles.MutedStyle.Render("  ? " + p))
	}

	return b.String()
}

// Statuses renders one block per entry, separated by blank lines.
func Statuses(entries []Entry, workDir string) string {
	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		blocks = append(blocks, Status(e.Repository, e.Status, workDir))
	}
	return strings.Join(blocks, "\n\n")
}

func writeChanges(b *strings.Builder, c git.Changes, style lipgloss.Style) {
	line := func(code, text string) {
		b.WriteString("\n")
		b.WriteString(style.Render("  " + code + " " + text))
	}

	for _, p := range c.Modified {
		line("M", p)
	}
	for _, p := range c.Added {
		line("A", p)
	}
	for _, p := range c.Deleted {
		line("D", p)
	}
	for _, r := range c.Renamed {
		line("R", r.From+" -> "+r.To)
	}
	for _, p := range c.Copied {
		line("C", p)
	}
	for _, p := range c.Unmerged {
		line("U", p)
	}
}
