package format

import (
	"strings"

	"github.com/raphi011/ngm/internal/dispatch"
	"github.com/raphi011/ngm/internal/repo"
	"github.com/raphi011/ngm/internal/ui/styles"
)

// Failure renders a failed command: the repository label with the git
// arguments, followed by the command output indented below it.
func Failure(e *dispatch.GitError, workDir string) string {
	var b strings.Builder
	b.WriteString(styles.FailureSymbol())
	b.WriteString(" ")
	b.WriteString(styles.ErrorStyle.Bold(true).Render(e.Repository.Label(workDir)))
	if len(e.Args) > 0 {
		b.WriteString(" ")
		b.WriteString(styles.MutedStyle.Render("(git " + strings.Join(e.Args, " ") + ")"))
	}

	msg := strings.TrimSpace(e.Output)
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg != "" {
		b.WriteString("\n")
		b.WriteString(indent(msg, "    "))
	}
	return b.String()
}

// Failures renders every failure, separated by blank lines.
func Failures(errs []*dispatch.GitError, workDir string) string {
	blocks := make([]string, 0, len(errs))
	for _, e := range errs {
		blocks = append(blocks, Failure(e, workDir))
	}
	return strings.Join(blocks, "\n\n")
}

// Output renders the raw output of a successful command under the
// repository label. Empty output renders the label alone.
func Output(r repo.Repository, out, workDir string) string {
	header := styles.SuccessSymbol() + " " + styles.Bold.Render(r.Label(workDir))
	out = strings.TrimRight(out, "\n")
	if strings.TrimSpace(out) == "" {
		return header
	}
	return header + "\n" + indent(out, "    ")
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
