package git

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// StatusArgs are the fixed arguments of a status query.
var StatusArgs = []string{"status", "--porcelain", "-b"}

// Rename is a renamed path pair.
type Rename struct {
	From string
	To   string
}

// Changes groups changed paths by change kind. Empty buckets are empty
// slices, never absent.
type Changes struct {
	Modified []string
	Added    []string
	Deleted  []string
	Renamed  []Rename
	Copied   []string
	Unmerged []string
}

// Empty reports whether no bucket holds an entry.
func (c Changes) Empty() bool {
	return len(c.Modified) == 0 &&
		len(c.Added) == 0 &&
		len(c.Deleted) == 0 &&
		len(c.Renamed) == 0 &&
		len(c.Copied) == 0 &&
		len(c.Unmerged) == 0
}

// Head describes the branch line of a status.
type Head struct {
	Branch      string // local branch name
	Upstream    string // upstream ref, empty without tracking
	HasUpstream bool
	Ahead       int
	Behind      int
}

// Status is the parsed result of `git status --porcelain -b`.
type Status struct {
	Staged    Changes
	Unstaged  Changes // no Added: an intent-to-add path (" A") is not a change
	Untracked []string
	Head      Head
}

var (
	aheadRe  = regexp.MustCompile(`ahead (\d+)`)
	behindRe = regexp.MustCompile(`behind (\d+)`)
)

// ParseStatus parses porcelain v1 status output with a leading branch line.
// Unknown status codes are ignored.
func ParseStatus(raw string) Status {
	s := Status{
		Staged:    newChanges(),
		Unstaged:  newChanges(),
		Untracked: []string{},
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if len(line) < 2 {
			continue
		}

		code := line[:2]
		rest := ""
		if len(line) > 3 {
			rest = line[3:]
		}

		switch code {
		case "##":
			s.Head = parseHead(rest)
		case "??":
			s.Untracked = append(s.Untracked, rest)
		default:
			parts := strings.Split(rest, " ")
			addChange(&s.Staged, code[0], parts, true)
			addChange(&s.Unstaged, code[1], parts, false)
		}
	}

	return s
}

func newChanges() Changes {
	return Changes{
		Modified: []string{},
		Added:    []string{},
		Deleted:  []string{},
		Renamed:  []Rename{},
		Copied:   []string{},
		Unmerged: []string{},
	}
}

// parseHead parses the remainder of a "## " line, e.g.
// "main...origin/main [ahead 2, behind 1]".
func parseHead(rest string) Head {
	var h Head

	branchPart := rest
	if i := strings.Index(rest, " ["); i != -1 {
		branchPart = rest[:i]
	}

	local, upstream, found := strings.Cut(branchPart, "...")
	h.Branch = strings.TrimPrefix(local, "No commits yet on ")
	if found {
		h.HasUpstream = true
		h.Upstream = upstream
	}

	if strings.Contains(rest, "[") {
		h.Ahead = captureInt(aheadRe, rest)
		h.Behind = captureInt(behindRe, rest)
	}
	return h
}

func captureInt(re *regexp.Regexp, s string) int {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

func addChange(c *Changes, code byte, parts []string, staged bool) {
	path := strings.Join(parts, " ")

	switch code {
	case 'M':
		c.Modified = append(c.Modified, path)
	case 'A':
		// The worktree side tracks five kinds; " A" from `git add -N` is dropped.
		if staged {
			c.Added = append(c.Added, path)
		}
	case 'D':
		c.Deleted = append(c.Deleted, path)
	case 'R':
		rn := Rename{From: parts[0]}
		if len(parts) > 2 {
			rn.To = parts[2]
		}
		c.Renamed = append(c.Renamed, rn)
	case 'C':
		c.Copied = append(c.Copied, path)
	case 'U':
		c.Unmerged = append(c.Unmerged, path)
	}
}

// HasChanges reports whether any staged, unstaged or untracked bucket is non-empty.
func HasChanges(s Status) bool {
	return !s.Staged.Empty() || !s.Unstaged.Empty() || len(s.Untracked) > 0
}

// QueryStatus runs a status query in dir and parses the result.
func QueryStatus(ctx context.Context, r Runner, dir string) (Status, error) {
	out, err := r.Run(ctx, dir, StatusArgs...)
	if err != nil {
		return Status{}, err
	}
	return ParseStatus(out), nil
}
