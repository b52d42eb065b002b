package repo

import (
	"slices"
	"strings"
)

// DefaultRemote is preferred as the primary remote when present.
const DefaultRemote = "origin"

// ParseRemotes parses `git remote -v` output into a name -> url map.
// Each remote is listed twice (fetch and push); the first url seen wins.
func ParseRemotes(out string) map[string]string {
	remotes := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if _, ok := remotes[fields[0]]; !ok {
			remotes[fields[0]] = fields[1]
		}
	}
	return remotes
}

// PrimaryRemote returns the name of the remote the derived URL is built from:
// origin if configured, otherwise the lexically first name. Empty when there are none.
func PrimaryRemote(remotes map[string]string) string {
	if _, ok := remotes[DefaultRemote]; ok {
		return DefaultRemote
	}
	names := make([]string, 0, len(remotes))
	for name := range remotes {
		names = append(names, name)
	}
	if len(names) == 0 {
		return ""
	}
	slices.Sort(names)
	return names[0]
}

// DeriveURL turns a git remote url into a browsable https url.
//
//	git@github.com:org/repo.git         -> https://github.com/org/repo
//	ssh://git@host:7999/org/repo.git    -> https://host/org/repo
//	https://github.com/org/repo.git     -> https://github.com/org/repo
//
// Local paths and unknown forms are returned trimmed of a .git suffix.
func DeriveURL(remote string) string {
	u := strings.TrimSuffix(strings.TrimSpace(remote), "/")
	u = strings.TrimSuffix(u, ".git")
	if u == "" {
		return ""
	}

	switch {
	case strings.HasPrefix(u, "ssh://"):
		rest := strings.TrimPrefix(u, "ssh://")
		host, path, ok := strings.Cut(rest, "/")
		if !ok {
			return u
		}
		host = stripUser(host)
		if h, _, hasPort := strings.Cut(host, ":"); hasPort {
			host = h
		}
		return "https://" + host + "/" + path
	case strings.HasPrefix(u, "http://"), strings.HasPrefix(u, "https://"):
		scheme, rest, _ := strings.Cut(u, "://")
		return scheme + "://" + stripUser(rest)
	case strings.Contains(u, "@") && strings.Contains(u, ":"):
		// scp-like syntax: user@host:path
		host, path, _ := strings.Cut(stripUser(u), ":")
		return "https://" + host + "/" + strings.TrimPrefix(path, "/")
	default:
		return u
	}
}

// stripUser drops a "user@" prefix (credentials included).
func stripUser(s string) string {
	if at := strings.Index(s, "@"); at != -1 {
		slash := strings.Index(s, "/")
		if slash == -1 || at < slash {
			return s[at+1:]
		}
	}
	return s
}

// URLFor derives the browsable url from the primary remote in remotes.
func URLFor(remotes map[string]string) string {
	name := PrimaryRemote(remotes)
	if name == "" {
		return ""
	}
	return DeriveURL(remotes[name])
}
