// Package format renders repository state for the terminal.
//
// Status blocks show a colored header, a branch summary and one line per
// changed path:
//
//	api [main | 1 ahead and 0 behind of origin/main]
//	  M cmd/main.go
//	  ? notes.txt
//
// Staged entries are green, unstaged entries red and untracked paths muted.
// The header is highlighted when the repository has changes.
//
// Re-index reports list removed, added and changed repositories, with a
// unified diff of each changed record.
package format
