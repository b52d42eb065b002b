//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/raphi011/ngm/internal/config"
	"github.com/raphi011/ngm/internal/snapshot"
)

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// setupTestRepo creates a git repo with an initial commit on main in dir/name.
// Returns the absolute path to the created repo.
func setupTestRepo(t *testing.T, dir, name string) string {
	t.Helper()

	repoPath := filepath.Join(dir, name)
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		t.Fatalf("failed to create repo dir: %v", err)
	}

	runGitCommand(t, repoPath, "git", "init", "-b", "main")
	runGitCommand(t, repoPath, "git", "config", "user.email", "test@test.com")
	runGitCommand(t, repoPath, "git", "config", "user.name", "Test User")
	runGitCommand(t, repoPath, "git", "config", "commit.gpgsign", "false")

	readmePath := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readmePath, []byte("# "+name+"\n"), 0644); err != nil {
		t.Fatalf("failed to write README: %v", err)
	}
	runGitCommand(t, repoPath, "git", "add", "README.md")
	runGitCommand(t, repoPath, "git", "commit", "-m", "Initial commit")
	runGitCommand(t, repoPath, "git", "remote", "add", "origin", "git@github.com:test/"+name+".git")

	return repoPath
}

// setupWorkspace creates a workspace with one repository per name.
func setupWorkspace(t *testing.T, names ...string) string {
	t.Helper()
	ws := resolvePath(t, t.TempDir())
	for _, name := range names {
		setupTestRepo(t, ws, name)
	}
	return ws
}

// makeDirty creates an untracked file in a repository.
func makeDirty(t *testing.T, repoPath string) {
	t.Helper()

	filePath := filepath.Join(repoPath, "dirty.txt")
	if err := os.WriteFile(filePath, []byte("uncommitted changes\n"), 0644); err != nil {
		t.Fatalf("failed to create dirty file: %v", err)
	}
}

// runGitCommand runs a git command and returns output
func runGitCommand(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to run %v: %v\n%s", args, err, out)
	}
	return string(out)
}

// runNgm executes a fresh command tree in workDir with --quiet and returns
// its stdout. Flags are package globals, so integration tests don't run in
// parallel.
func runNgm(t *testing.T, workDir string, args ...string) (string, error) {
	t.Helper()

	cfg := config.Default()
	var stdout bytes.Buffer
	ctx := newContext(context.Background(), &stdout, &cfg, workDir)

	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"-q"}, args...))
	err := cmd.ExecuteContext(ctx)
	return stdout.String(), err
}

// mustLoadSnapshot loads the stored snapshot of a workspace.
func mustLoadSnapshot(t *testing.T, root string) *snapshot.Snapshot {
	t.Helper()
	s, err := snapshot.Load(root)
	if err != nil {
		t.Fatalf("failed to load snapshot: %v", err)
	}
	return s
}
