//go:build integration

package main

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/raphi011/ngm/internal/snapshot"
)

func TestIndex_CreatesSnapshot(t *testing.T) {
	ws := setupWorkspace(t, "api", "web")

	out, err := runNgm(t, ws, "index", "--show")
	if err != nil {
		t.Fatalf("ngm index failed: %v", err)
	}

	out = ansi.Strip(out)
	for _, want := range []string{"Added Repositories", "+ api", "+ web"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}

	s := mustLoadSnapshot(t, ws)
	if len(s.Repositories) != 2 {
		t.Fatalf("expected 2 repositories, got %d", len(s.Repositories))
	}
	api := s.Repositories[0]
	if api.Branch != "main" || api.URL != "https://github.com/test/api" {
		t.Errorf("unexpected record: %+v", api)
	}
}

func TestIndex_ReportsBranchChange(t *testing.T) {
	ws := setupWorkspace(t, "api")
	if _, err := runNgm(t, ws, "index"); err != nil {
		t.Fatalf("ngm index failed: %v", err)
	}

	runGitCommand(t, filepath.Join(ws, "api"), "git", "checkout", "-b", "feature")

	out, err := runNgm(t, ws, "index", "--show")
	if err != nil {
		t.Fatalf("ngm index failed: %v", err)
	}
	out = ansi.Strip(out)
	if !strings.Contains(out, "Changed Repositories") || !strings.Contains(out, `+  "branch": "feature",`) {
		t.Errorf("expected a branch diff, got:\n%s", out)
	}
}

func TestStatus_ShowsChanges(t *testing.T) {
	ws := setupWorkspace(t, "api", "web")
	makeDirty(t, filepath.Join(ws, "web"))

	out, err := runNgm(t, ws, "status")
	if err != nil {
		t.Fatalf("ngm status failed: %v", err)
	}

	out = ansi.Strip(out)
	if !strings.Contains(out, "api [main | no upstream]") {
		t.Errorf("expected clean api block, got:\n%s", out)
	}
	if !strings.Contains(out, "  ? dirty.txt") {
		t.Errorf("expected untracked file, got:\n%s", out)
	}
	if strings.Index(out, "api") > strings.Index(out, "web") {
		t.Errorf("expected repositories in path order, got:\n%s", out)
	}

	// The first command indexes the workspace.
	if _, err := os.Stat(snapshot.Path(ws)); err != nil {
		t.Errorf("expected snapshot to be created: %v", err)
	}
}

func TestStatus_Filter(t *testing.T) {
	ws := setupWorkspace(t, "api", "web")

	out, err := runNgm(t, ws, "status", "-f", "we")
	if err != nil {
		t.Fatalf("ngm status failed: %v", err)
	}
	out = ansi.Strip(out)
	if strings.Contains(out, "api") || !strings.Contains(out, "web") {
		t.Errorf("expected only web, got:\n%s", out)
	}
}

func TestPull_FailureExitsWithError(t *testing.T) {
	ws := setupWorkspace(t, "api")

	out, err := runNgm(t, ws, "pull")
	if !errors.Is(err, errFailed) {
		t.Fatalf("expected errFailed, got %v", err)
	}
	if !strings.Contains(ansi.Strip(out), "api (git pull)") {
		t.Errorf("expected failure block, got:\n%s", out)
	}
}

func TestProject_Lifecycle(t *testing.T) {
	ws := setupWorkspace(t, "api", "web", "docs")

	if _, err := runNgm(t, ws, "project", "create", "backend", "feature", "api", "web"); err != nil {
		t.Fatalf("project create failed: %v", err)
	}
	if _, err := runNgm(t, ws, "project", "remove", "backend", "web"); err != nil {
		t.Fatalf("project remove failed: %v", err)
	}

	out, err := runNgm(t, ws, "project", "list")
	if err != nil {
		t.Fatalf("project list failed: %v", err)
	}
	out = ansi.Strip(out)
	if !strings.Contains(out, "backend") || !strings.Contains(out, "api") || strings.Contains(out, "web") {
		t.Errorf("unexpected project list:\n%s", out)
	}

	out, err = runNgm(t, ws, "list", "backend")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if out = ansi.Strip(out); strings.Contains(out, "docs") {
		t.Errorf("expected only project members, got:\n%s", out)
	}

	if _, err := runNgm(t, ws, "project", "delete", "-y", "backend"); err != nil {
		t.Fatalf("project delete failed: %v", err)
	}
	if _, ok := mustLoadSnapshot(t, ws).Project("backend"); ok {
		t.Error("expected project to be deleted")
	}
}

func TestProject_UnknownPath(t *testing.T) {
	ws := setupWorkspace(t, "api")

	_, err := runNgm(t, ws, "project", "create", "backend", "main", "missing")
	if !errors.Is(err, snapshot.ErrUnknownRepository) {
		t.Fatalf("expected ErrUnknownRepository, got %v", err)
	}
	if _, ok := mustLoadSnapshot(t, ws).Project("backend"); ok {
		t.Error("failed command must not save the project")
	}
}

func TestCheckout_RecordsKnownBranch(t *testing.T) {
	ws := setupWorkspace(t, "api", "web")

	if _, err := runNgm(t, ws, "checkout", "--", "-b", "topic"); err != nil {
		t.Fatalf("ngm checkout failed: %v", err)
	}

	for _, r := range mustLoadSnapshot(t, ws).Repositories {
		if !slices.Contains(r.Branches, "topic") {
			t.Errorf("%s: expected topic in known branches, got %v", r.Path, r.Branches)
		}
	}

	branch := strings.TrimSpace(runGitCommand(t, filepath.Join(ws, "web"), "git", "rev-parse", "--abbrev-ref", "HEAD"))
	if branch != "topic" {
		t.Errorf("expected web on topic, got %s", branch)
	}
}

func TestCheckout_ProjectBranch(t *testing.T) {
	ws := setupWorkspace(t, "api", "web")
	runGitCommand(t, filepath.Join(ws, "api"), "git", "branch", "release")

	if _, err := runNgm(t, ws, "project", "create", "rel", "release", "api"); err != nil {
		t.Fatalf("project create failed: %v", err)
	}
	if _, err := runNgm(t, ws, "checkout", "rel"); err != nil {
		t.Fatalf("ngm checkout failed: %v", err)
	}

	branch := strings.TrimSpace(runGitCommand(t, filepath.Join(ws, "api"), "git", "rev-parse", "--abbrev-ref", "HEAD"))
	if branch != "release" {
		t.Errorf("expected api on release, got %s", branch)
	}
	branch = strings.TrimSpace(runGitCommand(t, filepath.Join(ws, "web"), "git", "rev-parse", "--abbrev-ref", "HEAD"))
	if branch != "main" {
		t.Errorf("expected web untouched on main, got %s", branch)
	}
}

func TestURL(t *testing.T) {
	ws := setupWorkspace(t, "api")

	out, err := runNgm(t, filepath.Join(ws, "api"), "url", "--root", ws)
	if err != nil {
		t.Fatalf("ngm url failed: %v", err)
	}
	if strings.TrimSpace(out) != "https://github.com/test/api" {
		t.Errorf("unexpected url output %q", out)
	}
}
