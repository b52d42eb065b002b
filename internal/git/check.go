package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/raphi011/ngm/internal/cmd"
)

// ErrGitNotFound indicates git is not installed or not in PATH
var ErrGitNotFound = fmt.Errorf("git not found: please install git (https://git-scm.com)")

// CheckGit verifies that the configured git binary is available in PATH
func CheckGit(binary string) error {
	if binary == "" {
		binary = DefaultBinary
	}
	if _, err := exec.LookPath(binary); err != nil {
		if binary != DefaultBinary {
			return fmt.Errorf("git binary %q not found: %w", binary, err)
		}
		return ErrGitNotFound
	}
	return nil
}

// Version returns the version line of binary, e.g. "git version 2.47.0".
func Version(ctx context.Context, binary string) (string, error) {
	if binary == "" {
		binary = DefaultBinary
	}
	out, err := cmd.OutputContext(ctx, "", binary, "--version")
	if err != nil {
		return "", fmt.Errorf("git version: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
