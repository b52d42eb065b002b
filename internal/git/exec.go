package git

import (
	"context"

	"github.com/raphi011/ngm/internal/cmd"
)

// DefaultBinary is the git executable used when none is configured.
const DefaultBinary = "git"

// Runner invokes the external version-control tool with dir as working
// directory. It returns the combined output; a failed invocation returns a
// non-nil error (a *cmd.ExitError when the tool ran and exited non-zero),
// possibly alongside the output it produced.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, dir string, args ...string) (string, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, dir string, args ...string) (string, error) {
	return f(ctx, dir, args...)
}

// ExecRunner runs a git binary as a child process.
type ExecRunner struct {
	Binary string
}

// NewRunner returns a Runner for the given binary, falling back to DefaultBinary.
func NewRunner(binary string) *ExecRunner {
	if binary == "" {
		binary = DefaultBinary
	}
	return &ExecRunner{Binary: binary}
}

// Run executes the binary with args in dir.
func (r *ExecRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	out, err := cmd.CombinedContext(ctx, dir, r.Binary, args...)
	return string(out), err
}
