package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/raphi011/ngm/internal/log"
)

// Output executes a command and returns stdout, with stderr in error if it fails
func Output(cmd *exec.Cmd) ([]byte, error) {
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		if errMsg := strings.TrimSpace(stderr.String()); errMsg != "" {
			return nil, fmt.Errorf("%s", errMsg)
		}
		return nil, err
	}
	return output, nil
}

// OutputContext executes name with args in dir and returns stdout, logging
// the command in verbose mode. A failure carries stderr as its message and a
// cancelled context is reported as ctx.Err().
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	out, err := Output(c)
	done(time.Since(start))

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	return out, err
}

// ExitError reports a command that ran but exited non-zero. Output holds the
// combined stdout and stderr of the run.
type ExitError struct {
	Name   string
	Code   int
	Output string
}

func (e *ExitError) Error() string {
	if msg := strings.TrimSpace(e.Output); msg != "" {
		return msg
	}
	return fmt.Sprintf("%s exited with status %d", e.Name, e.Code)
}

// CombinedContext executes name with args in dir and returns interleaved
// stdout and stderr. A non-zero exit returns the output together with an *ExitError.
func CombinedContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	out, err := c.CombinedOutput()
	done(time.Since(start))

	if ctxErr := ctx.Err(); ctxErr != nil {
		return out, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out, &ExitError{Name: name, Code: exitErr.ExitCode(), Output: string(out)}
	}
	return out, err
}
