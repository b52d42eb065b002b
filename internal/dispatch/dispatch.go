package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/raphi011/ngm/internal/git"
	"github.com/raphi011/ngm/internal/repo"
)

// GitError is a failed git invocation in one repository.
type GitError struct {
	Repository repo.Repository
	Args       []string
	Output     string
	Err        error
}

func (e *GitError) Error() string {
	msg := strings.TrimSpace(e.Output)
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Repository.Path, msg)
}

func (e *GitError) Unwrap() error {
	return e.Err
}

// Outcome is the settled result of an operation. Exactly one of Value and
// Err is meaningful: Err is nil on success.
type Outcome[R any] struct {
	Value R
	Err   *GitError
}

// OK reports whether the operation succeeded.
func (o Outcome[R]) OK() bool {
	return o.Err == nil
}

// Mapper turns the output of a successful command into a result.
type Mapper[R any] func(r repo.Repository, output string) (R, error)

// Output is a Mapper that keeps the raw command output.
func Output(_ repo.Repository, output string) (string, error) {
	return output, nil
}

// Operation is an in-flight command against one repository.
type Operation[R any] struct {
	label   string
	repo    repo.Repository
	done    chan struct{}
	outcome Outcome[R]
}

// Label is the repository path relative to the working directory.
func (o *Operation[R]) Label() string { return o.label }

// Repository is the repository the command runs in.
func (o *Operation[R]) Repository() repo.Repository { return o.repo }

// Done is closed once the operation settled.
func (o *Operation[R]) Done() <-chan struct{} { return o.done }

// Settled reports whether the operation finished without blocking.
func (o *Operation[R]) Settled() bool {
	select {
	case <-o.done:
		return true
	default:
		return false
	}
}

// Outcome blocks until the operation settled and returns its result.
func (o *Operation[R]) Outcome() Outcome[R] {
	<-o.done
	return o.outcome
}

// Dispatch runs git with args in every repository concurrently and returns
// one operation per repository, in input order. workDir is used for labels.
//
// There is no per-command timeout: a hung git process keeps its operation
// pending until ctx is cancelled.
func Dispatch[R any](ctx context.Context, runner git.Runner, workDir string, repos []repo.Repository, args []string, mapper Mapper[R]) []*Operation[R] {
	ops := make([]*Operation[R], len(repos))
	for i, r := range repos {
		op := &Operation[R]{
			label: repo.Label(workDir, r.Path),
			repo:  r,
			done:  make(chan struct{}),
		}
		ops[i] = op
		go op.run(ctx, runner, args, mapper)
	}
	return ops
}

func (o *Operation[R]) run(ctx context.Context, runner git.Runner, args []string, mapper Mapper[R]) {
	defer close(o.done)

	fail := func(output string, err error) {
		o.outcome = Outcome[R]{Err: &GitError{
			Repository: o.repo,
			Args:       args,
			Output:     output,
			Err:        err,
		}}
	}

	out, err := runner.Run(ctx, o.repo.Path, args...)
	if err != nil {
		fail(out, err)
		return
	}

	v, err := mapper(o.repo, out)
	if err != nil {
		fail(out, err)
		return
	}
	o.outcome = Outcome[R]{Value: v}
}

// Wait blocks until every operation settled and returns the outcomes in the
// order of ops.
func Wait[R any](ops []*Operation[R]) []Outcome[R] {
	outcomes := make([]Outcome[R], len(ops))
	for i, op := range ops {
		outcomes[i] = op.Outcome()
	}
	return outcomes
}

// Failures returns the errors of the failed outcomes, in order.
func Failures[R any](outcomes []Outcome[R]) []*GitError {
	var failed []*GitError
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o.Err)
		}
	}
	return failed
}

// Err joins all failures into one error, or returns nil if every outcome
// succeeded.
func Err[R any](outcomes []Outcome[R]) error {
	var errs []error
	for _, f := range Failures(outcomes) {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}
