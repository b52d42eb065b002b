package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/ngm/internal/config"
	"github.com/raphi011/ngm/internal/dispatch"
	"github.com/raphi011/ngm/internal/format"
	"github.com/raphi011/ngm/internal/git"
	"github.com/raphi011/ngm/internal/log"
	"github.com/raphi011/ngm/internal/repo"
	"github.com/raphi011/ngm/internal/snapshot"
	"github.com/raphi011/ngm/internal/ui/progress"
)

// newGitCmd builds a command that runs `git <command> [args]` in every
// selected repository.
func newGitCmd(command git.Command, short string) *cobra.Command {
	name := string(command)
	return &cobra.Command{
		Use:     name + " [project] [-- git args]",
		Short:   short,
		GroupID: GroupGit,
		Long: fmt.Sprintf(`Run git %s concurrently in every repository.

Arguments after -- are passed to git unchanged. The status of every
repository is shown afterwards; ngm exits with status 1 if git failed in
any repository.`, name),
		Example: fmt.Sprintf(`  ngm %[1]s                  # All repositories
  ngm %[1]s backend          # Repositories of the backend project
  ngm %[1]s -f api -- <args> # Pass extra arguments to git`, name),
		ValidArgsFunction: completeProjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, extra, err := splitArgs(cmd, args)
			if err != nil {
				return err
			}
			_, err = runGit(cmd.Context(), command, project, extra)
			return err
		},
	}
}

// splitArgs separates the optional project name from the git arguments
// following "--".
func splitArgs(cmd *cobra.Command, args []string) (string, []string, error) {
	before, extra := args, []string(nil)
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		before, extra = args[:dash], args[dash:]
	}
	if len(before) > 1 {
		return "", nil, fmt.Errorf("accepts at most one project, received %d: %v (pass git arguments after --)", len(before), before)
	}
	return projectArg(before), extra, nil
}

// gitRun is the result of dispatching a git command.
type gitRun struct {
	snapshot  *snapshot.Snapshot
	repos     []repo.Repository
	succeeded []repo.Repository
}

// runGit dispatches command with extra arguments to the selected
// repositories, shows the live display and reports the status of every
// repository the command succeeded in.
func runGit(ctx context.Context, command git.Command, project string, extra []string) (gitRun, error) {
	s, repos, err := selectRepositories(ctx, project)
	if err != nil {
		return gitRun{}, err
	}
	return dispatchGit(ctx, s, repos, command.Args(extra...))
}

func dispatchGit(ctx context.Context, s *snapshot.Snapshot, repos []repo.Repository, args []string) (gitRun, error) {
	l := log.FromContext(ctx)
	workDir := config.WorkDirFromContext(ctx)
	runner := runnerFor(ctx)

	ops := dispatch.Dispatch(ctx, runner, workDir, repos, args, dispatch.Output)
	outcomes := progress.Display(ctx, uiWriter(), ops, displayOptions(ctx))

	run := gitRun{snapshot: s, repos: repos}
	for i, o := range outcomes {
		if !o.OK() {
			continue
		}
		run.succeeded = append(run.succeeded, repos[i])
		if l.IsVerbose() {
			fmt.Fprintln(l.Writer(), format.Output(repos[i], o.Value, workDir))
		}
	}

	// Enrich the successful repositories with their status.
	statusOps := dispatch.Dispatch(ctx, runner, workDir, run.succeeded, git.CommandStatus.Args(), parseStatus)
	statuses := dispatch.Wait(statusOps)

	return run, report(ctx, run.succeeded, statuses, dispatch.Failures(outcomes)...)
}
