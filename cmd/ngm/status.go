package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/raphi011/ngm/internal/config"
	"github.com/raphi011/ngm/internal/dispatch"
	"github.com/raphi011/ngm/internal/format"
	"github.com/raphi011/ngm/internal/git"
	"github.com/raphi011/ngm/internal/log"
	"github.com/raphi011/ngm/internal/output"
	"github.com/raphi011/ngm/internal/repo"
	"github.com/raphi011/ngm/internal/ui/progress"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "status [project]",
		Short:   "Show the status of every repository",
		Aliases: []string{"st"},
		GroupID: GroupGit,
		Args:    cobra.MaximumNArgs(1),
		Long: `Show branch, upstream and changed files of every repository.

With a project name only the project's repositories are queried.
Running ngm without a subcommand is the same as ngm status.`,
		Example: `  ngm status              # All repositories
  ngm status backend      # Repositories of the backend project
  ngm status -f api       # Repositories whose path fuzzy-matches "api"`,
		ValidArgsFunction: completeProjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context(), projectArg(args))
		},
	}
}

func runStatus(ctx context.Context, project string) error {
	_, repos, err := selectRepositories(ctx, project)
	if err != nil {
		return err
	}

	ops := dispatch.Dispatch(ctx, runnerFor(ctx), config.WorkDirFromContext(ctx), repos, git.CommandStatus.Args(), parseStatus)
	outcomes := progress.Display(ctx, uiWriter(), ops, displayOptions(ctx))

	return report(ctx, repos, outcomes)
}

// parseStatus is a dispatch.Mapper for status queries.
func parseStatus(_ repo.Repository, out string) (git.Status, error) {
	return git.ParseStatus(out), nil
}

func displayOptions(ctx context.Context) progress.Options {
	return progress.Options{Interval: config.FromContext(ctx).RefreshInterval()}
}

// report prints the status of every successful repository followed by the
// failures. repos and outcomes share their order. Returns errFailed if any
// repository failed.
func report(ctx context.Context, repos []repo.Repository, outcomes []dispatch.Outcome[git.Status], failed ...*dispatch.GitError) error {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)
	workDir := config.WorkDirFromContext(ctx)

	var entries []format.Entry
	for i, o := range outcomes {
		if o.OK() {
			entries = append(entries, format.Entry{Repository: repos[i], Status: o.Value})
		}
	}
	failed = append(failed, dispatch.Failures(outcomes)...)

	if len(entries) > 0 {
		out.Println(format.Statuses(entries, workDir))
	}
	if len(failed) > 0 {
		if len(entries) > 0 {
			out.Println()
		}
		out.Println(format.Failures(failed, workDir))
		l.Printf("git failed in %d repositories\n", len(failed))
		return errFailed
	}
	return nil
}
