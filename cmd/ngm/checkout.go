package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/ngm/internal/git"
	"github.com/raphi011/ngm/internal/log"
	"github.com/raphi011/ngm/internal/snapshot"
)

func newCheckoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "checkout [project] [-- git args]",
		Short:   "Check out a branch in every repository",
		Aliases: []string{"co"},
		GroupID: GroupGit,
		Long: `Run git checkout concurrently in every repository.

The branch a checkout switches to is remembered for each repository it
succeeded in. With a project and no git arguments, the project's branch
is checked out.`,
		Example: `  ngm checkout -- main              # Check out main everywhere
  ngm checkout backend              # Check out the backend project branch
  ngm checkout backend -- -b topic  # Create topic in the backend repositories`,
		ValidArgsFunction: completeProjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, extra, err := splitArgs(cmd, args)
			if err != nil {
				return err
			}
			return runCheckout(cmd.Context(), project, extra)
		},
	}

	return cmd
}

func runCheckout(ctx context.Context, project string, extra []string) error {
	l := log.FromContext(ctx)

	s, repos, err := selectRepositories(ctx, project)
	if err != nil {
		return err
	}

	if len(extra) == 0 {
		if project == "" {
			return fmt.Errorf("no branch given: pass one after --, e.g. ngm checkout -- main")
		}
		p, _ := s.Project(project)
		if p.Branch == "" {
			return fmt.Errorf("project %s has no branch: pass one after --", project)
		}
		extra = []string{p.Branch}
	}

	run, runErr := dispatchGit(ctx, s, repos, git.CommandCheckout.Args(extra...))

	target := git.CheckoutTarget(extra)
	if target == "" || len(run.succeeded) == 0 {
		return runErr
	}

	next := run.snapshot
	for _, r := range run.succeeded {
		if next, err = next.WithKnownBranches(r.ID, target); err != nil {
			return err
		}
	}
	if err := snapshot.Save(rootFromContext(ctx), next); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	l.Debug("recorded known branch", "branch", target, "repositories", len(run.succeeded))

	return runErr
}
