package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/ngm/internal/config"
	"github.com/raphi011/ngm/internal/format"
	"github.com/raphi011/ngm/internal/log"
	"github.com/raphi011/ngm/internal/output"
	"github.com/raphi011/ngm/internal/snapshot"
)

func newIndexCmd() *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:     "index",
		Short:   "Rediscover and re-identify every repository",
		GroupID: GroupWorkspace,
		Args:    cobra.NoArgs,
		Long: `Walk the workspace root again, index every repository and reconcile
the result with the stored snapshot.

Repositories are matched by path. Projects keep their members: removed
repositories are dropped and changed repositories are replaced by their
new identity. Known branches are carried over.`,
		Example: `  ngm index          # Re-index the workspace
  ngm index --show   # Also print what changed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(cmd.Context(), show)
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Print removed, added and changed repositories")

	return cmd
}

func runIndex(ctx context.Context, show bool) error {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)
	root := rootFromContext(ctx)

	old, err := snapshot.Load(root)
	if err != nil && !errors.Is(err, snapshot.ErrNotFound) {
		return err
	}

	fresh, err := indexWorkspace(ctx)
	if err != nil {
		return err
	}

	next, diff := snapshot.Reconcile(old, fresh)
	if err := snapshot.Save(root, next); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	if show {
		out.Println(format.Reindex(diff, config.WorkDirFromContext(ctx)))
	}
	l.Printf("Indexed %d repositories: %d added, %d changed, %d removed\n",
		len(next.Repositories), len(diff.Created), len(diff.Changed), len(diff.Removed))

	return nil
}
