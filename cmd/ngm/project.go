package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raphi011/ngm/internal/config"
	"github.com/raphi011/ngm/internal/log"
	"github.com/raphi011/ngm/internal/output"
	"github.com/raphi011/ngm/internal/repo"
	"github.com/raphi011/ngm/internal/snapshot"
	"github.com/raphi011/ngm/internal/ui/progress"
	"github.com/raphi011/ngm/internal/ui/prompt"
	"github.com/raphi011/ngm/internal/ui/static"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Short:   "Manage projects",
		Aliases: []string{"p"},
		GroupID: GroupWorkspace,
		Long: `Manage projects: named groups of repositories with an optional branch.

A project name can be passed to status, list and the git commands to run
them against the project's repositories only.`,
		Example: `  ngm project create backend feature-x   # Create a project
  ngm project add backend api worker     # Add repositories by path
  ngm project remove backend worker      # Remove a repository
  ngm project list                       # List projects
  ngm project delete backend             # Delete a project`,
	}

	cmd.AddCommand(newProjectCreateCmd())
	cmd.AddCommand(newProjectAddCmd())
	cmd.AddCommand(newProjectRemoveCmd())
	cmd.AddCommand(newProjectListCmd())
	cmd.AddCommand(newProjectDeleteCmd())

	return cmd
}

func newProjectCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name> [branch] [path...]",
		Short: "Create a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			branch := ""
			if len(args) > 1 {
				branch = args[1]
			}

			return updateSnapshot(ctx, func(s *snapshot.Snapshot) (*snapshot.Snapshot, error) {
				s, p, err := s.CreateProject(args[0], branch)
				if err != nil {
					return nil, err
				}
				log.FromContext(ctx).Printf("Created project %s\n", p.Name)
				if len(args) < 3 {
					return s, nil
				}
				return addPaths(ctx, s, p.Name, args[2:])
			})
		},
	}
}

func newProjectAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "add <name> <path...>",
		Short:             "Add repositories to a project",
		Args:              cobra.MinimumNArgs(2),
		ValidArgsFunction: completeProjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return updateSnapshot(ctx, func(s *snapshot.Snapshot) (*snapshot.Snapshot, error) {
				return addPaths(ctx, s, args[0], args[1:])
			})
		},
	}
}

func newProjectRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "remove <name> <path...>",
		Short:             "Remove repositories from a project",
		Aliases:           []string{"rm"},
		Args:              cobra.MinimumNArgs(2),
		ValidArgsFunction: completeProjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return updateSnapshot(ctx, func(s *snapshot.Snapshot) (*snapshot.Snapshot, error) {
				ids, err := resolvePaths(ctx, s, args[1:])
				if err != nil {
					return nil, err
				}
				s, err = s.RemoveFromProject(args[0], ids...)
				if err != nil {
					return nil, err
				}
				log.FromContext(ctx).Printf("Removed %d repositories from %s\n", len(ids), args[0])
				return s, nil
			})
		},
	}
}

func newProjectDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:               "delete <name>",
		Short:             "Delete a project",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProjects,
		Long: `Delete a project. Its repositories are untouched.

Asks for confirmation on a terminal unless --yes is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			if !yes && progress.IsTerminal(os.Stdin) {
				res, err := prompt.Confirm(os.Stdin, os.Stderr, fmt.Sprintf("Delete project %s?", name))
				if err != nil {
					return err
				}
				if !res.Confirmed {
					log.FromContext(ctx).Println("Aborted")
					return nil
				}
			}

			return updateSnapshot(ctx, func(s *snapshot.Snapshot) (*snapshot.Snapshot, error) {
				s, err := s.DeleteProject(name)
				if err != nil {
					return nil, err
				}
				log.FromContext(ctx).Printf("Deleted project %s\n", name)
				return s, nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")

	return cmd
}

func newProjectListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List projects",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			workDir := config.WorkDirFromContext(ctx)

			s, err := loadSnapshot(ctx)
			if err != nil {
				return err
			}
			if len(s.Projects) == 0 {
				out.Println("No projects")
				return nil
			}

			rows := make([]static.ProjectRow, len(s.Projects))
			for i, p := range s.Projects {
				rows[i] = static.ProjectRow{Name: p.Name, Branch: p.Branch}
				for _, r := range s.ProjectRepositories(p) {
					rows[i].Repositories = append(rows[i].Repositories, r.Label(workDir))
				}
			}
			out.Print(static.RenderProjects(rows))
			return nil
		},
	}
}

// updateSnapshot loads the snapshot, applies fn and saves the result.
func updateSnapshot(ctx context.Context, fn func(*snapshot.Snapshot) (*snapshot.Snapshot, error)) error {
	s, err := loadSnapshot(ctx)
	if err != nil {
		return err
	}
	next, err := fn(s)
	if err != nil {
		return err
	}
	if err := snapshot.Save(rootFromContext(ctx), next); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func addPaths(ctx context.Context, s *snapshot.Snapshot, name string, paths []string) (*snapshot.Snapshot, error) {
	ids, err := resolvePaths(ctx, s, paths)
	if err != nil {
		return nil, err
	}
	s, err = s.AddToProject(name, ids...)
	if err != nil {
		return nil, err
	}
	log.FromContext(ctx).Printf("Added %d repositories to %s\n", len(ids), name)
	return s, nil
}

// resolvePaths maps paths, relative to the working directory, to the ids of
// the repositories at those paths.
func resolvePaths(ctx context.Context, s *snapshot.Snapshot, paths []string) ([]repo.ID, error) {
	workDir := config.WorkDirFromContext(ctx)

	ids := make([]repo.ID, 0, len(paths))
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(workDir, p)
		}
		r, ok := s.RepositoryByPath(filepath.Clean(p))
		if !ok {
			return nil, fmt.Errorf("%w: %s (run ngm index if it was added recently)", snapshot.ErrUnknownRepository, p)
		}
		ids = append(ids, r.ID)
	}
	return ids, nil
}
