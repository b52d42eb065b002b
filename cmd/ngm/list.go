package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/raphi011/ngm/internal/config"
	"github.com/raphi011/ngm/internal/output"
	"github.com/raphi011/ngm/internal/ui/static"
)

func newListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list [project]",
		Short:   "List repositories",
		Aliases: []string{"ls"},
		GroupID: GroupWorkspace,
		Args:    cobra.MaximumNArgs(1),
		Long: `List the repositories of the snapshot with their branch at index
time, id prefix and web URL.`,
		Example: `  ngm list            # All repositories
  ngm list backend    # Repositories of the backend project
  ngm list --json     # Output as JSON`,
		ValidArgsFunction: completeProjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			_, repos, err := selectRepositories(ctx, projectArg(args))
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(repos)
			}

			if len(repos) == 0 {
				out.Println("No repositories found")
				return nil
			}
			out.Print(static.RenderRepositories(repos, config.WorkDirFromContext(ctx)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
