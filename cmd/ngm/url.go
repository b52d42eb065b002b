package main

import (
	"fmt"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/ngm/internal/config"
	"github.com/raphi011/ngm/internal/log"
	"github.com/raphi011/ngm/internal/output"
	"github.com/raphi011/ngm/internal/snapshot"
	"github.com/raphi011/ngm/internal/ui/progress"
	"github.com/raphi011/ngm/internal/ui/styles"
)

func newURLCmd() *cobra.Command {
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:     "url [path]",
		Short:   "Print the web URL of a repository",
		GroupID: GroupWorkspace,
		Args:    cobra.MaximumNArgs(1),
		Long: `Print the web URL derived from the primary remote of the repository
containing path (default: the working directory).`,
		Example: `  ngm url              # URL of the current repository
  ngm url services/api # URL of another repository
  ngm url --copy       # Copy the URL to the clipboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)
			workDir := config.WorkDirFromContext(ctx)

			target := workDir
			if len(args) == 1 {
				target = args[0]
				if !filepath.IsAbs(target) {
					target = filepath.Join(workDir, target)
				}
			}

			s, err := loadSnapshot(ctx)
			if err != nil {
				return err
			}

			r, ok := s.RepositoryContaining(filepath.Clean(target))
			if !ok {
				return fmt.Errorf("%w: no repository contains %s", snapshot.ErrUnknownRepository, target)
			}
			if r.URL == "" {
				return fmt.Errorf("%s has no remote to derive a URL from", r.Label(workDir))
			}

			if copyToClipboard {
				if err := clipboard.WriteAll(r.URL); err != nil {
					l.Printf("Warning: failed to copy to clipboard: %v\n", err)
				} else {
					l.Printf("Copied %s to clipboard\n", r.URL)
				}
			}

			if progress.IsTerminal(out.Writer()) {
				out.Println(styles.Link(r.URL, r.URL))
			} else {
				out.Println(r.URL)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy the URL to the clipboard")

	return cmd
}
