package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/ngm/internal/config"
	"github.com/raphi011/ngm/internal/git"
	"github.com/raphi011/ngm/internal/log"
	"github.com/raphi011/ngm/internal/output"
	"github.com/raphi011/ngm/internal/ui/styles"
)

var (
	// Global flags
	verbose   bool
	quiet     bool
	rootFlag  string
	fuzzyFlag string
)

// Command group IDs for organizing help output
const (
	GroupGit       = "git"
	GroupWorkspace = "workspace"
	GroupConfig    = "config"
)

// errFailed is returned by commands that already reported their failures.
var errFailed = errors.New("one or more repositories failed")

// newRootCmd builds the command tree. Without a subcommand the root command
// shows the status of every repository.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ngm [project]",
		Short: "Run git across a directory tree of repositories",
		Long: `ngm treats a directory tree containing many git repositories as one fleet.

Repositories are discovered below the workspace root, identified by a
content hash and stored in <root>/.ngm/.ngm-map.json. Commands run
concurrently in every selected repository with live progress feedback.`,
		Args:                       cobra.MaximumNArgs(1),
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2, // Enable typo suggestions
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip setup for completion and help commands
			if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
				return nil
			}
			return setup(cmd)
		},
		ValidArgsFunction: completeProjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context(), projectArg(args))
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Workspace root (default: current directory)")
	rootCmd.PersistentFlags().StringVarP(&fuzzyFlag, "filter", "f", "", "Fuzzy filter on repository paths")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupGit, Title: "Git Commands:"},
		&cobra.Group{ID: GroupWorkspace, Title: "Workspace Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Git commands
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newGitCmd(git.CommandPull, "Pull in every repository"))
	rootCmd.AddCommand(newGitCmd(git.CommandPush, "Push in every repository"))
	rootCmd.AddCommand(newGitCmd(git.CommandAdd, "Stage changes in every repository"))
	rootCmd.AddCommand(newGitCmd(git.CommandCommit, "Commit in every repository"))
	rootCmd.AddCommand(newCheckoutCmd())

	// Workspace commands
	rootCmd.AddCommand(newIndexCmd())
	rootCmd.AddCommand(newProjectCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newURLCmd())

	// Config commands
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// setup resolves the workspace root, merges the workspace-local config and
// attaches everything commands need to the context.
func setup(cmd *cobra.Command) error {
	// Flags are parsed by now, so the logger honours -v and -q
	l := log.New(os.Stderr, verbose, quiet)
	ctx := log.WithLogger(cmd.Context(), l)
	cfg := config.FromContext(ctx)

	workDir := config.WorkDirFromContext(ctx)
	root := workDir
	if rootFlag != "" {
		abs, err := filepath.Abs(rootFlag)
		if err != nil {
			return fmt.Errorf("resolve root: %w", err)
		}
		root = abs
	}

	local, err := config.LoadLocal(root)
	if err != nil {
		l.Printf("Warning: %v\n", err)
	} else if local != nil {
		cfg = config.MergeLocal(cfg, local)
		l.Debug("merged local config", "path", config.LocalConfigPath(root))
	}

	styles.Init(cfg.Theme)

	ctx = config.WithConfig(ctx, cfg)
	ctx = withRoot(ctx, root)
	cmd.SetContext(ctx)

	// Check git is available
	if err := git.CheckGit(cfg.Git); err != nil {
		return err
	}
	if l.IsVerbose() {
		if v, err := git.Version(ctx, cfg.Git); err == nil {
			l.Debug("using git", "binary", cfg.Git, "version", v)
		}
	}
	return nil
}

// Execute builds the command tree and runs it.
func Execute() {
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	// Get working directory
	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ngm: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = newContext(ctx, os.Stdout, &loadedCfg, workDir)

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		// Failed repositories were already reported
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, err)
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, "Run 'ngm -h' for help")
		}
		cancel()
		os.Exit(1)
	}
}

// newContext attaches the output printer, the global config and the working
// directory. The logger is attached once flags are parsed.
func newContext(ctx context.Context, stdout io.Writer, cfg *config.Config, workDir string) context.Context {
	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, stdout)
	ctx = config.WithConfig(ctx, cfg)
	return config.WithWorkDir(ctx, workDir)
}
