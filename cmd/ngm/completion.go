package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/ngm/internal/snapshot"
)

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "completion <shell>",
		Short:     "Generate completion script",
		GroupID:   GroupConfig,
		Long:      `Generate shell completion script.`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.ExactArgs(1),
		Example: `  # Fish
  ngm completion fish > ~/.config/fish/completions/ngm.fish

  # Bash
  ngm completion bash > ~/.local/share/bash-completion/completions/ngm

  # Zsh
  ngm completion zsh > ~/.zfunc/_ngm
  # Then add ~/.zfunc to fpath in .zshrc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

// completeProjects provides project name completion for the first argument.
// It reads the stored snapshot only and never indexes.
func completeProjects(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	root := rootFlag
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		root = wd
	}

	s, err := snapshot.Load(root)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var matches []string
	for _, p := range s.Projects {
		if strings.HasPrefix(p.Name, toComplete) {
			matches = append(matches, p.Name)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
