package cli

import "github.com/spf13/cobra"

// completionCommand prints shell completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Print a shell completion script",
		Long: `Generate shell completion scripts for cascade.

To load completions:

Bash:
  $ source <(cascade completion bash)

  # Persist for new shells:
  $ cascade completion bash > /etc/bash_completion.d/cascade

Zsh:
  # compinit must be enabled in ~/.zshrc.
  $ cascade completion zsh > "${fpath[1]}/_cascade"

Fish:
  $ cascade completion fish | source

  $ cascade completion fish > ~/.config/fish/completions/cascade.fish

PowerShell:
  PS> cascade completion powershell | Out-String | Invoke-Expression

  PS> cascade completion powershell > cascade.ps1   # source from $PROFILE
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
