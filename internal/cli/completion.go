package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

const completionHelp = `Generate shell completion scripts for APP.

Bash:
  $ source <(APP completion bash)

Zsh:
  $ APP completion zsh > "${fpath[1]}/_APP"

Fish:
  $ APP completion fish > ~/.config/fish/completions/APP.fish

PowerShell:
  PS> APP completion powershell | Out-String | Invoke-Expression
`

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  strings.ReplaceAll(completionHelp, "APP", appName),
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
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
