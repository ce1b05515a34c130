// Copyright 2025 Nandor Kis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import "github.com/spf13/cobra"

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for orderdesk.

To load completions:

Bash:
  $ source <(orderdesk completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ orderdesk completion bash > /etc/bash_completion.d/orderdesk
  # macOS:
  $ orderdesk completion bash > $(brew --prefix)/etc/bash_completion.d/orderdesk

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ orderdesk completion zsh > "${fpath[1]}/_orderdesk"

  # You may need to start a new shell for this setup to take effect.

Fish:
  $ orderdesk completion fish | source

  # To load completions for each session, execute once:
  $ orderdesk completion fish > ~/.config/fish/completions/orderdesk.fish

PowerShell:
  PS> orderdesk completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> orderdesk completion powershell > orderdesk.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletionV2(out, true)
		case "zsh":
			return cmd.Root().GenZshCompletion(out)
		case "fish":
			return cmd.Root().GenFishCompletion(out, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
