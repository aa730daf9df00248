package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coyenn/p/internal/shell"
	"github.com/coyenn/p/internal/ui"
)

var aliasesCmd = &cobra.Command{
	Use:   "aliases",
	Short: "Print shell helper functions (p execute -> px)",
	Long: `Print shell functions for common commands:

  pg <project>   cd into a project
  px [args...]   p execute
  pl             p list
  pc             cd into the p config directory
  pi             p info

Add the output to your shell configuration, e.g. ~/.bashrc or ~/.zshrc.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, supported := shell.Detect(os.Getenv("SHELL"))
		aliases := shell.Aliases(getLayout().Root)
		script := shell.Script(kind, aliases)

		if isJSONOutput() {
			outputSuccess(map[string]any{
				"shell":     kind,
				"supported": supported,
				"aliases":   aliases,
				"script":    script,
			}, nil)
			return nil
		}

		if !supported {
			fmt.Fprintln(os.Stderr, ui.Warning("Your shell is not supported. Use the following aliases at your own risk:"))
		} else {
			fmt.Fprintln(stdout, ui.Hint("# p offers some useful shell aliases:"))
		}
		fmt.Fprint(stdout, script)
		fmt.Fprintln(stdout, ui.Hint("# You can add them to your shell configuration file. (e.g. ~/.bashrc, ~/.zshrc, ...)"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(aliasesCmd)
}
