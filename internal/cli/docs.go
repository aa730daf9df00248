package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coyenn/p/docs"
	"github.com/coyenn/p/internal/ui"
)

var docsCmd = &cobra.Command{
	Use:       "docs [topic]",
	Short:     "Read the bundled guides",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: docs.Topics(),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			topics := docs.Topics()
			if isJSONOutput() {
				outputSuccess(map[string][]string{"topics": topics}, &Meta{Count: len(topics)})
				return nil
			}
			fmt.Fprintln(stdout, ui.Header("Topics:"))
			for _, t := range topics {
				fmt.Fprintf(stdout, "  %s\n", ui.Accent.Render(t))
			}
			fmt.Fprintln(stdout, ui.Hint("Run 'p docs <topic>' to read one."))
			return nil
		}

		text, err := docs.Read(args[0])
		if err != nil {
			return handleErrorMsg(ErrInvalidInput, fmt.Sprintf("unknown topic %q", args[0]), "Run 'p docs' to list topics")
		}
		if isJSONOutput() {
			outputSuccess(map[string]string{"topic": args[0], "markdown": text}, nil)
			return nil
		}

		display := ui.NewDisplayContext()
		if !display.IsTTY {
			fmt.Fprint(stdout, text)
			return nil
		}
		rendered, err := ui.RenderMarkdown(text, display.AvailableWidth(2))
		if err != nil {
			fmt.Fprint(stdout, text)
			return nil
		}
		fmt.Fprint(stdout, rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
