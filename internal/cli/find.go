package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coyenn/p/internal/projects"
	"github.com/coyenn/p/internal/ui"
)

var findLimit int

var findCmd = &cobra.Command{
	Use:     "find <query>",
	Aliases: []string{"f"},
	Short:   "Fuzzy search project names",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]
		root, err := projectsRoot()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		list, err := projects.List(root)
		if err != nil {
			return handleError(ErrFileReadError, err, "Check projects_dir in "+getLayout().ConfigFile())
		}

		matches := projects.Find(list, query, findLimit)
		if isJSONOutput() {
			if matches == nil {
				matches = []projects.Match{}
			}
			outputSuccess(matches, &Meta{Count: len(matches)})
			return nil
		}

		if len(matches) == 0 {
			fmt.Fprintf(stdout, "No project %q found\n", query)
			return nil
		}
		fmt.Fprintln(stdout, ui.Header(fmt.Sprintf("Search results for %q:", query)))
		for _, m := range matches {
			fmt.Fprintln(stdout, m.Name)
		}
		return nil
	},
}

func init() {
	findCmd.Flags().IntVarP(&findLimit, "limit", "n", projects.DefaultFindLimit, "Maximum number of results")
	rootCmd.AddCommand(findCmd)
}
