package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coyenn/p/internal/projects"
	"github.com/coyenn/p/internal/ui"
)

// listVersionLimit is how many versions each project shows in text output.
const listVersionLimit = 3

type listEntry struct {
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Versions []string `json:"versions"`
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List projects with their versions",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectsRoot()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "Set projects_dir in "+getLayout().ConfigFile())
		}
		catalog, err := loadCatalog()
		if err != nil {
			return handleClassified(err)
		}
		inventory, err := projects.Inventory(root, catalog)
		if err != nil {
			return handleError(ErrFileReadError, err, "Check projects_dir in "+getLayout().ConfigFile())
		}

		if isJSONOutput() {
			entries := make([]listEntry, len(inventory))
			for i, e := range inventory {
				entries[i] = listEntry{Name: e.Name, Path: e.Path, Versions: e.VersionNames()}
			}
			outputSuccess(entries, &Meta{Count: len(entries)})
			return nil
		}

		fmt.Fprintln(stdout, ui.Header(ui.Plural(len(inventory), "Project", "Projects")+":"))
		fmt.Fprintln(stdout)

		rows := make([]ui.LeaderRow, len(inventory))
		for i, e := range inventory {
			rows[i] = ui.LeaderRow{
				Name:  e.Name,
				Value: projects.Summarize(e.VersionNames(), listVersionLimit),
			}
		}
		fmt.Fprint(stdout, ui.DotLeaders(rows))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
