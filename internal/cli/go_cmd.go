package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coyenn/p/internal/projects"
)

var goCmd = &cobra.Command{
	Use:     "go <project>",
	Aliases: []string{"g"},
	Short:   "Print the path of a project",
	Long: `Print the absolute path of a project under projects_dir.

Combine with cd, or use the pg helper from 'p aliases':
  cd "$(p go my-project)"`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeProjectNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectsRoot()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		project, err := projects.Lookup(root, args[0])
		if errors.Is(err, projects.ErrProjectNotFound) {
			return handleError(ErrProjectNotFound, fmt.Errorf("Project %s does not exist", args[0]),
				"Run 'p find "+args[0]+"' to search for it")
		}
		if err != nil {
			return handleClassified(err)
		}

		if isJSONOutput() {
			outputSuccess(project, nil)
			return nil
		}
		fmt.Fprintln(stdout, project.Path)
		return nil
	},
}

// completeProjectNames offers project directory names for shell completion.
func completeProjectNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || getConfig() == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	root, err := projectsRoot()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	list, err := projects.List(root)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names := make([]string, 0, len(list))
	for _, p := range list {
		names = append(names, p.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(goCmd)
}
