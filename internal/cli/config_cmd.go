package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/coyenn/p/internal/ui"
)

type configView struct {
	Path                  string   `json:"path"`
	ProjectsDir           string   `json:"projects_dir"`
	ProjectsRoot          string   `json:"projects_root,omitempty"`
	ProjectManagementTool string   `json:"project_management_tool"`
	VersionRepositories   []string `json:"version_repositories"`
	Editor                string   `json:"editor,omitempty"`
	VersionsDir           string   `json:"versions_dir"`
	ExternalDir           string   `json:"external_dir"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the p configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := getLayout().ConfigFile()
		if isJSONOutput() {
			outputSuccess(map[string]string{"path": path}, nil)
			return nil
		}
		fmt.Fprintln(stdout, path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := getConfig()
		l := getLayout()

		view := configView{
			Path:                  l.ConfigFile(),
			ProjectsDir:           c.ProjectsDir,
			ProjectManagementTool: c.ProjectManagementTool,
			VersionRepositories:   c.VersionRepositories,
			Editor:                c.GetEditor(),
			VersionsDir:           l.VersionsDir(),
			ExternalDir:           l.ExternalDir(),
		}
		if view.VersionRepositories == nil {
			view.VersionRepositories = []string{}
		}
		if root, err := c.ProjectsRoot(); err == nil {
			view.ProjectsRoot = root
		}

		if isJSONOutput() {
			outputSuccess(view, nil)
			return nil
		}

		fmt.Fprintln(stdout, ui.Hint("# "+view.Path))
		if err := toml.NewEncoder(stdout).Encode(c); err != nil {
			return handleError(ErrInternal, err, "")
		}
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, ui.Hint("# resolved"))
		fmt.Fprintf(stdout, "projects root:  %s\n", ui.FilePath(view.ProjectsRoot))
		fmt.Fprintf(stdout, "versions dir:   %s\n", ui.FilePath(view.VersionsDir))
		fmt.Fprintf(stdout, "mirrors:        %s\n", ui.FilePath(view.ExternalDir))
		if view.Editor != "" {
			fmt.Fprintf(stdout, "editor:         %s\n", view.Editor)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
