package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coyenn/p/internal/config"
	"github.com/coyenn/p/internal/repositories"
	"github.com/coyenn/p/internal/ui"
)

var repoCmd = &cobra.Command{
	Use:     "repo",
	Aliases: []string{"repository"},
	Short:   "Manage external version repositories",
	Long: `External version repositories are git repositories holding a versions/
directory of definitions. They are listed under version_repositories in
config.toml and mirrored locally by 'p repo sync'.`,
}

var repoSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Clone, update and prune the local mirrors",
	Long: `Bring the local mirrors in line with version_repositories: missing
repositories are cloned, existing ones are cleaned and pulled, and mirrors
of repositories no longer configured are deleted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, err := configuredSources()
		if err != nil {
			return handleClassified(err)
		}

		if len(sources) > 0 {
			if err := (repositories.ExecRunner{}).Available(); err != nil {
				return handleClassified(err)
			}
		}

		var reporter repositories.Reporter
		if !isJSONOutput() {
			fmt.Fprintln(stdout, "Syncing version repositories...")
			if len(sources) == 0 {
				fmt.Fprintln(stdout, ui.Info("No external version repositories found in config"))
			}
			reporter = newSpinnerReporter(stdout)
		}

		manager := repositories.NewManager(
			getLayout().ExternalDir(),
			repositories.NewGitMirror(nil, logger),
			reporter,
			logger,
		)
		outcome, err := manager.Sync(cmd.Context(), sources)
		if err != nil {
			return handleClassified(err)
		}

		if isJSONOutput() {
			outputSuccess(outcome, nil)
			return nil
		}
		fmt.Fprintln(stdout, ui.Success("Done syncing version repositories"))
		return nil
	},
}

var repoAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Add a version repository to the config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := strings.TrimSpace(args[0])
		src, err := repositories.NewSource(url)
		if err != nil {
			return handleClassified(err)
		}

		c := getConfig()
		if !c.HasRepository(url) {
			// reject before saving so config never holds two urls for one mirror
			if _, err := repositories.ParseSources(append(append([]string{}, c.VersionRepositories...), url)); err != nil {
				return handleClassified(err)
			}
		}

		added := c.AddRepository(url)
		if added {
			if err := config.SaveTo(getLayout().ConfigFile(), c); err != nil {
				return handleError(ErrFileWriteError, err, "")
			}
		}

		if isJSONOutput() {
			outputSuccess(map[string]any{"source": src, "added": added}, nil)
			return nil
		}
		if !added {
			fmt.Fprintln(stdout, ui.Infof("%s is already in your config", url))
			return nil
		}
		fmt.Fprintln(stdout, ui.Successf("Added %s", url))
		fmt.Fprintln(stdout, ui.Hint("Run 'p repo sync' to fetch it."))
		return nil
	},
}

var repoRemoveCmd = &cobra.Command{
	Use:     "remove <url>",
	Aliases: []string{"rm"},
	Short:   "Remove a version repository from the config",
	Long: `Remove a version repository from the config. Its local mirror is deleted
by the next 'p repo sync'.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeRepositoryURLs,
	RunE: func(cmd *cobra.Command, args []string) error {
		url := strings.TrimSpace(args[0])
		c := getConfig()

		removed := c.RemoveRepository(url)
		if removed {
			if err := config.SaveTo(getLayout().ConfigFile(), c); err != nil {
				return handleError(ErrFileWriteError, err, "")
			}
		}

		if isJSONOutput() {
			outputSuccess(map[string]any{"url": url, "removed": removed}, nil)
			return nil
		}
		if !removed {
			fmt.Fprintln(stdout, ui.Warningf("%s is not in your config", url))
			return nil
		}
		fmt.Fprintln(stdout, ui.Successf("Removed %s", url))
		fmt.Fprintln(stdout, ui.Hint("Run 'p repo sync' to delete its local mirror."))
		return nil
	},
}

type repoListEntry struct {
	URL    string `json:"url"`
	Name   string `json:"name"`
	Synced bool   `json:"synced"`
}

var repoListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List configured version repositories",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, err := configuredSources()
		if err != nil {
			return handleClassified(err)
		}

		root := getLayout().ExternalDir()
		entries := make([]repoListEntry, len(sources))
		for i, s := range sources {
			entries[i] = repoListEntry{URL: s.URL, Name: s.Name, Synced: s.Present(root)}
		}

		if isJSONOutput() {
			outputSuccess(entries, &Meta{Count: len(entries)})
			return nil
		}
		if len(entries) == 0 {
			fmt.Fprintln(stdout, ui.Info("No external version repositories configured"))
			fmt.Fprintln(stdout, ui.Hint("Add one with 'p repo add <url>'."))
			return nil
		}

		rows := make([][]string, len(entries))
		for i, e := range entries {
			status := ui.Success("synced")
			if !e.Synced {
				status = ui.Warning("not synced")
			}
			rows[i] = []string{e.Name, e.URL, status}
		}
		fmt.Fprint(stdout, ui.Grid([]ui.Column{
			{Header: "NAME", Style: ui.Accent},
			{Header: "URL"},
			{Header: "STATUS"},
		}, rows))
		return nil
	},
}

var repoGoCmd = &cobra.Command{
	Use:   "go [name]",
	Short: "Print the directory holding the mirrors, or one mirror",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l := getLayout()
		path := l.ExternalDir()
		if len(args) == 1 {
			path = l.MirrorDir(args[0])
			if info, err := os.Stat(path); err != nil || !info.IsDir() {
				return handleErrorMsg(ErrFileReadError,
					fmt.Sprintf("mirror %s does not exist", args[0]),
					"Run 'p repo sync' first")
			}
		}

		if isJSONOutput() {
			outputSuccess(map[string]string{"path": path}, nil)
			return nil
		}
		fmt.Fprintln(stdout, path)
		return nil
	},
}

var repoNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a new version repository in the current directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := (repositories.ExecRunner{}).Available(); err != nil {
			return handleClassified(err)
		}
		dir, err := workingDir()
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		sc, err := repositories.NewCatalog(cmd.Context(), repositories.NewGitMirror(nil, logger), dir, args[0])
		if err != nil {
			if errors.Is(err, repositories.ErrAlreadyExists) {
				return handleError(ErrFileExists, err, "Choose another name")
			}
			return handleClassified(err)
		}

		if isJSONOutput() {
			outputSuccess(sc, nil)
			return nil
		}
		fmt.Fprintln(stdout, ui.Successf("Created version repository %s", ui.FilePath(sc.Path)))
		fmt.Fprintf(stdout, "Add definitions to %s (see %s for an example).\n", ui.FilePath(sc.VersionsDir), sc.SampleFile)
		fmt.Fprintln(stdout, ui.Hint("Push it to a remote, then run 'p repo add <url>' and 'p repo sync'."))
		return nil
	},
}

func completeRepositoryURLs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || getConfig() == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return getConfig().VersionRepositories, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	repoCmd.AddCommand(repoSyncCmd)
	repoCmd.AddCommand(repoAddCmd)
	repoCmd.AddCommand(repoRemoveCmd)
	repoCmd.AddCommand(repoListCmd)
	repoCmd.AddCommand(repoGoCmd)
	repoCmd.AddCommand(repoNewCmd)
	rootCmd.AddCommand(repoCmd)
}
