package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coyenn/p/internal/editor"
	"github.com/coyenn/p/internal/projects"
	"github.com/coyenn/p/internal/ui"
)

var (
	openEditor string
	openDetach bool
)

var openCmd = &cobra.Command{
	Use:     "open [project]",
	Aliases: []string{"o"},
	Short:   "Open the current project (or a named one) in your editor",
	Long: `Run the editor command in the project directory. The command comes from
--editor, then the editor key in config.toml, then $EDITOR, and is run as
written, so include any path argument it needs (for example "code .").`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeProjectNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := workingDir()
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}
		if len(args) == 1 {
			root, err := projectsRoot()
			if err != nil {
				return handleError(ErrConfigInvalid, err, "")
			}
			project, err := projects.Lookup(root, args[0])
			if err != nil {
				return handleClassified(err)
			}
			dir = project.Path
		}

		line, err := editor.Choose(openEditor, getConfig().GetEditor())
		if errors.Is(err, editor.ErrNoEditor) {
			return handleError(ErrEditorNotSet,
				errors.New("No editor set. Please set your preferred code editor or IDE in your config file. Or specify an editor with the --editor flag."),
				"Set editor in "+getLayout().ConfigFile())
		}

		logger.Debug("opening editor", "editor", line, "dir", dir, "detach", openDetach)
		if err := editor.Open(cmd.Context(), line, dir, editor.Options{Detach: openDetach}); err != nil {
			return handleClassified(err)
		}

		if isJSONOutput() {
			outputSuccess(map[string]any{"editor": line, "dir": dir, "detached": openDetach}, nil)
		} else if openDetach {
			fmt.Fprintln(stdout, ui.Successf("Opened %s", ui.FilePath(dir)))
		}
		return nil
	},
}

func init() {
	openCmd.Flags().StringVarP(&openEditor, "editor", "e", "", "Editor command to use instead of the configured one")
	openCmd.Flags().BoolVarP(&openDetach, "detach", "d", false, "Start the editor in the background and return immediately")
	rootCmd.AddCommand(openCmd)
}
