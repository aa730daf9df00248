package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/shell"
)

var executeCmd = &cobra.Command{
	Use:     "execute [args...]",
	Aliases: []string{"x"},
	Short:   "Run the project tool of the current project",
	Long: `Run the execution tool of the best matching version for the current
directory, or the configured project_management_tool when the version does
not name one. Arguments are passed through; flags after the first argument
belong to the tool.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := workingDir()
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}
		defs, err := resolveDir(dir)
		if err != nil {
			return handleClassified(err)
		}

		tool := defs[0].ToolOr(getConfig().ProjectManagementTool)
		argv, err := toolArgv(tool, args)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		logger.Debug("running project tool", "version", defs[0].Version, "argv", argv)

		child := exec.CommandContext(cmd.Context(), argv[0], argv[1:]...)
		child.Dir = dir
		child.Stdin = os.Stdin
		child.Stdout = os.Stdout
		child.Stderr = os.Stderr

		if err := child.Run(); err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return &ExitError{Code: exitErr.ExitCode(), Err: err}
			}
			return handleError(ErrToolFailed, fmt.Errorf("failed to run %q: %w", tool, err),
				"Check project_management_tool in "+getLayout().ConfigFile())
		}
		return nil
	},
}

// toolArgv splits the tool command line with shell quoting rules and
// appends args unchanged.
func toolArgv(tool string, args []string) ([]string, error) {
	fields, err := shell.Fields(tool, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid project tool %q: %w", tool, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no project tool configured")
	}
	return append(fields, args...), nil
}

func init() {
	executeCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(executeCmd)
}
