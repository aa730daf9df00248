package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coyenn/p/internal/ui"
	"github.com/coyenn/p/internal/versions"
)

type infoResult struct {
	Project  string                `json:"project"`
	Path     string                `json:"path"`
	Versions []versions.Definition `json:"versions"`
}

var infoCmd = &cobra.Command{
	Use:     "info [dir]",
	Aliases: []string{"i"},
	Short:   "Show the version of the current project",
	Long: `Resolve the current directory (or dir) against every version definition
and show the matches, best first. A directory that matches nothing is
reported as Unknown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := targetDir(args)
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}
		defs, err := resolveDir(dir)
		if err != nil {
			return handleClassified(err)
		}

		result := infoResult{Project: filepath.Base(dir), Path: dir, Versions: defs}
		if isJSONOutput() {
			outputSuccess(result, &Meta{Count: len(defs)})
			return nil
		}

		fmt.Fprintln(stdout, ui.Header("Project: "+result.Project))
		if len(defs) > 1 {
			fmt.Fprintln(stdout, ui.Bold.Render(fmt.Sprintf("%d Versions:", len(defs))))
			for _, d := range defs {
				fmt.Fprintf(stdout, "%s - %s\n", ui.Accent.Render(d.Version), d.Description)
			}
			return nil
		}

		fmt.Fprintln(stdout, ui.Bold.Render("Version: "+defs[0].Version))
		fmt.Fprint(stdout, renderDescription(defs[0].Description))
		return nil
	},
}

// renderDescription formats a description as markdown on a terminal and
// prints it verbatim otherwise.
func renderDescription(desc string) string {
	display := ui.NewDisplayContext()
	if !display.IsTTY || strings.TrimSpace(desc) == "" {
		return desc + "\n"
	}
	out, err := ui.RenderMarkdown(desc, display.TermWidth)
	if err != nil {
		logger.Debug("markdown render failed", "err", err)
		return desc + "\n"
	}
	return out
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
