// Package cli implements the command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/coyenn/p/internal/config"
	"github.com/coyenn/p/internal/paths"
	"github.com/coyenn/p/internal/versions"
)

var (
	// Global flags
	homeFlag string
	verbose  bool

	// Resolved values
	layout paths.Layout
	cfg    *config.Config
	logger = log.New(io.Discard)
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "p",
	Short: "p - a project manager for your terminal",
	Long: `p recognises what kind of project a directory holds by matching it
against version definitions: small TOML or YAML files naming the files and
directories a project of that kind always has.

Definitions live in ~/.p/versions and in external catalogs mirrored from
git with 'p repo sync'.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(os.Stderr, verbose)

		var err error
		layout, err = paths.Resolve(homeFlag)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "Set P_HOME or pass --home")
		}
		logger.Debug("resolved layout", "root", layout.Root)

		if !needsConfig(cmd) {
			return nil
		}
		return loadConfig()
	},
}

// needsConfig reports whether cmd reads config.toml or the catalog.
func needsConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "completion", "help", "version", "aliases", "docs":
			return false
		}
	}
	return true
}

func loadConfig() error {
	var err error
	cfg, err = config.Load(layout)
	if err != nil {
		return handleError(ErrConfigInvalid, err, "Fix or delete "+layout.ConfigFile())
	}

	if created, err := versions.EnsureDir(layout.VersionsDir()); err != nil {
		return handleError(ErrFileWriteError, err, "")
	} else if created {
		logger.Info("created versions directory with a sample definition", "path", layout.VersionsDir())
	}
	return nil
}

func newLogger(w io.Writer, debug bool) *log.Logger {
	l := log.NewWithOptions(w, log.Options{Prefix: "p"})
	if debug {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// Execute runs the CLI.
func Execute(ctx context.Context) error {
	return fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			if isSilent(err) {
				return
			}
			fang.DefaultErrorHandler(w, styles, err)
		}),
	)
}

// ExitError carries the exit status of a child process or an error that
// has already been reported.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 1
}

func isSilent(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}

// normalizeFlagName accepts --dry_run style spellings for --dry-run.
func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func init() {
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)
	rootCmd.PersistentFlags().StringVar(&homeFlag, "home", "", "Config root directory (default $P_HOME or ~/.p)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for scripts)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	return cfg
}

// getLayout returns the resolved config layout.
func getLayout() paths.Layout {
	return layout
}
