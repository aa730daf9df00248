package repositories

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// ErrGitUnavailable is returned when no git executable can be found.
var ErrGitUnavailable = errors.New("git executable not found in PATH")

// Mirror creates and updates local copies of remote catalogs.
type Mirror interface {
	// Clone creates a fresh copy of url at dest. dest must not exist.
	Clone(ctx context.Context, url, dest string) error
	// Refresh discards local changes in dest and updates it from upstream.
	Refresh(ctx context.Context, dest string) error
}

// Runner runs one git command in dir and returns its combined output.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) ([]byte, error)
}

// ExecRunner runs the git binary found in PATH.
type ExecRunner struct {
	// Binary overrides the executable name; empty means "git".
	Binary string
}

func (r ExecRunner) binary() string {
	if r.Binary == "" {
		return "git"
	}
	return r.Binary
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.binary(), args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Available reports ErrGitUnavailable when the git binary cannot be located.
func (r ExecRunner) Available() error {
	if _, err := exec.LookPath(r.binary()); err != nil {
		return fmt.Errorf("%w: %v", ErrGitUnavailable, err)
	}
	return nil
}

// GitMirror implements Mirror with the git command line.
type GitMirror struct {
	runner Runner
	logger *log.Logger
}

// NewGitMirror returns a GitMirror using runner, or ExecRunner when nil.
func NewGitMirror(runner Runner, logger *log.Logger) *GitMirror {
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &GitMirror{runner: runner, logger: logger}
}

// Clone runs "git clone <url> <name>" from dest's parent directory.
func (g *GitMirror) Clone(ctx context.Context, url, dest string) error {
	return g.run(ctx, filepath.Dir(dest), "clone", url, filepath.Base(dest))
}

// Refresh cleans untracked files, pulls, and hard-resets the working tree,
// in that order, stopping at the first failure.
func (g *GitMirror) Refresh(ctx context.Context, dest string) error {
	steps := [][]string{
		{"clean", "-df"},
		{"pull"},
		{"reset", "--hard"},
	}
	for _, args := range steps {
		if err := g.run(ctx, dest, args...); err != nil {
			return err
		}
	}
	return nil
}

// Init runs "git init <name>" inside parent.
func (g *GitMirror) Init(ctx context.Context, parent, name string) error {
	return g.run(ctx, parent, "init", name)
}

func (g *GitMirror) run(ctx context.Context, dir string, args ...string) error {
	g.logger.Debug("running git", "dir", dir, "args", args)
	out, err := g.runner.Run(ctx, dir, args...)
	if err == nil {
		return nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrGitUnavailable, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = ctxErr
	}
	output := string(out)
	return &GitError{
		Args:   args,
		Dir:    dir,
		Output: output,
		Info:   classifyGitOutput(output),
		Err:    err,
	}
}
