// Package editor launches the user's editor or IDE in a project directory.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

// ErrNoEditor is returned when neither a flag nor the config names an editor.
var ErrNoEditor = errors.New("no editor set")

// Options controls how the editor process is attached.
type Options struct {
	// Detach starts the editor and returns without waiting for it.
	Detach bool
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Env looks up variables while parsing the command; nil uses os.Getenv.
	Env func(string) string
}

// Choose returns the flag value if set, otherwise the configured editor.
func Choose(flagValue, configured string) (string, error) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v, nil
	}
	if v := strings.TrimSpace(configured); v != "" {
		return v, nil
	}
	return "", ErrNoEditor
}

// Command builds the process for an editor command line such as
// `code .` or `open -a "Visual Studio Code" .`. The line is split with
// shell quoting rules and $VAR expansion, then run as given in dir.
func Command(ctx context.Context, line, dir string, opts Options) (*exec.Cmd, error) {
	if strings.TrimSpace(line) == "" {
		return nil, ErrNoEditor
	}
	args, err := shell.Fields(line, opts.Env)
	if err != nil {
		return nil, fmt.Errorf("parse editor command %q: %w", line, err)
	}
	if len(args) == 0 {
		return nil, ErrNoEditor
	}

	var cmd *exec.Cmd
	if opts.Detach {
		// a detached editor must outlive this process, so no context
		cmd = exec.Command(args[0], args[1:]...)
	} else {
		cmd = exec.CommandContext(ctx, args[0], args[1:]...)
	}
	cmd.Dir = dir
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	return cmd, nil
}

// Open launches line in dir. In the foreground it waits for the editor to
// exit; detached it only starts it.
func Open(ctx context.Context, line, dir string, opts Options) error {
	if !opts.Detach {
		if opts.Stdin == nil {
			opts.Stdin = os.Stdin
		}
		if opts.Stdout == nil {
			opts.Stdout = os.Stdout
		}
		if opts.Stderr == nil {
			opts.Stderr = os.Stderr
		}
	}

	cmd, err := Command(ctx, line, dir, opts)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to run editor %q: %w", line, err)
	}
	if opts.Detach {
		return cmd.Process.Release()
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("editor %q exited: %w", line, err)
	}
	return nil
}
