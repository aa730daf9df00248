// Package shell generates the helper functions users add to their shell rc.
package shell

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind is a shell family p knows how to write functions for.
type Kind string

const (
	Bash Kind = "bash"
	Zsh  Kind = "zsh"
)

// Detect picks the shell family from a $SHELL value such as "/bin/zsh".
// Unsupported shells fall back to Bash with ok set to false.
func Detect(shellPath string) (kind Kind, ok bool) {
	base := filepath.Base(strings.TrimSpace(shellPath))
	switch {
	case strings.Contains(base, "zsh"):
		return Zsh, true
	case strings.Contains(base, "bash"):
		return Bash, true
	default:
		return Bash, false
	}
}

// Alias is one generated shell function.
type Alias struct {
	Name    string `json:"name"`
	Command string `json:"command"`
	Help    string `json:"help"`
}

// Aliases returns the helper functions. configRoot is where pc changes to.
func Aliases(configRoot string) []Alias {
	return []Alias{
		{Name: "pg", Command: `cd "$(p go "$1")"`, Help: "change into a project"},
		{Name: "px", Command: `p execute "$@"`, Help: "run the project tool"},
		{Name: "pl", Command: `p list`, Help: "list projects"},
		{Name: "pc", Command: "cd " + Quote(configRoot), Help: "change into the p config directory"},
		{Name: "pi", Command: `p info`, Help: "show the current project"},
	}
}

// Script renders aliases as function definitions for kind. Bash and zsh
// share the POSIX function syntax.
func Script(kind Kind, aliases []Alias) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# p helpers (%s)\n", kind)
	for _, a := range aliases {
		fmt.Fprintf(&sb, "%s() {\n    %s\n}\n", a.Name, a.Command)
	}
	return sb.String()
}

// Quote wraps s in single quotes, escaping any internal single quotes.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
