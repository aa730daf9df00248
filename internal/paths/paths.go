// Package paths defines where p keeps its files on disk.
//
// Every component that needs a location receives a Layout value built once
// at process start, so tests can point the whole tool at a temp directory:
//
//	<root>/config.toml
//	<root>/versions/*.toml
//	<root>/external_versions/<mirror>/versions/*.toml
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

const (
	// EnvHome overrides the default config root.
	EnvHome = "P_HOME"

	// DirName is the config root directory name under the user's home.
	DirName = ".p"

	ConfigFileName  = "config.toml"
	VersionsDirName = "versions"
	ExternalDirName = "external_versions"
)

// Layout resolves every on-disk location from a single config root.
type Layout struct {
	Root string
}

// New returns a Layout rooted at root (cleaned, made absolute when possible).
func New(root string) Layout {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return Layout{Root: filepath.Clean(root)}
}

// Resolve picks the config root: explicit value, then $P_HOME, then ~/.p.
func Resolve(explicit string) (Layout, error) {
	if root := strings.TrimSpace(explicit); root != "" {
		expanded, err := Expand(root)
		if err != nil {
			return Layout{}, err
		}
		return New(expanded), nil
	}
	if root := strings.TrimSpace(os.Getenv(EnvHome)); root != "" {
		expanded, err := Expand(root)
		if err != nil {
			return Layout{}, err
		}
		return New(expanded), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return Layout{}, fmt.Errorf("could not get home directory: %w", err)
	}
	return New(filepath.Join(home, DirName)), nil
}

// ConfigFile is the user settings record.
func (l Layout) ConfigFile() string {
	return filepath.Join(l.Root, ConfigFileName)
}

// VersionsDir holds the local definitions.
func (l Layout) VersionsDir() string {
	return filepath.Join(l.Root, VersionsDirName)
}

// ExternalDir holds one mirror directory per configured catalog source.
func (l Layout) ExternalDir() string {
	return filepath.Join(l.Root, ExternalDirName)
}

// MirrorDir is the working tree of a single mirror.
func (l Layout) MirrorDir(name string) string {
	return filepath.Join(l.ExternalDir(), name)
}

// MirrorVersionsDir is the definitions subdirectory inside a mirror.
func (l Layout) MirrorVersionsDir(name string) string {
	return filepath.Join(l.MirrorDir(name), VersionsDirName)
}

// Expand performs the shell-style expansion users expect in path settings:
// a leading "~" or "~/" becomes the home directory, and $VAR / ${VAR} are
// substituted from the environment.
func Expand(p string) (string, error) {
	if p == "" {
		return "", nil
	}

	if p == "~" || strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get home directory: %w", err)
		}
		p = home + p[1:]
	}

	if !strings.Contains(p, "$") {
		return p, nil
	}

	expanded, err := shell.Expand(p, nil)
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", p, err)
	}
	return expanded, nil
}
