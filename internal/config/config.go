// Package config handles the p user settings record.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/coyenn/p/internal/paths"
)

// Default values written to a freshly created config.toml.
const (
	DefaultProjectsDir           = "~/Projects"
	DefaultProjectManagementTool = "./project"
)

// ErrMissingField is wrapped by Error when a required key is absent.
var ErrMissingField = errors.New("missing required field")

// Config is the single per-user settings record.
type Config struct {
	// ProjectsDir is the root that holds every project directory.
	// It may start with "~" or reference environment variables.
	ProjectsDir string `toml:"projects_dir"`

	// ProjectManagementTool is the command `p execute` runs when the
	// resolved version does not name its own tool.
	ProjectManagementTool string `toml:"project_management_tool"`

	// VersionRepositories lists external catalog source URLs, in priority order.
	VersionRepositories []string `toml:"version_repositories"`

	// Editor is the command used by `p open` (defaults to $EDITOR).
	Editor string `toml:"editor"`
}

// Error reports an unreadable, malformed or incomplete config file.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid config file %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

var requiredKeys = []string{"projects_dir", "project_management_tool"}

// Default returns the settings used when no config file exists yet.
func Default() *Config {
	return &Config{
		ProjectsDir:           DefaultProjectsDir,
		ProjectManagementTool: DefaultProjectManagementTool,
	}
}

// Load reads the config file of the given layout, creating it with default
// values first if it does not exist.
func Load(layout paths.Layout) (*Config, error) {
	if _, err := EnsureDefault(layout.ConfigFile()); err != nil {
		return nil, err
	}
	return LoadFrom(layout.ConfigFile())
}

// LoadFrom reads and validates a config file at path.
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}

	for _, key := range requiredKeys {
		if !md.IsDefined(key) {
			return nil, &Error{Path: path, Err: fmt.Errorf("%w %q", ErrMissingField, key)}
		}
	}

	return &cfg, nil
}

// EnsureDefault writes a default config file at path if none exists.
// It reports whether a file was created.
func EnsureDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := SaveTo(path, Default()); err != nil {
		return false, err
	}
	return true, nil
}

// ProjectsRoot returns ProjectsDir with "~" and environment variables expanded.
func (c *Config) ProjectsRoot() (string, error) {
	if strings.TrimSpace(c.ProjectsDir) == "" {
		return "", fmt.Errorf("projects_dir is empty")
	}
	return paths.Expand(c.ProjectsDir)
}

// GetEditor returns the configured editor, falling back to $EDITOR.
func (c *Config) GetEditor() string {
	if strings.TrimSpace(c.Editor) != "" {
		return strings.TrimSpace(c.Editor)
	}
	return strings.TrimSpace(os.Getenv("EDITOR"))
}

// HasRepository reports whether url is already in the catalog source list.
func (c *Config) HasRepository(url string) bool {
	return slices.Contains(c.VersionRepositories, url)
}

// AddRepository appends url to the source list. It returns false when the
// url is already present.
func (c *Config) AddRepository(url string) bool {
	if c.HasRepository(url) {
		return false
	}
	c.VersionRepositories = append(c.VersionRepositories, url)
	return true
}

// RemoveRepository drops every occurrence of url from the source list. It
// returns false when nothing was removed.
func (c *Config) RemoveRepository(url string) bool {
	before := len(c.VersionRepositories)
	c.VersionRepositories = slices.DeleteFunc(c.VersionRepositories, func(u string) bool {
		return u == url
	})
	if len(c.VersionRepositories) == 0 {
		c.VersionRepositories = nil
	}
	return len(c.VersionRepositories) != before
}
