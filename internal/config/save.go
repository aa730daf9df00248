package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/coyenn/p/internal/atomicfile"
)

// persistedConfig drops unset optional keys so the file stays minimal.
type persistedConfig struct {
	ProjectsDir           string   `toml:"projects_dir"`
	ProjectManagementTool string   `toml:"project_management_tool"`
	VersionRepositories   []string `toml:"version_repositories,omitempty"`
	Editor                *string  `toml:"editor,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// SaveTo writes cfg to path atomically.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = Default()
	}

	out := persistedConfig{
		ProjectsDir:           cfg.ProjectsDir,
		ProjectManagementTool: cfg.ProjectManagementTool,
		Editor:                nonEmptyPtr(cfg.Editor),
	}
	if len(cfg.VersionRepositories) > 0 {
		out.VersionRepositories = cfg.VersionRepositories
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
