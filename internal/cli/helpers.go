package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/coyenn/p/internal/repositories"
	"github.com/coyenn/p/internal/versions"
)

// configuredSources parses version_repositories from the loaded config.
func configuredSources() ([]repositories.Source, error) {
	return repositories.ParseSources(getConfig().VersionRepositories)
}

// loadCatalog reads the local definitions and every configured mirror.
func loadCatalog() ([]versions.Definition, error) {
	sources, err := configuredSources()
	if err != nil {
		return nil, err
	}
	return versions.NewLoader(getLayout(), repositories.Names(sources), logger).Load()
}

// resolveDir ranks the catalog against dir.
func resolveDir(dir string) ([]versions.Definition, error) {
	catalog, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	defs, err := versions.Resolve(dir, catalog)
	if err != nil {
		return nil, err
	}
	logger.Debug("resolved directory", "dir", dir, "matches", len(defs), "top", defs[0].Version)
	return defs, nil
}

// workingDir returns the absolute, symlink-free current directory.
func workingDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(wd); err == nil {
		wd = resolved
	}
	return wd, nil
}

// targetDir returns args[0] made absolute, or the working directory.
func targetDir(args []string) (string, error) {
	if len(args) == 0 {
		return workingDir()
	}
	dir, err := filepath.Abs(args[0])
	if err != nil {
		return "", err
	}
	info, err := os.Stat(dir)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", dir)
	}
	return dir, nil
}

func projectsRoot() (string, error) {
	return getConfig().ProjectsRoot()
}
