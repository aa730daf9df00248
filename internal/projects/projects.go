// Package projects works with the directory tree configured as projects_dir.
// Every immediate subdirectory of that root is a project.
package projects

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/coyenn/p/internal/versions"
)

// ErrProjectNotFound is returned by Lookup for names with no matching directory.
var ErrProjectNotFound = errors.New("project does not exist")

// Project is one directory under the projects root.
type Project struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// List returns the projects under root sorted by name. Plain files are skipped.
func List(root string) ([]Project, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("unable to read projects directory %s: %w", root, err)
	}

	projects := make([]Project, 0, len(entries))
	for _, e := range entries {
		path := filepath.Join(root, e.Name())
		isDir := e.IsDir()
		if e.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(path); err == nil {
				isDir = info.IsDir()
			}
		}
		if !isDir {
			continue
		}
		projects = append(projects, Project{Name: e.Name(), Path: path})
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })
	return projects, nil
}

// Lookup returns the project called name under root.
func Lookup(root, name string) (Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Project{}, fmt.Errorf("%w: empty name", ErrProjectNotFound)
	}
	path := filepath.Join(root, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, name)
		}
		return Project{}, err
	}
	return Project{Name: name, Path: path}, nil
}

// Entry is a project together with its resolved versions, best match first.
type Entry struct {
	Project
	Versions []versions.Definition `json:"versions"`
}

// VersionNames returns the version labels of e in ranking order.
func (e Entry) VersionNames() []string {
	names := make([]string, len(e.Versions))
	for i, v := range e.Versions {
		names[i] = v.Version
	}
	return names
}

// Inventory resolves every project under root against catalog.
func Inventory(root string, catalog []versions.Definition) ([]Entry, error) {
	projects, err := List(root)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(projects))
	for _, p := range projects {
		defs, err := versions.Resolve(p.Path, catalog)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p.Name, err)
		}
		entries = append(entries, Entry{Project: p, Versions: defs})
	}
	return entries, nil
}

// Summarize joins up to max names with ", ", appending ", ..." when some
// were left out.
func Summarize(names []string, max int) string {
	if max <= 0 || len(names) <= max {
		return strings.Join(names, ", ")
	}
	return strings.Join(names[:max], ", ") + ", ..."
}
