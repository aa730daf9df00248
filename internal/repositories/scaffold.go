package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/coyenn/p/internal/paths"
	"github.com/coyenn/p/internal/slugs"
	"github.com/coyenn/p/internal/versions"
)

// ErrAlreadyExists is returned when scaffolding into an existing directory.
var ErrAlreadyExists = errors.New("directory already exists")

// Initializer creates an empty git repository named name inside parent.
type Initializer interface {
	Init(ctx context.Context, parent, name string) error
}

// Scaffold is the result of NewCatalog.
type Scaffold struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	VersionsDir string `json:"versions_dir"`
	SampleFile  string `json:"sample_file"`
}

// NewCatalog creates a new catalog repository under parent: a git
// repository containing a versions directory seeded with a sample
// definition. The directory name is a slug of name.
func NewCatalog(ctx context.Context, git Initializer, parent, name string) (*Scaffold, error) {
	dirName := slugs.DirName(name)
	if dirName == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSource, name)
	}

	root := filepath.Join(parent, dirName)
	if _, err := os.Stat(root); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, root)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if err := git.Init(ctx, parent, dirName); err != nil {
		return nil, err
	}

	versionsDir := filepath.Join(root, paths.VersionsDirName)
	if err := os.MkdirAll(versionsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", versionsDir, err)
	}
	if err := versions.WriteSample(versionsDir); err != nil {
		return nil, err
	}

	return &Scaffold{
		Name:        dirName,
		Path:        root,
		VersionsDir: versionsDir,
		SampleFile:  filepath.Join(versionsDir, versions.SampleFileName),
	}, nil
}
