package versions

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/coyenn/p/internal/paths"
)

// Loader enumerates the definitions visible to a resolution.
type Loader struct {
	layout  paths.Layout
	mirrors []string
	logger  *log.Logger
}

// NewLoader returns a Loader reading the local definitions directory of
// layout followed by the given mirrors, in the order they are listed.
// A nil logger discards debug output.
func NewLoader(layout paths.Layout, mirrors []string, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{
		layout:  layout,
		mirrors: append([]string(nil), mirrors...),
		logger:  logger,
	}
}

// Load reads the whole catalog: local definitions first (directory listing
// order), then each mirror's definitions in mirror order.
//
// A mirror that is absent or has no versions subdirectory contributes
// nothing. Any definition file that fails to parse aborts the load.
func (l *Loader) Load() ([]Definition, error) {
	catalog, err := l.readDir(l.layout.VersionsDir())
	if err != nil {
		return nil, err
	}

	for _, mirror := range l.mirrors {
		defs, err := l.readDir(l.layout.MirrorVersionsDir(mirror))
		if err != nil {
			return nil, err
		}
		catalog = append(catalog, defs...)
	}

	l.logger.Debug("loaded catalog", "definitions", len(catalog), "mirrors", len(l.mirrors))
	return catalog, nil
}

func (l *Loader) readDir(dir string) ([]Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Debug("definitions directory not populated", "dir", dir)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read definitions directory %s: %w", dir, err)
	}

	var defs []Definition
	for _, entry := range entries {
		if entry.IsDir() || !IsDefinitionFile(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &DefinitionError{Path: path, Err: err}
		}

		def, err := ParseDefinition(path, data)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("read definition", "version", def.Version, "path", path)
		defs = append(defs, def)
	}
	return defs, nil
}
