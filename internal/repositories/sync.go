package repositories

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// stagingPrefix marks in-progress clones. Staging directories never match a
// mirror name (names cannot start with "."), so reconciliation sweeps up any
// left behind by an interrupted sync.
const stagingPrefix = ".clone-"

// Action is one kind of per-mirror sync step.
type Action string

const (
	ActionClone   Action = "clone"
	ActionRefresh Action = "refresh"
	ActionRemove  Action = "remove"
)

// Progressive is the "-ing" form used in progress lines.
func (a Action) Progressive() string {
	switch a {
	case ActionClone:
		return "Cloning"
	case ActionRefresh:
		return "Pulling"
	case ActionRemove:
		return "Removing"
	}
	return string(a)
}

// Past is the form used once the step has finished.
func (a Action) Past() string {
	switch a {
	case ActionClone:
		return "Cloned"
	case ActionRefresh:
		return "Pulled"
	case ActionRemove:
		return "Removed"
	}
	return string(a)
}

// Reporter receives progress for each mirror as Sync works through them.
type Reporter interface {
	Begin(action Action, name string)
	End(action Action, name string, err error)
}

// TextReporter prints one line per step, e.g. "Cloning versions...".
type TextReporter struct {
	W io.Writer
}

// Begin implements Reporter.
func (r TextReporter) Begin(action Action, name string) {
	if r.W == nil {
		return
	}
	fmt.Fprintf(r.W, "%s %s...\n", action.Progressive(), name)
}

// End implements Reporter.
func (r TextReporter) End(Action, string, error) {}

type nopReporter struct{}

func (nopReporter) Begin(Action, string)      {}
func (nopReporter) End(Action, string, error) {}

// SyncOutcome lists what a sync did, by mirror name.
type SyncOutcome struct {
	Cloned    []string `json:"cloned"`
	Refreshed []string `json:"refreshed"`
	Removed   []string `json:"removed"`
}

// Manager reconciles the external versions root with a list of sources.
type Manager struct {
	root     string
	mirror   Mirror
	reporter Reporter
	logger   *log.Logger
}

// NewManager returns a Manager for the mirrors under root. A nil reporter
// or logger disables progress output or logging respectively.
func NewManager(root string, mirror Mirror, reporter Reporter, logger *log.Logger) *Manager {
	if reporter == nil {
		reporter = nopReporter{}
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &Manager{root: root, mirror: mirror, reporter: reporter, logger: logger}
}

// Root returns the directory holding the mirrors.
func (m *Manager) Root() string { return m.root }

// Sync brings the mirrors in line with sources: each source is cloned when
// its mirror is missing or refreshed when present, then every directory
// under the root that is not a configured mirror is deleted.
//
// Any clone or refresh failure aborts the sync before reconciliation, so a
// failed run never deletes anything. The returned outcome covers the work
// completed before the failure.
func (m *Manager) Sync(ctx context.Context, sources []Source) (*SyncOutcome, error) {
	outcome := &SyncOutcome{Cloned: []string{}, Refreshed: []string{}, Removed: []string{}}

	sources, err := dedupe(sources)
	if err != nil {
		return outcome, err
	}

	if err := os.MkdirAll(m.root, 0o755); err != nil {
		return outcome, fmt.Errorf("create mirror root %s: %w", m.root, err)
	}

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return outcome, err
		}

		dest := filepath.Join(m.root, src.Name)
		info, statErr := os.Stat(dest)
		switch {
		case statErr == nil && info.IsDir():
			if err := m.refresh(ctx, src, dest); err != nil {
				return outcome, err
			}
			outcome.Refreshed = append(outcome.Refreshed, src.Name)
		case statErr == nil:
			return outcome, fmt.Errorf("mirror path %s exists and is not a directory", dest)
		case errors.Is(statErr, os.ErrNotExist):
			if err := m.clone(ctx, src, dest); err != nil {
				return outcome, err
			}
			outcome.Cloned = append(outcome.Cloned, src.Name)
		default:
			return outcome, fmt.Errorf("inspect mirror %s: %w", dest, statErr)
		}
	}

	removed, err := m.reconcile(sources)
	outcome.Removed = removed
	return outcome, err
}

func (m *Manager) refresh(ctx context.Context, src Source, dest string) error {
	m.reporter.Begin(ActionRefresh, src.Name)
	m.logger.Debug("refreshing mirror", "name", src.Name, "url", src.URL)
	err := m.mirror.Refresh(ctx, dest)
	m.reporter.End(ActionRefresh, src.Name, err)
	if err != nil {
		return fmt.Errorf("refresh %s: %w", src.Name, err)
	}
	return nil
}

// clone fetches into a staging directory and renames it into place, so a
// failed clone never leaves a partial mirror that later syncs would treat
// as present.
func (m *Manager) clone(ctx context.Context, src Source, dest string) error {
	staging := filepath.Join(m.root, stagingPrefix+src.Name)
	if err := os.RemoveAll(staging); err != nil {
		return fmt.Errorf("clear staging directory %s: %w", staging, err)
	}

	m.reporter.Begin(ActionClone, src.Name)
	m.logger.Debug("cloning mirror", "name", src.Name, "url", src.URL)
	err := m.mirror.Clone(ctx, src.URL, staging)
	if err == nil {
		err = os.Rename(staging, dest)
	}
	m.reporter.End(ActionClone, src.Name, err)

	if err != nil {
		_ = os.RemoveAll(staging)
		return fmt.Errorf("clone %s: %w", src.Name, err)
	}
	return nil
}

// reconcile deletes every directory under the root that is not the mirror
// of a configured source. Symlinked directories lose the link only; plain
// files are left alone.
func (m *Manager) reconcile(sources []Source) ([]string, error) {
	keep := make(map[string]bool, len(sources))
	for _, s := range sources {
		keep[s.Name] = true
	}

	entries, err := os.ReadDir(m.root)
	if err != nil {
		return []string{}, fmt.Errorf("read mirror root %s: %w", m.root, err)
	}

	var stale []string
	for _, e := range entries {
		if keep[e.Name()] || !isDirEntry(m.root, e) {
			continue
		}
		stale = append(stale, e.Name())
	}
	sort.Strings(stale)

	removed := []string{}
	for _, name := range stale {
		staging := strings.HasPrefix(name, stagingPrefix)
		if !staging {
			m.reporter.Begin(ActionRemove, name)
		}
		m.logger.Debug("removing mirror", "name", name)
		err := os.RemoveAll(filepath.Join(m.root, name))
		if !staging {
			m.reporter.End(ActionRemove, name, err)
		}
		if err != nil {
			return removed, fmt.Errorf("remove mirror %s: %w", name, err)
		}
		if !staging {
			removed = append(removed, name)
		}
	}
	return removed, nil
}

// isDirEntry reports whether e is a directory or a symlink to one.
func isDirEntry(root string, e os.DirEntry) bool {
	if e.Type()&os.ModeSymlink == 0 {
		return e.IsDir()
	}
	info, err := os.Stat(filepath.Join(root, e.Name()))
	return err == nil && info.IsDir()
}

// dedupe drops repeated URLs and rejects distinct URLs sharing a name.
func dedupe(sources []Source) ([]Source, error) {
	out := make([]Source, 0, len(sources))
	seen := make(map[string]string, len(sources))
	for _, s := range sources {
		if s.Name == "" {
			name, err := MirrorName(s.URL)
			if err != nil {
				return nil, err
			}
			s.Name = name
		}
		if prev, ok := seen[s.Name]; ok {
			if prev == s.URL {
				continue
			}
			return nil, fmt.Errorf("%w: %q and %q both mirror to %q", ErrMirrorConflict, prev, s.URL, s.Name)
		}
		seen[s.Name] = s.URL
		out = append(out, s)
	}
	return out, nil
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
