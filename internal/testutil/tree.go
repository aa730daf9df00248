// Package testutil builds throwaway directory trees for tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Tree is a temporary directory populated from a list of entries.
type Tree struct {
	Path    string
	t       testing.TB
	entries []entry
}

type entry struct {
	rel     string
	content string
	dir     bool
}

// NewTree creates a tree builder. Call Build to create it on disk.
func NewTree(t testing.TB) *Tree {
	t.Helper()
	return &Tree{t: t}
}

// WithFile adds a file relative to the tree root.
func (tr *Tree) WithFile(rel, content string) *Tree {
	tr.entries = append(tr.entries, entry{rel: rel, content: content})
	return tr
}

// WithDir adds an (empty) directory relative to the tree root.
func (tr *Tree) WithDir(rel string) *Tree {
	tr.entries = append(tr.entries, entry{rel: rel, dir: true})
	return tr
}

// WithEntries adds entries in shorthand: names ending in "/" are
// directories, everything else an empty file.
func (tr *Tree) WithEntries(names ...string) *Tree {
	for _, n := range names {
		if strings.HasSuffix(n, "/") {
			tr.WithDir(strings.TrimSuffix(n, "/"))
		} else {
			tr.WithFile(n, "")
		}
	}
	return tr
}

// Build creates the tree under a fresh t.TempDir.
func (tr *Tree) Build() *Tree {
	tr.t.Helper()
	return tr.BuildAt(tr.t.TempDir())
}

// BuildAt creates the tree under root, which is created if missing.
func (tr *Tree) BuildAt(root string) *Tree {
	tr.t.Helper()
	tr.Path = root
	if err := os.MkdirAll(root, 0o755); err != nil {
		tr.t.Fatalf("failed to create %s: %v", root, err)
	}
	for _, e := range tr.entries {
		full := filepath.Join(root, filepath.FromSlash(e.rel))
		if e.dir {
			if err := os.MkdirAll(full, 0o755); err != nil {
				tr.t.Fatalf("failed to create directory %s: %v", e.rel, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			tr.t.Fatalf("failed to create directory for %s: %v", e.rel, err)
		}
		if err := os.WriteFile(full, []byte(e.content), 0o644); err != nil {
			tr.t.Fatalf("failed to write %s: %v", e.rel, err)
		}
	}
	return tr
}

// Join returns the absolute path of rel inside the tree.
func (tr *Tree) Join(rel string) string {
	return filepath.Join(tr.Path, filepath.FromSlash(rel))
}

// ReadFile returns the content of rel, failing the test if unreadable.
func (tr *Tree) ReadFile(rel string) string {
	tr.t.Helper()
	data, err := os.ReadFile(tr.Join(rel))
	if err != nil {
		tr.t.Fatalf("failed to read %s: %v", rel, err)
	}
	return string(data)
}
