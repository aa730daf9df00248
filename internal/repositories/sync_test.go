package repositories

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// fakeMirror records calls and materialises clones as directories.
type fakeMirror struct {
	clones    []string
	refreshes []string
	failClone map[string]error
	failFresh map[string]error
}

func (f *fakeMirror) Clone(_ context.Context, url, dest string) error {
	f.clones = append(f.clones, url)
	if err := f.failClone[url]; err != nil {
		// leave a partial directory behind the way an interrupted git clone would
		_ = os.MkdirAll(filepath.Join(dest, ".git"), 0o755)
		return err
	}
	if _, err := os.Stat(dest); err == nil {
		return errors.New("destination exists")
	}
	if err := os.MkdirAll(filepath.Join(dest, "versions"), 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dest, "origin"), []byte(url), 0o644)
}

func (f *fakeMirror) Refresh(_ context.Context, dest string) error {
	name := filepath.Base(dest)
	f.refreshes = append(f.refreshes, name)
	return f.failFresh[name]
}

func mustSources(t *testing.T, urls ...string) []Source {
	t.Helper()
	sources, err := ParseSources(urls)
	if err != nil {
		t.Fatalf("ParseSources: %v", err)
	}
	return sources
}

func dirNames(t *testing.T, root string) []string {
	t.Helper()
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}

func TestSyncClonesMissingMirrors(t *testing.T) {
	root := filepath.Join(t.TempDir(), "external_versions")
	mirror := &fakeMirror{}
	m := NewManager(root, mirror, nil, nil)

	outcome, err := m.Sync(context.Background(), mustSources(t,
		"https://example.com/alpha.git",
		"https://example.com/beta.git",
	))
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if got := dirNames(t, root); !reflect.DeepEqual(got, []string{"alpha", "beta"}) {
		t.Errorf("mirrors = %v, want [alpha beta]", got)
	}
	if !reflect.DeepEqual(outcome.Cloned, []string{"alpha", "beta"}) {
		t.Errorf("Cloned = %v", outcome.Cloned)
	}
	if len(outcome.Refreshed) != 0 || len(outcome.Removed) != 0 {
		t.Errorf("unexpected outcome %+v", outcome)
	}
	data, err := os.ReadFile(filepath.Join(root, "alpha", "origin"))
	if err != nil || string(data) != "https://example.com/alpha.git" {
		t.Errorf("alpha mirror origin = %q, %v", data, err)
	}
}

func TestSyncTwiceRefreshes(t *testing.T) {
	root := t.TempDir()
	mirror := &fakeMirror{}
	m := NewManager(root, mirror, nil, nil)
	sources := mustSources(t, "https://example.com/alpha.git", "https://example.com/beta.git")

	if _, err := m.Sync(context.Background(), sources); err != nil {
		t.Fatalf("first Sync: %v", err)
	}
	outcome, err := m.Sync(context.Background(), sources)
	if err != nil {
		t.Fatalf("second Sync: %v", err)
	}

	if len(mirror.clones) != 2 {
		t.Errorf("clones = %v, want one per source", mirror.clones)
	}
	if !reflect.DeepEqual(mirror.refreshes, []string{"alpha", "beta"}) {
		t.Errorf("refreshes = %v, want [alpha beta]", mirror.refreshes)
	}
	if !reflect.DeepEqual(outcome.Refreshed, []string{"alpha", "beta"}) || len(outcome.Cloned) != 0 || len(outcome.Removed) != 0 {
		t.Errorf("outcome = %+v", outcome)
	}
	if got := dirNames(t, root); !reflect.DeepEqual(got, []string{"alpha", "beta"}) {
		t.Errorf("mirrors = %v, want [alpha beta]", got)
	}
}

func TestSyncRemovesSymlinkedMirrors(t *testing.T) {
	root := t.TempDir()
	target := t.TempDir()
	if err := os.MkdirAll(filepath.Join(target, "versions"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.Symlink(target, filepath.Join(root, "linked")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("keep"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	outcome, err := NewManager(root, &fakeMirror{}, nil, nil).Sync(context.Background(), nil)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if !reflect.DeepEqual(outcome.Removed, []string{"linked"}) {
		t.Errorf("Removed = %v, want [linked]", outcome.Removed)
	}
	if _, err := os.Lstat(filepath.Join(root, "linked")); !os.IsNotExist(err) {
		t.Errorf("symlink still present: %v", err)
	}
	if _, err := os.Stat(filepath.Join(target, "versions")); err != nil {
		t.Errorf("symlink target was touched: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "notes.txt")); err != nil {
		t.Errorf("plain file removed: %v", err)
	}
}

func TestSyncRemovesUnconfiguredMirrors(t *testing.T) {
	root := t.TempDir()
	m := NewManager(root, &fakeMirror{}, nil, nil)
	ctx := context.Background()

	if _, err := m.Sync(ctx, mustSources(t, "https://example.com/alpha.git", "https://example.com/beta.git")); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	outcome, err := m.Sync(ctx, mustSources(t, "https://example.com/beta.git"))
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if got := dirNames(t, root); !reflect.DeepEqual(got, []string{"beta"}) {
		t.Errorf("mirrors = %v, want [beta]", got)
	}
	if !reflect.DeepEqual(outcome.Removed, []string{"alpha"}) {
		t.Errorf("Removed = %v, want [alpha]", outcome.Removed)
	}

	outcome, err = m.Sync(ctx, nil)
	if err != nil {
		t.Fatalf("Sync(nil): %v", err)
	}
	if got := dirNames(t, root); len(got) != 0 {
		t.Errorf("mirrors = %v, want none", got)
	}
	if !reflect.DeepEqual(outcome.Removed, []string{"beta"}) {
		t.Errorf("Removed = %v, want [beta]", outcome.Removed)
	}
}

func TestSyncEmptyRemovesEverything(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"old", "stale"} {
		if err := os.MkdirAll(filepath.Join(root, name, "versions"), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	mirror := &fakeMirror{}
	outcome, err := NewManager(root, mirror, nil, nil).Sync(context.Background(), []Source{})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if got := dirNames(t, root); len(got) != 0 {
		t.Errorf("mirrors = %v, want none", got)
	}
	if !reflect.DeepEqual(outcome.Removed, []string{"old", "stale"}) {
		t.Errorf("Removed = %v", outcome.Removed)
	}
	if _, err := os.Stat(filepath.Join(root, "notes.txt")); err != nil {
		t.Errorf("plain files should be left alone: %v", err)
	}
	if len(mirror.clones)+len(mirror.refreshes) != 0 {
		t.Error("no git work expected for an empty source list")
	}
}

func TestSyncCreatesMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "a", "b")
	if _, err := NewManager(root, &fakeMirror{}, nil, nil).Sync(context.Background(), nil); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		t.Fatalf("root not created: %v", err)
	}
}

func TestSyncCloneFailureAbortsBeforeReconcile(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "stale"), 0o755); err != nil {
		t.Fatal(err)
	}

	cause := errors.New("network down")
	mirror := &fakeMirror{failClone: map[string]error{"https://example.com/beta.git": cause}}
	m := NewManager(root, mirror, nil, nil)

	outcome, err := m.Sync(context.Background(), mustSources(t,
		"https://example.com/alpha.git",
		"https://example.com/beta.git",
		"https://example.com/gamma.git",
	))
	if !errors.Is(err, cause) {
		t.Fatalf("Sync error = %v, want %v", err, cause)
	}

	if got := dirNames(t, root); !reflect.DeepEqual(got, []string{"alpha", "stale"}) {
		t.Errorf("mirrors = %v, want [alpha stale]", got)
	}
	if !reflect.DeepEqual(outcome.Cloned, []string{"alpha"}) || len(outcome.Removed) != 0 {
		t.Errorf("outcome = %+v", outcome)
	}
	if len(mirror.clones) != 2 {
		t.Errorf("clones = %v, gamma should not be attempted", mirror.clones)
	}

	// The next successful run must clone beta fresh rather than refresh a partial copy.
	mirror.failClone = nil
	outcome, err = m.Sync(context.Background(), mustSources(t, "https://example.com/beta.git"))
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if !reflect.DeepEqual(outcome.Cloned, []string{"beta"}) {
		t.Errorf("Cloned = %v, want [beta]", outcome.Cloned)
	}
	if !reflect.DeepEqual(outcome.Removed, []string{"alpha", "stale"}) {
		t.Errorf("Removed = %v, want [alpha stale]", outcome.Removed)
	}
}

func TestSyncRefreshFailureAborts(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"alpha", "orphan"} {
		if err := os.MkdirAll(filepath.Join(root, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	cause := errors.New("merge conflict")
	mirror := &fakeMirror{failFresh: map[string]error{"alpha": cause}}

	_, err := NewManager(root, mirror, nil, nil).Sync(context.Background(), mustSources(t, "https://example.com/alpha.git"))
	if !errors.Is(err, cause) {
		t.Fatalf("Sync error = %v, want %v", err, cause)
	}
	if got := dirNames(t, root); !reflect.DeepEqual(got, []string{"alpha", "orphan"}) {
		t.Errorf("mirrors = %v, nothing should be removed after a failure", got)
	}
}

func TestSyncSweepsLeftoverStaging(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, stagingPrefix+"alpha", ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	outcome, err := NewManager(root, &fakeMirror{}, nil, nil).Sync(context.Background(), nil)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if got := dirNames(t, root); len(got) != 0 {
		t.Errorf("mirrors = %v, want none", got)
	}
	if len(outcome.Removed) != 0 {
		t.Errorf("staging leftovers should not be reported as removed mirrors: %v", outcome.Removed)
	}
}

func TestSyncMirrorPathIsFile(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "alpha"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewManager(root, &fakeMirror{}, nil, nil).Sync(context.Background(), mustSources(t, "https://example.com/alpha.git"))
	if err == nil || !strings.Contains(err.Error(), "not a directory") {
		t.Fatalf("Sync error = %v, want not a directory", err)
	}
}

func TestSyncRejectsConflictingSources(t *testing.T) {
	root := t.TempDir()
	mirror := &fakeMirror{}
	_, err := NewManager(root, mirror, nil, nil).Sync(context.Background(), []Source{
		{URL: "https://a.example.com/versions.git", Name: "versions"},
		{URL: "https://b.example.com/versions.git", Name: "versions"},
	})
	if !errors.Is(err, ErrMirrorConflict) {
		t.Fatalf("Sync error = %v, want ErrMirrorConflict", err)
	}
	if len(mirror.clones) != 0 {
		t.Error("no clone should run when sources conflict")
	}
}

func TestSyncHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mirror := &fakeMirror{}
	_, err := NewManager(t.TempDir(), mirror, nil, nil).Sync(ctx, mustSources(t, "https://example.com/alpha.git"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Sync error = %v, want context.Canceled", err)
	}
	if len(mirror.clones) != 0 {
		t.Error("clone should not start after cancellation")
	}
}

func TestTextReporter(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "old"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "beta"), 0o755); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	m := NewManager(root, &fakeMirror{}, TextReporter{W: &buf}, nil)
	if _, err := m.Sync(context.Background(), mustSources(t,
		"https://example.com/alpha.git",
		"https://example.com/beta.git",
	)); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	want := "Cloning alpha...\nPulling beta...\nRemoving old...\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
