package repositories

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidSource is returned for URLs no mirror name can be derived from.
	ErrInvalidSource = errors.New("invalid version repository url")

	// ErrMirrorConflict is returned when two different URLs map to the same mirror name.
	ErrMirrorConflict = errors.New("version repositories share a mirror name")
)

// Source is one external catalog and the local mirror it is synced into.
type Source struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// MirrorName derives the local mirror directory name from a source URL:
// the final path segment with a trailing ".git" removed.
//
//	https://github.com/acme/versions.git -> versions
//	git@github.com:acme/p-versions.git   -> p-versions
//	/srv/git/catalog                     -> catalog
func MirrorName(url string) (string, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(url), `/\`)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty url", ErrInvalidSource)
	}

	segment := trimmed
	if i := strings.LastIndexAny(segment, `/\`); i >= 0 {
		segment = segment[i+1:]
	} else if i := strings.LastIndex(segment, ":"); i >= 0 {
		// scp-like "host:repo.git" without any slash
		segment = segment[i+1:]
	}
	name := strings.TrimSuffix(segment, ".git")

	if name == "" || name == "." || name == ".." || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q has no usable repository name", ErrInvalidSource, url)
	}
	return name, nil
}

// NewSource builds a Source for url.
func NewSource(url string) (Source, error) {
	name, err := MirrorName(url)
	if err != nil {
		return Source{}, err
	}
	return Source{URL: strings.TrimSpace(url), Name: name}, nil
}

// ParseSources converts configured URLs into Sources, preserving order.
// A URL listed twice is kept once; two different URLs with the same mirror
// name are rejected, since they would overwrite each other's mirror.
func ParseSources(urls []string) ([]Source, error) {
	sources := make([]Source, 0, len(urls))
	for _, url := range urls {
		src, err := NewSource(url)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return dedupe(sources)
}

// Names returns the mirror names of sources, in order.
func Names(sources []Source) []string {
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name
	}
	return names
}

// Present reports whether the mirror directory for s exists under root.
func (s Source) Present(root string) bool {
	info, err := os.Stat(filepath.Join(root, s.Name))
	return err == nil && info.IsDir()
}
