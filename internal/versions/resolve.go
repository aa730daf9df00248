package versions

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"syscall"
)

// Resolve returns every definition in catalog that dir satisfies, highest
// specificity first. Equal specificities keep catalog order. When nothing
// matches the result is exactly []Definition{Unknown()}.
func Resolve(dir string, catalog []Definition) ([]Definition, error) {
	var matched []Definition
	for _, def := range catalog {
		ok, err := Matches(dir, def)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, def)
		}
	}

	if len(matched) == 0 {
		return []Definition{Unknown()}, nil
	}

	slices.SortStableFunc(matched, func(a, b Definition) int {
		return cmp.Compare(b.Specificity, a.Specificity)
	})
	return matched, nil
}

// Matches reports whether dir contains every file and directory def needs.
// Files only have to exist; directories have to exist and be directories.
func Matches(dir string, def Definition) (bool, error) {
	for _, rel := range def.FilesNeeded {
		info, err := statRequirement(dir, rel)
		if err != nil {
			return false, err
		}
		if info == nil {
			return false, nil
		}
	}

	for _, rel := range def.DirectoriesNeeded {
		info, err := statRequirement(dir, rel)
		if err != nil {
			return false, err
		}
		if info == nil || !info.IsDir() {
			return false, nil
		}
	}

	return true, nil
}

// statRequirement returns nil info (and nil error) when the path is absent.
func statRequirement(dir, rel string) (fs.FileInfo, error) {
	path := filepath.Join(dir, filepath.FromSlash(rel))
	info, err := os.Stat(path)
	if err == nil {
		return info, nil
	}
	// A file in the middle of the path ("Cargo.toml/src") means absent too.
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return nil, nil
	}
	return nil, fmt.Errorf("failed to check %s: %w", path, err)
}
