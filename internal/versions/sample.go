package versions

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/coyenn/p/internal/atomicfile"
)

// SampleFileName is the definition seeded into a new versions directory.
const SampleFileName = "rust.toml"

// Sample returns the example definition shipped with a fresh install.
func Sample() Definition {
	return Definition{
		Version:           "Rust",
		Description:       "A Rust project",
		FilesNeeded:       []string{"Cargo.toml"},
		DirectoriesNeeded: []string{"src"},
		Specificity:       1,
		ExecutionTool:     "./project",
	}
}

// Encode renders def as a TOML definition file.
func Encode(def Definition) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(def); err != nil {
		return nil, fmt.Errorf("failed to encode definition %q: %w", def.Version, err)
	}
	return buf.Bytes(), nil
}

// WriteSample writes the sample definition into dir unless it already exists.
func WriteSample(dir string) error {
	data, err := Encode(Sample())
	if err != nil {
		return err
	}
	if _, err := atomicfile.WriteFileIfMissing(filepath.Join(dir, SampleFileName), data, 0o644); err != nil {
		return fmt.Errorf("failed to write sample definition: %w", err)
	}
	return nil
}

// EnsureDir creates the local versions directory on first use and seeds it
// with the sample definition. An existing directory is left untouched, even
// when empty. It reports whether the directory was created.
func EnsureDir(dir string) (bool, error) {
	if info, err := os.Stat(dir); err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s exists but is not a directory", dir)
		}
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat versions directory: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("failed to create versions directory: %w", err)
	}
	if err := WriteSample(dir); err != nil {
		return true, err
	}
	return true, nil
}
