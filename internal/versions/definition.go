package versions

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// UnknownVersion is the name of the sentinel returned when nothing matches.
const UnknownVersion = "Unknown"

// ErrMissingField is wrapped by DefinitionError when a required key is absent.
var ErrMissingField = errors.New("missing required field")

// Definition describes one project kind.
type Definition struct {
	Version           string   `toml:"version" yaml:"version" json:"version"`
	Description       string   `toml:"description" yaml:"description" json:"description"`
	FilesNeeded       []string `toml:"files_needed" yaml:"files_needed" json:"files_needed"`
	DirectoriesNeeded []string `toml:"directories_needed" yaml:"directories_needed" json:"directories_needed"`
	Specificity       uint     `toml:"specificity" yaml:"specificity" json:"specificity"`

	// ExecutionTool overrides the configured project management tool.
	ExecutionTool string `toml:"project_management_tool,omitempty" yaml:"project_management_tool,omitempty" json:"project_management_tool,omitempty"`

	// Source is the file the definition was read from. Empty for Unknown.
	Source string `toml:"-" yaml:"-" json:"source,omitempty"`
}

// Unknown returns the sentinel definition used when a directory matches nothing.
func Unknown() Definition {
	return Definition{
		Version:           UnknownVersion,
		Description:       "Unknown version",
		FilesNeeded:       []string{},
		DirectoriesNeeded: []string{},
		Specificity:       0,
	}
}

// IsUnknown reports whether d is the no-match sentinel.
func (d Definition) IsUnknown() bool {
	return d.Source == "" && d.Version == UnknownVersion
}

// ToolOr returns the definition's execution tool, or fallback when unset.
func (d Definition) ToolOr(fallback string) string {
	if strings.TrimSpace(d.ExecutionTool) != "" {
		return d.ExecutionTool
	}
	return fallback
}

// DefinitionError reports a definition file that could not be read or parsed.
type DefinitionError struct {
	Path string
	Err  error
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("invalid version definition %s: %v", e.Path, e.Err)
}

func (e *DefinitionError) Unwrap() error { return e.Err }

// rawDefinition uses pointers so absent keys can be told apart from zero values.
type rawDefinition struct {
	Version               *string   `toml:"version" yaml:"version"`
	Description           *string   `toml:"description" yaml:"description"`
	FilesNeeded           *[]string `toml:"files_needed" yaml:"files_needed"`
	DirectoriesNeeded     *[]string `toml:"directories_needed" yaml:"directories_needed"`
	Specificity           *int64    `toml:"specificity" yaml:"specificity"`
	ProjectManagementTool *string   `toml:"project_management_tool" yaml:"project_management_tool"`
}

type decodeFunc func(data []byte, v any) error

// codecs maps a definition file extension to its decoder.
var codecs = map[string]decodeFunc{
	".toml": toml.Unmarshal,
	".yaml": yaml.Unmarshal,
	".yml":  yaml.Unmarshal,
}

// IsDefinitionFile reports whether name has a definition file extension.
func IsDefinitionFile(name string) bool {
	_, ok := codecs[strings.ToLower(filepath.Ext(name))]
	return ok
}

// ParseDefinition decodes a definition file body. The extension of path
// selects the codec; path is also recorded as the definition's Source.
func ParseDefinition(path string, data []byte) (Definition, error) {
	decode, ok := codecs[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return Definition{}, &DefinitionError{Path: path, Err: fmt.Errorf("unsupported file extension %q", filepath.Ext(path))}
	}

	var raw rawDefinition
	if err := decode(data, &raw); err != nil {
		return Definition{}, &DefinitionError{Path: path, Err: err}
	}

	def, err := raw.definition()
	if err != nil {
		return Definition{}, &DefinitionError{Path: path, Err: err}
	}
	def.Source = path
	return def, nil
}

func (r rawDefinition) definition() (Definition, error) {
	switch {
	case r.Version == nil:
		return Definition{}, fmt.Errorf("%w %q", ErrMissingField, "version")
	case r.Description == nil:
		return Definition{}, fmt.Errorf("%w %q", ErrMissingField, "description")
	case r.FilesNeeded == nil:
		return Definition{}, fmt.Errorf("%w %q", ErrMissingField, "files_needed")
	case r.DirectoriesNeeded == nil:
		return Definition{}, fmt.Errorf("%w %q", ErrMissingField, "directories_needed")
	case r.Specificity == nil:
		return Definition{}, fmt.Errorf("%w %q", ErrMissingField, "specificity")
	case *r.Specificity < 0:
		return Definition{}, fmt.Errorf("specificity must be non-negative, got %d", *r.Specificity)
	}

	def := Definition{
		Version:           *r.Version,
		Description:       *r.Description,
		FilesNeeded:       *r.FilesNeeded,
		DirectoriesNeeded: *r.DirectoriesNeeded,
		Specificity:       uint(*r.Specificity),
	}
	if r.ProjectManagementTool != nil {
		def.ExecutionTool = *r.ProjectManagementTool
	}
	return def, nil
}
