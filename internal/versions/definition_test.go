package versions

import (
	"errors"
	"testing"
)

func TestParseDefinition(t *testing.T) {
	t.Run("toml", func(t *testing.T) {
		def, err := ParseDefinition("/v/rust.toml", []byte(`version = "Rust"
description = "A Rust project"
files_needed = ["Cargo.toml"]
directories_needed = ["src"]
specificity = 1
project_management_tool = "cargo"
`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if def.Version != "Rust" || def.Specificity != 1 || def.ExecutionTool != "cargo" {
			t.Fatalf("unexpected definition: %#v", def)
		}
		if len(def.FilesNeeded) != 1 || def.FilesNeeded[0] != "Cargo.toml" {
			t.Fatalf("unexpected files_needed: %#v", def.FilesNeeded)
		}
		if def.Source != "/v/rust.toml" {
			t.Fatalf("expected source to be recorded, got %q", def.Source)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		def, err := ParseDefinition("/v/node.yml", []byte(`version: Node
description: A Node.js project
files_needed: [package.json]
directories_needed: []
specificity: 2
`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if def.Version != "Node" || def.Specificity != 2 || def.ExecutionTool != "" {
			t.Fatalf("unexpected definition: %#v", def)
		}
		if def.DirectoriesNeeded == nil || len(def.DirectoriesNeeded) != 0 {
			t.Fatalf("expected empty directories_needed, got %#v", def.DirectoriesNeeded)
		}
	})

	t.Run("unknown keys are ignored", func(t *testing.T) {
		_, err := ParseDefinition("/v/x.toml", []byte(`version = "X"
description = ""
files_needed = []
directories_needed = []
specificity = 0
homepage = "https://example.com"
`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	errorCases := []struct {
		name    string
		path    string
		body    string
		missing bool
	}{
		{name: "missing specificity", path: "a.toml", body: `version = "A"
description = ""
files_needed = []
directories_needed = []`, missing: true},
		{name: "missing files_needed", path: "a.toml", body: `version = "A"
description = ""
directories_needed = []
specificity = 1`, missing: true},
		{name: "negative specificity", path: "a.toml", body: `version = "A"
description = ""
files_needed = []
directories_needed = []
specificity = -1`},
		{name: "negative specificity yaml", path: "a.yaml", body: `version: A
description: ""
files_needed: []
directories_needed: []
specificity: -3`},
		{name: "wrong type", path: "a.toml", body: `version = "A"
description = ""
files_needed = "Cargo.toml"
directories_needed = []
specificity = 1`},
		{name: "syntax error", path: "a.toml", body: `version = `},
		{name: "yaml syntax error", path: "a.yaml", body: "version: [unterminated"},
		{name: "unsupported extension", path: "a.json", body: `{}`},
	}

	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDefinition(tt.path, []byte(tt.body))
			var defErr *DefinitionError
			if !errors.As(err, &defErr) {
				t.Fatalf("expected *DefinitionError, got %v", err)
			}
			if defErr.Path != tt.path {
				t.Fatalf("expected path %q, got %q", tt.path, defErr.Path)
			}
			if tt.missing && !errors.Is(err, ErrMissingField) {
				t.Fatalf("expected ErrMissingField, got %v", err)
			}
		})
	}
}

func TestIsDefinitionFile(t *testing.T) {
	tests := map[string]bool{
		"rust.toml":  true,
		"RUST.TOML":  true,
		"node.yaml":  true,
		"node.yml":   true,
		"README.md":  false,
		"toml":       false,
		".gitignore": false,
	}
	for name, want := range tests {
		if got := IsDefinitionFile(name); got != want {
			t.Errorf("IsDefinitionFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestUnknownSentinel(t *testing.T) {
	u := Unknown()
	if !u.IsUnknown() {
		t.Fatal("expected sentinel to report IsUnknown")
	}
	if u.Specificity != 0 || len(u.FilesNeeded) != 0 || len(u.DirectoriesNeeded) != 0 {
		t.Fatalf("unexpected sentinel: %#v", u)
	}

	named := Definition{Version: UnknownVersion, Source: "/v/unknown.toml"}
	if named.IsUnknown() {
		t.Fatal("a catalog definition named Unknown is not the sentinel")
	}
}

func TestToolOr(t *testing.T) {
	if got := (Definition{}).ToolOr("./project"); got != "./project" {
		t.Errorf("expected fallback, got %q", got)
	}
	if got := (Definition{ExecutionTool: "cargo"}).ToolOr("./project"); got != "cargo" {
		t.Errorf("expected override, got %q", got)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	data, err := Encode(Sample())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	def, err := ParseDefinition("rust.toml", data)
	if err != nil {
		t.Fatalf("ParseDefinition: %v", err)
	}
	want := Sample()
	if def.Version != want.Version || def.Specificity != want.Specificity || def.ExecutionTool != want.ExecutionTool {
		t.Fatalf("round trip mismatch: got %#v", def)
	}
}
