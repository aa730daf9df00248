package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestDotLeaders(t *testing.T) {
	out := DotLeaders([]LeaderRow{
		{Name: "p", Value: "Rust"},
		{Name: "website", Value: "Unknown"},
	})

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), out)
	}
	if !strings.Contains(lines[0], "p"+strings.Repeat(".", 6+MinLeader)+"Rust") {
		t.Errorf("short name line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "website"+strings.Repeat(".", MinLeader)+"Unknown") {
		t.Errorf("long name line = %q", lines[1])
	}
}

func TestGrid(t *testing.T) {
	out := Grid(
		[]Column{{Header: "NAME"}, {Header: "URL"}},
		[][]string{{"versions", "https://example.com/versions.git"}},
	)
	for _, want := range []string{"NAME", "URL", "versions", "https://example.com/versions.git"} {
		if !strings.Contains(out, want) {
			t.Errorf("Grid output missing %q:\n%s", want, out)
		}
	}
}

func TestPlural(t *testing.T) {
	if got := Plural(1, "project", "projects"); got != "1 project" {
		t.Errorf("Plural(1) = %q", got)
	}
	if got := Plural(0, "project", "projects"); got != "0 projects" {
		t.Errorf("Plural(0) = %q", got)
	}
}

func TestStatusSymbols(t *testing.T) {
	if got := Success("done"); got != "✓ done" {
		t.Errorf("Success() = %q", got)
	}
	if got := Warningf("%d left", 2); got != "⚠ 2 left" {
		t.Errorf("Warningf() = %q", got)
	}
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("A **Rust** project", 0)
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if !strings.Contains(out, "Rust") {
		t.Errorf("rendered output lost text: %q", out)
	}
	if strings.HasPrefix(out, "\n") || !strings.HasSuffix(out, "\n") || strings.HasSuffix(out, "\n\n") {
		t.Errorf("expected trimmed output with one trailing newline, got %q", out)
	}
}

func TestSpinnerWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinnerTo(&buf, "Cloning versions")
	if s.Animated() {
		t.Fatal("bytes.Buffer should not be treated as a terminal")
	}
	s.Start()
	s.Stop()
	if got := buf.String(); got != "Cloning versions...\n" {
		t.Errorf("output = %q", got)
	}
}
