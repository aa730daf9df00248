package docs

import (
	"reflect"
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	want := []string{"config", "definitions", "repositories"}
	if got := Topics(); !reflect.DeepEqual(got, want) {
		t.Errorf("Topics() = %v, want %v", got, want)
	}
}

func TestRead(t *testing.T) {
	text, err := Read("definitions")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !strings.HasPrefix(text, "# Version definitions") {
		t.Errorf("unexpected content: %q", text[:40])
	}
	if _, err := Read("missing"); err == nil {
		t.Error("expected error for unknown topic")
	}
}
