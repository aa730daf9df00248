package repositories

import (
	"errors"
	"strings"
	"testing"
)

func TestClassifyGitOutput(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		category string
	}{
		{"not found", "remote: Repository not found.\nfatal: repository 'https://x/y.git/' not found", "repository_not_found"},
		{"auth", "fatal: Authentication failed for 'https://x/y.git/'", "auth_required"},
		{"ssh key", "git@github.com: Permission denied (publickey).", "auth_required"},
		{"dns", "fatal: unable to access 'https://x/': Could not resolve host: x", "dns_error"},
		{"diverged", "fatal: Not possible to fast-forward, aborting.", "diverged"},
		{"not a repo", "fatal: not a git repository (or any of the parent directories): .git", "not_a_repository"},
		{"unknown", "something unexpected", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := classifyGitOutput(tt.output)
			if tt.category == "" {
				if info != nil {
					t.Fatalf("classifyGitOutput() = %+v, want nil", info)
				}
				return
			}
			if info == nil || info.Category != tt.category {
				t.Fatalf("classifyGitOutput() = %+v, want category %q", info, tt.category)
			}
		})
	}
}

func TestGitErrorMessage(t *testing.T) {
	cause := errors.New("exit status 128")
	err := &GitError{
		Args:   []string{"pull"},
		Dir:    "/tmp/mirror",
		Output: "fatal: Could not resolve host: example.com\n",
		Info:   classifyGitOutput("Could not resolve host: example.com"),
		Err:    cause,
	}

	msg := err.Error()
	for _, want := range []string{"git pull failed", "/tmp/mirror", "Could not resolve hostname", "example.com"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
	if !errors.Is(err, cause) {
		t.Error("GitError should unwrap to its cause")
	}
	if len(err.Suggestions()) == 0 {
		t.Error("expected suggestions for a classified error")
	}
}
