package cli

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/coyenn/p/internal/buildinfo"
)

func TestCurrentVersionInfoFromBuildInfo(t *testing.T) {
	prevRead := readBuildInfo
	t.Cleanup(func() {
		readBuildInfo = prevRead
	})

	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			GoVersion: "go1.24.2",
			Main: debug.Module{
				Path:    "github.com/coyenn/p",
				Version: "v0.4.0",
			},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc123"},
				{Key: "vcs.time", Value: "2026-02-14T17:00:00Z"},
				{Key: "vcs.modified", Value: "true"},
			},
		}, true
	}

	info := currentVersionInfo()

	if info.Version != "v0.4.0" {
		t.Fatalf("Version = %q, want %q", info.Version, "v0.4.0")
	}
	if info.Commit != "abc123" {
		t.Fatalf("Commit = %q, want %q", info.Commit, "abc123")
	}
	if info.CommitTime != "2026-02-14T17:00:00Z" {
		t.Fatalf("CommitTime = %q", info.CommitTime)
	}
	if !info.Modified {
		t.Fatal("Modified = false, want true")
	}
	if info.GoVersion != "go1.24.2" {
		t.Fatalf("GoVersion = %q", info.GoVersion)
	}
	if got := versionString(); got != "v0.4.0 (commit abc123)" {
		t.Fatalf("versionString() = %q", got)
	}
}

func TestCurrentVersionInfoFallsBackToLdflags(t *testing.T) {
	prevRead := readBuildInfo
	prevVersion, prevCommit, prevDate := buildinfo.Version, buildinfo.Commit, buildinfo.Date
	t.Cleanup(func() {
		readBuildInfo = prevRead
		buildinfo.Version, buildinfo.Commit, buildinfo.Date = prevVersion, prevCommit, prevDate
	})

	readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }
	buildinfo.Version, buildinfo.Commit, buildinfo.Date = "", "", ""

	info := currentVersionInfo()
	if info.Version != "devel" {
		t.Fatalf("Version = %q, want devel", info.Version)
	}
	if info.ModulePath != defaultModulePath {
		t.Fatalf("ModulePath = %q", info.ModulePath)
	}
	if info.GoVersion != runtime.Version() {
		t.Fatalf("GoVersion = %q, want runtime %q", info.GoVersion, runtime.Version())
	}
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Fatalf("Platform = %q", info.Platform)
	}

	buildinfo.Version = "v1.0.0"
	buildinfo.Commit = "0123456789abcdef"
	info = currentVersionInfo()
	if info.Version != "v1.0.0" || info.Commit != "0123456789abcdef" {
		t.Fatalf("ldflags not applied: %+v", info)
	}
	if got := versionString(); !strings.HasPrefix(got, "v1.0.0 (commit 0123456789ab)") {
		t.Fatalf("versionString() = %q", got)
	}
}
