// Package buildinfo holds release metadata stamped into the p binary.
package buildinfo

// Injected via -ldflags "-X github.com/coyenn/p/internal/buildinfo.Version=..."
// by release builds. Empty for `go build` / `go install` from a checkout.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
