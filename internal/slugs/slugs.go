// Package slugs turns user-supplied names into directory names.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"
)

// maxLen keeps generated directory names comfortably short.
const maxLen = 64

// DirName converts a free-form name such as "My Versions!" into a
// lowercase, dash-separated directory name ("my-versions"). Non-ASCII
// letters are transliterated. An empty result means nothing usable was
// left.
func DirName(name string) string {
	s := goslug.Make(strings.TrimSpace(name))
	if len(s) > maxLen {
		s = strings.TrimRight(s[:maxLen], "-")
	}
	return s
}
