// Package docs bundles the long-form guides shown by `p docs`.
package docs

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed *.md
var FS embed.FS

// Topics returns the guide names without their .md extension, sorted.
func Topics() []string {
	entries, err := fs.ReadDir(FS, ".")
	if err != nil {
		return nil
	}
	var topics []string
	for _, e := range entries {
		if !e.IsDir() && path.Ext(e.Name()) == ".md" {
			topics = append(topics, strings.TrimSuffix(e.Name(), ".md"))
		}
	}
	sort.Strings(topics)
	return topics
}

// Read returns the markdown source of topic.
func Read(topic string) (string, error) {
	data, err := FS.ReadFile(topic + ".md")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
