package projects

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agext/levenshtein"
)

// DefaultFindLimit is how many results Find returns when limit is not positive.
const DefaultFindLimit = 5

// minSimilarity is the lowest edit-distance similarity that still counts
// as a match for names not containing the query.
const minSimilarity = 0.5

// Match is a project scored against a search query. Higher is better.
type Match struct {
	Project
	Score float64 `json:"score"`
}

// Find ranks projects by how well their names match query and returns the
// best limit of them. Substring matches always rank above fuzzy ones;
// everything else is scored by Levenshtein similarity against the whole
// name and its individual words.
func Find(projects []Project, query string, limit int) []Match {
	if limit <= 0 {
		limit = DefaultFindLimit
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var matches []Match
	for _, p := range projects {
		if score, ok := scoreName(strings.ToLower(p.Name), q); ok {
			matches = append(matches, Match{Project: p, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Name < matches[j].Name
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func scoreName(name, query string) (float64, bool) {
	switch {
	case name == query:
		return 3, true
	case strings.HasPrefix(name, query):
		return 2 + ratio(query, name), true
	case strings.Contains(name, query):
		return 1 + ratio(query, name), true
	}

	best := levenshtein.Similarity(name, query, nil)
	for _, word := range words(name) {
		if s := levenshtein.Similarity(word, query, nil); s > best {
			best = s
		}
	}
	return best, best >= minSimilarity
}

func ratio(part, whole string) float64 {
	return float64(len(part)) / float64(len(whole))
}

func words(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
