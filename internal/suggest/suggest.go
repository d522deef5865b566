// Package suggest proposes close matches for mistyped names.
package suggest

import (
	"sort"
	"strings"
)

const maxSuggestions = 3

// levenshtein returns the edit distance between a and b.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

type scored struct {
	value string
	dist  int
}

// Closest returns up to three candidates within edit distance
// max(3, len(unknown)/2) of unknown, nearest first.
func Closest(unknown string, candidates []string) []string {
	return rank(unknown, candidates, func(s string) string { return s })
}

// Flag suggests flags for an unknown flag name. Leading dashes are ignored
// when comparing; results keep the candidates' own form.
func Flag(unknown string, validFlags []string) []string {
	return rank(normalizeFlag(unknown), validFlags, normalizeFlag)
}

func normalizeFlag(s string) string {
	return strings.TrimLeft(s, "-")
}

func rank(unknown string, candidates []string, key func(string) string) []string {
	maxDist := max(3, len(unknown)/2)

	var matches []scored
	for _, c := range candidates {
		if d := levenshtein(unknown, key(c)); d <= maxDist {
			matches = append(matches, scored{value: c, dist: d})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].dist != matches[j].dist {
			return matches[i].dist < matches[j].dist
		}
		return len(matches[i].value) < len(matches[j].value)
	})

	var out []string
	for i := 0; i < len(matches) && i < maxSuggestions; i++ {
		out = append(out, matches[i].value)
	}
	return out
}

// Hint formats suggestions for an error message, or returns "".
func Hint(suggestions []string) string {
	switch len(suggestions) {
	case 0:
		return ""
	case 1:
		return "did you mean " + suggestions[0] + "?"
	default:
		return "did you mean one of: " + strings.Join(suggestions, ", ") + "?"
	}
}
