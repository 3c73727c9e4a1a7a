// Package suggest finds near-miss flag names for error messages.
package suggest

import (
	"sort"
	"strings"
)

// threshold is the minimum similarity score for a candidate to be offered at
// all; anything below it is noise rather than a plausible typo.
const threshold = 0.5

// Flags returns up to maxResults registered flag names similar to input,
// best match first, ties broken alphabetically. Leading dashes and case are
// ignored on both sides, so "-Cuont" still suggests "count".
func Flags(input string, names []string, maxResults int) []string {
	input = normalize(input)
	if input == "" || maxResults <= 0 {
		return nil
	}

	type scored struct {
		name  string
		score float64
	}
	candidates := make([]scored, 0, len(names))
	for _, name := range names {
		norm := normalize(name)
		// Offering back exactly what was typed helps nobody.
		if norm == input {
			continue
		}
		if score := similarity(input, norm); score >= threshold {
			candidates = append(candidates, scored{name: name, score: score})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score == candidates[j].score {
			return candidates[i].name < candidates[j].name
		}
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}
	// Nil when nothing survives the threshold, same as the other empty paths.
	var result []string
	for _, c := range candidates {
		result = append(result, c.name)
	}
	return result
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimLeft(s, "-"))
}

// similarity maps edit distance into [0, 1], with a fixed bonus when one name
// is a prefix of the other in either direction. Both truncated and overtyped
// flag names are common.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	if strings.HasPrefix(b, a) || strings.HasPrefix(a, b) {
		return 0.9
	}
	longest := max(len(a), len(b))
	if longest == 0 {
		return 0
	}
	return 1 - float64(editDistance(a, b))/float64(longest)
}

// editDistance is Levenshtein distance computed with two rolling rows.
func editDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
