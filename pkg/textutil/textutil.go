// Package textutil holds small text helpers for usage rendering.
package textutil

import "strings"

// Wrap greedily wraps text into lines of at most width bytes, splitting on
// whitespace. Runs of whitespace collapse to a single space. A word longer
// than width gets a line of its own rather than being broken. The result is
// nil for whitespace-only input.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var (
		lines []string
		line  strings.Builder
	)
	for _, word := range words {
		if line.Len() == 0 {
			line.WriteString(word)
			continue
		}
		if line.Len()+1+len(word) > width {
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString(word)
			continue
		}
		line.WriteString(" ")
		line.WriteString(word)
	}
	return append(lines, line.String())
}
