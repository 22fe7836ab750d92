package pipeline

import (
	"regexp"
	"strings"
)

// Highlight placeholders use Unicode Private Use Area characters.
// They pass through Goldmark unchanged (no WithUnsafe needed) and are
// turned into <mark> tags after HTML generation.
const (
	MarkStartPlaceholder = "\uE000" // U+E000: Private Use Area start
	MarkEndPlaceholder   = "\uE001" // U+E001: Private Use Area end
)

// highlightPattern matches the ==text== syntax on a single line.
var highlightPattern = regexp.MustCompile(`==([^=\n]+?)==`)

// convertHighlights transforms ==text== to placeholder markers.
func convertHighlights(content string) string {
	return highlightPattern.ReplaceAllString(content, MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
}

// ConvertMarkPlaceholders converts placeholder markers to <mark> tags.
func ConvertMarkPlaceholders(content string) string {
	return strings.ReplaceAll(
		strings.ReplaceAll(content, MarkStartPlaceholder, "<mark>"),
		MarkEndPlaceholder, "</mark>",
	)
}

// splitHighlights splits ==text== inside plain runs into highlighted runs.
// Code runs are left untouched.
func splitHighlights(runs []Run) []Run {
	out := make([]Run, 0, len(runs))
	for _, r := range runs {
		if r.Code || !strings.Contains(r.Text, "==") {
			out = append(out, r)
			continue
		}

		last := 0
		for _, m := range highlightPattern.FindAllStringSubmatchIndex(r.Text, -1) {
			if m[0] > last {
				plain := r
				plain.Text = r.Text[last:m[0]]
				out = append(out, plain)
			}
			marked := r
			marked.Text = r.Text[m[2]:m[3]]
			marked.Highlight = true
			out = append(out, marked)
			last = m[1]
		}
		if last < len(r.Text) {
			rest := r
			rest.Text = r.Text[last:]
			out = append(out, rest)
		}
	}
	return out
}
