// Package segment splits raw assistant output into ordered text and math spans.
//
// Three delimiter forms are recognized, tried in this order at every position:
//
//	$$ ... $$   block math
//	\[ ... \]   block math (LaTeX bracket form)
//	\( ... \)   inline math (LaTeX paren form)
//
// A form only matches when its closer appears later in the input. An opener
// without a closer is ordinary text. The returned spans always partition the
// input: concatenating every Span.Raw reproduces it byte for byte.
package segment

import "strings"

// Kind distinguishes text spans from math spans.
type Kind int

const (
	KindText Kind = iota
	KindMath
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindMath:
		return "math"
	default:
		return "unknown"
	}
}

// Mode is the layout mode of a math span.
type Mode int

const (
	ModeNone Mode = iota // text spans
	ModeBlock
	ModeInline
)

func (m Mode) String() string {
	switch m {
	case ModeBlock:
		return "block"
	case ModeInline:
		return "inline"
	default:
		return "none"
	}
}

// Span is a contiguous slice of the input.
type Span struct {
	Kind    Kind
	Mode    Mode   // ModeNone for text
	Raw     string // exact substring, delimiters included
	Cleaned string // math only: Raw without its delimiter pair
	Offset  int    // byte offset of Raw in the input
}

// IsBlank reports whether the span carries no visible content.
func (s Span) IsBlank() bool {
	return strings.TrimSpace(s.Raw) == ""
}

// delimiter describes one math form.
type delimiter struct {
	open  string
	close string
	mode  Mode
}

// forms is ordered by match priority.
var forms = [...]delimiter{
	{open: "$$", close: "$$", mode: ModeBlock},
	{open: `\[`, close: `\]`, mode: ModeBlock},
	{open: `\(`, close: `\)`, mode: ModeInline},
}

// scanner holds the state of one Segment call.
type scanner struct {
	input string
	spans []Span
	// textStart is where the pending text span begins.
	textStart int
	// exhausted[i] is set once forms[i] has no closer left in the input.
	exhausted [len(forms)]bool
}

// Segment partitions input into text and math spans in input order.
// Empty input yields no spans.
func Segment(input string) []Span {
	s := &scanner{input: input}
	pos := 0
	for pos < len(input) {
		next, ok := s.matchAt(pos)
		if !ok {
			pos++
			continue
		}
		pos = next
	}
	s.flushText(len(input))
	return s.spans
}

// matchAt tries every form at pos. On a match it emits the pending text and
// the math span and returns the position after the closer.
func (s *scanner) matchAt(pos int) (int, bool) {
	rest := s.input[pos:]
	for i, f := range forms {
		if s.exhausted[i] || !strings.HasPrefix(rest, f.open) {
			continue
		}
		bodyStart := pos + len(f.open)
		idx := strings.Index(s.input[bodyStart:], f.close)
		if idx < 0 {
			// No closer after bodyStart means none after any later position either.
			s.exhausted[i] = true
			continue
		}
		end := bodyStart + idx + len(f.close)
		s.flushText(pos)
		s.spans = append(s.spans, Span{
			Kind:    KindMath,
			Mode:    f.mode,
			Raw:     s.input[pos:end],
			Cleaned: s.input[bodyStart : bodyStart+idx],
			Offset:  pos,
		})
		s.textStart = end
		return end, true
	}
	return pos, false
}

// flushText emits input[textStart:end] as a text span when non-empty.
func (s *scanner) flushText(end int) {
	if end <= s.textStart {
		return
	}
	s.spans = append(s.spans, Span{
		Kind:   KindText,
		Raw:    s.input[s.textStart:end],
		Offset: s.textStart,
	})
	s.textStart = end
}

// Significant drops blank spans, keeping the relative order of the rest.
func Significant(spans []Span) []Span {
	out := make([]Span, 0, len(spans))
	for _, sp := range spans {
		if sp.IsBlank() {
			continue
		}
		out = append(out, sp)
	}
	return out
}

// Join concatenates the raw content of spans.
func Join(spans []Span) string {
	var b strings.Builder
	for _, sp := range spans {
		b.WriteString(sp.Raw)
	}
	return b.String()
}

// CountMath returns the number of math spans.
func CountMath(spans []Span) int {
	n := 0
	for _, sp := range spans {
		if sp.Kind == KindMath {
			n++
		}
	}
	return n
}
