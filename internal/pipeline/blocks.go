package pipeline

import "strings"

// BlockToken is one block-level unit of a text span.
// It is one of Heading, ListItem or Paragraph.
type BlockToken interface {
	blockToken()
}

// Run is a piece of inline text sharing one format.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Strike    bool
	Code      bool
	Highlight bool
	Link      string // destination URL, empty when not a link
}

// sameFormat reports whether two runs can be merged.
func (r Run) sameFormat(o Run) bool {
	return r.Bold == o.Bold &&
		r.Italic == o.Italic &&
		r.Strike == o.Strike &&
		r.Code == o.Code &&
		r.Highlight == o.Highlight &&
		r.Link == o.Link
}

// Heading is a section title. Level is in 1..MaxHeadingLevel.
type Heading struct {
	Level int
	Text  string
	Runs  []Run
}

// ListItem is one bullet. Nested lists are flattened, so Indent is always 0.
type ListItem struct {
	Text   string
	Indent int
	Runs   []Run
}

// CodeBlock is the literal content of a fenced or indented code block.
type CodeBlock struct {
	Language string
	Source   string
}

// Paragraph is body text. Code is set for code blocks.
type Paragraph struct {
	Text string
	Runs []Run
	Code *CodeBlock
}

func (Heading) blockToken()   {}
func (ListItem) blockToken()  {}
func (Paragraph) blockToken() {}

// RunsText concatenates the text of runs.
func RunsText(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// mergeRuns joins adjacent runs with the same format and drops empty ones.
func mergeRuns(runs []Run) []Run {
	out := make([]Run, 0, len(runs))
	for _, r := range runs {
		if r.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].sameFormat(r) {
			out[n-1].Text += r.Text
			continue
		}
		out = append(out, r)
	}
	return out
}

// trimRuns removes leading and trailing whitespace across runs.
func trimRuns(runs []Run) []Run {
	for len(runs) > 0 {
		runs[0].Text = strings.TrimLeft(runs[0].Text, " \t\n")
		if runs[0].Text != "" {
			break
		}
		runs = runs[1:]
	}
	for len(runs) > 0 {
		last := len(runs) - 1
		runs[last].Text = strings.TrimRight(runs[last].Text, " \t\n")
		if runs[last].Text != "" {
			break
		}
		runs = runs[:last]
	}
	return runs
}
