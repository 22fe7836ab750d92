package pipeline

import (
	"bytes"
	"context"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// DefaultMaxHeadingLevel is the deepest heading level kept as is.
// Deeper headings collapse to level 1.
const DefaultMaxHeadingLevel = 3

// Fallback text for blocks without any literal content.
const thematicBreakText = "---"

// Task list markers.
const (
	checkedBox   = "☑ "
	uncheckedBox = "☐ "
)

// TextParser abstracts block tokenization of a text span.
type TextParser interface {
	Parse(ctx context.Context, text string) []BlockToken
}

// ParserOption configures a BlockParser.
type ParserOption func(*BlockParser)

// WithMaxHeadingLevel sets the deepest heading level kept as is.
// Values outside 1..6 are ignored.
func WithMaxHeadingLevel(level int) ParserOption {
	return func(p *BlockParser) {
		if level >= 1 && level <= 6 {
			p.maxHeadingLevel = level
		}
	}
}

// BlockParser tokenizes text with Goldmark (CommonMark + GFM).
type BlockParser struct {
	md              goldmark.Markdown
	maxHeadingLevel int
}

// NewBlockParser creates a BlockParser.
func NewBlockParser(opts ...ParserOption) *BlockParser {
	p := &BlockParser{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM, // Tables, strikethrough, autolinks, task lists
			),
		),
		maxHeadingLevel: DefaultMaxHeadingLevel,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse returns the block tokens of content in document order.
// Blank blocks are not emitted. A canceled context yields no tokens.
func (p *BlockParser) Parse(ctx context.Context, content string) []BlockToken {
	if ctx.Err() != nil || strings.TrimSpace(content) == "" {
		return nil
	}

	src := []byte(content)
	doc := p.md.Parser().Parse(text.NewReader(src))

	var tokens []BlockToken
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		tokens = p.appendBlock(tokens, n, src)
	}
	return tokens
}

func (p *BlockParser) appendBlock(tokens []BlockToken, n ast.Node, src []byte) []BlockToken {
	switch n := n.(type) {
	case *ast.Heading:
		runs := inlineRuns(n, src)
		if len(runs) == 0 {
			return tokens
		}
		return append(tokens, Heading{
			Level: p.headingLevel(n.Level),
			Text:  RunsText(runs),
			Runs:  runs,
		})

	case *ast.List:
		return appendListItems(tokens, n, src)

	case *ast.Paragraph, *ast.TextBlock:
		return appendParagraph(tokens, inlineRuns(n, src))

	case *ast.FencedCodeBlock:
		return appendCode(tokens, string(n.Language(src)), linesText(n, src))

	case *ast.CodeBlock:
		return appendCode(tokens, "", linesText(n, src))

	case *ast.ThematicBreak:
		return append(tokens, Paragraph{
			Text: thematicBreakText,
			Runs: []Run{{Text: thematicBreakText}},
		})

	default:
		// Blockquotes, tables and HTML blocks degrade to plain text.
		return appendParagraph(tokens, []Run{{Text: blockText(n, src)}})
	}
}

// headingLevel maps levels deeper than the maximum to 1.
func (p *BlockParser) headingLevel(level int) int {
	if level < 1 || level > p.maxHeadingLevel {
		return 1
	}
	return level
}

func appendParagraph(tokens []BlockToken, runs []Run) []BlockToken {
	runs = trimRuns(runs)
	if len(runs) == 0 {
		return tokens
	}
	return append(tokens, Paragraph{Text: RunsText(runs), Runs: runs})
}

func appendCode(tokens []BlockToken, lang, source string) []BlockToken {
	source = strings.TrimRight(source, "\n")
	if strings.TrimSpace(source) == "" {
		return tokens
	}
	return append(tokens, Paragraph{
		Text: source,
		Runs: []Run{{Text: source, Code: true}},
		Code: &CodeBlock{Language: lang, Source: source},
	})
}

// appendListItems emits one ListItem per item, depth first. An item is
// emitted before the items of its nested lists.
func appendListItems(tokens []BlockToken, list *ast.List, src []byte) []BlockToken {
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		var runs []Run
		var nested []*ast.List

		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch c := c.(type) {
			case *ast.List:
				nested = append(nested, c)
			case *ast.Paragraph, *ast.TextBlock:
				if len(runs) > 0 {
					runs = append(runs, Run{Text: " "})
				}
				runs = append(runs, inlineRuns(c, src)...)
			default:
				if len(runs) > 0 {
					runs = append(runs, Run{Text: " "})
				}
				runs = append(runs, Run{Text: blockText(c, src)})
			}
		}

		runs = trimRuns(mergeRuns(runs))
		if len(runs) > 0 {
			tokens = append(tokens, ListItem{Text: RunsText(runs), Runs: runs})
		}
		for _, l := range nested {
			tokens = appendListItems(tokens, l, src)
		}
	}
	return tokens
}

// inlineRuns flattens the inline children of n into formatted runs.
func inlineRuns(n ast.Node, src []byte) []Run {
	var w runWalker
	w.walk(n, src, Run{})
	return trimRuns(mergeRuns(splitHighlights(mergeRuns(w.runs))))
}

type runWalker struct {
	runs []Run
}

func (w *runWalker) add(style Run, s string) {
	if s == "" {
		return
	}
	style.Text = s
	w.runs = append(w.runs, style)
}

func (w *runWalker) walk(n ast.Node, src []byte, style Run) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			w.add(style, string(c.Segment.Value(src)))
			switch {
			case c.HardLineBreak():
				w.add(style, "\n")
			case c.SoftLineBreak():
				w.add(style, " ")
			}

		case *ast.String:
			w.add(style, string(c.Value))

		case *ast.Emphasis:
			s := style
			if c.Level >= 2 {
				s.Bold = true
			} else {
				s.Italic = true
			}
			w.walk(c, src, s)

		case *ast.CodeSpan:
			s := style
			s.Code = true
			w.add(s, codeSpanText(c, src))

		case *ast.Link:
			s := style
			s.Link = string(c.Destination)
			w.walk(c, src, s)

		case *ast.AutoLink:
			s := style
			s.Link = string(c.URL(src))
			w.add(s, string(c.Label(src)))

		case *ast.RawHTML:
			for i := 0; i < c.Segments.Len(); i++ {
				seg := c.Segments.At(i)
				w.add(style, string(seg.Value(src)))
			}

		case *east.Strikethrough:
			s := style
			s.Strike = true
			w.walk(c, src, s)

		case *east.TaskCheckBox:
			if c.IsChecked {
				w.add(style, checkedBox)
			} else {
				w.add(style, uncheckedBox)
			}

		default:
			// Images keep their alt text; unknown inlines keep their children.
			w.walk(c, src, style)
		}
	}
}

func codeSpanText(n *ast.CodeSpan, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
		}
	}
	return strings.ReplaceAll(b.String(), "\n", " ")
}

// linesText returns the literal lines of a block.
func linesText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}

// blockText renders any block as plain text. Table cells are separated by
// " | " and rows by newlines; other nested blocks are joined by newlines.
func blockText(n ast.Node, src []byte) string {
	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
		return RunsText(inlineRuns(n, src))
	case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
		return strings.TrimRight(linesText(n, src), "\n")
	case *ast.ThematicBreak:
		return thematicBreakText
	case *east.Table:
		var rows []string
		for row := n.FirstChild(); row != nil; row = row.NextSibling() {
			var cells []string
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				cells = append(cells, strings.TrimSpace(RunsText(inlineRuns(cell, src))))
			}
			rows = append(rows, strings.Join(cells, " | "))
		}
		return strings.Join(rows, "\n")
	}

	if n.Type() == ast.TypeInline {
		return RunsText(inlineRuns(n, src))
	}

	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if s := strings.TrimSpace(blockText(c, src)); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}
