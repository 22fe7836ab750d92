package document

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// highlightCode splits source into colored code runs. Unknown languages are
// guessed from the content; when tokenizing fails the source is returned as
// a single uncolored run.
func highlightCode(lang, source, theme string) []Run {
	plain := []Run{{Text: source, Code: true}}
	if source == "" {
		return nil
	}

	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		return plain
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, source)
	if err != nil {
		return plain
	}

	style := styles.Get(theme)
	var runs []Run
	for _, tok := range it.Tokens() {
		if tok.Value == "" {
			continue
		}
		entry := style.Get(tok.Type)
		run := Run{
			Text:   tok.Value,
			Code:   true,
			Bold:   entry.Bold == chroma.Yes,
			Italic: entry.Italic == chroma.Yes,
		}
		if entry.Colour.IsSet() {
			run.Color = strings.TrimPrefix(entry.Colour.String(), "#")
		}
		if n := len(runs); n > 0 && sameCodeFormat(runs[n-1], run) {
			runs[n-1].Text += run.Text
			continue
		}
		runs = append(runs, run)
	}

	// Lexers may append a trailing newline.
	if n := len(runs); n > 0 {
		runs[n-1].Text = strings.TrimSuffix(runs[n-1].Text, "\n")
		if runs[n-1].Text == "" {
			runs = runs[:n-1]
		}
	}
	if len(runs) == 0 {
		return plain
	}
	return runs
}

func sameCodeFormat(a, b Run) bool {
	return a.Color == b.Color && a.Bold == b.Bold && a.Italic == b.Italic
}
