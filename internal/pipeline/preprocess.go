package pipeline

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// crlfOrCR matches Windows and classic Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// byteOrderMark is stripped from the start of the input.
const byteOrderMark = "\uFEFF"

// Preprocessor defines the contract for raw text preprocessing.
type Preprocessor interface {
	Preprocess(ctx context.Context, content string) string
}

// TextPreprocessor normalizes assistant output before segmentation.
type TextPreprocessor struct{}

// Preprocess drops a leading byte order mark, converts line endings to \n
// and composes Unicode to NFC. Blank lines are left alone. It is idempotent.
func (p *TextPreprocessor) Preprocess(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, byteOrderMark)
	content = normalizeLineEndings(content)
	return norm.NFC.String(content)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
