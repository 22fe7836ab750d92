package pipeline

import (
	"context"
	"strings"
)

// CSSInjector places a stylesheet into a preview page.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection embeds the stylesheet as an inline <style> element.
type CSSInjection struct{}

// InjectCSS returns page with css inlined at the end of <head>, at the start
// of <body> when there is no head, or at the very top otherwise. A canceled
// context leaves page untouched.
func (CSSInjection) InjectCSS(ctx context.Context, page, css string) string {
	if css == "" || ctx.Err() != nil {
		return page
	}
	style := "<style>" + sanitizeCSS(css) + "</style>"
	at := stylePosition(page)
	return page[:at] + style + page[at:]
}

// stylePosition finds the byte offset where the <style> element belongs.
func stylePosition(page string) int {
	lower := strings.ToLower(page)
	if i := strings.Index(lower, "</head>"); i >= 0 {
		return i
	}
	if i := strings.Index(lower, "<body"); i >= 0 {
		if end := strings.IndexByte(page[i:], '>'); end >= 0 {
			return i + end + 1
		}
	}
	return 0
}

// sanitizeCSS keeps css from closing the surrounding <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
