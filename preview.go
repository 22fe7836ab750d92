package ai2docx

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-ai2docx/internal/mathrender"
	"github.com/alnah/go-ai2docx/internal/pipeline"
	"github.com/alnah/go-ai2docx/internal/segment"
)

// Preview returns a standalone HTML page for input without rendering any
// equation images: text goes through goldmark and math is embedded as
// MathML. No browser is needed. Whitespace-only input yields nil.
func (c *Converter) Preview(ctx context.Context, input Input) ([]byte, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, nil
	}

	text := c.preprocessor.Preprocess(ctx, input.Text)
	spans := segment.Significant(segment.Segment(text))

	title := input.Title
	if title == "" {
		title = firstHeadingTitle(ctx, c.parser, spans)
	}

	page, err := c.preview(ctx, title, spans)
	if err != nil {
		return nil, err
	}
	return []byte(page), nil
}

// preview renders spans in order. Math that cannot be typeset is shown as
// escaped source.
func (c *Converter) preview(ctx context.Context, title string, spans []segment.Span) (string, error) {
	var body strings.Builder
	for _, span := range spans {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		if span.Kind == segment.KindText {
			fragment, err := c.htmlConverter.ToHTML(ctx, span.Raw)
			if err != nil {
				return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
			}
			body.WriteString(fragment)
			continue
		}

		mathML, err := mathrender.ToMathML(span.Cleaned, span.Mode)
		if err != nil {
			c.logger.Debug("preview math fallback", "error", err)
			body.WriteString(pipeline.MathFallback(span.Raw))
			continue
		}
		body.WriteString(pipeline.MathFigure(mathML, span.Mode == segment.ModeBlock))
	}

	page := pipeline.WrapDocument(title, body.String())
	return c.cssInjector.InjectCSS(ctx, page, c.previewCSS), nil
}

// firstHeadingTitle returns the text of the first heading in the text spans.
func firstHeadingTitle(ctx context.Context, parser pipeline.TextParser, spans []segment.Span) string {
	for _, span := range spans {
		if span.Kind != segment.KindText {
			continue
		}
		for _, token := range parser.Parse(ctx, span.Raw) {
			if h, ok := token.(pipeline.Heading); ok {
				return h.Text
			}
		}
	}
	return ""
}
