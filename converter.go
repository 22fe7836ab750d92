package ai2docx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/alnah/go-ai2docx/internal/assets"
	"github.com/alnah/go-ai2docx/internal/document"
	"github.com/alnah/go-ai2docx/internal/docx"
	"github.com/alnah/go-ai2docx/internal/mathrender"
	"github.com/alnah/go-ai2docx/internal/pipeline"
	"github.com/alnah/go-ai2docx/internal/segment"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.Preprocessor  = (*pipeline.TextPreprocessor)(nil)
	_ pipeline.TextParser    = (*pipeline.BlockParser)(nil)
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector   = (*pipeline.CSSInjection)(nil)
	_ mathrender.Surface     = (*rodSurface)(nil)
	_ serializeFunc          = docx.Write
)

// serializeFunc writes a document model as .docx bytes.
type serializeFunc func(w io.Writer, doc *document.Document, opts ...docx.Option) error

// Converter orchestrates the text-to-DOCX pipeline: segment, render
// equations, parse text blocks, assemble and serialize.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
//
// A Converter owns one rendering surface. Convert may be called from several
// goroutines, but equation snapshots are serialized; use a ConverterPool for
// parallel conversions.
type Converter struct {
	cfg               converterConfig
	logger            *slog.Logger
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader
	preprocessor      pipeline.Preprocessor
	parser            pipeline.TextParser
	builder           *document.Builder
	surface           mathrender.Surface
	renderer          *mathrender.Renderer
	htmlConverter     pipeline.HTMLConverter
	cssInjector       pipeline.CSSInjector
	serialize         serializeFunc
	now               func() time.Time
	wordStyles        string
	previewCSS        string
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithRenderTimeout, WithPixelRatio, WithAssetPath).
// The browser is not started until the first equation is rendered.
// Returns error if an option is invalid or asset loading fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:           defaultConfig(),
		logger:        slog.New(slog.DiscardHandler),
		assetLoader:   assets.NewEmbeddedLoader(),
		preprocessor:  &pipeline.TextPreprocessor{},
		htmlConverter: pipeline.NewGoldmarkConverter(),
		cssInjector:   &pipeline.CSSInjection{},
		serialize:     docx.Write,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.validate(); err != nil {
		return nil, err
	}

	// Handle WithAssetPath: resolve to internal loader
	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}
	if c.publicAssetLoader != nil {
		c.assetLoader = c.publicAssetLoader
	}

	if err := c.loadAssets(); err != nil {
		return nil, err
	}

	layout := document.DefaultLayout()
	layout.ImageWidth = c.cfg.imageWidth
	layout.ImageHeight = c.cfg.imageHeight
	layout.KeepAspectRatio = c.cfg.keepAspect
	layout.CodeTheme = c.cfg.codeTheme
	c.builder = document.NewBuilder(layout)

	if c.parser == nil {
		c.parser = pipeline.NewBlockParser(pipeline.WithMaxHeadingLevel(c.cfg.maxHeadingLevel))
	}

	// Create the browser surface if not injected (e.g., by tests)
	if c.surface == nil {
		template, err := c.assetLoader.LoadTemplate(assets.SurfaceTemplateName)
		if err != nil {
			return nil, fmt.Errorf("loading surface template: %w", convertAssetError(err))
		}
		c.surface = newRodSurface(template, c.logger)
	}

	c.renderer = mathrender.New(c.surface,
		mathrender.WithPixelRatio(c.cfg.pixelRatio),
		mathrender.WithFontSize(c.cfg.fontSize),
		mathrender.WithPadding(c.cfg.padding),
		mathrender.WithTimeout(c.cfg.renderTimeout),
		mathrender.WithMaxPixelWidth(c.cfg.maxPixelWidth),
		mathrender.WithLogger(c.logger),
	)

	return c, nil
}

// validate checks option values that cannot be corrected silently.
func (cfg converterConfig) validate() error {
	if cfg.pixelRatio < MinPixelRatio {
		return fmt.Errorf("%w: %.2f (must be at least %.0f)", ErrInvalidPixelRatio, cfg.pixelRatio, MinPixelRatio)
	}
	if cfg.imageWidth <= 0 || cfg.imageHeight <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidImageSize, cfg.imageWidth, cfg.imageHeight)
	}
	return nil
}

// loadAssets resolves the styles.xml part and the preview stylesheet.
func (c *Converter) loadAssets() error {
	styles, err := c.assetLoader.LoadWordStyles(c.cfg.wordStyles)
	if err != nil {
		return fmt.Errorf("loading word styles %q: %w", c.cfg.wordStyles, convertAssetError(err))
	}
	c.wordStyles = styles

	css, err := c.assetLoader.LoadStylesheet(assets.PreviewStylesheetName)
	if err != nil {
		return fmt.Errorf("loading preview stylesheet: %w", convertAssetError(err))
	}
	c.previewCSS = css
	return nil
}

// Convert runs the full pipeline and returns the .docx bytes with the
// document model and statistics.
//
// Whitespace-only input is a no-op: the result is empty and no stage runs.
// Equations that fail to render are skipped and counted in Stats.Failed;
// they never abort the document. Cancellation is checked between spans.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if strings.TrimSpace(input.Text) == "" {
		return &ConvertResult{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	report := input.Progress
	if report == nil {
		report = func(Progress) {}
	}

	report(Progress{Stage: StageParsing})
	text := c.preprocessor.Preprocess(ctx, input.Text)
	spans := segment.Significant(segment.Segment(text))

	stats := Stats{Spans: len(spans), Equations: segment.CountMath(spans)}
	var elems []document.Element

	for _, span := range spans {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if span.Kind == segment.KindText {
			for _, token := range c.parser.Parse(ctx, span.Raw) {
				elems = c.builder.Append(elems, token)
			}
			continue
		}

		report(Progress{Stage: StageRendering, Current: stats.Rendered + stats.Failed + 1, Total: stats.Equations})
		asset, ok := c.renderer.Render(ctx, span.Cleaned, span.Mode)
		if !ok {
			stats.Failed++
			continue
		}
		stats.Rendered++
		elems = c.builder.Append(elems, asset)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report(Progress{Stage: StageFinalizing})
	title := input.Title
	if title == "" {
		title = document.FirstHeading(elems)
	}
	author := input.Author
	if author == "" {
		author = c.cfg.author
	}

	doc := &document.Document{
		Title:    title,
		Author:   author,
		Created:  c.now().UTC().Truncate(time.Second),
		Elements: elems,
	}

	var buf bytes.Buffer
	if err := c.serialize(&buf, doc,
		docx.WithStyles(c.wordStyles),
		docx.WithCodeStyle(c.builder.Layout().CodeStyle),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	c.logger.Debug("document converted",
		"spans", stats.Spans,
		"equations", stats.Equations,
		"rendered", stats.Rendered,
		"failed", stats.Failed,
		"bytes", buf.Len(),
	)

	res := &ConvertResult{
		DOCX:     buf.Bytes(),
		Elements: elems,
		Stats:    stats,
	}

	if input.Preview {
		page, err := c.preview(ctx, title, spans)
		if err != nil {
			return nil, err
		}
		res.HTML = []byte(page)
	}

	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
