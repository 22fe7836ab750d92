// Package mathrender turns LaTeX into PNG equation images.
//
// LaTeX is typeset to MathML in pure Go, then rasterized by a Surface, a
// single shared off-screen rendering resource (a headless browser page in
// production). A Renderer serializes access to its Surface: at most one
// snapshot is in flight at a time.
//
// Render never fails loudly. Malformed LaTeX, snapshot errors, timeouts and
// panics all yield "no asset", so one bad equation cannot abort a document.
package mathrender

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/alnah/go-ai2docx/internal/segment"
)

// Rendering defaults. The pixel ratio keeps equations sharp once a word
// processor scales them to their display size.
const (
	MinPixelRatio     = 3.0
	DefaultPixelRatio = 3.0
	DefaultFontSize   = 24 // CSS pixels
	DefaultPadding    = 20 // CSS pixels
)

// SnapshotRequest describes one rasterization.
type SnapshotRequest struct {
	Markup     string  // MathML <math> element
	Display    bool    // block layout when true
	PixelRatio float64 // device pixels per CSS pixel
	FontSize   int     // CSS pixels
	Padding    int     // CSS pixels around the equation
}

// Surface rasterizes markup into PNG bytes.
// Implementations must release any per-call node before returning.
// Snapshot is never called concurrently by a Renderer.
type Surface interface {
	Snapshot(ctx context.Context, req SnapshotRequest) ([]byte, error)
	Close() error
}

// Asset is a rendered equation.
type Asset struct {
	PNG    []byte
	Width  int // device pixels
	Height int // device pixels
	Mode   segment.Mode
	LaTeX  string // trimmed source, used as alt text
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPixelRatio sets the device pixel ratio. Values below MinPixelRatio are raised to it.
func WithPixelRatio(ratio float64) Option {
	return func(r *Renderer) {
		r.pixelRatio = max(ratio, MinPixelRatio)
	}
}

// WithFontSize sets the equation font size in CSS pixels.
func WithFontSize(px int) Option {
	return func(r *Renderer) {
		if px > 0 {
			r.fontSize = px
		}
	}
}

// WithPadding sets the white padding around each equation in CSS pixels.
func WithPadding(px int) Option {
	return func(r *Renderer) {
		if px >= 0 {
			r.padding = px
		}
	}
}

// WithTimeout bounds each snapshot. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// WithMaxPixelWidth downscales images wider than px. Zero keeps native size.
func WithMaxPixelWidth(px int) Option {
	return func(r *Renderer) {
		r.maxPixelWidth = px
	}
}

// WithLogger sets the logger used to report skipped equations.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// withMarkup replaces the LaTeX typesetter (tests).
func withMarkup(fn func(string, segment.Mode) (string, error)) Option {
	return func(r *Renderer) {
		r.toMarkup = fn
	}
}

// Renderer renders equations through one Surface.
type Renderer struct {
	surface       Surface
	toMarkup      func(string, segment.Mode) (string, error)
	pixelRatio    float64
	fontSize      int
	padding       int
	timeout       time.Duration
	maxPixelWidth int
	logger        *slog.Logger

	mu     sync.Mutex // guards surface use and closed
	closed bool
}

// New creates a Renderer owning surface.
func New(surface Surface, opts ...Option) *Renderer {
	r := &Renderer{
		surface:    surface,
		toMarkup:   ToMathML,
		pixelRatio: DefaultPixelRatio,
		fontSize:   DefaultFontSize,
		padding:    DefaultPadding,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render typesets and rasterizes latex. It returns (nil, false) on any
// failure; the reason is logged at warn level.
func (r *Renderer) Render(ctx context.Context, latex string, mode segment.Mode) (*Asset, bool) {
	asset, err := r.render(ctx, latex, mode)
	if err != nil {
		r.logger.Warn("equation skipped",
			"mode", mode.String(),
			"latex", abbreviate(latex),
			"error", err,
		)
		return nil, false
	}
	return asset, true
}

func (r *Renderer) render(ctx context.Context, latex string, mode segment.Mode) (asset *Asset, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			asset = nil
			err = fmt.Errorf("%w: panic: %v", ErrSnapshot, rec)
		}
	}()

	markup, err := r.toMarkup(latex, mode)
	if err != nil {
		return nil, err
	}

	data, err := r.snapshot(ctx, SnapshotRequest{
		Markup:     markup,
		Display:    mode == segment.ModeBlock,
		PixelRatio: r.pixelRatio,
		FontSize:   r.fontSize,
		Padding:    r.padding,
	})
	if err != nil {
		return nil, err
	}

	width, height, err := inspectPNG(data)
	if err != nil {
		return nil, err
	}

	if r.maxPixelWidth > 0 && width > r.maxPixelWidth {
		data, width, height, err = downscalePNG(data, r.maxPixelWidth)
		if err != nil {
			return nil, err
		}
	}

	return &Asset{
		PNG:    data,
		Width:  width,
		Height: height,
		Mode:   mode,
		LaTeX:  strings.TrimSpace(latex),
	}, nil
}

// snapshot holds the surface lock for the whole acquire/use/release cycle.
func (r *Renderer) snapshot(ctx context.Context, req SnapshotRequest) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	data, err := r.surface.Snapshot(ctx, req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s: %v", ErrRenderTimeout, r.timeout, err)
		}
		if errors.Is(err, ErrSnapshot) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}
	return data, nil
}

// Close releases the surface. Later renders fail with ErrClosed.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	if r.surface == nil {
		return nil
	}
	return r.surface.Close()
}
