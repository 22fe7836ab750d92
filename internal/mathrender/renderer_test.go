package mathrender

// Notes:
// - Renderer tests use fakeSurface and a stub typesetter so no browser runs.
// - fakeSurface records concurrency to check that snapshots never overlap.

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alnah/go-ai2docx/internal/segment"
)

// Compile-time interface check.
var _ Surface = (*fakeSurface)(nil)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type fakeSurface struct {
	mu       sync.Mutex
	requests []SnapshotRequest
	closed   int

	png   []byte
	err   error
	delay time.Duration
	panic bool

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (f *fakeSurface) Snapshot(ctx context.Context, req SnapshotRequest) ([]byte, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		cur := f.maxInFlight.Load()
		if n <= cur || f.maxInFlight.CompareAndSwap(cur, n) {
			break
		}
	}

	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.panic {
		panic("surface exploded")
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.png, nil
}

func (f *fakeSurface) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

func (f *fakeSurface) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func stubMarkup(latex string, mode segment.Mode) (string, error) {
	if strings.TrimSpace(latex) == "" {
		return "", ErrEmptyLaTeX
	}
	if strings.Contains(latex, `\frac{}{}`) {
		return "", ErrTypeset
	}
	return "<math>" + latex + "</math>", nil
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}
	return buf.Bytes()
}

// ---------------------------------------------------------------------------
// Render
// ---------------------------------------------------------------------------

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	surface := &fakeSurface{png: testPNG(t, 90, 30)}
	r := New(surface, withMarkup(stubMarkup))

	asset, ok := r.Render(context.Background(), "x+y", segment.ModeBlock)
	if !ok {
		t.Fatal("Render() failed, want success")
	}
	if asset.Width != 90 || asset.Height != 30 {
		t.Errorf("asset size = %dx%d, want 90x30", asset.Width, asset.Height)
	}
	if asset.Mode != segment.ModeBlock {
		t.Errorf("asset.Mode = %v, want block", asset.Mode)
	}

	req := surface.requests[0]
	if req.Markup != "<math>x+y</math>" {
		t.Errorf("Markup = %q", req.Markup)
	}
	if !req.Display {
		t.Error("Display = false, want true for block math")
	}
	if req.PixelRatio != DefaultPixelRatio || req.FontSize != DefaultFontSize || req.Padding != DefaultPadding {
		t.Errorf("request settings = %+v, want defaults", req)
	}
}

func TestRenderer_InlineIsNotDisplay(t *testing.T) {
	t.Parallel()

	surface := &fakeSurface{png: testPNG(t, 10, 10)}
	r := New(surface, withMarkup(stubMarkup))

	if _, ok := r.Render(context.Background(), "a", segment.ModeInline); !ok {
		t.Fatal("Render() failed")
	}
	if surface.requests[0].Display {
		t.Error("Display = true, want false for inline math")
	}
}

func TestRenderer_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		latex       string
		surface     *fakeSurface
		wantCalls   int
		wantLogPart string
	}{
		{
			name:        "empty latex skips the surface",
			latex:       "   ",
			surface:     &fakeSurface{},
			wantCalls:   0,
			wantLogPart: ErrEmptyLaTeX.Error(),
		},
		{
			name:        "typesetting error skips the surface",
			latex:       `\frac{}{}`,
			surface:     &fakeSurface{},
			wantCalls:   0,
			wantLogPart: ErrTypeset.Error(),
		},
		{
			name:        "surface error",
			latex:       "x",
			surface:     &fakeSurface{err: errors.New("node detached")},
			wantCalls:   1,
			wantLogPart: ErrSnapshot.Error(),
		},
		{
			name:        "invalid image bytes",
			latex:       "x",
			surface:     &fakeSurface{png: []byte("not a png")},
			wantCalls:   1,
			wantLogPart: ErrInvalidImage.Error(),
		},
		{
			name:        "surface panic is recovered",
			latex:       "x",
			surface:     &fakeSurface{panic: true},
			wantCalls:   1,
			wantLogPart: "panic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))
			r := New(tt.surface, withMarkup(stubMarkup), WithLogger(logger))

			asset, ok := r.Render(context.Background(), tt.latex, segment.ModeBlock)
			if ok || asset != nil {
				t.Fatalf("Render() = (%v, %v), want (nil, false)", asset, ok)
			}
			if got := tt.surface.calls(); got != tt.wantCalls {
				t.Errorf("surface calls = %d, want %d", got, tt.wantCalls)
			}
			out := logs.String()
			if !strings.Contains(out, "level=WARN") || !strings.Contains(out, tt.wantLogPart) {
				t.Errorf("log = %q, want WARN containing %q", out, tt.wantLogPart)
			}
		})
	}
}

func TestRenderer_Timeout(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	surface := &fakeSurface{png: testPNG(t, 10, 10), delay: time.Second}
	r := New(surface,
		withMarkup(stubMarkup),
		WithTimeout(20*time.Millisecond),
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
	)

	start := time.Now()
	if _, ok := r.Render(context.Background(), "x", segment.ModeBlock); ok {
		t.Fatal("Render() succeeded, want timeout failure")
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Render() took %v, want bounded by the timeout", elapsed)
	}
	if !strings.Contains(logs.String(), ErrRenderTimeout.Error()) {
		t.Errorf("log = %q, want timeout reason", logs.String())
	}
}

func TestRenderer_CanceledContext(t *testing.T) {
	t.Parallel()

	surface := &fakeSurface{png: testPNG(t, 10, 10)}
	r := New(surface, withMarkup(stubMarkup))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, ok := r.Render(ctx, "x", segment.ModeBlock); ok {
		t.Fatal("Render() succeeded with canceled context")
	}
	if surface.calls() != 0 {
		t.Error("surface called with canceled context")
	}
}

func TestRenderer_SerializesSnapshots(t *testing.T) {
	t.Parallel()

	surface := &fakeSurface{png: testPNG(t, 10, 10), delay: 5 * time.Millisecond}
	r := New(surface, withMarkup(stubMarkup))

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Render(context.Background(), "x", segment.ModeInline)
		}()
	}
	wg.Wait()

	if got := surface.maxInFlight.Load(); got != 1 {
		t.Errorf("max concurrent snapshots = %d, want 1", got)
	}
	if got := surface.calls(); got != 8 {
		t.Errorf("surface calls = %d, want 8", got)
	}
}

func TestRenderer_Downscale(t *testing.T) {
	t.Parallel()

	surface := &fakeSurface{png: testPNG(t, 400, 100)}
	r := New(surface, withMarkup(stubMarkup), WithMaxPixelWidth(200))

	asset, ok := r.Render(context.Background(), "x", segment.ModeBlock)
	if !ok {
		t.Fatal("Render() failed")
	}
	if asset.Width != 200 || asset.Height != 50 {
		t.Errorf("asset size = %dx%d, want 200x50", asset.Width, asset.Height)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(asset.PNG))
	if err != nil {
		t.Fatalf("asset is not a PNG: %v", err)
	}
	if cfg.Width != 200 || cfg.Height != 50 {
		t.Errorf("encoded size = %dx%d, want 200x50", cfg.Width, cfg.Height)
	}
}

func TestRenderer_Options(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		opts  []Option
		ratio float64
		font  int
		pad   int
	}{
		{"defaults", nil, DefaultPixelRatio, DefaultFontSize, DefaultPadding},
		{"ratio below minimum is raised", []Option{WithPixelRatio(1)}, MinPixelRatio, DefaultFontSize, DefaultPadding},
		{"higher ratio kept", []Option{WithPixelRatio(4)}, 4, DefaultFontSize, DefaultPadding},
		{"font and padding", []Option{WithFontSize(30), WithPadding(0)}, DefaultPixelRatio, 30, 0},
		{"invalid font ignored", []Option{WithFontSize(-1), WithPadding(-5)}, DefaultPixelRatio, DefaultFontSize, DefaultPadding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := New(&fakeSurface{}, tt.opts...)
			if r.pixelRatio != tt.ratio || r.fontSize != tt.font || r.padding != tt.pad {
				t.Errorf("got ratio=%v font=%d pad=%d, want %v %d %d",
					r.pixelRatio, r.fontSize, r.padding, tt.ratio, tt.font, tt.pad)
			}
		})
	}
}

func TestRenderer_Close(t *testing.T) {
	t.Parallel()

	surface := &fakeSurface{png: testPNG(t, 10, 10)}
	r := New(surface, withMarkup(stubMarkup))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if surface.closed != 1 {
		t.Errorf("surface closed %d times, want 1", surface.closed)
	}
	if _, ok := r.Render(context.Background(), "x", segment.ModeBlock); ok {
		t.Error("Render() succeeded after Close")
	}
}
