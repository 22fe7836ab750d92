package ai2docx

import (
	"log/slog"
	"time"

	"github.com/alnah/go-ai2docx/internal/assets"
	"github.com/alnah/go-ai2docx/internal/document"
	"github.com/alnah/go-ai2docx/internal/mathrender"
	"github.com/alnah/go-ai2docx/internal/pipeline"
)

// Rendering defaults, re-exported for callers and configuration.
const (
	MinPixelRatio     = mathrender.MinPixelRatio
	DefaultPixelRatio = mathrender.DefaultPixelRatio
	DefaultFontSize   = mathrender.DefaultFontSize
	DefaultPadding    = mathrender.DefaultPadding

	DefaultImageWidth      = document.DefaultImageWidth
	DefaultImageHeight     = document.DefaultImageHeight
	DefaultMaxHeadingLevel = pipeline.DefaultMaxHeadingLevel
	DefaultCodeTheme       = document.DefaultCodeTheme
	DefaultWordStyles      = assets.DefaultStyleName
)

// defaultTimeout bounds a whole conversion when no timeout is specified.
const defaultTimeout = 5 * time.Minute

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout         time.Duration
	renderTimeout   time.Duration
	pixelRatio      float64
	fontSize        int
	padding         int
	maxPixelWidth   int
	imageWidth      int
	imageHeight     int
	keepAspect      bool
	maxHeadingLevel int
	codeTheme       string
	wordStyles      string
	assetPath       string
	author          string
}

func defaultConfig() converterConfig {
	return converterConfig{
		timeout:         defaultTimeout,
		pixelRatio:      DefaultPixelRatio,
		fontSize:        DefaultFontSize,
		padding:         DefaultPadding,
		imageWidth:      DefaultImageWidth,
		imageHeight:     DefaultImageHeight,
		maxHeadingLevel: DefaultMaxHeadingLevel,
		codeTheme:       DefaultCodeTheme,
		wordStyles:      DefaultWordStyles,
	}
}

// WithTimeout bounds a whole conversion.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("ai2docx: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithRenderTimeout bounds each equation snapshot. An equation that times
// out is skipped like any other rendering failure. Zero disables the bound.
func WithRenderTimeout(d time.Duration) Option {
	return func(c *Converter) {
		c.cfg.renderTimeout = d
	}
}

// WithPixelRatio sets the device pixel ratio used to rasterize equations.
// NewConverter rejects values below MinPixelRatio.
func WithPixelRatio(ratio float64) Option {
	return func(c *Converter) {
		c.cfg.pixelRatio = ratio
	}
}

// WithFontSize sets the equation font size in CSS pixels.
func WithFontSize(px int) Option {
	return func(c *Converter) {
		c.cfg.fontSize = px
	}
}

// WithPadding sets the padding around each equation in CSS pixels.
func WithPadding(px int) Option {
	return func(c *Converter) {
		c.cfg.padding = px
	}
}

// WithMaxPixelWidth downscales equation images wider than px device pixels.
func WithMaxPixelWidth(px int) Option {
	return func(c *Converter) {
		c.cfg.maxPixelWidth = px
	}
}

// WithImageSize sets the display size of equation images in CSS pixels.
func WithImageSize(width, height int) Option {
	return func(c *Converter) {
		c.cfg.imageWidth = width
		c.cfg.imageHeight = height
	}
}

// WithKeepAspectRatio derives image heights from the rendered proportions.
func WithKeepAspectRatio(keep bool) Option {
	return func(c *Converter) {
		c.cfg.keepAspect = keep
	}
}

// WithMaxHeadingLevel sets the deepest heading level kept; deeper headings
// become level 1.
func WithMaxHeadingLevel(level int) Option {
	return func(c *Converter) {
		c.cfg.maxHeadingLevel = level
	}
}

// WithCodeTheme sets the chroma style used to color code blocks.
func WithCodeTheme(name string) Option {
	return func(c *Converter) {
		if name != "" {
			c.cfg.codeTheme = name
		}
	}
}

// WithWordStyles selects the styles.xml part by asset name.
func WithWordStyles(name string) Option {
	return func(c *Converter) {
		if name != "" {
			c.cfg.wordStyles = name
		}
	}
}

// WithAssetPath loads assets from dir, falling back to the embedded ones.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithAssetLoader sets a custom asset loader. It takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}

// WithAuthor sets the author recorded when Input.Author is empty.
func WithAuthor(name string) Option {
	return func(c *Converter) {
		c.cfg.author = name
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}
