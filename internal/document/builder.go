package document

import (
	"github.com/alnah/go-ai2docx/internal/mathrender"
	"github.com/alnah/go-ai2docx/internal/pipeline"
)

// Default layout values, in twips for spacing and CSS pixels for images.
const (
	DefaultHeadingSpaceBefore   = 240
	DefaultHeadingSpaceAfter    = 120
	DefaultParagraphSpaceAfter  = 120
	DefaultImageSpaceBefore     = 200
	DefaultImageSpaceAfter      = 200
	DefaultImageWidth           = 300
	DefaultImageHeight          = 100
	DefaultCodeStyle            = "Code"
	DefaultCodeTheme            = "github"
	defaultListIndent           = 0
	defaultParagraphSpaceBefore = 0
)

// Layout holds the spacing and sizing rules applied by a Builder.
type Layout struct {
	HeadingSpacing   Spacing
	ParagraphSpacing Spacing
	ImageSpacing     Spacing
	ImageAlignment   Alignment
	ImageWidth       int
	ImageHeight      int
	// KeepAspectRatio derives the image height from ImageWidth and the
	// PNG proportions instead of using ImageHeight.
	KeepAspectRatio bool
	CodeStyle       string
	CodeTheme       string // chroma style name
}

// DefaultLayout returns the standard layout.
func DefaultLayout() Layout {
	return Layout{
		HeadingSpacing:   Spacing{Before: DefaultHeadingSpaceBefore, After: DefaultHeadingSpaceAfter},
		ParagraphSpacing: Spacing{Before: defaultParagraphSpaceBefore, After: DefaultParagraphSpaceAfter},
		ImageSpacing:     Spacing{Before: DefaultImageSpaceBefore, After: DefaultImageSpaceAfter},
		ImageAlignment:   AlignCenter,
		ImageWidth:       DefaultImageWidth,
		ImageHeight:      DefaultImageHeight,
		CodeStyle:        DefaultCodeStyle,
		CodeTheme:        DefaultCodeTheme,
	}
}

// Builder appends block tokens and equation assets as document elements.
type Builder struct {
	layout Layout
}

// NewBuilder creates a Builder. Zero image sizes fall back to the defaults.
func NewBuilder(layout Layout) *Builder {
	if layout.ImageWidth <= 0 {
		layout.ImageWidth = DefaultImageWidth
	}
	if layout.ImageHeight <= 0 {
		layout.ImageHeight = DefaultImageHeight
	}
	if layout.CodeStyle == "" {
		layout.CodeStyle = DefaultCodeStyle
	}
	return &Builder{layout: layout}
}

// Layout returns the rules in use.
func (b *Builder) Layout() Layout {
	return b.layout
}

var defaultBuilder = NewBuilder(DefaultLayout())

// Append adds item to elems with the default layout. See Builder.Append.
func Append(elems []Element, item any) []Element {
	return defaultBuilder.Append(elems, item)
}

// Append returns elems with the element for item added at the end.
// item is a pipeline.BlockToken or a *mathrender.Asset. A nil asset, or an
// item of any other type, leaves elems unchanged. Existing elements are
// never modified or reordered.
func (b *Builder) Append(elems []Element, item any) []Element {
	switch it := item.(type) {
	case pipeline.Heading:
		return append(elems, Heading{
			Level:   it.Level,
			Text:    it.Text,
			Runs:    convertRuns(it.Runs),
			Spacing: b.layout.HeadingSpacing,
		})

	case pipeline.ListItem:
		return append(elems, ListItem{
			Text:   it.Text,
			Indent: defaultListIndent,
			Runs:   convertRuns(it.Runs),
		})

	case pipeline.Paragraph:
		if it.Code != nil {
			return append(elems, Paragraph{
				Text:    it.Text,
				Runs:    highlightCode(it.Code.Language, it.Code.Source, b.layout.CodeTheme),
				Style:   b.layout.CodeStyle,
				Spacing: b.layout.ParagraphSpacing,
			})
		}
		return append(elems, Paragraph{
			Text:    it.Text,
			Runs:    convertRuns(it.Runs),
			Spacing: b.layout.ParagraphSpacing,
		})

	case *mathrender.Asset:
		if it == nil {
			return elems
		}
		return append(elems, b.image(it))
	}
	return elems
}

func (b *Builder) image(a *mathrender.Asset) ImageBlock {
	width, height := b.layout.ImageWidth, b.layout.ImageHeight
	if b.layout.KeepAspectRatio && a.Width > 0 {
		height = max(width*a.Height/a.Width, 1)
	}
	return ImageBlock{
		Data:          a.PNG,
		PixelWidth:    a.Width,
		PixelHeight:   a.Height,
		DisplayWidth:  width,
		DisplayHeight: height,
		AltText:       a.LaTeX,
		Alignment:     b.layout.ImageAlignment,
		Spacing:       b.layout.ImageSpacing,
	}
}
