package document

import (
	"time"

	"github.com/alnah/go-ai2docx/internal/pipeline"
)

// Element is one block of the document: Heading, Paragraph, ListItem or ImageBlock.
type Element interface {
	element()
}

// Spacing is the space around a block, in twentieths of a point (twips).
type Spacing struct {
	Before int
	After  int
}

// Alignment is the horizontal alignment of a block.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// Run is inline text sharing one format.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Strike    bool
	Code      bool
	Highlight bool
	Link      string
	Color     string // RRGGBB, empty for the style default
}

// Heading is a section title.
type Heading struct {
	Level   int
	Text    string
	Runs    []Run
	Spacing Spacing
}

// Paragraph is body text. Style names a paragraph style, empty for Normal.
type Paragraph struct {
	Text    string
	Runs    []Run
	Style   string
	Spacing Spacing
}

// ListItem is a bullet paragraph.
type ListItem struct {
	Text   string
	Indent int
	Runs   []Run
}

// ImageBlock is a standalone equation image.
// Pixel sizes describe the PNG; display sizes are what the reader sees.
type ImageBlock struct {
	Data          []byte
	PixelWidth    int
	PixelHeight   int
	DisplayWidth  int // CSS pixels at 96 DPI
	DisplayHeight int // CSS pixels at 96 DPI
	AltText       string
	Alignment     Alignment
	Spacing       Spacing
}

func (Heading) element()    {}
func (Paragraph) element()  {}
func (ListItem) element()   {}
func (ImageBlock) element() {}

// Document is one single-section document ready for serialization.
type Document struct {
	Title    string
	Author   string
	Created  time.Time
	Elements []Element
}

// FirstHeading returns the text of the first heading, or "".
func FirstHeading(elems []Element) string {
	for _, e := range elems {
		if h, ok := e.(Heading); ok {
			return h.Text
		}
	}
	return ""
}

// Count returns how many elements of each kind elems holds.
func Count(elems []Element) (headings, paragraphs, items, images int) {
	for _, e := range elems {
		switch e.(type) {
		case Heading:
			headings++
		case Paragraph:
			paragraphs++
		case ListItem:
			items++
		case ImageBlock:
			images++
		}
	}
	return headings, paragraphs, items, images
}

// convertRuns copies parser runs into document runs.
func convertRuns(in []pipeline.Run) []Run {
	if len(in) == 0 {
		return nil
	}
	out := make([]Run, len(in))
	for i, r := range in {
		out[i] = Run{
			Text:      r.Text,
			Bold:      r.Bold,
			Italic:    r.Italic,
			Strike:    r.Strike,
			Code:      r.Code,
			Highlight: r.Highlight,
			Link:      r.Link,
		}
	}
	return out
}
