package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-ai2docx/internal/mathrender"
	"github.com/alnah/go-ai2docx/internal/pipeline"
	"github.com/alnah/go-ai2docx/internal/segment"
)

func TestAppend(t *testing.T) {
	t.Parallel()

	asset := &mathrender.Asset{PNG: []byte{1, 2}, Width: 900, Height: 150, Mode: segment.ModeBlock, LaTeX: "x+y"}

	tests := []struct {
		name string
		item any
		want []Element
	}{
		{
			name: "heading spacing",
			item: pipeline.Heading{Level: 2, Text: "Sub", Runs: []pipeline.Run{{Text: "Sub"}}},
			want: []Element{Heading{
				Level:   2,
				Text:    "Sub",
				Runs:    []Run{{Text: "Sub"}},
				Spacing: Spacing{Before: 240, After: 120},
			}},
		},
		{
			name: "list item at indent 0",
			item: pipeline.ListItem{Text: "a", Runs: []pipeline.Run{{Text: "a", Bold: true}}},
			want: []Element{ListItem{Text: "a", Runs: []Run{{Text: "a", Bold: true}}}},
		},
		{
			name: "paragraph spacing after",
			item: pipeline.Paragraph{Text: "body", Runs: []pipeline.Run{{Text: "body", Link: "u"}}},
			want: []Element{Paragraph{
				Text:    "body",
				Runs:    []Run{{Text: "body", Link: "u"}},
				Spacing: Spacing{After: 120},
			}},
		},
		{
			name: "asset becomes centered image with fixed size",
			item: asset,
			want: []Element{ImageBlock{
				Data:          []byte{1, 2},
				PixelWidth:    900,
				PixelHeight:   150,
				DisplayWidth:  300,
				DisplayHeight: 100,
				AltText:       "x+y",
				Alignment:     AlignCenter,
				Spacing:       Spacing{Before: 200, After: 200},
			}},
		},
		{
			name: "nil asset appends nothing",
			item: (*mathrender.Asset)(nil),
			want: nil,
		},
		{
			name: "unknown item appends nothing",
			item: 42,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Append(nil, tt.item)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Append() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAppend_PreservesExisting(t *testing.T) {
	t.Parallel()

	var elems []Element
	elems = Append(elems, pipeline.Paragraph{Text: "A", Runs: []pipeline.Run{{Text: "A"}}})
	elems = Append(elems, (*mathrender.Asset)(nil))
	elems = Append(elems, &mathrender.Asset{PNG: []byte{0}, Width: 3, Height: 1})
	elems = Append(elems, pipeline.Paragraph{Text: "B", Runs: []pipeline.Run{{Text: "B"}}})

	if len(elems) != 3 {
		t.Fatalf("len = %d, want 3", len(elems))
	}
	if p, ok := elems[0].(Paragraph); !ok || p.Text != "A" {
		t.Errorf("elems[0] = %#v, want paragraph A", elems[0])
	}
	if _, ok := elems[1].(ImageBlock); !ok {
		t.Errorf("elems[1] = %T, want ImageBlock", elems[1])
	}
	if p, ok := elems[2].(Paragraph); !ok || p.Text != "B" {
		t.Errorf("elems[2] = %#v, want paragraph B", elems[2])
	}
}

func TestBuilder_Layout(t *testing.T) {
	t.Parallel()

	t.Run("zero sizes fall back to defaults", func(t *testing.T) {
		t.Parallel()

		b := NewBuilder(Layout{})
		got := b.Layout()
		if got.ImageWidth != DefaultImageWidth || got.ImageHeight != DefaultImageHeight || got.CodeStyle != DefaultCodeStyle {
			t.Errorf("Layout() = %+v, want default image size and code style", got)
		}
	})

	t.Run("keep aspect ratio", func(t *testing.T) {
		t.Parallel()

		layout := DefaultLayout()
		layout.ImageWidth = 200
		layout.KeepAspectRatio = true

		elems := NewBuilder(layout).Append(nil, &mathrender.Asset{PNG: []byte{0}, Width: 400, Height: 100})
		img := elems[0].(ImageBlock)
		if img.DisplayWidth != 200 || img.DisplayHeight != 50 {
			t.Errorf("display = %dx%d, want 200x50", img.DisplayWidth, img.DisplayHeight)
		}
	})

	t.Run("custom spacing", func(t *testing.T) {
		t.Parallel()

		layout := DefaultLayout()
		layout.HeadingSpacing = Spacing{Before: 480, After: 60}

		elems := NewBuilder(layout).Append(nil, pipeline.Heading{Level: 1, Text: "T"})
		if got := elems[0].(Heading).Spacing; got != layout.HeadingSpacing {
			t.Errorf("Spacing = %+v, want %+v", got, layout.HeadingSpacing)
		}
	})
}

func TestAppend_CodeParagraph(t *testing.T) {
	t.Parallel()

	src := "func main() {\n\tprintln(1)\n}"
	elems := Append(nil, pipeline.Paragraph{
		Text: src,
		Runs: []pipeline.Run{{Text: src, Code: true}},
		Code: &pipeline.CodeBlock{Language: "go", Source: src},
	})

	p, ok := elems[0].(Paragraph)
	if !ok {
		t.Fatalf("elems[0] = %T, want Paragraph", elems[0])
	}
	if p.Style != DefaultCodeStyle {
		t.Errorf("Style = %q, want %q", p.Style, DefaultCodeStyle)
	}

	var text string
	colored := false
	for _, r := range p.Runs {
		if !r.Code {
			t.Errorf("run %q is not marked as code", r.Text)
		}
		if r.Color != "" {
			colored = true
		}
		text += r.Text
	}
	if text != src {
		t.Errorf("runs spell %q, want %q", text, src)
	}
	if !colored {
		t.Error("no run carries a highlight color")
	}
}

func TestHighlightCode_Fallbacks(t *testing.T) {
	t.Parallel()

	if got := highlightCode("go", "", DefaultCodeTheme); got != nil {
		t.Errorf("highlightCode(empty) = %v, want nil", got)
	}

	runs := highlightCode("no-such-language", "just words", "no-such-theme")
	var text string
	for _, r := range runs {
		text += r.Text
	}
	if text != "just words" {
		t.Errorf("runs spell %q, want %q", text, "just words")
	}
}

func TestFirstHeadingAndCount(t *testing.T) {
	t.Parallel()

	elems := []Element{
		Paragraph{Text: "intro"},
		Heading{Level: 1, Text: "First"},
		ListItem{Text: "i"},
		ImageBlock{},
		Heading{Level: 2, Text: "Second"},
	}

	if got := FirstHeading(elems); got != "First" {
		t.Errorf("FirstHeading() = %q, want %q", got, "First")
	}
	if got := FirstHeading(nil); got != "" {
		t.Errorf("FirstHeading(nil) = %q, want empty", got)
	}

	h, p, i, img := Count(elems)
	if h != 2 || p != 1 || i != 1 || img != 1 {
		t.Errorf("Count() = %d %d %d %d, want 2 1 1 1", h, p, i, img)
	}
}

func TestAlignmentString(t *testing.T) {
	t.Parallel()

	for a, want := range map[Alignment]string{AlignLeft: "left", AlignCenter: "center", AlignRight: "right"} {
		if got := a.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", a, got, want)
		}
	}
}
