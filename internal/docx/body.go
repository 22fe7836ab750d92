package docx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-ai2docx/internal/document"
)

type mediaPart struct {
	name string
	data []byte
}

// bodyWriter converts document elements to paragraphs and collects the
// relationships and media parts they reference.
type bodyWriter struct {
	codeStyle  string
	paragraphs []xParagraph
	rels       []xRelationship
	media      []mediaPart
	links      map[string]string // target -> relationship id
	drawings   int
}

func newBodyWriter(codeStyle string) *bodyWriter {
	return &bodyWriter{
		codeStyle: codeStyle,
		rels: []xRelationship{
			{ID: "rId1", Type: relStyles, Target: "styles.xml"},
			{ID: "rId2", Type: relNumbering, Target: "numbering.xml"},
		},
		links: make(map[string]string),
	}
}

func (b *bodyWriter) nextRelID() string {
	return "rId" + strconv.Itoa(len(b.rels)+1)
}

func (b *bodyWriter) element(elem document.Element) {
	switch e := elem.(type) {
	case document.Heading:
		b.heading(e)
	case document.Paragraph:
		b.paragraph(e)
	case document.ListItem:
		b.listItem(e)
	case document.ImageBlock:
		b.image(e)
	}
}

func (b *bodyWriter) heading(h document.Heading) {
	level := min(max(h.Level, 1), 9)
	b.paragraphs = append(b.paragraphs, xParagraph{
		Props: &xParaProps{
			Style:   &xVal{Val: "Heading" + strconv.Itoa(level)},
			Spacing: spacing(h.Spacing),
		},
		Content: b.inline(runsOrText(h.Runs, h.Text), false),
	})
}

func (b *bodyWriter) paragraph(p document.Paragraph) {
	props := &xParaProps{Spacing: spacing(p.Spacing)}
	if p.Style != "" {
		props.Style = &xVal{Val: p.Style}
	}
	b.paragraphs = append(b.paragraphs, xParagraph{
		Props:   props,
		Content: b.inline(runsOrText(p.Runs, p.Text), p.Style == b.codeStyle),
	})
}

func (b *bodyWriter) listItem(li document.ListItem) {
	level := min(max(li.Indent, 0), maxListLevel)
	b.paragraphs = append(b.paragraphs, xParagraph{
		Props: &xParaProps{
			Style: &xVal{Val: listStyle},
			NumPr: &xNumPr{
				Level: xVal{Val: strconv.Itoa(level)},
				NumID: xVal{Val: strconv.Itoa(bulletNumID)},
			},
		},
		Content: b.inline(runsOrText(li.Runs, li.Text), false),
	})
}

func (b *bodyWriter) image(img document.ImageBlock) {
	if len(img.Data) == 0 {
		return
	}
	b.drawings++
	id := b.nextRelID()
	name := fmt.Sprintf("image%d.png", b.drawings)
	b.rels = append(b.rels, xRelationship{ID: id, Type: relImage, Target: "media/" + name})
	b.media = append(b.media, mediaPart{name: "word/media/" + name, data: img.Data})

	width, height := img.DisplayWidth, img.DisplayHeight
	if width <= 0 || height <= 0 {
		width, height = img.PixelWidth, img.PixelHeight
	}
	extent := xExtent{CX: int64(width) * emuPerPixel, CY: int64(height) * emuPerPixel}
	pr := xDocPr{ID: b.drawings, Name: "Equation " + strconv.Itoa(b.drawings), Descr: img.AltText}

	drawing := &xDrawing{Inline: xInline{
		Extent:  extent,
		DocPr:   pr,
		FramePr: xFramePr{Locks: xFrameLocks{NoChangeAspect: 1}},
		Graphic: xGraphic{Data: xGraphicData{
			URI: nsPic,
			Pic: xPic{
				NvPicPr:  xNvPicPr{CNvPr: xDocPr{ID: 0, Name: name}},
				BlipFill: xBlipFill{Blip: xBlip{Embed: id}},
				SpPr: xSpPr{
					Xfrm:     xXfrm{Ext: extent},
					PrstGeom: xPrstGeom{Prst: "rect"},
				},
			},
		}},
	}}

	b.paragraphs = append(b.paragraphs, xParagraph{
		Props: &xParaProps{
			Spacing: spacing(img.Spacing),
			Jc:      &xVal{Val: justification(img.Alignment)},
		},
		Content: []any{&xRun{Content: []any{drawing}}},
	})
}

// inline converts runs to paragraph content. Runs sharing a link target
// are grouped under one hyperlink element.
func (b *bodyWriter) inline(runs []document.Run, inCode bool) []any {
	var content []any
	var link *xHyperlink
	for _, r := range runs {
		if r.Text == "" {
			continue
		}
		xr := textRuns(r.Text, runProps(r, inCode))
		if r.Link == "" {
			link = nil
			for i := range xr {
				content = append(content, &xr[i])
			}
			continue
		}
		if link == nil || b.links[r.Link] != link.ID {
			link = &xHyperlink{ID: b.linkID(r.Link), History: "1"}
			content = append(content, link)
		}
		link.Runs = append(link.Runs, xr...)
	}
	return content
}

func (b *bodyWriter) linkID(target string) string {
	if id, ok := b.links[target]; ok {
		return id
	}
	id := b.nextRelID()
	b.rels = append(b.rels, xRelationship{ID: id, Type: relHyperlink, Target: target, TargetMode: "External"})
	b.links[target] = id
	return id
}

func runProps(r document.Run, inCode bool) *xRunProps {
	var p xRunProps
	switch {
	case r.Link != "":
		p.Style = &xVal{Val: hyperlinkStyle}
	case r.Code && !inCode:
		p.Style = &xVal{Val: inlineCodeStyle}
	}
	if r.Bold {
		p.Bold = &xEmpty{}
	}
	if r.Italic {
		p.Italic = &xEmpty{}
	}
	if r.Strike {
		p.Strike = &xEmpty{}
	}
	if r.Color != "" {
		p.Color = &xVal{Val: r.Color}
	}
	if r.Highlight {
		p.Highlight = &xVal{Val: highlightColor}
	}
	if p == (xRunProps{}) {
		return nil
	}
	return &p
}

// textRuns splits s into runs holding text, line breaks and tabs. Each break
// and tab gets its own run so readers see them in document order.
func textRuns(s string, props *xRunProps) []xRun {
	var runs []xRun
	flush := func(text string) {
		if text != "" {
			runs = append(runs, xRun{Props: props, Content: []any{plainText(text)}})
		}
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if i > 0 {
			runs = append(runs, xRun{Props: props, Content: []any{&xBreak{}}})
		}
		cells := strings.Split(line, "\t")
		for j, cell := range cells {
			if j > 0 {
				runs = append(runs, xRun{Props: props, Content: []any{&xTab{}}})
			}
			flush(cell)
		}
	}
	return runs
}

func plainText(s string) *xText {
	t := &xText{Value: s}
	if strings.TrimSpace(s) != s {
		t.Space = "preserve"
	}
	return t
}

func runsOrText(runs []document.Run, text string) []document.Run {
	if len(runs) > 0 {
		return runs
	}
	return []document.Run{{Text: text}}
}

func spacing(s document.Spacing) *xSpacing {
	if s == (document.Spacing{}) {
		return nil
	}
	return &xSpacing{Before: s.Before, After: s.After}
}

func justification(a document.Alignment) string {
	switch a {
	case document.AlignCenter:
		return "center"
	case document.AlignRight:
		return "right"
	default:
		return "left"
	}
}
