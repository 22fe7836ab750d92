package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/alnah/go-ai2docx/internal/assets"
	"github.com/alnah/go-ai2docx/internal/document"
)

// DefaultApplication is recorded in docProps/app.xml.
const DefaultApplication = "go-ai2docx"

// Page geometry in twips: A4 with one-inch margins.
const (
	pageWidth  = 11906
	pageHeight = 16838
	pageMargin = 1440
	edgeMargin = 708
)

// emuPerPixel converts CSS pixels at 96 DPI to English Metric Units.
const emuPerPixel = 9525

const (
	hyperlinkStyle  = "Hyperlink"
	inlineCodeStyle = "InlineCode"
	listStyle       = "ListParagraph"
	highlightColor  = "yellow"
	bulletNumID     = 1
	maxListLevel    = 8
)

// Option configures Write.
type Option func(*writeConfig)

type writeConfig struct {
	styles      string
	application string
	codeStyle   string
}

// WithStyles replaces the word/styles.xml part.
func WithStyles(stylesXML string) Option {
	return func(c *writeConfig) {
		if stylesXML != "" {
			c.styles = stylesXML
		}
	}
}

// WithApplication sets the producing application name.
func WithApplication(name string) Option {
	return func(c *writeConfig) {
		if name != "" {
			c.application = name
		}
	}
}

// WithCodeStyle names the paragraph style used for code blocks. Inline code
// runs inside such paragraphs keep the paragraph font.
func WithCodeStyle(style string) Option {
	return func(c *writeConfig) {
		if style != "" {
			c.codeStyle = style
		}
	}
}

// Marshal returns doc as .docx bytes. See Write.
func Marshal(doc *document.Document, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, doc, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write serializes doc as a .docx package to w.
//
// Elements are written in order, one paragraph each. A document with no
// elements still yields a valid package with a single empty paragraph.
func Write(w io.Writer, doc *document.Document, opts ...Option) error {
	if doc == nil {
		return ErrNilDocument
	}

	cfg := writeConfig{
		application: DefaultApplication,
		codeStyle:   document.DefaultCodeStyle,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.styles == "" {
		styles, err := assets.LoadWordStyles(assets.DefaultStyleName)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStyles, err)
		}
		cfg.styles = styles
	}

	body := newBodyWriter(cfg.codeStyle)
	for _, elem := range doc.Elements {
		body.element(elem)
	}
	if len(body.paragraphs) == 0 {
		body.paragraphs = append(body.paragraphs, xParagraph{})
	}

	pkg := newPackageWriter(w, doc.Created)
	pkg.xmlPart(partContentTypes, contentTypes(len(body.media) > 0))
	pkg.xmlPart(partRootRels, rootRelationships())
	pkg.xmlPart(partCore, coreProperties(doc))
	pkg.xmlPart(partApp, &xAppProps{Application: cfg.application})
	pkg.xmlPart(partDocument, &xDocument{
		XmlnsW:   nsW,
		XmlnsR:   nsR,
		XmlnsWP:  nsWP,
		XmlnsA:   nsA,
		XmlnsPic: nsPic,
		Body: xBody{
			Paragraphs: body.paragraphs,
			Section:    pageSection(),
		},
	})
	pkg.rawPart(partStyles, []byte(cfg.styles), zip.Deflate)
	pkg.xmlPart(partNumbering, bulletNumbering())
	pkg.xmlPart(partDocumentRels, &xRelationships{Rels: body.rels})
	for _, m := range body.media {
		// PNG data is already compressed.
		pkg.rawPart(m.name, m.data, zip.Store)
	}
	return pkg.close()
}

// ---------------------------------------------------------------------------
// Package writer
// ---------------------------------------------------------------------------

// packageWriter writes zip entries and keeps the first error.
type packageWriter struct {
	zw       *zip.Writer
	modified time.Time
	err      error
}

func newPackageWriter(w io.Writer, modified time.Time) *packageWriter {
	if modified.IsZero() {
		// Fixed timestamp keeps output reproducible.
		modified = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return &packageWriter{zw: zip.NewWriter(w), modified: modified.UTC()}
}

func (p *packageWriter) xmlPart(name string, v any) {
	if p.err != nil {
		return
	}
	data, err := xml.Marshal(v)
	if err != nil {
		p.err = fmt.Errorf("%w: %s: %v", ErrWritePart, name, err)
		return
	}
	p.rawPart(name, append([]byte(xml.Header), data...), zip.Deflate)
}

func (p *packageWriter) rawPart(name string, data []byte, method uint16) {
	if p.err != nil {
		return
	}
	f, err := p.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   method,
		Modified: p.modified,
	})
	if err != nil {
		p.err = fmt.Errorf("%w: %s: %v", ErrWritePart, name, err)
		return
	}
	if _, err := f.Write(data); err != nil {
		p.err = fmt.Errorf("%w: %s: %v", ErrWritePart, name, err)
	}
}

func (p *packageWriter) close() error {
	if err := p.zw.Close(); err != nil && p.err == nil {
		p.err = fmt.Errorf("%w: %v", ErrWritePart, err)
	}
	return p.err
}

// ---------------------------------------------------------------------------
// Fixed parts
// ---------------------------------------------------------------------------

func contentTypes(hasMedia bool) *xTypes {
	t := &xTypes{
		Defaults: []xDefault{
			{Extension: "rels", ContentType: ctRels},
			{Extension: "xml", ContentType: "application/xml"},
		},
		Overrides: []xOverride{
			{PartName: "/" + partDocument, ContentType: ctDocument},
			{PartName: "/" + partStyles, ContentType: ctStyles},
			{PartName: "/" + partNumbering, ContentType: ctNumbering},
			{PartName: "/" + partCore, ContentType: ctCore},
			{PartName: "/" + partApp, ContentType: ctApp},
		},
	}
	if hasMedia {
		t.Defaults = append(t.Defaults, xDefault{Extension: "png", ContentType: ctPNG})
	}
	return t
}

func rootRelationships() *xRelationships {
	return &xRelationships{Rels: []xRelationship{
		{ID: "rId1", Type: relOfficeDocument, Target: partDocument},
		{ID: "rId2", Type: relCoreProps, Target: partCore},
		{ID: "rId3", Type: relExtendedProps, Target: partApp},
	}}
}

func coreProperties(doc *document.Document) *xCoreProps {
	props := &xCoreProps{
		XmlnsCP:        nsCP,
		XmlnsDC:        nsDC,
		XmlnsDCTerms:   nsDCTerms,
		XmlnsDCMIType:  nsDCMI,
		XmlnsXSI:       nsXSI,
		Title:          doc.Title,
		Creator:        doc.Author,
		LastModifiedBy: doc.Author,
	}
	if !doc.Created.IsZero() {
		stamp := doc.Created.UTC().Format(time.RFC3339)
		props.Created = &xW3CDTF{Type: "dcterms:W3CDTF", Value: stamp}
		props.Modified = &xW3CDTF{Type: "dcterms:W3CDTF", Value: stamp}
	}
	return props
}

func pageSection() xSection {
	return xSection{
		PageSize: xPageSize{W: pageWidth, H: pageHeight},
		PageMargin: xPageMargin{
			Top:    pageMargin,
			Right:  pageMargin,
			Bottom: pageMargin,
			Left:   pageMargin,
			Header: edgeMargin,
			Footer: edgeMargin,
		},
	}
}

var bulletGlyphs = [...]string{"•", "◦", "▪"}

func bulletNumbering() *xNumbering {
	levels := make([]xLevel, 0, maxListLevel+1)
	for i := 0; i <= maxListLevel; i++ {
		levels = append(levels, xLevel{
			Level:   i,
			Start:   xVal{Val: "1"},
			NumFmt:  xVal{Val: "bullet"},
			LvlText: xVal{Val: bulletGlyphs[i%len(bulletGlyphs)]},
			LvlJc:   xVal{Val: "left"},
			PPr:     xLevelPPr{Ind: xInd{Left: 720 * (i + 1), Hanging: 360}},
		})
	}
	return &xNumbering{
		XmlnsW: nsW,
		Abstract: []xAbstractNum{{
			ID:        0,
			MultiType: xVal{Val: "hybridMultilevel"},
			Levels:    levels,
		}},
		Nums: []xNum{{ID: bulletNumID, Abstract: xVal{Val: "0"}}},
	}
}
