package docx

import "encoding/xml"

// Namespaces and relationship types.
const (
	nsW       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP      = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA       = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic     = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	nsCP      = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDC      = "http://purl.org/dc/elements/1.1/"
	nsDCTerms = "http://purl.org/dc/terms/"
	nsDCMI    = "http://purl.org/dc/dcmitype/"
	nsXSI     = "http://www.w3.org/2001/XMLSchema-instance"

	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relExtendedProps  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relNumbering      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"
	relImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relHyperlink      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"

	ctDocument  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ctStyles    = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	ctNumbering = "application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"
	ctCore      = "application/vnd.openxmlformats-package.core-properties+xml"
	ctApp       = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	ctRels      = "application/vnd.openxmlformats-package.relationships+xml"
	ctPNG       = "image/png"
)

// Package part names.
const (
	partContentTypes = "[Content_Types].xml"
	partRootRels     = "_rels/.rels"
	partCore         = "docProps/core.xml"
	partApp          = "docProps/app.xml"
	partDocument     = "word/document.xml"
	partStyles       = "word/styles.xml"
	partNumbering    = "word/numbering.xml"
	partDocumentRels = "word/_rels/document.xml.rels"
)

// ---------------------------------------------------------------------------
// Package structure
// ---------------------------------------------------------------------------

type xTypes struct {
	XMLName   xml.Name    `xml:"http://schemas.openxmlformats.org/package/2006/content-types Types"`
	Defaults  []xDefault  `xml:"Default"`
	Overrides []xOverride `xml:"Override"`
}

type xDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type xOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type xRelationships struct {
	XMLName xml.Name        `xml:"http://schemas.openxmlformats.org/package/2006/relationships Relationships"`
	Rels    []xRelationship `xml:"Relationship"`
}

type xRelationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// ---------------------------------------------------------------------------
// Properties
// ---------------------------------------------------------------------------

type xCoreProps struct {
	XMLName        xml.Name `xml:"cp:coreProperties"`
	XmlnsCP        string   `xml:"xmlns:cp,attr"`
	XmlnsDC        string   `xml:"xmlns:dc,attr"`
	XmlnsDCTerms   string   `xml:"xmlns:dcterms,attr"`
	XmlnsDCMIType  string   `xml:"xmlns:dcmitype,attr"`
	XmlnsXSI       string   `xml:"xmlns:xsi,attr"`
	Title          string   `xml:"dc:title,omitempty"`
	Creator        string   `xml:"dc:creator,omitempty"`
	LastModifiedBy string   `xml:"cp:lastModifiedBy,omitempty"`
	Created        *xW3CDTF `xml:"dcterms:created,omitempty"`
	Modified       *xW3CDTF `xml:"dcterms:modified,omitempty"`
}

type xW3CDTF struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

type xAppProps struct {
	XMLName     xml.Name `xml:"http://schemas.openxmlformats.org/officeDocument/2006/extended-properties Properties"`
	Application string   `xml:"Application"`
	AppVersion  string   `xml:"AppVersion,omitempty"`
}

// ---------------------------------------------------------------------------
// Document body
// ---------------------------------------------------------------------------

type xDocument struct {
	XMLName  xml.Name `xml:"w:document"`
	XmlnsW   string   `xml:"xmlns:w,attr"`
	XmlnsR   string   `xml:"xmlns:r,attr"`
	XmlnsWP  string   `xml:"xmlns:wp,attr"`
	XmlnsA   string   `xml:"xmlns:a,attr"`
	XmlnsPic string   `xml:"xmlns:pic,attr"`
	Body     xBody    `xml:"w:body"`
}

type xBody struct {
	Paragraphs []xParagraph `xml:"w:p"`
	Section    xSection     `xml:"w:sectPr"`
}

type xSection struct {
	PageSize   xPageSize   `xml:"w:pgSz"`
	PageMargin xPageMargin `xml:"w:pgMar"`
}

type xPageSize struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type xPageMargin struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}

// xParagraph children are *xRun and *xHyperlink in document order.
type xParagraph struct {
	XMLName xml.Name    `xml:"w:p"`
	Props   *xParaProps `xml:"w:pPr,omitempty"`
	Content []any
}

// Child order follows the CT_PPr schema sequence.
type xParaProps struct {
	Style   *xVal     `xml:"w:pStyle,omitempty"`
	NumPr   *xNumPr   `xml:"w:numPr,omitempty"`
	Spacing *xSpacing `xml:"w:spacing,omitempty"`
	Jc      *xVal     `xml:"w:jc,omitempty"`
}

type xNumPr struct {
	Level xVal `xml:"w:ilvl"`
	NumID xVal `xml:"w:numId"`
}

type xSpacing struct {
	Before int `xml:"w:before,attr"`
	After  int `xml:"w:after,attr"`
}

type xVal struct {
	Val string `xml:"w:val,attr"`
}

type xEmpty struct{}

type xHyperlink struct {
	XMLName xml.Name `xml:"w:hyperlink"`
	ID      string   `xml:"r:id,attr"`
	History string   `xml:"w:history,attr"`
	Runs    []xRun   `xml:"w:r"`
}

// xRun children are *xText, *xBreak, *xTab or *xDrawing.
type xRun struct {
	XMLName xml.Name   `xml:"w:r"`
	Props   *xRunProps `xml:"w:rPr,omitempty"`
	Content []any
}

// Child order follows the CT_RPr schema sequence.
type xRunProps struct {
	Style     *xVal   `xml:"w:rStyle,omitempty"`
	Bold      *xEmpty `xml:"w:b,omitempty"`
	Italic    *xEmpty `xml:"w:i,omitempty"`
	Strike    *xEmpty `xml:"w:strike,omitempty"`
	Color     *xVal   `xml:"w:color,omitempty"`
	Highlight *xVal   `xml:"w:highlight,omitempty"`
}

type xText struct {
	XMLName xml.Name `xml:"w:t"`
	Space   string   `xml:"xml:space,attr,omitempty"`
	Value   string   `xml:",chardata"`
}

type xBreak struct {
	XMLName xml.Name `xml:"w:br"`
}

type xTab struct {
	XMLName xml.Name `xml:"w:tab"`
}

// ---------------------------------------------------------------------------
// Drawing (inline picture)
// ---------------------------------------------------------------------------

type xDrawing struct {
	XMLName xml.Name `xml:"w:drawing"`
	Inline  xInline  `xml:"wp:inline"`
}

type xInline struct {
	DistT        int           `xml:"distT,attr"`
	DistB        int           `xml:"distB,attr"`
	DistL        int           `xml:"distL,attr"`
	DistR        int           `xml:"distR,attr"`
	Extent       xExtent       `xml:"wp:extent"`
	EffectExtent xEffectExtent `xml:"wp:effectExtent"`
	DocPr        xDocPr        `xml:"wp:docPr"`
	FramePr      xFramePr      `xml:"wp:cNvGraphicFramePr"`
	Graphic      xGraphic      `xml:"a:graphic"`
}

type xExtent struct {
	CX int64 `xml:"cx,attr"`
	CY int64 `xml:"cy,attr"`
}

type xEffectExtent struct {
	L int `xml:"l,attr"`
	T int `xml:"t,attr"`
	R int `xml:"r,attr"`
	B int `xml:"b,attr"`
}

type xDocPr struct {
	ID    int    `xml:"id,attr"`
	Name  string `xml:"name,attr"`
	Descr string `xml:"descr,attr,omitempty"`
}

type xFramePr struct {
	Locks xFrameLocks `xml:"a:graphicFrameLocks"`
}

type xFrameLocks struct {
	NoChangeAspect int `xml:"noChangeAspect,attr"`
}

type xGraphic struct {
	Data xGraphicData `xml:"a:graphicData"`
}

type xGraphicData struct {
	URI string `xml:"uri,attr"`
	Pic xPic   `xml:"pic:pic"`
}

type xPic struct {
	NvPicPr  xNvPicPr  `xml:"pic:nvPicPr"`
	BlipFill xBlipFill `xml:"pic:blipFill"`
	SpPr     xSpPr     `xml:"pic:spPr"`
}

type xNvPicPr struct {
	CNvPr    xDocPr `xml:"pic:cNvPr"`
	CNvPicPr xEmpty `xml:"pic:cNvPicPr"`
}

type xBlipFill struct {
	Blip    xBlip    `xml:"a:blip"`
	Stretch xStretch `xml:"a:stretch"`
}

type xBlip struct {
	Embed string `xml:"r:embed,attr"`
}

type xStretch struct {
	FillRect xEmpty `xml:"a:fillRect"`
}

type xSpPr struct {
	Xfrm     xXfrm     `xml:"a:xfrm"`
	PrstGeom xPrstGeom `xml:"a:prstGeom"`
}

type xXfrm struct {
	Off xOff    `xml:"a:off"`
	Ext xExtent `xml:"a:ext"`
}

type xOff struct {
	X int `xml:"x,attr"`
	Y int `xml:"y,attr"`
}

type xPrstGeom struct {
	Prst  string `xml:"prst,attr"`
	AvLst xEmpty `xml:"a:avLst"`
}

// ---------------------------------------------------------------------------
// Numbering
// ---------------------------------------------------------------------------

type xNumbering struct {
	XMLName  xml.Name       `xml:"w:numbering"`
	XmlnsW   string         `xml:"xmlns:w,attr"`
	Abstract []xAbstractNum `xml:"w:abstractNum"`
	Nums     []xNum         `xml:"w:num"`
}

type xAbstractNum struct {
	ID        int      `xml:"w:abstractNumId,attr"`
	MultiType xVal     `xml:"w:multiLevelType"`
	Levels    []xLevel `xml:"w:lvl"`
}

type xLevel struct {
	Level   int       `xml:"w:ilvl,attr"`
	Start   xVal      `xml:"w:start"`
	NumFmt  xVal      `xml:"w:numFmt"`
	LvlText xVal      `xml:"w:lvlText"`
	LvlJc   xVal      `xml:"w:lvlJc"`
	PPr     xLevelPPr `xml:"w:pPr"`
}

type xLevelPPr struct {
	Ind xInd `xml:"w:ind"`
}

type xInd struct {
	Left    int `xml:"w:left,attr"`
	Hanging int `xml:"w:hanging,attr"`
}

type xNum struct {
	ID       int  `xml:"w:numId,attr"`
	Abstract xVal `xml:"w:abstractNumId"`
}
