package mathrender

import (
	"bytes"
	"fmt"
	"strings"

	treeblood "github.com/wyatt915/goldmark-treeblood"
	"github.com/yuin/goldmark"
	"golang.org/x/net/html"

	"github.com/alnah/go-ai2docx/internal/segment"
)

// typesetter converts display math to MathML. Goldmark instances are safe
// for concurrent use.
var typesetter = goldmark.New(
	goldmark.WithExtensions(
		treeblood.MathML(),
	),
)

// newlines are folded to spaces so a blank line inside an equation cannot
// split the surrounding paragraph.
var newlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// ToMathML typesets latex into a standalone <math> element.
// The display attribute follows mode: "block" for block math, "inline" otherwise.
func ToMathML(latex string, mode segment.Mode) (string, error) {
	tex := strings.TrimSpace(newlines.Replace(latex))
	if tex == "" {
		return "", ErrEmptyLaTeX
	}

	var buf bytes.Buffer
	if err := typesetter.Convert([]byte("$$"+tex+"$$"), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTypeset, err)
	}

	doc, err := html.Parse(&buf)
	if err != nil {
		return "", fmt.Errorf("%w: parsing MathML: %v", ErrTypeset, err)
	}

	math := findElement(doc, "math")
	if math == nil {
		return "", fmt.Errorf("%w: no math element produced for %q", ErrTypeset, abbreviate(tex))
	}
	if findElement(math, "merror") != nil {
		return "", fmt.Errorf("%w: typesetting error in %q", ErrTypeset, abbreviate(tex))
	}

	display := "inline"
	if mode == segment.ModeBlock {
		display = "block"
	}
	setAttr(math, "display", display)

	// Detach so Render does not walk the parent paragraph.
	if math.Parent != nil {
		math.Parent.RemoveChild(math)
	}

	var out strings.Builder
	if err := html.Render(&out, math); err != nil {
		return "", fmt.Errorf("%w: rendering MathML: %v", ErrTypeset, err)
	}
	return out.String(), nil
}

// findElement returns the first element named name in depth-first order.
func findElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, name); found != nil {
			return found
		}
	}
	return nil
}

// setAttr replaces or adds an attribute.
func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// abbreviate shortens LaTeX for log and error messages.
func abbreviate(s string) string {
	const maxLen = 60
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
