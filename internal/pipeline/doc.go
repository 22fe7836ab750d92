// Package pipeline turns the text spans of an assistant reply into block
// tokens and HTML.
//
// This package handles the text side of a conversion:
//   - Text preprocessing (line endings, Unicode normalization)
//   - Block parsing via Goldmark into headings, list items and paragraphs
//   - HTML preview conversion and stylesheet injection
//
// Math spans never reach the block parser; equation images are produced by
// the mathrender package and placed next to the tokens by the document
// builder.
package pipeline
