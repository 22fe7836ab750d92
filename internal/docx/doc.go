// Package docx serializes a document.Document as an Office Open XML
// WordprocessingML package (.docx).
//
// The package is a ZIP archive with these parts:
//
//	[Content_Types].xml
//	_rels/.rels
//	docProps/core.xml             title, author, timestamps
//	docProps/app.xml              producing application
//	word/document.xml             body: one paragraph per element
//	word/styles.xml               from the assets package unless overridden
//	word/numbering.xml            bullet definition for list items
//	word/_rels/document.xml.rels  styles, numbering, images, hyperlinks
//	word/media/imageN.png         equation images
//
// Output is deterministic: the same document always yields the same bytes.
package docx
