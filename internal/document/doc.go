// Package document holds the in-memory model of a generated document.
//
// The model is a flat, ordered list of elements (headings, paragraphs, list
// items and equation images) plus metadata. Elements are accumulated with
// Append, which never reorders or merges what it is given, and serialized
// by the docx package.
package document
