package docx

import "errors"

// Sentinel errors for serialization.
var (
	ErrNilDocument = errors.New("document is nil")
	ErrStyles      = errors.New("loading word styles failed")
	ErrWritePart   = errors.New("writing package part failed")
)
