package ai2docx

import (
	"errors"

	"github.com/alnah/go-ai2docx/internal/mathrender"
)

// Sentinel errors for library operations.
var (
	ErrSerialization  = errors.New("document serialization failed")
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load surface page")

	// ErrSnapshot is shared with the renderer so surface errors are not wrapped twice.
	ErrSnapshot = mathrender.ErrSnapshot

	// Option validation errors.
	ErrInvalidPixelRatio = errors.New("invalid pixel ratio")
	ErrInvalidImageSize  = errors.New("invalid image size")

	// Pool errors.
	ErrPoolClosed = errors.New("converter pool is closed")

	// Asset loading errors.
	ErrStyleNotFound      = errors.New("word styles not found")
	ErrTemplateNotFound   = errors.New("template not found")
	ErrStylesheetNotFound = errors.New("stylesheet not found")
	ErrInvalidAssetPath   = errors.New("invalid asset path")
)
