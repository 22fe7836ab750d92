package ai2docx

import (
	"errors"

	"github.com/alnah/go-ai2docx/internal/assets"
)

// Asset names of the built-in assets.
const (
	// SurfaceTemplate is the blank page equations are rendered on.
	SurfaceTemplate = assets.SurfaceTemplateName

	// PreviewStylesheet styles the HTML preview.
	PreviewStylesheet = assets.PreviewStylesheetName
)

// AssetLoader defines the contract for loading the styles.xml part, HTML
// templates and CSS stylesheets by name.
//
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to embedded defaults. Implement this interface for custom backends.
type AssetLoader interface {
	// LoadWordStyles loads a word/styles.xml part (styles/{name}.xml).
	// Returns ErrStyleNotFound if it doesn't exist.
	LoadWordStyles(name string) (string, error)

	// LoadTemplate loads an HTML template (templates/{name}.html).
	// Returns ErrTemplateNotFound if it doesn't exist.
	LoadTemplate(name string) (string, error)

	// LoadStylesheet loads a CSS stylesheet (css/{name}.css).
	// Returns ErrStylesheetNotFound if it doesn't exist.
	LoadStylesheet(name string) (string, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{loader: resolver}, nil
}

// assetLoaderAdapter wraps an internal loader to return public errors.
type assetLoaderAdapter struct {
	loader assets.AssetLoader
}

func (a *assetLoaderAdapter) LoadWordStyles(name string) (string, error) {
	content, err := a.loader.LoadWordStyles(name)
	return content, convertAssetError(err)
}

func (a *assetLoaderAdapter) LoadTemplate(name string) (string, error) {
	content, err := a.loader.LoadTemplate(name)
	return content, convertAssetError(err)
}

func (a *assetLoaderAdapter) LoadStylesheet(name string) (string, error) {
	content, err := a.loader.LoadStylesheet(name)
	return content, convertAssetError(err)
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrTemplateNotFound):
		return wrapError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrStylesheetNotFound):
		return wrapError(ErrStylesheetNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath), errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrInvalidAssetPath, err)
	default:
		return err
	}
}

// wrapError creates an error that keeps the original message and matches
// the public sentinel with errors.Is.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel. Internal errors are not exposed.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}

// Compile-time interface checks.
var (
	_ AssetLoader        = (*assetLoaderAdapter)(nil)
	_ assets.AssetLoader = (AssetLoader)(nil)
)
