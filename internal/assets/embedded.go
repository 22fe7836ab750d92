package assets

import (
	"embed"
	"fmt"
)

//go:embed styles/* templates/* css/*
var embedded embed.FS

// EmbeddedLoader loads assets from embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadWordStyles loads a styles.xml part from embedded assets.
func (e *EmbeddedLoader) LoadWordStyles(name string) (string, error) {
	return e.load(wordStyles, name)
}

// LoadTemplate loads an HTML template from embedded assets.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return e.load(htmlPages, name)
}

// LoadStylesheet loads a CSS stylesheet from embedded assets.
func (e *EmbeddedLoader) LoadStylesheet(name string) (string, error) {
	return e.load(stylesheets, name)
}

func (e *EmbeddedLoader) load(k kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	// embed.FS paths always use forward slashes.
	content, err := embedded.ReadFile(k.dir + "/" + name + k.ext)
	if err != nil {
		return "", fmt.Errorf("%w: %q", k.notFound, name)
	}

	return string(content), nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
