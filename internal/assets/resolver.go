package assets

import "errors"

// AssetResolver layers an optional directory over the embedded assets. An
// asset missing from the directory comes from the embedded set; any other
// failure in the directory is returned as is.
type AssetResolver struct {
	custom   AssetLoader // nil without a custom path
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath means
// embedded assets only.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath == "" {
		return r, nil
	}

	fsLoader, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	r.custom = fsLoader
	return r, nil
}

// LoadWordStyles loads a styles.xml part.
func (r *AssetResolver) LoadWordStyles(name string) (string, error) {
	return r.resolve(wordStyles, func(l AssetLoader) (string, error) { return l.LoadWordStyles(name) })
}

// LoadTemplate loads a preview page template.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.resolve(htmlPages, func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

// LoadStylesheet loads a preview stylesheet.
func (r *AssetResolver) LoadStylesheet(name string) (string, error) {
	return r.resolve(stylesheets, func(l AssetLoader) (string, error) { return l.LoadStylesheet(name) })
}

func (r *AssetResolver) resolve(k kind, load func(AssetLoader) (string, error)) (string, error) {
	if r.custom != nil {
		content, err := load(r.custom)
		if !errors.Is(err, k.notFound) {
			return content, err
		}
	}
	return load(r.embedded)
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

var _ AssetLoader = (*AssetResolver)(nil)
