package assets

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadWordStyles loads a styles.xml part by name using the default embedded loader.
// Returns ErrStyleNotFound if the style sheet does not exist.
func LoadWordStyles(name string) (string, error) {
	return defaultLoader.LoadWordStyles(name)
}

// LoadTemplate loads an HTML template by name using the default embedded loader.
// Returns ErrTemplateNotFound if the template does not exist.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

// LoadStylesheet loads a CSS stylesheet by name using the default embedded loader.
// Returns ErrStylesheetNotFound if the stylesheet does not exist.
func LoadStylesheet(name string) (string, error) {
	return defaultLoader.LoadStylesheet(name)
}
