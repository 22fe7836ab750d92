package assets

// AssetLoader defines the contract for loading document assets.
// Names never include the file extension.
type AssetLoader interface {
	// LoadWordStyles loads a word/styles.xml part.
	// Returns ErrStyleNotFound if the style sheet doesn't exist.
	LoadWordStyles(name string) (string, error)

	// LoadTemplate loads an HTML template.
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)

	// LoadStylesheet loads a CSS stylesheet.
	// Returns ErrStylesheetNotFound if the stylesheet doesn't exist.
	LoadStylesheet(name string) (string, error)
}

// kind describes where one type of asset lives.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	wordStyles  = kind{dir: "styles", ext: ".xml", notFound: ErrStyleNotFound}
	htmlPages   = kind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
	stylesheets = kind{dir: "css", ext: ".css", notFound: ErrStylesheetNotFound}
)
