package assets

// Built-in asset names.
const (
	// DefaultStyleName is the built-in Word style sheet.
	DefaultStyleName = "default"

	// SurfaceTemplateName is the blank page loaded into the rendering browser.
	SurfaceTemplateName = "surface"

	// PreviewStylesheetName styles the HTML preview.
	PreviewStylesheetName = "preview"
)
