package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderFlags holds equation capture flags.
type renderFlags struct {
	pixelRatio    float64
	fontSize      int
	padding       int
	maxPixelWidth int
	renderTimeout string
}

// documentFlags holds .docx layout and metadata flags.
type documentFlags struct {
	title           string
	author          string
	imageWidth      int
	imageHeight     int
	keepAspect      bool
	maxHeadingLevel int
	codeTheme       string
	wordStyles      string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common    commonFlags
	output    string
	workers   int
	timeout   string
	html      bool
	assetPath string
	render    renderFlags
	document  documentFlags
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common       commonFlags
	addr         string
	workers      int
	maxBodyBytes int64
	assetPath    string
}

// doctorFlags holds all flags for the doctor command.
type doctorFlags struct {
	json bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show progress and debug logs")
}

// addRenderFlags adds equation capture flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.Float64Var(&f.pixelRatio, "pixel-ratio", 0, "equation capture pixel ratio (>= 3)")
	fs.IntVar(&f.fontSize, "font-size", 0, "equation font size in CSS pixels")
	fs.IntVar(&f.padding, "padding", 0, "padding around each equation in CSS pixels")
	fs.IntVar(&f.maxPixelWidth, "max-width", 0, "clamp captured images to this pixel width")
	fs.StringVar(&f.renderTimeout, "render-timeout", "", "per-equation capture timeout (e.g., 10s)")
}

// addDocumentFlags adds document flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "title", "", "document title (\"\" = first heading)")
	fs.StringVar(&f.author, "author", "", "document author")
	fs.IntVar(&f.imageWidth, "image-width", 0, "equation image box width in pixels")
	fs.IntVar(&f.imageHeight, "image-height", 0, "equation image box height in pixels")
	fs.BoolVar(&f.keepAspect, "keep-aspect", false, "fit equations inside the image box")
	fs.IntVar(&f.maxHeadingLevel, "max-heading", 0, "deepest heading level kept (1-9)")
	fs.StringVar(&f.codeTheme, "code-theme", "", "syntax highlighting theme for code blocks")
	fs.StringVar(&f.wordStyles, "styles", "", "Word styles part name")
}

// newConvertFlagSet registers the convert command flags.
func newConvertFlagSet(usage io.Writer) (*flag.FlagSet, *convertFlags) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (- = stdout)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "conversion timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.html, "html", false, "write an HTML preview alongside the .docx")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	addDocumentFlags(fs, &f.document)

	fs.Usage = func() { printConvertUsage(usage) }
	return fs, f
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	fs, f := newConvertFlagSet(usage)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// newServeFlagSet registers the serve command flags.
func newServeFlagSet(usage io.Writer) (*flag.FlagSet, *serveFlags) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &serveFlags{}

	fs.StringVar(&f.addr, "addr", "", "listen address (default :8080)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "converter pool size (0 = auto)")
	fs.Int64Var(&f.maxBodyBytes, "max-body", 0, "maximum request body in bytes")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printServeUsage(usage) }
	return fs, f
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string, usage io.Writer) (*serveFlags, error) {
	fs, f := newServeFlagSet(usage)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string, usage io.Writer) (*doctorFlags, error) {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &doctorFlags{}

	fs.BoolVar(&f.json, "json", false, "output in JSON format")

	fs.Usage = func() { printDoctorUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}
