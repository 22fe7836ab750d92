// Package ai2docx converts assistant output (prose mixed with Markdown and
// LaTeX math) into Word documents, rendering every equation as an image.
//
// # Quick Start
//
// Create a converter, convert text, and close when done:
//
//	conv, err := ai2docx.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, ai2docx.Input{
//	    Text: "# Energy\n\nEinstein wrote $$E = mc^2$$ in 1905.",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(ai2docx.DefaultFileName, result.DOCX, 0644)
//
// Whitespace-only input is a no-op: result.Empty() reports true and nothing
// is rendered.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Preprocessing (line endings, Unicode NFC, byte order mark)
//  2. Segmentation into text and math spans ($$...$$, \[...\], \(...\))
//  3. Equation rendering: LaTeX to MathML, then a PNG snapshot in headless Chrome
//  4. Text parsing via Goldmark into headings, list items and paragraphs
//  5. Assembly and serialization as Office Open XML
//
// An equation that cannot be rendered is skipped and counted in
// result.Stats.Failed; the rest of the document is still produced.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := ai2docx.NewConverter(
//	    ai2docx.WithRenderTimeout(10 * time.Second),
//	    ai2docx.WithPixelRatio(4),
//	    ai2docx.WithImageSize(300, 100),
//	    ai2docx.WithLogger(slog.Default()),
//	)
//
// Per-conversion options are passed via Input:
//
//	result, err := conv.Convert(ctx, ai2docx.Input{
//	    Text:     content,
//	    Title:    "Lecture notes",
//	    Author:   "Jane Doe",
//	    Preview:  true, // also fill result.HTML
//	    Progress: func(p ai2docx.Progress) { fmt.Println(p.Message()) },
//	})
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool to manage multiple browser instances:
//
//	pool := ai2docx.NewConverterPool(4)
//	defer pool.Close()
//
//	conv, err := pool.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
//
// # Custom Assets
//
// Override the Word styles, the rendering surface or the preview stylesheet:
//
//	loader, err := ai2docx.NewAssetLoader("/path/to/assets")
//	conv, err := ai2docx.NewConverter(ai2docx.WithAssetLoader(loader))
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── default.xml      (word/styles.xml)
//	├── templates/
//	│   └── surface.html
//	└── css/
//	    └── preview.css
//
// # Browser Requirements
//
// Equation rendering requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package ai2docx
