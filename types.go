package ai2docx

import (
	"fmt"

	"github.com/alnah/go-ai2docx/internal/document"
)

// DefaultFileName is the output name used when the input has no file name.
const DefaultFileName = "AI_Export_With_Math.docx"

// Input contains conversion parameters.
type Input struct {
	Text    string // raw assistant output: prose, Markdown and LaTeX math
	Title   string // document title; empty uses the first heading
	Author  string // document author; empty uses the converter default
	Preview bool   // also build an HTML preview

	// Progress receives stage updates. It is called synchronously from
	// Convert and must not block.
	Progress func(Progress)
}

// Stage identifies a step of a conversion.
type Stage int

const (
	StageParsing Stage = iota
	StageRendering
	StageFinalizing
)

func (s Stage) String() string {
	switch s {
	case StageParsing:
		return "parsing"
	case StageRendering:
		return "rendering"
	case StageFinalizing:
		return "finalizing"
	default:
		return "unknown"
	}
}

// Progress is one observable step of a conversion.
// Current and Total count equations during StageRendering.
type Progress struct {
	Stage   Stage
	Current int
	Total   int
}

// Message returns the status line shown to users.
func (p Progress) Message() string {
	switch p.Stage {
	case StageParsing:
		return "Parsing text..."
	case StageRendering:
		return fmt.Sprintf("Rendering equation %d of %d...", p.Current, p.Total)
	default:
		return "Finalizing .docx..."
	}
}

// Stats summarizes a conversion.
type Stats struct {
	Spans     int // significant spans processed
	Equations int // math spans found
	Rendered  int // equations embedded as images
	Failed    int // equations skipped
}

// ConvertResult holds the output of a conversion.
// An empty input yields a zero result: no DOCX bytes, no elements.
type ConvertResult struct {
	DOCX     []byte
	Elements []document.Element
	Stats    Stats
	HTML     []byte // set when Input.Preview is true
}

// Empty reports whether the conversion produced no document.
func (r *ConvertResult) Empty() bool {
	return r == nil || len(r.DOCX) == 0
}
