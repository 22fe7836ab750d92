package main

// Notes:
// - exitCodeFor: we test the sentinel errors from the ai2docx and config
//   packages and the CLI, plus wrapped and joined errors to verify the
//   errors.Is() chain.
// - hintFor: we test that the errors users can act on carry a hint.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/alnah/go-ai2docx"
	"github.com/alnah/go-ai2docx/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", ai2docx.ErrBrowserConnect, ExitBrowser},
		{"page create", ai2docx.ErrPageCreate, ExitBrowser},
		{"page load", ai2docx.ErrPageLoad, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("failed: %w", ai2docx.ErrBrowserConnect), ExitBrowser},
		{"batch with browser failure", &BatchError{Failed: 1, Total: 2, Errs: []error{ai2docx.ErrPageLoad}}, ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read input", ErrReadInput, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"output dir", ErrOutputDir, ExitIO},
		{"no files", ErrNoFiles, ExitIO},
		{"interactive stdin", ErrInteractiveStdin, ExitIO},
		{"terminal output", ErrTerminalOutput, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"workers", ErrInvalidWorkerCount, ExitUsage},
		{"timeout", ErrInvalidTimeout, ExitUsage},
		{"mixed stdin", ErrMixedStdin, ExitUsage},
		{"html to stdout", ErrHTMLToStdout, ExitUsage},
		{"config not found", &config.NotFoundError{Searched: []string{"a.yaml"}}, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"pixel ratio", ai2docx.ErrInvalidPixelRatio, ExitUsage},
		{"image size", ai2docx.ErrInvalidImageSize, ExitUsage},
		{"style not found", ai2docx.ErrStyleNotFound, ExitUsage},
		{"template not found", ai2docx.ErrTemplateNotFound, ExitUsage},
		{"stylesheet not found", ai2docx.ErrStylesheetNotFound, ExitUsage},
		{"asset path", ai2docx.ErrInvalidAssetPath, ExitUsage},

		// General errors (exit 1)
		{"serialization", ai2docx.ErrSerialization, ExitGeneral},
		{"deadline", context.DeadlineExceeded, ExitGeneral},
		{"unknown", errors.New("something else"), ExitGeneral},
		{"batch of unknown", &BatchError{Failed: 1, Total: 1, Errs: []error{errors.New("x")}}, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Error("exit codes 0, 1, 2 must follow Unix conventions")
	}
	for _, code := range []int{ExitIO, ExitBrowser} {
		if code <= ExitUsage || code >= 126 {
			t.Errorf("custom exit code %d must be in (2, 126)", code)
		}
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Actionable hints
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"browser", ai2docx.ErrBrowserConnect, "doctor"},
		{"timeout", fmt.Errorf("render: %w", context.DeadlineExceeded), "timeout"},
		{"config", fmt.Errorf("loading config: %w", &config.NotFoundError{Searched: []string{"/x/team.yaml"}}), "--config"},
		{"stdin", ErrInteractiveStdin, "pbpaste"},
		{"stdout", ErrTerminalOutput, "-o file.docx"},
		{"none", errors.New("plain"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("hintFor() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("hintFor() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}
