package main

import (
	"context"
	"errors"
	"os"

	"github.com/alnah/go-ai2docx"
	"github.com/alnah/go-ai2docx/internal/config"
	"github.com/alnah/go-ai2docx/internal/hints"
)

// Exit codes for the ai2docx CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, terminal misuse
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if isBrowserError(err) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrNoFiles) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrOutputDir) ||
		errors.Is(err, ErrInteractiveStdin) ||
		errors.Is(err, ErrTerminalOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrMixedStdin) ||
		errors.Is(err, ErrHTMLToStdout) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, ai2docx.ErrInvalidPixelRatio) ||
		errors.Is(err, ai2docx.ErrInvalidImageSize) ||
		errors.Is(err, ai2docx.ErrStyleNotFound) ||
		errors.Is(err, ai2docx.ErrTemplateNotFound) ||
		errors.Is(err, ai2docx.ErrStylesheetNotFound) ||
		errors.Is(err, ai2docx.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}

func isBrowserError(err error) bool {
	return errors.Is(err, ai2docx.ErrBrowserConnect) ||
		errors.Is(err, ai2docx.ErrPageCreate) ||
		errors.Is(err, ai2docx.ErrPageLoad)
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var notFound *config.NotFoundError
	switch {
	case isBrowserError(err):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.As(err, &notFound):
		return hints.ForConfigNotFound(notFound.Searched)
	case errors.Is(err, ErrInteractiveStdin):
		return hints.ForInteractiveStdin()
	case errors.Is(err, ErrTerminalOutput):
		return hints.ForTerminalOutput()
	case errors.Is(err, ErrOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}
