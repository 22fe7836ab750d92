// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted as "\n  hint: <text>" for appending to error messages;
// long hints wrap with a hanging indent.
package hints

import (
	"os"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/alnah/go-ai2docx/internal/fileutil"
)

// Width is the column at which hint text wraps.
const Width = 72

const (
	prefix       = "\n  hint: "
	continuation = "\n        "
)

// ciVars are set by the common CI providers.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// IsInContainer reports whether /.dockerenv exists. Replaced in tests.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// Container reports whether the process runs in a container and which signal
// gave it away.
func Container() (bool, string) {
	if os.Getenv("AI2DOCX_CONTAINER") == "1" {
		return true, "AI2DOCX_CONTAINER=1"
	}
	if IsInContainer() {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// InCI reports whether a CI provider variable is set.
func InCI() bool {
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect returns hints for Chrome launch or connection errors.
func ForBrowserConnect() string {
	var hints []string

	inContainer, _ := Container()
	if (InCI() || inContainer) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	hints = append(hints, "run 'ai2docx doctor' to check the setup")

	return formatHints(hints)
}

// ForTimeout suggests a longer budget for documents with many equations.
func ForTimeout() string {
	return format("documents with many equations may need a longer --timeout")
}

// ForConfigNotFound suggests --config or creating a file under the user
// config directory, picked from the searched paths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(filepathToSlash(p), "go-ai2docx/") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForInteractiveStdin explains how to feed text when stdin is a terminal.
func ForInteractiveStdin() string {
	return format("pipe text in (pbpaste | ai2docx convert) or pass a file")
}

// ForTerminalOutput explains how to get binary output when stdout is a terminal.
func ForTerminalOutput() string {
	return format("redirect stdout to a file or use -o file.docx")
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// format creates a single hint string, wrapped at Width.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	wrapped := Wrap(hint, Width-len(continuation)+1)
	return prefix + strings.ReplaceAll(wrapped, "\n", continuation)
}

// Wrap breaks s at spaces so no line exceeds limit columns. Words longer
// than limit stay whole; hyphens never break, so paths and flags survive.
func Wrap(s string, limit int) string {
	w := wordwrap.NewWriter(limit)
	w.Breakpoints = nil
	_, _ = w.Write([]byte(s))
	_ = w.Close()
	return w.String()
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
