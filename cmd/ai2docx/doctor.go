package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/alnah/go-ai2docx"
	"github.com/alnah/go-ai2docx/internal/hints"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

const versionProbeTimeout = 10 * time.Second

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"`
	Chrome   chromeInfo `json:"chrome"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Assets   assetsInfo `json:"assets"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
	CPUs         int  `json:"cpus"`
	PoolSize     int  `json:"pool_size"`
}

// assetsInfo reports whether the configured assets load.
type assetsInfo struct {
	Path       string `json:"path,omitempty"`
	WordStyles bool   `json:"word_styles"`
}

// browserProbe locates a browser and reads its version.
type browserProbe struct {
	lookPath func() (string, bool)
	version  func(path string) (string, error)
}

var defaultProbe = browserProbe{
	lookPath: launcher.LookPath,
	version:  chromeVersion,
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	flags, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		return flagExitCode(err)
	}

	result := runDoctor(defaultProbe)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(probe browserProbe) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result, probe)
	checkEnvironment(result)
	checkSystem(result)
	checkAssets(result)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}

	return result
}

// checkChrome detects the browser used to render equations.
func checkChrome(result *doctorResult, probe browserProbe) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = probe.lookPath()
		if !found {
			result.Errors = append(result.Errors,
				"Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath
	result.Chrome.Sandbox = result.Env.NoSandbox != "1"

	version, err := probe.version(chromePath)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
		return
	}
	result.Chrome.Version = version
}

// chromeVersion runs "<path> --version".
func chromeVersion(path string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), versionProbeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "--version").Output() // #nosec G204 -- browser path from lookup or ROD_BROWSER_BIN
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = hints.Container()
	result.Env.CI = hints.InCI()

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1 if the browser fails to start")
	}
}

// checkSystem verifies system requirements.
func checkSystem(result *doctorResult) {
	result.System.CPUs = runtime.GOMAXPROCS(0)
	result.System.PoolSize = ai2docx.ResolvePoolSize(0)

	tmpDir := os.TempDir()
	f, err := os.CreateTemp(tmpDir, "ai2docx-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
		return
	}
	_ = f.Close()
	_ = os.Remove(f.Name())
	result.System.TempWritable = true
}

// checkAssets loads the Word styles from AI2DOCX_ASSET_PATH or the
// embedded defaults.
func checkAssets(result *doctorResult) {
	result.Assets.Path = os.Getenv("AI2DOCX_ASSET_PATH")

	loader, err := ai2docx.NewAssetLoader(result.Assets.Path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Asset path unusable: %v", err))
		return
	}
	if _, err := loader.LoadWordStyles(ai2docx.DefaultWordStyles); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Word styles missing: %v", err))
		return
	}
	result.Assets.WordStyles = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "ai2docx doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintf(w, "  [OK] Workers: %d (CPUs: %d)\n", r.System.PoolSize, r.System.CPUs)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Assets")
	switch {
	case r.Assets.WordStyles && r.Assets.Path != "":
		fmt.Fprintf(w, "  [OK] Word styles: %s\n", r.Assets.Path)
	case r.Assets.WordStyles:
		fmt.Fprintln(w, "  [OK] Word styles: embedded")
	default:
		fmt.Fprintln(w, "  [ERROR] Word styles: not loadable")
	}
	fmt.Fprintln(w)

	printIssues(w, "Warnings:", "[WARN]", r.Warnings)
	printIssues(w, "Errors:", "[ERROR]", r.Errors)

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to convert")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

// printIssues prints a titled list, wrapping long entries under their tag.
func printIssues(w io.Writer, title, tag string, issues []string) {
	if len(issues) == 0 {
		return
	}
	indent := strings.Repeat(" ", len(tag)+3)
	fmt.Fprintln(w, title)
	for _, issue := range issues {
		wrapped := hints.Wrap(issue, hints.Width-len(indent))
		fmt.Fprintf(w, "  %s %s\n", tag, strings.ReplaceAll(wrapped, "\n", "\n"+indent))
	}
	fmt.Fprintln(w)
}
