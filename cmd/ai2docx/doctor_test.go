package main

// Notes:
// - runDoctor takes a browserProbe so browser discovery is deterministic; the
//   probe points at the test binary, which always exists.
// - Environment-driven checks use t.Setenv and cannot run in parallel.
// - runDoctorCmd is tested through its JSON output with the real probe; the
//   status depends on the machine, so only structure is asserted.

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// testBinary returns an existing executable path to stand in for Chrome.
func testBinary(t *testing.T) string {
	t.Helper()
	exe, err := os.Executable()
	if err != nil {
		t.Fatalf("os.Executable() error = %v", err)
	}
	return exe
}

func foundProbe(path, version string, versionErr error) browserProbe {
	return browserProbe{
		lookPath: func() (string, bool) { return path, true },
		version:  func(string) (string, error) { return version, versionErr },
	}
}

var missingProbe = browserProbe{
	lookPath: func() (string, bool) { return "", false },
	version:  func(string) (string, error) { return "", errors.New("unreachable") },
}

// neutralDoctorEnv clears the signals that change doctor output.
func neutralDoctorEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		"ROD_BROWSER_BIN", "AI2DOCX_ASSET_PATH", "AI2DOCX_CONTAINER", "container",
		"KUBERNETES_SERVICE_HOST", "CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI",
	} {
		t.Setenv(v, "")
	}
	t.Setenv("ROD_NO_SANDBOX", "1")
}

// ---------------------------------------------------------------------------
// TestRunDoctor - Individual checks
// ---------------------------------------------------------------------------

func TestRunDoctor_Ready(t *testing.T) {
	neutralDoctorEnv(t)
	exe := testBinary(t)

	r := runDoctor(foundProbe(exe, "Chromium 131.0", nil))

	if !r.Chrome.Found || r.Chrome.Path != exe || r.Chrome.Version != "Chromium 131.0" {
		t.Errorf("Chrome = %+v", r.Chrome)
	}
	if r.Chrome.Sandbox {
		t.Error("Sandbox should be disabled with ROD_NO_SANDBOX=1")
	}
	if !r.System.TempWritable || r.System.PoolSize < 1 {
		t.Errorf("System = %+v", r.System)
	}
	if !r.Assets.WordStyles {
		t.Error("embedded Word styles should load")
	}
	// /.dockerenv may exist on the test machine; only then is a warning allowed
	if r.Status != statusReady && !r.Env.Container {
		t.Errorf("Status = %q, want ready (warnings=%v errors=%v)", r.Status, r.Warnings, r.Errors)
	}
}

func TestRunDoctor_BrowserProblems(t *testing.T) {
	tests := []struct {
		name       string
		browserBin string
		probe      browserProbe
		wantStatus string
		wantIssue  string
	}{
		{
			name:       "not installed",
			probe:      missingProbe,
			wantStatus: statusErrors,
			wantIssue:  "Chrome/Chromium not found",
		},
		{
			name:       "ROD_BROWSER_BIN missing",
			browserBin: filepath.Join(os.TempDir(), "no-such-chrome"),
			probe:      missingProbe,
			wantStatus: statusErrors,
			wantIssue:  "Chrome not found at",
		},
		{
			name:       "version unreadable",
			probe:      foundProbe("", "", errors.New("exit status 1")),
			wantStatus: statusWarnings,
			wantIssue:  "Could not get Chrome version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			neutralDoctorEnv(t)
			t.Setenv("ROD_BROWSER_BIN", tt.browserBin)

			probe := tt.probe
			if tt.wantStatus == statusWarnings {
				probe = foundProbe(testBinary(t), "", errors.New("exit status 1"))
			}

			r := runDoctor(probe)

			if r.Status != tt.wantStatus && !r.Env.Container {
				t.Errorf("Status = %q, want %q", r.Status, tt.wantStatus)
			}
			issues := strings.Join(append(r.Errors, r.Warnings...), "\n")
			if !strings.Contains(issues, tt.wantIssue) {
				t.Errorf("issues = %q, want %q", issues, tt.wantIssue)
			}
		})
	}
}

func TestRunDoctor_SandboxWarning(t *testing.T) {
	neutralDoctorEnv(t)
	t.Setenv("ROD_NO_SANDBOX", "")
	t.Setenv("AI2DOCX_CONTAINER", "1")

	r := runDoctor(foundProbe(testBinary(t), "Chromium", nil))

	if !r.Env.Container || r.Env.ContainerHint != "AI2DOCX_CONTAINER=1" {
		t.Errorf("Env = %+v", r.Env)
	}
	if r.Status != statusWarnings {
		t.Errorf("Status = %q, want warnings", r.Status)
	}
	if len(r.Warnings) == 0 || !strings.Contains(r.Warnings[0], "ROD_NO_SANDBOX") {
		t.Errorf("Warnings = %v", r.Warnings)
	}
}

func TestRunDoctor_CIDetection(t *testing.T) {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		t.Run(v, func(t *testing.T) {
			neutralDoctorEnv(t)
			t.Setenv(v, "true")

			r := runDoctor(foundProbe(testBinary(t), "Chromium", nil))
			if !r.Env.CI {
				t.Errorf("%s=true should be detected as CI", v)
			}
		})
	}
}

func TestRunDoctor_BadAssetPath(t *testing.T) {
	neutralDoctorEnv(t)
	t.Setenv("AI2DOCX_ASSET_PATH", filepath.Join(t.TempDir(), "missing"))

	r := runDoctor(foundProbe(testBinary(t), "Chromium", nil))

	if r.Assets.WordStyles {
		t.Error("WordStyles should be false for an invalid asset path")
	}
	if r.Status != statusErrors {
		t.Errorf("Status = %q, want errors", r.Status)
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd - Command output
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_JSONOutput(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	env := &Environment{Stdout: &stdout, Stderr: &stderr}

	exitCode := runDoctorCmd([]string{"--json"}, env)

	var result doctorResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput was: %s", err, stdout.String())
	}

	validStatuses := map[string]bool{statusReady: true, statusWarnings: true, statusErrors: true}
	if !validStatuses[result.Status] {
		t.Errorf("Invalid status %q", result.Status)
	}
	if result.Status == statusErrors && exitCode != ExitGeneral {
		t.Errorf("exit code = %d for errors status, want %d", exitCode, ExitGeneral)
	}
	if result.Status != statusErrors && exitCode != ExitSuccess {
		t.Errorf("exit code = %d for %s status, want %d", exitCode, result.Status, ExitSuccess)
	}
	if result.Env.OS != runtime.GOOS || result.Env.Arch != runtime.GOARCH {
		t.Errorf("platform = %s/%s", result.Env.OS, result.Env.Arch)
	}
}

func TestRunDoctorCmd_UnknownFlag(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	env := &Environment{Stdout: &stdout, Stderr: &stderr}

	if code := runDoctorCmd([]string{"--yaml"}, env); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
}

func TestPrintDoctorResult(t *testing.T) {
	t.Parallel()

	r := &doctorResult{
		Status: statusWarnings,
		Chrome: chromeInfo{Found: true, Path: "/usr/bin/chromium", Version: "Chromium 131", Sandbox: true},
		Env:    envInfo{OS: "linux", Arch: "amd64", Container: true, ContainerHint: "/.dockerenv"},
		System: systemInfo{TempWritable: true, CPUs: 4, PoolSize: 2},
		Assets: assetsInfo{WordStyles: true},
		Warnings: []string{
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1 if the browser fails to start",
		},
	}

	var buf bytes.Buffer
	printDoctorResult(&buf, r)
	out := buf.String()

	for _, want := range []string{
		"ai2docx doctor",
		"[OK] Found at /usr/bin/chromium",
		"[OK] Version: Chromium 131",
		"[OK] Platform: linux/amd64",
		"[OK] Container: detected (/.dockerenv)",
		"[OK] Workers: 2 (CPUs: 4)",
		"[OK] Word styles: embedded",
		"[WARN] Container/CI",
		"Status: Ready with warnings",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	for _, line := range strings.Split(out, "\n") {
		if len(line) > 72 {
			t.Errorf("line exceeds 72 columns: %q", line)
		}
	}
}
