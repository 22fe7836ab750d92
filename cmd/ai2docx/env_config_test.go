package main

// Notes:
// - loadEnvConfig: invalid or non-positive numbers and durations are ignored,
//   not errors.
// - applyEnvConfig: set variables override file values; unset ones leave
//   them alone.
// - Tests use t.Setenv() which prevents t.Parallel().

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-ai2docx/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Run("all variables", func(t *testing.T) {
		t.Setenv("AI2DOCX_CONFIG", "/etc/ai2docx.yaml")
		t.Setenv("AI2DOCX_TIMEOUT", "2m")
		t.Setenv("AI2DOCX_WORKERS", "3")
		t.Setenv("AI2DOCX_PIXEL_RATIO", "4.5")
		t.Setenv("AI2DOCX_AUTHOR", "Ada Lovelace")
		t.Setenv("AI2DOCX_OUTPUT_DIR", "/exports")
		t.Setenv("AI2DOCX_ASSET_PATH", "/assets")
		t.Setenv("AI2DOCX_SERVER_ADDR", ":9090")

		want := &envConfig{
			ConfigPath: "/etc/ai2docx.yaml",
			Timeout:    2 * time.Minute,
			Workers:    3,
			PixelRatio: 4.5,
			Author:     "Ada Lovelace",
			OutputDir:  "/exports",
			AssetPath:  "/assets",
			ServerAddr: ":9090",
		}
		if diff := cmp.Diff(want, loadEnvConfig()); diff != "" {
			t.Errorf("loadEnvConfig() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("invalid values ignored", func(t *testing.T) {
		tests := []struct {
			name, key, value string
		}{
			{"bad timeout", "AI2DOCX_TIMEOUT", "soon"},
			{"negative timeout", "AI2DOCX_TIMEOUT", "-1s"},
			{"bad workers", "AI2DOCX_WORKERS", "many"},
			{"zero workers", "AI2DOCX_WORKERS", "0"},
			{"bad ratio", "AI2DOCX_PIXEL_RATIO", "sharp"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Setenv(tt.key, tt.value)

				cfg := loadEnvConfig()
				if cfg.Timeout != 0 || cfg.Workers != 0 || cfg.PixelRatio != 0 {
					t.Errorf("%s=%q should be ignored, got %+v", tt.key, tt.value, cfg)
				}
			})
		}
	})
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Environment overrides the config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("set values override", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Document.Author = "File"
		cfg.Server.Addr = ":1111"

		applyEnvConfig(&envConfig{
			Timeout:    time.Minute,
			Workers:    2,
			PixelRatio: 5,
			Author:     "Env",
			OutputDir:  "out",
			AssetPath:  "assets",
			ServerAddr: ":2222",
		}, cfg)

		if cfg.Document.Author != "Env" || cfg.Server.Addr != ":2222" {
			t.Errorf("env did not override file values: %+v", cfg)
		}
		if cfg.Render.Timeout != time.Minute || cfg.Render.PixelRatio != 5 || cfg.Server.Workers != 2 {
			t.Errorf("render/server = %+v %+v", cfg.Render, cfg.Server)
		}
		if cfg.Output.DefaultDir != "out" || cfg.Assets.BasePath != "assets" {
			t.Errorf("output/assets = %+v %+v", cfg.Output, cfg.Assets)
		}
	})

	t.Run("empty env keeps config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Document.Author = "File"
		want := *cfg

		applyEnvConfig(&envConfig{}, cfg)

		if diff := cmp.Diff(want, *cfg); diff != "" {
			t.Errorf("config changed (-want +got):\n%s", diff)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("AI2DOCX_TIMOUT", "1m")
	t.Setenv("AI2DOCX_AUTHOR", "known")
	t.Setenv("AI2DOCX_CONTAINER", "1")

	var buf bytes.Buffer
	n := warnUnknownEnvVars(&buf)

	if n != 1 {
		t.Errorf("warnUnknownEnvVars() = %d, want 1\noutput: %s", n, buf.String())
	}
	if !strings.Contains(buf.String(), "AI2DOCX_TIMOUT") {
		t.Errorf("warning should name the variable, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "AI2DOCX_AUTHOR") {
		t.Error("known variables should not warn")
	}
}

func TestKnownEnvVars(t *testing.T) {
	t.Parallel()

	for name := range knownEnvVars {
		if !strings.HasPrefix(name, envPrefix) {
			t.Errorf("%s lacks the %s prefix", name, envPrefix)
		}
	}
}
