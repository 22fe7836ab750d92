package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-ai2docx/internal/config"
)

const envPrefix = "AI2DOCX_"

// envConfig holds configuration from environment variables.
// Provides CI/CD and container friendly overrides without YAML files.
type envConfig struct {
	ConfigPath string        // AI2DOCX_CONFIG: config file name or path
	Timeout    time.Duration // AI2DOCX_TIMEOUT: whole conversion timeout
	Workers    int           // AI2DOCX_WORKERS: parallel workers
	PixelRatio float64       // AI2DOCX_PIXEL_RATIO: equation capture ratio
	Author     string        // AI2DOCX_AUTHOR: document author
	OutputDir  string        // AI2DOCX_OUTPUT_DIR: default output directory
	AssetPath  string        // AI2DOCX_ASSET_PATH: custom asset directory
	ServerAddr string        // AI2DOCX_SERVER_ADDR: serve listen address
}

// knownEnvVars lists valid AI2DOCX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"AI2DOCX_CONFIG":      true,
	"AI2DOCX_TIMEOUT":     true,
	"AI2DOCX_WORKERS":     true,
	"AI2DOCX_PIXEL_RATIO": true,
	"AI2DOCX_AUTHOR":      true,
	"AI2DOCX_OUTPUT_DIR":  true,
	"AI2DOCX_ASSET_PATH":  true,
	"AI2DOCX_SERVER_ADDR": true,
	"AI2DOCX_CONTAINER":   true, // read by doctor and hints
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numeric or duration values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("AI2DOCX_CONFIG"),
		Author:     os.Getenv("AI2DOCX_AUTHOR"),
		OutputDir:  os.Getenv("AI2DOCX_OUTPUT_DIR"),
		AssetPath:  os.Getenv("AI2DOCX_ASSET_PATH"),
		ServerAddr: os.Getenv("AI2DOCX_SERVER_ADDR"),
	}

	if v := os.Getenv("AI2DOCX_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if v := os.Getenv("AI2DOCX_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("AI2DOCX_PIXEL_RATIO"); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil && r > 0 {
			cfg.PixelRatio = r
		}
	}

	return cfg
}

// applyEnvConfig overlays set environment values onto cfg.
// Environment wins over the config file; flags are applied afterwards.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Timeout > 0 {
		cfg.Render.Timeout = env.Timeout
	}
	if env.Workers > 0 {
		cfg.Server.Workers = env.Workers
	}
	if env.PixelRatio > 0 {
		cfg.Render.PixelRatio = env.PixelRatio
	}
	if env.Author != "" {
		cfg.Document.Author = env.Author
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.ServerAddr != "" {
		cfg.Server.Addr = env.ServerAddr
	}
}

// warnUnknownEnvVars prints a warning for each AI2DOCX_* variable that is
// not recognized. Returns the number of unknown variables found.
func warnUnknownEnvVars(w io.Writer) int {
	count := 0
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if !strings.HasPrefix(name, envPrefix) || knownEnvVars[name] {
			continue
		}
		fmt.Fprintf(w, "warning: unknown environment variable %s\n", name)
		count++
	}
	return count
}
