// Package config loads the YAML configuration shared by the CLI and server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-ai2docx/internal/fileutil"
	"github.com/alnah/go-ai2docx/internal/mathrender"
	"github.com/alnah/go-ai2docx/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength    = 200
	MaxAuthorLength   = 100
	MaxPathLength     = 4096
	MaxFileNameLength = 255
	MaxAddrLength     = 255
)

// DirName is the directory under os.UserConfigDir searched for configs.
const DirName = "go-ai2docx"

// Server defaults.
const (
	DefaultAddr         = ":8080"
	DefaultMaxBodyBytes = 2 << 20 // 2 MiB of pasted text
	DefaultFileName     = "AI_Export_With_Math.docx"
)

// Config holds all configuration for document generation.
type Config struct {
	Render   RenderConfig   `yaml:"render"`
	Document DocumentConfig `yaml:"document"`
	Output   OutputConfig   `yaml:"output"`
	Server   ServerConfig   `yaml:"server"`
	Assets   AssetsConfig   `yaml:"assets"`
}

// RenderConfig tunes equation rasterization. Zero values keep library defaults.
type RenderConfig struct {
	PixelRatio    float64       `yaml:"pixelRatio"`    // >= 3
	FontSize      int           `yaml:"fontSize"`      // CSS pixels
	Padding       int           `yaml:"padding"`       // CSS pixels
	Timeout       time.Duration `yaml:"timeout"`       // whole conversion, e.g. "2m"
	RenderTimeout time.Duration `yaml:"renderTimeout"` // per equation
	MaxPixelWidth int           `yaml:"maxPixelWidth"`
}

// DocumentConfig sets document metadata and layout.
type DocumentConfig struct {
	Title           string `yaml:"title"`  // empty = first heading
	Author          string `yaml:"author"` // docProps creator
	ImageWidth      int    `yaml:"imageWidth"`
	ImageHeight     int    `yaml:"imageHeight"`
	KeepAspectRatio bool   `yaml:"keepAspectRatio"`
	MaxHeadingLevel int    `yaml:"maxHeadingLevel"` // 1-9
	CodeTheme       string `yaml:"codeTheme"`       // chroma style name
	WordStyles      string `yaml:"wordStyles"`      // styles.xml asset name
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the input
	FileName   string `yaml:"fileName"`   // name used for stdin input
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	MaxBodyBytes int64  `yaml:"maxBodyBytes"`
	Workers      int    `yaml:"workers"` // 0 = auto
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{FileName: DefaultFileName},
		Server: ServerConfig{Addr: DefaultAddr, MaxBodyBytes: DefaultMaxBodyBytes},
	}
}

// Validate checks ranges and field lengths. Called by LoadConfig, but
// available for configs assembled from flags and environment.
func (c *Config) Validate() error {
	if err := c.Render.validate(); err != nil {
		return err
	}
	if err := c.Document.validate(); err != nil {
		return err
	}
	if err := c.Output.validate(); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	return c.Server.validate()
}

func (r *RenderConfig) validate() error {
	if r.PixelRatio != 0 && r.PixelRatio < mathrender.MinPixelRatio {
		return invalid("render.pixelRatio", "must be at least %g, got %g", mathrender.MinPixelRatio, r.PixelRatio)
	}
	if r.FontSize < 0 {
		return invalid("render.fontSize", "must not be negative, got %d", r.FontSize)
	}
	if r.Padding < 0 {
		return invalid("render.padding", "must not be negative, got %d", r.Padding)
	}
	if r.Timeout < 0 {
		return invalid("render.timeout", "must not be negative, got %v", r.Timeout)
	}
	if r.RenderTimeout < 0 {
		return invalid("render.renderTimeout", "must not be negative, got %v", r.RenderTimeout)
	}
	if r.MaxPixelWidth < 0 {
		return invalid("render.maxPixelWidth", "must not be negative, got %d", r.MaxPixelWidth)
	}
	return nil
}

func (d *DocumentConfig) validate() error {
	if err := validateFieldLength("document.title", d.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.author", d.Author, MaxAuthorLength); err != nil {
		return err
	}
	if d.ImageWidth < 0 || d.ImageHeight < 0 {
		return invalid("document.imageWidth/imageHeight", "must not be negative, got %dx%d", d.ImageWidth, d.ImageHeight)
	}
	if d.MaxHeadingLevel != 0 && (d.MaxHeadingLevel < 1 || d.MaxHeadingLevel > 9) {
		return invalid("document.maxHeadingLevel", "must be between 1 and 9, got %d", d.MaxHeadingLevel)
	}
	return nil
}

func (o *OutputConfig) validate() error {
	if err := validateFieldLength("output.defaultDir", o.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.fileName", o.FileName, MaxFileNameLength); err != nil {
		return err
	}
	if o.FileName == "" {
		return nil
	}
	if fileutil.IsFilePath(o.FileName) {
		return invalid("output.fileName", "must be a bare file name, got %q", o.FileName)
	}
	if !strings.EqualFold(filepath.Ext(o.FileName), ".docx") {
		return invalid("output.fileName", "must end in .docx, got %q", o.FileName)
	}
	return nil
}

func (s *ServerConfig) validate() error {
	if err := validateFieldLength("server.addr", s.Addr, MaxAddrLength); err != nil {
		return err
	}
	if s.MaxBodyBytes < 0 {
		return invalid("server.maxBodyBytes", "must not be negative, got %d", s.MaxBodyBytes)
	}
	if s.Workers < 0 {
		return invalid("server.workers", "must not be negative, got %d", s.Workers)
	}
	return nil
}

func invalid(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidValue, field, fmt.Sprintf(format, args...))
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is read as a path; otherwise it is a
// name searched in the current directory, then in the user config directory.
// Missing keys keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Searched: []string{configPath}}
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	if err := yamlutil.ReadStrict(f, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NotFoundError lists every location tried for a config name.
type NotFoundError struct {
	Searched []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: tried %s", ErrConfigNotFound, strings.Join(e.Searched, ", "))
}

func (e *NotFoundError) Unwrap() error { return ErrConfigNotFound }

// SearchPaths returns the candidate files for a config name, in lookup order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, DirName, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", &NotFoundError{Searched: paths}
}
