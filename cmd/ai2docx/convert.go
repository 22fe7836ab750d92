package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-ai2docx"
	"github.com/alnah/go-ai2docx/internal/config"
	"github.com/alnah/go-ai2docx/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrMixedStdin         = errors.New("standard input cannot be combined with files")
	ErrHTMLToStdout       = errors.New("--html requires a file output")
	ErrInteractiveStdin   = errors.New("standard input is a terminal")
	ErrTerminalOutput     = errors.New("refusing to write a .docx to a terminal")
	ErrNoFiles            = errors.New("no text files found")
)

// stdio is the path meaning standard input or standard output.
const stdio = "-"

// textExtensions are picked up when an input is a directory.
var textExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, flags *convertFlags, env *Environment, logger *slog.Logger) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, err := loadSettings(flags.common.config)
	if err != nil {
		return err
	}

	// Merge CLI flags into config (CLI wins)
	if err := mergeFlags(flags, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	files, err := resolveFiles(args, flags.output, cfg)
	if err != nil {
		return err
	}

	if files[0].InputPath == stdio {
		if env.StdinIsTerminal() {
			return ErrInteractiveStdin
		}
		data, err := io.ReadAll(env.Stdin)
		if err != nil {
			return fmt.Errorf("%w: standard input: %v", ErrReadInput, err)
		}
		files[0].text = string(data)
	}
	if files[0].OutputPath == stdio {
		if flags.html {
			return ErrHTMLToStdout
		}
		if env.StdoutIsTerminal() {
			return ErrTerminalOutput
		}
	}

	workers := flags.workers
	if workers == 0 {
		workers = cfg.Server.Workers
	}
	size := min(ai2docx.ResolvePoolSize(workers), len(files))
	logger.Debug("starting conversion", "files", len(files), "workers", size)

	pool := env.NewPool(size, converterOptions(cfg, logger)...)
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Debug("closing converter pool", "error", cerr)
		}
	}()

	params := &conversionParams{
		title:  cfg.Document.Title,
		html:   flags.html,
		stdout: env.Stdout,
		logger: logger,
	}
	results := convertBatch(ctx, pool, files, params)

	return reportResults(results, flags.common, env)
}

// mergeFlags applies explicitly set flags over cfg.
func mergeFlags(flags *convertFlags, cfg *config.Config) error {
	if flags.timeout != "" {
		d, err := parseTimeout(flags.timeout)
		if err != nil {
			return err
		}
		cfg.Render.Timeout = d
	}
	if flags.render.renderTimeout != "" {
		d, err := parseTimeout(flags.render.renderTimeout)
		if err != nil {
			return err
		}
		cfg.Render.RenderTimeout = d
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}

	// Render flags
	if flags.render.pixelRatio != 0 {
		cfg.Render.PixelRatio = flags.render.pixelRatio
	}
	if flags.render.fontSize != 0 {
		cfg.Render.FontSize = flags.render.fontSize
	}
	if flags.render.padding != 0 {
		cfg.Render.Padding = flags.render.padding
	}
	if flags.render.maxPixelWidth != 0 {
		cfg.Render.MaxPixelWidth = flags.render.maxPixelWidth
	}

	// Document flags
	d := &flags.document
	if d.title != "" {
		cfg.Document.Title = d.title
	}
	if d.author != "" {
		cfg.Document.Author = d.author
	}
	if d.imageWidth != 0 {
		cfg.Document.ImageWidth = d.imageWidth
	}
	if d.imageHeight != 0 {
		cfg.Document.ImageHeight = d.imageHeight
	}
	if d.keepAspect {
		cfg.Document.KeepAspectRatio = true
	}
	if d.maxHeadingLevel != 0 {
		cfg.Document.MaxHeadingLevel = d.maxHeadingLevel
	}
	if d.codeTheme != "" {
		cfg.Document.CodeTheme = d.codeTheme
	}
	if d.wordStyles != "" {
		cfg.Document.WordStyles = d.wordStyles
	}
	return nil
}

// parseTimeout parses a positive duration such as "30s" or "2m".
func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, s)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, s)
	}
	return d, nil
}

// validateWorkers checks the --workers value.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > ai2docx.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, ai2docx.MaxPoolSize)
	}
	return nil
}

// resolveFiles turns positional arguments into conversion jobs.
// No argument, or a single "-", reads standard input.
func resolveFiles(args []string, output string, cfg *config.Config) ([]FileToConvert, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == stdio) {
		return []FileToConvert{{
			InputPath:  stdio,
			OutputPath: resolveStdinOutput(output, cfg),
		}}, nil
	}

	var inputs []FileToConvert
	for _, arg := range args {
		if arg == stdio {
			return nil, ErrMixedStdin
		}
		found, err := discoverFiles(arg)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, found...)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, strings.Join(args, ", "))
	}

	single := len(inputs) == 1
	switch {
	case output == stdio && !single:
		return nil, fmt.Errorf("%w: cannot write %d documents to standard output", ErrUsage, len(inputs))
	case isDocxPath(output) && !single:
		return nil, fmt.Errorf("%w: %s is a file but %d inputs were given", ErrUsage, output, len(inputs))
	}

	outputDir := output
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}
	for i := range inputs {
		inputs[i].OutputPath = resolveOutputPath(inputs[i].InputPath, outputDir, inputs[i].baseDir)
	}
	return inputs, nil
}

// resolveStdinOutput picks the destination for standard input.
func resolveStdinOutput(output string, cfg *config.Config) string {
	name := cfg.Output.FileName
	if name == "" {
		name = ai2docx.DefaultFileName
	}

	switch {
	case output == stdio, isDocxPath(output):
		return output
	case output != "":
		return filepath.Join(output, name)
	case cfg.Output.DefaultDir != "":
		return filepath.Join(cfg.Output.DefaultDir, name)
	default:
		return name
	}
}

// discoverFiles expands a file or directory argument.
// Directories are walked for text files; a file argument is taken as is.
func discoverFiles(inputPath string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	if !info.IsDir() {
		return []FileToConvert{{InputPath: inputPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !textExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		files = append(files, FileToConvert{InputPath: path, baseDir: inputPath})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return files, nil
}

// resolveOutputPath maps an input file to its .docx destination.
// Files found under baseInputDir keep their relative layout in outputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	name := fileutil.ReplaceExt(filepath.Base(inputPath), ".docx")

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}
	if outputDir == stdio || isDocxPath(outputDir) {
		return outputDir
	}

	if baseInputDir != "" {
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(outputDir, filepath.Dir(rel), name)
		}
	}
	return filepath.Join(outputDir, name)
}

func isDocxPath(p string) bool {
	return strings.EqualFold(filepath.Ext(p), ".docx")
}
