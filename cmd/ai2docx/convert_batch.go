package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-ai2docx"
	"github.com/alnah/go-ai2docx/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrReadInput   = errors.New("failed to read input")
	ErrWriteOutput = errors.New("failed to write output")
	ErrOutputDir   = errors.New("failed to create output directory")
)

// FileToConvert represents a single conversion job.
type FileToConvert struct {
	InputPath  string // "-" reads standard input
	OutputPath string // "-" writes standard output

	baseDir string // directory argument the file was found under
	text    string // preloaded standard input
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Stats      ai2docx.Stats
	Skipped    bool // input was empty, nothing written
	Err        error
	Duration   time.Duration
}

// conversionParams groups parameters shared across a batch.
type conversionParams struct {
	title  string
	html   bool
	stdout io.Writer
	logger *slog.Logger
}

// BatchError reports failed conversions. It unwraps to every cause so
// exit codes can be derived with errors.Is.
type BatchError struct {
	Failed int
	Total  int
	Errs   []error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%d of %d conversion(s) failed", e.Failed, e.Total)
}

func (e *BatchError) Unwrap() []error { return e.Errs }

// convertBatch processes files concurrently, at most pool.Size() at a time.
// A failing file never cancels the others.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	results := make([]ConversionResult, len(files))

	var g errgroup.Group
	g.SetLimit(pool.Size())

	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = ConversionResult{InputPath: f.InputPath, Err: err}
				return nil
			}

			conv, err := pool.Acquire(ctx)
			if err != nil {
				results[i] = ConversionResult{InputPath: f.InputPath, Err: err}
				return nil
			}
			defer pool.Release(conv)

			results[i] = convertFile(ctx, conv, f, params)
			return nil
		})
	}
	_ = g.Wait() // jobs record errors in results

	return results
}

// convertFile processes a single job and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	text := f.text
	if f.InputPath != stdio {
		data, err := os.ReadFile(f.InputPath) // #nosec G304 -- user-provided input path
		if err != nil {
			return fail(fmt.Errorf("%w: %v", ErrReadInput, err))
		}
		text = string(data)
	}

	res, err := conv.Convert(ctx, ai2docx.Input{
		Text:    text,
		Title:   params.title,
		Preview: params.html,
		Progress: func(p ai2docx.Progress) {
			params.logger.Debug(p.Message(), "input", f.InputPath)
		},
	})
	if err != nil {
		return fail(err)
	}

	result.Stats = res.Stats
	if res.Empty() {
		result.Skipped = true
		result.Duration = time.Since(start)
		return result
	}

	if f.OutputPath == stdio {
		if _, err := params.stdout.Write(res.DOCX); err != nil {
			return fail(fmt.Errorf("%w: standard output: %v", ErrWriteOutput, err))
		}
		result.Duration = time.Since(start)
		return result
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrOutputDir, err))
	}
	if err := fileutil.WriteAtomic(f.OutputPath, res.DOCX, filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}
	if params.html {
		htmlPath := fileutil.ReplaceExt(f.OutputPath, ".html")
		if err := fileutil.WriteAtomic(htmlPath, res.HTML, filePermissions); err != nil {
			return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
	}

	result.Duration = time.Since(start)
	return result
}

// ResultSummary counts batch outcomes.
type ResultSummary struct {
	Succeeded int
	Skipped   int
	Failed    int
}

func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		switch {
		case r.Err != nil:
			summary.Failed++
		case r.Skipped:
			summary.Skipped++
		default:
			summary.Succeeded++
		}
	}
	return summary
}

// displayName labels standard input in messages.
func displayName(path string) string {
	if path == stdio {
		return "<stdin>"
	}
	return path
}

// reportResults prints per-file outcomes and returns a *BatchError if any
// conversion failed.
func reportResults(results []ConversionResult, common commonFlags, env *Environment) error {
	summary := countResults(results)
	var errs []error

	for _, r := range results {
		in := displayName(r.InputPath)
		if r.Err != nil {
			errs = append(errs, r.Err)
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", in, r.Err, hintFor(r.Err))
			continue
		}
		if r.Stats.Failed > 0 {
			fmt.Fprintf(env.Stderr, "warning: %s: %d of %d equation(s) could not be rendered\n",
				in, r.Stats.Failed, r.Stats.Equations)
		}

		if common.quiet {
			continue
		}

		switch {
		case r.Skipped:
			fmt.Fprintf(env.Stderr, "Skipped %s: no content\n", in)
		case r.OutputPath == stdio:
			// stdout carries the document
		case common.verbose:
			fmt.Fprintf(env.Stderr, "%s -> %s (%d equations, %v)\n",
				in, r.OutputPath, r.Stats.Rendered, r.Duration.Round(time.Millisecond))
		default:
			fmt.Fprintf(env.Stderr, "Created %s\n", r.OutputPath)
		}
	}

	if !common.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stderr, "\n%d succeeded, %d skipped, %d failed\n",
			summary.Succeeded, summary.Skipped, summary.Failed)
	}

	if summary.Failed > 0 {
		return &BatchError{Failed: summary.Failed, Total: len(results), Errs: errs}
	}
	return nil
}
