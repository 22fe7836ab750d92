package main

import (
	"context"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/alnah/go-ai2docx"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, terminal detection, and converter construction.
type Environment struct {
	Now              func() time.Time
	Stdin            io.Reader
	Stdout           io.Writer
	Stderr           io.Writer
	StdinIsTerminal  func() bool
	StdoutIsTerminal func() bool
	NewPool          func(size int, opts ...ai2docx.Option) Pool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:              time.Now,
		Stdin:            os.Stdin,
		Stdout:           os.Stdout,
		Stderr:           os.Stderr,
		StdinIsTerminal:  func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },  // #nosec G115 -- fd fits in int
		StdoutIsTerminal: func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }, // #nosec G115 -- fd fits in int
		NewPool: func(size int, opts ...ai2docx.Option) Pool {
			return &poolAdapter{pool: ai2docx.NewConverterPool(size, opts...)}
		},
	}
}

// CLIConverter is the part of *ai2docx.Converter the CLI uses.
type CLIConverter interface {
	Convert(ctx context.Context, input ai2docx.Input) (*ai2docx.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*ai2docx.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire(ctx context.Context) (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// poolAdapter adapts *ai2docx.ConverterPool to Pool.
type poolAdapter struct {
	pool *ai2docx.ConverterPool
}

var _ Pool = (*poolAdapter)(nil)

func (a *poolAdapter) Acquire(ctx context.Context) (CLIConverter, error) {
	conv, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release panics when given a converter this adapter did not hand out.
func (a *poolAdapter) Release(c CLIConverter) {
	conv, ok := c.(*ai2docx.Converter)
	if !ok {
		panic("poolAdapter.Release: unexpected type")
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int    { return a.pool.Size() }
func (a *poolAdapter) Close() error { return a.pool.Close() }
