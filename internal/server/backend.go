package server

import (
	"context"

	"github.com/alnah/go-ai2docx"
)

// Backend runs conversions for the handlers.
type Backend interface {
	Convert(ctx context.Context, input ai2docx.Input) (*ai2docx.ConvertResult, error)
	Preview(ctx context.Context, input ai2docx.Input) ([]byte, error)
}

// PoolBackend checks a converter out of a pool for each request, so
// concurrent requests each get their own browser surface.
type PoolBackend struct {
	Pool *ai2docx.ConverterPool
}

var _ Backend = (*PoolBackend)(nil)

// Convert implements Backend.
func (b *PoolBackend) Convert(ctx context.Context, input ai2docx.Input) (*ai2docx.ConvertResult, error) {
	conv, err := b.Pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer b.Pool.Release(conv)
	return conv.Convert(ctx, input)
}

// Preview implements Backend.
func (b *PoolBackend) Preview(ctx context.Context, input ai2docx.Input) ([]byte, error) {
	conv, err := b.Pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer b.Pool.Release(conv)
	return conv.Preview(ctx, input)
}
