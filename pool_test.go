package ai2docx

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"
)

// Compile-time interface check.
var _ interface {
	Acquire(context.Context) (*Converter, error)
	Release(*Converter)
	Size() int
	Close() error
} = (*ConverterPool)(nil)

// newTestPool builds converters on fake surfaces so no browser is launched.
func newTestPool(t *testing.T, n int) *ConverterPool {
	t.Helper()
	pool := NewConverterPool(n)
	pool.newFn = func(opts ...Option) (*Converter, error) {
		return NewConverter(append(opts, withSurface(&fakeSurface{}))...)
	}
	return pool
}

func mustAcquire(t *testing.T, pool *ConverterPool) *Converter {
	t.Helper()
	conv, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if conv == nil {
		t.Fatal("Acquire() returned nil")
	}
	return conv
}

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{
			name:    "explicit takes priority",
			workers: 4,
			want:    4,
		},
		{
			name:    "explicit=1 for sequential",
			workers: 1,
			want:    1,
		},
		{
			name:    "explicit can exceed max",
			workers: 100,
			want:    100,
		},
		{
			name:    "zero uses auto calculation",
			workers: 0,
			want:    min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize),
		},
		{
			name:    "negative uses auto calculation",
			workers: -5,
			want:    min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ResolvePoolSize(tt.workers)
			if got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

func TestConverterPool_AcquireRelease(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t, 2)
	defer pool.Close()

	conv1 := mustAcquire(t, pool)
	conv2 := mustAcquire(t, pool)

	if conv1 == conv2 {
		t.Error("expected different converter instances")
	}

	// Release and re-acquire
	pool.Release(conv1)
	conv3 := mustAcquire(t, pool)
	if conv3 != conv1 {
		t.Error("expected to get back released converter")
	}

	pool.Release(conv2)
	pool.Release(conv3)
}

func TestConverterPool_Size(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		size int
		want int
	}{
		{"size 1", 1, 1},
		{"size 4", 4, 4},
		{"size 0 becomes 1", 0, 1},
		{"negative becomes 1", -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pool := NewConverterPool(tt.size)
			defer pool.Close()

			if got := pool.Size(); got != tt.want {
				t.Errorf("Size() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConverterPool_AcquireHonorsContext(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t, 1)
	defer pool.Close()

	conv := mustAcquire(t, pool)
	defer pool.Release(conv)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := pool.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Acquire() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestConverterPool_AcquireAfterClose(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t, 2)

	conv := mustAcquire(t, pool)
	pool.Release(conv)
	if err := pool.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if _, err := pool.Acquire(context.Background()); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Acquire() error = %v, want ErrPoolClosed", err)
	}

	// Release after close is a no-op
	pool.Release(conv)
}

func TestConverterPool_DoubleClose(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t, 1)
	_ = mustAcquire(t, pool)

	if err := pool.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestConverterPool_CreationErrorFreesSlot(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1)
	defer pool.Close()

	fail := true
	pool.newFn = func(opts ...Option) (*Converter, error) {
		if fail {
			return nil, ErrInvalidPixelRatio
		}
		return NewConverter(append(opts, withSurface(&fakeSurface{}))...)
	}

	if _, err := pool.Acquire(context.Background()); !errors.Is(err, ErrInvalidPixelRatio) {
		t.Fatalf("Acquire() error = %v, want ErrInvalidPixelRatio", err)
	}

	fail = false
	conv := mustAcquire(t, pool)
	pool.Release(conv)
}

func TestConverterPool_ReleaseNil(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t, 1)
	defer pool.Close()

	pool.Release(nil)

	conv := mustAcquire(t, pool)
	pool.Release(conv)
}

// TestConverterPool_HighContention verifies the pool remains deadlock-free under
// heavy concurrent access. A small pool (2 converters) with many goroutines (50)
// each performing multiple acquire/release cycles exposes race conditions and
// channel blocking issues that wouldn't surface with lighter loads.
func TestConverterPool_HighContention(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t, 2)
	defer pool.Close()

	var wg sync.WaitGroup
	goroutines := 50
	iterations := 10

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range iterations {
				conv, err := pool.Acquire(context.Background())
				if err != nil {
					t.Errorf("Acquire() error = %v", err)
					return
				}
				// Simulate variable work duration
				time.Sleep(time.Duration(j%3) * time.Millisecond)
				pool.Release(conv)
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(30 * time.Second)
	defer timer.Stop()

	select {
	case <-done:
		// Success - no deadlock under high contention
	case <-timer.C:
		t.Fatal("high contention test timed out - possible deadlock")
	}
}

func TestConverterPool_ConvertInParallel(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t, 3)
	defer pool.Close()

	texts := []string{"# One", "two $$x$$", "- three", "four", "$$y$$ five"}
	results := make([]*ConvertResult, len(texts))

	var wg sync.WaitGroup
	for i, text := range texts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conv, err := pool.Acquire(context.Background())
			if err != nil {
				t.Errorf("Acquire() error = %v", err)
				return
			}
			defer pool.Release(conv)

			res, err := conv.Convert(context.Background(), Input{Text: text})
			if err != nil {
				t.Errorf("Convert(%q) error = %v", text, err)
				return
			}
			results[i] = res
		}()
	}
	wg.Wait()

	for i, res := range results {
		if res.Empty() {
			t.Errorf("result %d is empty", i)
		}
	}
}
