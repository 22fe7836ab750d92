package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		quiet, verbose bool
		wantDebug      bool
		wantWarn       bool
	}{
		{"default", false, false, false, true},
		{"quiet", true, false, false, false},
		{"verbose", false, true, true, true},
		{"verbose wins", true, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger := newLogger(io.Discard, tt.quiet, tt.verbose)
			ctx := context.Background()
			if got := logger.Enabled(ctx, slog.LevelDebug); got != tt.wantDebug {
				t.Errorf("debug enabled = %v, want %v", got, tt.wantDebug)
			}
			if got := logger.Enabled(ctx, slog.LevelWarn); got != tt.wantWarn {
				t.Errorf("warn enabled = %v, want %v", got, tt.wantWarn)
			}
		})
	}
}

func TestNewLogger_NoTimestamp(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	newLogger(&buf, false, false).Warn("equation skipped", "index", 2)

	got := buf.String()
	if strings.Contains(got, "time=") {
		t.Errorf("log line has a timestamp: %q", got)
	}
	if !strings.Contains(got, `level=WARN msg="equation skipped" index=2`) {
		t.Errorf("log line = %q", got)
	}
}
