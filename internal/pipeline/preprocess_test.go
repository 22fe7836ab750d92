package pipeline

import (
	"context"
	"testing"
)

// Compile-time interface check.
var _ Preprocessor = (*TextPreprocessor)(nil)

func TestTextPreprocessor_Preprocess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "CRLF to LF",
			input: "a\r\nb",
			want:  "a\nb",
		},
		{
			name:  "lone CR to LF",
			input: "a\rb",
			want:  "a\nb",
		},
		{
			name:  "blank lines kept",
			input: "a\n\n\n\n\nb",
			want:  "a\n\n\n\n\nb",
		},
		{
			name:  "byte order mark stripped",
			input: "\uFEFF# Title",
			want:  "# Title",
		},
		{
			name:  "decomposed accents composed",
			input: "e\u0301nergie",
			want:  "\u00e9nergie",
		},
		{
			name:  "math delimiters untouched",
			input: `$$\frac{a}{b}$$ and \(x\)`,
			want:  `$$\frac{a}{b}$$ and \(x\)`,
		},
		{
			name:  "fenced code blank lines kept",
			input: "```python\r\nx = 1\r\n\r\n\r\ny = 2\r\n```",
			want:  "```python\nx = 1\n\n\ny = 2\n```",
		},
	}

	p := &TextPreprocessor{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := p.Preprocess(context.Background(), tt.input)
			if got != tt.want {
				t.Errorf("Preprocess(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := p.Preprocess(context.Background(), got); again != got {
				t.Errorf("Preprocess is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestTextPreprocessor_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := "a\r\nb"
	if got := (&TextPreprocessor{}).Preprocess(ctx, input); got != input {
		t.Errorf("Preprocess() with canceled context = %q, want input unchanged", got)
	}
}
