package main

import (
	"fmt"
	"log/slog"

	"github.com/alnah/go-ai2docx"
	"github.com/alnah/go-ai2docx/internal/config"
)

// loadSettings resolves configuration from defaults, an optional config
// file, and AI2DOCX_* variables, in increasing precedence.
// configFlag wins over AI2DOCX_CONFIG when both name a file.
func loadSettings(configFlag string) (*config.Config, error) {
	env := loadEnvConfig()

	name := configFlag
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		if cfg, err = config.LoadConfig(name); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// converterOptions maps configuration onto converter options.
// Zero values are skipped so the library defaults apply.
func converterOptions(cfg *config.Config, logger *slog.Logger) []ai2docx.Option {
	opts := []ai2docx.Option{ai2docx.WithLogger(logger)}

	r := cfg.Render
	if r.Timeout > 0 {
		opts = append(opts, ai2docx.WithTimeout(r.Timeout))
	}
	if r.RenderTimeout > 0 {
		opts = append(opts, ai2docx.WithRenderTimeout(r.RenderTimeout))
	}
	if r.PixelRatio > 0 {
		opts = append(opts, ai2docx.WithPixelRatio(r.PixelRatio))
	}
	if r.FontSize > 0 {
		opts = append(opts, ai2docx.WithFontSize(r.FontSize))
	}
	if r.Padding > 0 {
		opts = append(opts, ai2docx.WithPadding(r.Padding))
	}
	if r.MaxPixelWidth > 0 {
		opts = append(opts, ai2docx.WithMaxPixelWidth(r.MaxPixelWidth))
	}

	d := cfg.Document
	if d.ImageWidth > 0 || d.ImageHeight > 0 {
		w, h := d.ImageWidth, d.ImageHeight
		if w == 0 {
			w = ai2docx.DefaultImageWidth
		}
		if h == 0 {
			h = ai2docx.DefaultImageHeight
		}
		opts = append(opts, ai2docx.WithImageSize(w, h))
	}
	if d.KeepAspectRatio {
		opts = append(opts, ai2docx.WithKeepAspectRatio(true))
	}
	if d.MaxHeadingLevel > 0 {
		opts = append(opts, ai2docx.WithMaxHeadingLevel(d.MaxHeadingLevel))
	}
	if d.CodeTheme != "" {
		opts = append(opts, ai2docx.WithCodeTheme(d.CodeTheme))
	}
	if d.WordStyles != "" {
		opts = append(opts, ai2docx.WithWordStyles(d.WordStyles))
	}
	if d.Author != "" {
		opts = append(opts, ai2docx.WithAuthor(d.Author))
	}

	if cfg.Assets.BasePath != "" {
		opts = append(opts, ai2docx.WithAssetPath(cfg.Assets.BasePath))
	}

	return opts
}
