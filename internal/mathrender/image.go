package mathrender

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// inspectPNG returns the pixel dimensions of a PNG without decoding pixels.
func inspectPNG(data []byte) (width, height int, err error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return 0, 0, fmt.Errorf("%w: empty image %dx%d", ErrInvalidImage, cfg.Width, cfg.Height)
	}
	return cfg.Width, cfg.Height, nil
}

// downscalePNG resizes data to maxWidth, keeping the aspect ratio.
func downscalePNG(data []byte, maxWidth int) ([]byte, int, int, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	sb := src.Bounds()
	height := max(sb.Dy()*maxWidth/sb.Dx(), 1)

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, 0, 0, fmt.Errorf("%w: re-encoding: %v", ErrInvalidImage, err)
	}
	return buf.Bytes(), maxWidth, height, nil
}
