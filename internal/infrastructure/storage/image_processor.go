package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// posterPalette gives every tmdb id a stable background
var posterPalette = []color.NRGBA{
	{R: 0x2b, G: 0x2d, B: 0x42, A: 0xff},
	{R: 0x8d, G: 0x99, B: 0xae, A: 0xff},
	{R: 0xd9, G: 0x04, B: 0x29, A: 0xff},
	{R: 0x1d, G: 0x35, B: 0x57, A: 0xff},
	{R: 0x45, G: 0x7b, B: 0x9d, A: 0xff},
	{R: 0x2a, G: 0x9d, B: 0x8f, A: 0xff},
	{R: 0xe9, G: 0xc4, B: 0x6a, A: 0xff},
	{R: 0x6d, G: 0x59, B: 0x7a, A: 0xff},
}

// ImageProcessor renders poster placeholders
type ImageProcessor struct {
	DefaultWidth  int
	DefaultHeight int
	MaxWidth      int
	MaxHeight     int
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{
		DefaultWidth:  500,
		DefaultHeight: 750,
		MaxWidth:      2000,
		MaxHeight:     3000,
	}
}

// Size applies defaults to non-positive values and caps to the maximum
func (p *ImageProcessor) Size(width, height int) (int, int) {
	if width <= 0 {
		width = p.DefaultWidth
	}
	if height <= 0 {
		height = p.DefaultHeight
	}
	return min(width, p.MaxWidth), min(height, p.MaxHeight)
}

// RenderPlaceholder draws a 2:3 poster for seed and fills it to width x height as PNG
func (p *ImageProcessor) RenderPlaceholder(seed int64, width, height int) ([]byte, error) {
	width, height = p.Size(width, height)

	background := posterPalette[uint64(seed)%uint64(len(posterPalette))]
	poster := imaging.New(p.DefaultWidth, p.DefaultHeight, background)

	// darker title band across the lower third
	band := imaging.New(p.DefaultWidth, p.DefaultHeight/6, color.NRGBA{A: 0xff})
	poster = imaging.Overlay(poster, band, image.Pt(0, p.DefaultHeight*2/3), 0.35)

	// inset frame
	frame := imaging.New(p.DefaultWidth-40, p.DefaultHeight-40, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	poster = imaging.Overlay(poster, frame, image.Pt(20, 20), 0.08)

	resized := imaging.Fill(poster, width, height, imaging.Center, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, resized, imaging.PNG); err != nil {
		return nil, fmt.Errorf("cannot encode placeholder: %w", err)
	}
	return buf.Bytes(), nil
}
