package storage

import (
	"bytes"
	"image"
	_ "image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageProcessor_Size(t *testing.T) {
	p := NewImageProcessor()

	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"defaults", 0, 0, 500, 750},
		{"explicit", 300, 450, 300, 450},
		{"negative", -1, 100, 500, 100},
		{"capped", 9999, 9999, 2000, 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := p.Size(tt.w, tt.h)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestRenderPlaceholder(t *testing.T) {
	p := NewImageProcessor()

	data, err := p.RenderPlaceholder(603, 200, 300)
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 200, cfg.Width)
	assert.Equal(t, 300, cfg.Height)

	again, err := p.RenderPlaceholder(603, 200, 300)
	require.NoError(t, err)
	assert.Equal(t, data, again, "rendering is deterministic per seed")

	_, err = p.RenderPlaceholder(-42, 10, 10)
	assert.NoError(t, err)
}
