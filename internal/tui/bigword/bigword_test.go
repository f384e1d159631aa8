package bigword

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderShape(t *testing.T) {
	r, err := NewRenderer() // bundled font only
	require.NoError(t, err)

	out := r.Render("ma", 20, 5)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	for _, line := range lines {
		assert.Equal(t, 20, len([]rune(line)))
	}
	assert.True(t, strings.ContainsAny(out, "█▀▄"), "glyphs should produce ink")
}

func TestRenderEmpty(t *testing.T) {
	r, err := NewRenderer("/nonexistent/font.ttf")
	require.NoError(t, err)
	assert.Empty(t, r.Render("", 10, 3))
	assert.Empty(t, r.Render("ma", 0, 3))
}

func TestRenderCaches(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	first := r.Render("bán", 16, 4)
	assert.Len(t, r.cache, 1)
	assert.Equal(t, first, r.Render("bán", 16, 4))
	assert.Len(t, r.cache, 1)
}

func TestImageToHalfBlocks(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 2))
	img.SetGray(0, 0, color.Gray{Y: 255})
	img.SetGray(0, 1, color.Gray{Y: 255})
	img.SetGray(1, 0, color.Gray{Y: 255})
	img.SetGray(2, 1, color.Gray{Y: 255})

	assert.Equal(t, "█▀▄ ", imageToHalfBlocks(img, 4, 1))
}
