package main

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/rook-computer/monoframe/internal/assets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func atlas() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 6, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 6; x++ {
			img.Set(x, y, color.Black)
		}
	}
	// "A" occupies x 0..2, "B" x 3..5.
	img.Set(1, 0, color.White)
	img.Set(3, 2, color.White)
	img.Set(4, 2, color.RGBA{R: 0xff, G: 0xff, B: 0xfe, A: 0xff})
	return img
}

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestAtlasFont(t *testing.T) {
	f, err := atlasFont(atlas(), map[string][4]int{"A": {0, 0, 3, 3}, "B": {3, 0, 3, 3}})
	require.NoError(t, err)

	assert.True(t, f['A'].Lit(1, 0))
	assert.False(t, f['A'].Lit(0, 0))
	assert.True(t, f['B'].Lit(0, 2))
	assert.False(t, f['B'].Lit(1, 2), "only pure white is lit")

	space := f[' ']
	assert.Equal(t, 5, space.Width)
	assert.Equal(t, 11, space.Height)
}

func TestAtlasFontErrors(t *testing.T) {
	_, err := atlasFont(atlas(), map[string][4]int{"AB": {0, 0, 1, 1}})
	assert.Error(t, err)
	_, err = atlasFont(atlas(), map[string][4]int{"A": {4, 0, 3, 3}})
	assert.Error(t, err)
	_, err = atlasFont(atlas(), map[string][4]int{"A": {0, 0, 0, 3}})
	assert.Error(t, err)
}

func TestTTFFont(t *testing.T) {
	f, err := ttfFont(goregular.TTF, 10, 72, "Hi")
	require.NoError(t, err)
	require.Len(t, f, 2)

	h := f['H']
	assert.Positive(t, h.Width)
	assert.Equal(t, h.Height, f['i'].Height)
	lit := 0
	for y := 0; y < h.Height; y++ {
		for x := 0; x < h.Width; x++ {
			if h.Lit(x, y) {
				lit++
			}
		}
	}
	assert.Greater(t, lit, 5)

	_, err = ttfFont([]byte("not a font"), 10, 72, "A")
	assert.Error(t, err)
}

func TestImageBitmapResize(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 2))
	for x := 0; x < 2; x++ {
		img.SetGray(x, 0, color.Gray{Y: 0xff})
		img.SetGray(x, 1, color.Gray{Y: 0xff})
	}

	bm := imageBitmap(img, 0, 0, 0x80)
	assert.Equal(t, 4, bm.Width)
	assert.True(t, bm.Lit(0, 0))
	assert.False(t, bm.Lit(3, 1))

	bm = imageBitmap(img, 8, 0, 0x80)
	assert.Equal(t, 8, bm.Width)
	assert.Equal(t, 4, bm.Height)
	assert.True(t, bm.Lit(0, 0))
	assert.False(t, bm.Lit(7, 3))
}

func TestImageCommandMerges(t *testing.T) {
	out := filepath.Join(t.TempDir(), "images.json")
	require.NoError(t, os.WriteFile(out, []byte(`{"old": [[1, 1], [1]]}`), 0o644))

	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(0, 0, color.Gray{Y: 0xff})
	in := writePNG(t, img)

	rootCmd.SetArgs([]string{"image", "dot", "-i", in, "-o", out})
	require.NoError(t, rootCmd.Execute())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	images, err := assets.DecodeImages(out, f)
	require.NoError(t, err)
	assert.Contains(t, images, "old")
	require.Contains(t, images, "dot")
	assert.True(t, images["dot"].Lit(0, 0))
	assert.False(t, images["dot"].Lit(1, 1))
}

func TestAtlasCommand(t *testing.T) {
	dir := t.TempDir()
	in := writePNG(t, atlas())
	mapPath := filepath.Join(dir, "map.json")
	raw, err := json.Marshal(map[string][4]int{"A": {0, 0, 3, 3}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(mapPath, raw, 0o644))
	out := filepath.Join(dir, "font.json")

	rootCmd.SetArgs([]string{"font", "atlas", "-i", in, "-j", mapPath, "-o", out})
	require.NoError(t, rootCmd.Execute())

	store := assets.NewStore()
	require.NoError(t, store.LoadFontFile("atlas", out))
	g, err := store.Glyph("atlas", 'A')
	require.NoError(t, err)
	assert.True(t, g.Lit(1, 0))
	_, err = store.Glyph("atlas", ' ')
	assert.NoError(t, err)
}
