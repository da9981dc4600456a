package render

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMirror(t *testing.T) {
	fb := NewFramebuffer(4, 2)
	fb.SetPixel(1, 0, On)
	f := NewFrame(4, 2)
	Pack(fb, f)

	img := Mirror(f, 255)
	assert.Equal(t, Foreground, img.RGBAAt(1, 0))
	assert.Equal(t, Background, img.RGBAAt(0, 0))
}

func TestMirrorIntoScalesAndCentres(t *testing.T) {
	fb := NewFramebuffer(4, 2)
	fb.SetPixel(0, 0, On)
	f := NewFrame(4, 2)
	Pack(fb, f)

	dst := image.NewRGBA(image.Rect(0, 0, 14, 10))
	rect := MirrorInto(dst, f, 255)
	// 3x fits horizontally, 5x vertically: the smaller factor wins.
	assert.Equal(t, image.Rect(1, 2, 13, 8), rect)
	assert.Equal(t, Foreground, dst.RGBAAt(1, 2))
	assert.Equal(t, Foreground, dst.RGBAAt(3, 4))
	assert.Equal(t, Background, dst.RGBAAt(4, 2))
	assert.Equal(t, Background, dst.RGBAAt(0, 0))
}
