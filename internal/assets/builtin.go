package assets

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// RegisterBuiltinFont registers the printable ASCII range of basicfont's 7x13
// face under name, so a device can render text without any font file.
func (s *Store) RegisterBuiltinFont(name string) {
	s.fonts[name] = BuiltinFont()
}

func BuiltinFont() Font {
	return FontFromFace(basicfont.Face7x13, PrintableASCII)
}

// PrintableASCII is the character set rasterized by default.
const PrintableASCII = " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"

// FontFromFace rasterizes every character of chars that face can render.
func FontFromFace(face font.Face, chars string) Font {
	f := Font{}
	for _, r := range chars {
		if g, ok := GlyphFromFace(face, r); ok {
			f[r] = g
		}
	}
	return f
}

// GlyphFromFace renders r into a 1-bit glyph. The glyph is one pixel narrower
// than the face's advance because layout adds a one pixel gap after every
// character; its height spans ascent plus descent.
func GlyphFromFace(face font.Face, r rune) (Bitmap, bool) {
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil()
	advance, ok := face.GlyphAdvance(r)
	if !ok || height <= 0 {
		return Bitmap{}, false
	}
	width := advance.Ceil() - 1
	if width < 1 {
		width = 1
	}

	dst := image.NewAlpha(image.Rect(0, 0, width, height))
	dr, mask, maskp, _, ok := face.Glyph(fixed.P(0, ascent), r)
	if !ok {
		return Bitmap{}, false
	}
	draw.DrawMask(dst, dr, image.Opaque, image.Point{}, mask, maskp, draw.Over)
	return BitmapFromImage(dst, dst.Bounds(), 0x80), true
}
