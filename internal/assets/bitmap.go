package assets

import (
	"image"
	"image/color"
)

// Bitmap is a declared Width×Height block of 0/1 values, stored row by row.
// Glyphs and images share this shape.
type Bitmap struct {
	Width  int
	Height int
	Rows   [][]uint8
}

func NewBitmap(width, height int) Bitmap {
	rows := make([][]uint8, height)
	for y := range rows {
		rows[y] = make([]uint8, width)
	}
	return Bitmap{Width: width, Height: height, Rows: rows}
}

// Lit reports whether the bit at (x, y) is set. Coordinates outside the
// bitmap are unlit.
func (b Bitmap) Lit(x, y int) bool {
	if y < 0 || y >= len(b.Rows) || x < 0 || x >= len(b.Rows[y]) {
		return false
	}
	return b.Rows[y][x] == 1
}

// BitmapFromImage thresholds the rect region of img: a pixel is lit when its
// luminance is at least threshold.
func BitmapFromImage(img image.Image, rect image.Rectangle, threshold uint8) Bitmap {
	rect = rect.Intersect(img.Bounds())
	bm := NewBitmap(rect.Dx(), rect.Dy())
	for y := 0; y < rect.Dy(); y++ {
		for x := 0; x < rect.Dx(); x++ {
			c := img.At(rect.Min.X+x, rect.Min.Y+y)
			_, _, _, a := c.RGBA()
			if a == 0 {
				continue
			}
			if color.GrayModel.Convert(c).(color.Gray).Y >= threshold {
				bm.Rows[y][x] = 1
			}
		}
	}
	return bm
}
