// Package layout carves a panel into rectangles for pages to draw into.
package layout

import "image"

// Screen is the full panel area.
func Screen(width, height int) image.Rectangle {
	return image.Rect(0, 0, max(width, 0), max(height, 0))
}

// Inset shrinks rect by px on all sides. An inset larger than half the
// rectangle collapses it to its centre line.
func Inset(rect image.Rectangle, px int) image.Rectangle {
	rect = rect.Canon()
	if px <= 0 {
		return rect
	}
	px = min(px, rect.Dx()/2, rect.Dy()/2)
	return image.Rect(rect.Min.X+px, rect.Min.Y+px, rect.Max.X-px, rect.Max.Y-px)
}

// SplitLeft cuts a column of widthPx off the left of rect, clamped to
// [0, rect.Dx()].
func SplitLeft(rect image.Rectangle, widthPx int) (left image.Rectangle, rest image.Rectangle) {
	rect = rect.Canon()
	x := rect.Min.X + min(max(widthPx, 0), rect.Dx())
	return image.Rect(rect.Min.X, rect.Min.Y, x, rect.Max.Y), image.Rect(x, rect.Min.Y, rect.Max.X, rect.Max.Y)
}

// SplitRight cuts a column of widthPx off the right of rect.
func SplitRight(rect image.Rectangle, widthPx int) (rest image.Rectangle, right image.Rectangle) {
	rect = rect.Canon()
	return SplitLeft(rect, rect.Dx()-min(max(widthPx, 0), rect.Dx()))
}

// SplitTop cuts a band of heightPx off the top of rect, clamped to
// [0, rect.Dy()].
func SplitTop(rect image.Rectangle, heightPx int) (top image.Rectangle, rest image.Rectangle) {
	rect = rect.Canon()
	y := rect.Min.Y + min(max(heightPx, 0), rect.Dy())
	return image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, y), image.Rect(rect.Min.X, y, rect.Max.X, rect.Max.Y)
}

// Rows divides rect into n bands of equal height. The last band absorbs the
// remainder.
func Rows(rect image.Rectangle, n int) []image.Rectangle {
	if n <= 0 {
		return nil
	}
	rect = rect.Canon()
	h := rect.Dy() / n
	out := make([]image.Rectangle, n)
	for i := range out {
		y0 := rect.Min.Y + i*h
		y1 := y0 + h
		if i == n-1 {
			y1 = rect.Max.Y
		}
		out[i] = image.Rect(rect.Min.X, y0, rect.Max.X, y1)
	}
	return out
}

// Center returns a widthPx×heightPx rectangle centred in rect. The result is
// not clipped: content larger than rect overhangs it evenly.
func Center(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = rect.Canon()
	x := rect.Min.X + (rect.Dx()-widthPx)/2
	y := rect.Min.Y + (rect.Dy()-heightPx)/2
	return image.Rect(x, y, x+widthPx, y+heightPx)
}

// FitSquare returns the largest square that fits into rect, centred on the
// longer axis.
func FitSquare(rect image.Rectangle) image.Rectangle {
	rect = rect.Canon()
	size := min(rect.Dx(), rect.Dy())
	return Center(rect, size, size)
}
