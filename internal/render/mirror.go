package render

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Mirror converts a packed frame to RGBA in the mirror colours.
func Mirror(frame *Frame, contrast uint8) *image.RGBA {
	out := image.NewRGBA(frame.Bounds())
	on := MirrorColor(true, contrast)
	draw.Draw(out, out.Bounds(), &image.Uniform{C: Background}, image.Point{}, draw.Src)
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			if frame.Bit(x, y) {
				out.SetRGBA(x, y, on)
			}
		}
	}
	return out
}

// MirrorInto scales the mirrored frame by the largest integer factor that
// fits dst and centres it on a background fill. It returns the rectangle the
// frame occupies.
func MirrorInto(dst draw.Image, frame *Frame, contrast uint8) image.Rectangle {
	bounds := dst.Bounds()
	draw.Draw(dst, bounds, &image.Uniform{C: Background}, image.Point{}, draw.Src)
	if frame.Width <= 0 || frame.Height <= 0 {
		return image.Rectangle{}
	}
	scale := max(min(bounds.Dx()/frame.Width, bounds.Dy()/frame.Height), 1)
	w, h := frame.Width*scale, frame.Height*scale
	x := bounds.Min.X + (bounds.Dx()-w)/2
	y := bounds.Min.Y + (bounds.Dy()-h)/2
	rect := image.Rect(x, y, x+w, y+h)
	xdraw.NearestNeighbor.Scale(dst, rect, Mirror(frame, contrast), frame.Bounds(), xdraw.Src, nil)
	return rect
}
