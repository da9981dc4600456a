package render

import (
	"image"
	"image/color"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Frame is a packed 1-bit-per-pixel frame: rows top to bottom, each row
// Stride bytes long, eight pixels per byte with the leftmost pixel in the most
// significant bit. When Width is not a multiple of eight the unused low bits
// of the last byte in every row are zero.
//
// Frame implements image.Image so it can be handed to image encoders and to
// periph display drivers unchanged.
type Frame struct {
	Width  int
	Height int
	Stride int
	Pix    []byte
}

func NewFrame(width, height int) *Frame {
	stride := (width + 7) / 8
	return &Frame{Width: width, Height: height, Stride: stride, Pix: make([]byte, stride*height)}
}

// Bit unpacks the pixel at (x, y).
func (f *Frame) Bit(x, y int) bool {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return false
	}
	return f.Pix[y*f.Stride+x/8]&(0x80>>uint(x%8)) != 0
}

func (f *Frame) Clone() *Frame {
	out := *f
	out.Pix = append([]byte(nil), f.Pix...)
	return &out
}

func (f *Frame) Bounds() image.Rectangle { return image.Rect(0, 0, f.Width, f.Height) }

func (f *Frame) ColorModel() color.Model { return image1bit.BitModel }

func (f *Frame) At(x, y int) color.Color { return image1bit.Bit(f.Bit(x, y)) }

// Pack writes the framebuffer into dst, which must have the same size.
func Pack(fb *Framebuffer, dst *Frame) {
	for y := 0; y < fb.height; y++ {
		src := fb.pix[y*fb.width : (y+1)*fb.width]
		out := dst.Pix[y*dst.Stride : (y+1)*dst.Stride]
		for i := range out {
			var b byte
			for bit := 0; bit < 8; bit++ {
				b <<= 1
				if x := i*8 + bit; x < len(src) {
					b |= byte(src[x])
				}
			}
			out[i] = b
		}
	}
}
