package render

import "image/color"

// Mirror colours used when a mono frame is shown on a colour surface
// (framebuffer console, desktop window, preview PNG).
var (
	Foreground = color.RGBA{R: 0x9C, G: 0xE6, B: 0xFF, A: 0xFF} // lit OLED pixel
	Background = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
)

// Default panel resolution (SH1106 / SSD1306 128x64 modules).
const (
	DefaultWidth  = 128
	DefaultHeight = 64
)

// MirrorColor returns the mirror colour of a frame pixel. Contrast in
// [0, 255] dims the foreground the way the panel dims its lit pixels.
func MirrorColor(lit bool, contrast uint8) color.RGBA {
	if !lit {
		return Background
	}
	scale := func(v uint8) uint8 {
		// keep dimmed pixels visible at contrast 0
		return uint8((int(v)*(int(contrast)+32) + 143) / 287)
	}
	return color.RGBA{R: scale(Foreground.R), G: scale(Foreground.G), B: scale(Foreground.B), A: 0xFF}
}
