package render

// Color is a binary pixel value.
type Color uint8

const (
	Off Color = 0
	On  Color = 1
)

// Framebuffer is a height×width grid of binary pixels, stored row-major.
// Coordinates outside the grid are ignored by every primitive: off-screen
// drawing is harmless and never an error.
type Framebuffer struct {
	width  int
	height int
	pix    []Color
}

func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{width: width, height: height, pix: make([]Color, width*height)}
}

func (fb *Framebuffer) Size() (width int, height int) { return fb.width, fb.height }

func (fb *Framebuffer) inBounds(x, y int) bool {
	return x >= 0 && x < fb.width && y >= 0 && y < fb.height
}

// At returns the pixel at (x, y), or Off outside the grid.
func (fb *Framebuffer) At(x, y int) Color {
	if !fb.inBounds(x, y) {
		return Off
	}
	return fb.pix[y*fb.width+x]
}

func (fb *Framebuffer) Clear() {
	for i := range fb.pix {
		fb.pix[i] = Off
	}
}

func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if fb.inBounds(x, y) {
		fb.pix[y*fb.width+x] = c & 1
	}
}

// DrawRect fills a rectangle after clipping it to the visible area. The
// origin is clamped to the screen and the extent shrinks by the clipped
// amount, so a rectangle entirely off-screen draws nothing.
func (fb *Framebuffer) DrawRect(x, y, w, h int, c Color) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, fb.width), min(y+h, fb.height)
	c &= 1
	for py := y0; py < y1; py++ {
		row := fb.pix[py*fb.width : (py+1)*fb.width]
		for px := x0; px < x1; px++ {
			row[px] = c
		}
	}
}

// DrawOutlinedRect draws the four borders pixel by pixel, so clipping happens
// per pixel rather than on the rectangle as a whole.
func (fb *Framebuffer) DrawOutlinedRect(x, y, w, h int, c Color) {
	for px := x; px < x+w; px++ {
		fb.SetPixel(px, y, c)
		fb.SetPixel(px, y+h-1, c)
	}
	for py := y + 1; py < y+h-1; py++ {
		fb.SetPixel(x, py, c)
		fb.SetPixel(x+w-1, py, c)
	}
}

// DrawLine rasterizes the segment with the symmetric-error form of
// Bresenham's algorithm, which covers every octant.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	dy := -abs(y1 - y0)
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	e := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			if x0 == x1 {
				return
			}
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				return
			}
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
