package sink

import (
	"image"
	"image/draw"

	fb "github.com/gonutz/framebuffer"
	"github.com/rook-computer/monoframe/internal/render"
)

// FBDev mirrors a logical mono panel onto a Linux framebuffer, scaled by the
// largest integer factor that fits and centred.
type FBDev struct {
	width  int
	height int

	dev      *fb.Device
	target   draw.Image
	canvas   *image.RGBA
	contrast uint8
}

const DefaultFBDevice = "/dev/fb0"

func OpenFBDev(path string, width, height int) (*FBDev, error) {
	if path == "" {
		path = DefaultFBDevice
	}
	dev, err := fb.Open(path)
	if err != nil {
		return nil, err
	}
	s := newFBDev(dev, width, height)
	s.dev = dev
	return s, nil
}

func newFBDev(target draw.Image, width, height int) *FBDev {
	if width <= 0 {
		width = render.DefaultWidth
	}
	if height <= 0 {
		height = render.DefaultHeight
	}
	return &FBDev{
		width:    width,
		height:   height,
		target:   target,
		canvas:   image.NewRGBA(target.Bounds()),
		contrast: render.NativeContrast(render.ContrastMax),
	}
}

func (s *FBDev) Size() (int, int) { return s.width, s.height }

func (s *FBDev) Clear() error {
	return s.Display(render.NewFrame(s.width, s.height))
}

// Display composes the frame off screen first and copies it in one pass so
// the console never shows a half-drawn frame.
func (s *FBDev) Display(frame *render.Frame) error {
	render.MirrorInto(s.canvas, frame, s.contrast)
	draw.Draw(s.target, s.target.Bounds(), s.canvas, s.canvas.Bounds().Min, draw.Src)
	return nil
}

// Contrast takes effect on the next Display.
func (s *FBDev) Contrast(level uint8) error {
	s.contrast = level
	return nil
}

func (s *FBDev) Close() error {
	if s.dev != nil {
		s.dev.Close()
		s.dev = nil
	}
	return nil
}
