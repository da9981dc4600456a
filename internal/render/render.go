package render

import (
	"fmt"
	"time"

	"github.com/rook-computer/monoframe/internal/assets"
)

// Sink is the display boundary: it reports its resolution once, and accepts
// packed frames and native contrast levels.
type Sink interface {
	Size() (width int, height int)
	Clear() error
	Display(frame *Frame) error
	Contrast(level uint8) error
}

// Drawer is what pages draw through.
type Drawer interface {
	Size() (width int, height int)
	At(x, y int) Color

	SetPixel(x, y int, c Color)
	DrawRect(x, y, w, h int, c Color)
	DrawOutlinedRect(x, y, w, h int, c Color)
	DrawLine(x0, y0, x1, y1 int, c Color)

	TextWidth(text string, style TextStyle) (int, error)
	DrawText(text string, x, y int, style TextStyle) error
	DrawImage(name string, x, y int, opts ImageOpts) error
	QRCodeSize(payload string, opts QROpts) (int, error)
	DrawQRCode(payload string, x, y int, opts QROpts) error

	SetContrast(level int)
}

// InitializationError is returned when the sink cannot report a usable
// resolution or refuses the initial clear.
type InitializationError struct {
	Width  int
	Height int
	Err    error
}

func (e *InitializationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("display init: %v", e.Err)
	}
	return fmt.Sprintf("display init: invalid size %dx%d", e.Width, e.Height)
}

func (e *InitializationError) Unwrap() error { return e.Err }

// Renderer owns the framebuffer of one display and pushes it to the sink.
type Renderer struct {
	*Framebuffer

	sink     Sink
	assets   *assets.Store
	contrast *ContrastLimiter
	frame    *Frame
	frames   uint64

	interval time.Duration
	now      func() time.Time

	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}
}

type Option func(*Renderer)

// WithContrastInterval sets the minimum time between contrast updates.
func WithContrastInterval(d time.Duration) Option {
	return func(r *Renderer) { r.interval = d }
}

// WithClock replaces time.Now for contrast rate limiting.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

// NewRenderer sizes a framebuffer and an output frame to the sink and clears
// the display.
func NewRenderer(sink Sink, store *assets.Store, opts ...Option) (*Renderer, error) {
	if sink == nil {
		return nil, &InitializationError{Err: fmt.Errorf("no display sink")}
	}
	width, height := sink.Size()
	if width <= 0 || height <= 0 {
		return nil, &InitializationError{Width: width, Height: height}
	}
	if store == nil {
		store = assets.NewStore()
	}
	r := &Renderer{
		Framebuffer: NewFramebuffer(width, height),
		sink:        sink,
		assets:      store,
		frame:       NewFrame(width, height),
		interval:    DefaultContrastInterval,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.contrast = NewContrastLimiter(r.interval, r.now)
	if err := sink.Clear(); err != nil {
		return nil, &InitializationError{Width: width, Height: height, Err: err}
	}
	return r, nil
}

func (r *Renderer) Assets() *assets.Store { return r.assets }

// SetContrast records a new contrast level in [0, ContrastMax]. It reaches
// the sink on a later Present, subject to rate limiting.
func (r *Renderer) SetContrast(level int) { r.contrast.Set(level) }

// Contrast returns the requested and the last applied level.
func (r *Renderer) Contrast() (target int, applied int) {
	return r.contrast.Target(), r.contrast.Applied()
}

// Present applies a due contrast change, packs the framebuffer and hands the
// frame to the sink.
func (r *Renderer) Present() error {
	if err := r.contrast.Apply(r.sink.Contrast); err != nil {
		return fmt.Errorf("set contrast: %w", err)
	}
	Pack(r.Framebuffer, r.frame)
	if err := r.sink.Display(r.frame); err != nil {
		return fmt.Errorf("display frame: %w", err)
	}
	r.frames++
	if r.Logger != nil && r.frames == 1 {
		r.Logger.Infof("render", "first frame presented, size=%dx%d", r.frame.Width, r.frame.Height)
	}
	return nil
}

// Frame returns the most recently packed frame. It is reused by the next
// Present; callers that keep it must Clone it.
func (r *Renderer) Frame() *Frame { return r.frame }

func (r *Renderer) Frames() uint64 { return r.frames }
