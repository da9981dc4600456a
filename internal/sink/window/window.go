// Package window shows the panel in a desktop window during development.
package window

import (
	"context"
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rook-computer/monoframe/internal/buttons"
	"github.com/rook-computer/monoframe/internal/render"
)

// Keys maps keyboard keys to button events.
var Keys = map[ebiten.Key]buttons.Event{
	ebiten.KeyEnter:      buttons.Select,
	ebiten.KeySpace:      buttons.Select,
	ebiten.KeyBackspace:  buttons.Back,
	ebiten.KeyArrowLeft:  buttons.Back,
	ebiten.KeyArrowRight: buttons.Next,
	ebiten.KeyTab:        buttons.Next,
	ebiten.KeyEscape:     buttons.Exit,
}

// Window is a render.Sink backed by an ebiten window. Display may be called
// from any goroutine; Run must be called from the main goroutine.
type Window struct {
	Title string
	Scale int

	width  int
	height int
	input  *buttons.Chan

	mu       sync.Mutex
	pending  *image.RGBA
	contrast uint8

	img *ebiten.Image
	ctx context.Context
}

func New(width, height int) *Window {
	if width <= 0 {
		width = render.DefaultWidth
	}
	if height <= 0 {
		height = render.DefaultHeight
	}
	return &Window{
		Title:    "monoframe",
		Scale:    4,
		width:    width,
		height:   height,
		input:    buttons.NewChan(16),
		contrast: render.NativeContrast(render.ContrastMax),
	}
}

// Buttons delivers key presses as button events.
func (w *Window) Buttons() buttons.Buttons { return w.input }

func (w *Window) Size() (int, int) { return w.width, w.height }

func (w *Window) Clear() error {
	return w.Display(render.NewFrame(w.width, w.height))
}

func (w *Window) Display(frame *render.Frame) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = render.Mirror(frame, w.contrast)
	return nil
}

func (w *Window) Contrast(level uint8) error {
	w.mu.Lock()
	w.contrast = level
	w.mu.Unlock()
	return nil
}

func (w *Window) Close() error { return nil }

// Run opens the window and blocks until it is closed or ctx is done.
func (w *Window) Run(ctx context.Context) error {
	w.ctx = ctx
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowSize(w.width*max(w.Scale, 1), w.height*max(w.Scale, 1))
	ebiten.SetTPS(60)
	err := ebiten.RunGame(w)
	if err == ebiten.Termination {
		return nil
	}
	return err
}

func (w *Window) Update() error {
	if w.ctx != nil && w.ctx.Err() != nil {
		return ebiten.Termination
	}
	for key, event := range Keys {
		if inpututil.IsKeyJustPressed(key) {
			w.input.Push(event)
		}
	}
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	w.mu.Lock()
	pending := w.pending
	w.pending = nil
	w.mu.Unlock()

	if w.img == nil {
		w.img = ebiten.NewImage(w.width, w.height)
	}
	if pending != nil {
		w.img.WritePixels(pending.Pix)
	}
	screen.DrawImage(w.img, nil)
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.width, w.height
}
