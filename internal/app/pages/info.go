package pages

import (
	"fmt"
	"image"
	"time"

	"github.com/rook-computer/monoframe/internal/render"
	"github.com/rook-computer/monoframe/internal/render/layout"
)

// Info shows where the preview server can be reached and lets the buttons
// step through contrast levels.
type Info struct {
	Title string
	// URL is shown as a QR code; empty hides the code.
	URL string

	contrast int
}

func NewInfo(url string) *Info {
	return &Info{Title: "monoframe", URL: url}
}

func (p *Info) Init() error {
	p.contrast = render.ContrastMax
	return nil
}

func (p *Info) Enter() error                  { return nil }
func (p *Info) Update(dt time.Duration) error { return nil }

// HandleInput lowers the contrast two steps per press, wrapping to the top.
func (p *Info) HandleInput(event string) error {
	switch event {
	case "select", "next":
		p.contrast -= 2
		if p.contrast < 0 {
			p.contrast = render.ContrastMax
		}
	}
	return nil
}

func (p *Info) Contrast() int { return p.contrast }

func (p *Info) Render(d render.Drawer) error {
	d.SetContrast(p.contrast)

	screen := layout.Screen(d.Size())
	text := screen
	if p.URL != "" {
		size, err := d.QRCodeSize(p.URL, render.QROpts{})
		if err != nil {
			return err
		}
		scale := max(screen.Dy()/max(size, 1), 1)
		var right image.Rectangle
		text, right = layout.SplitRight(screen, size*scale+4)
		code := layout.Center(right, size*scale, size*scale)
		if err := d.DrawQRCode(p.URL, code.Min.X, code.Min.Y, render.QROpts{Scale: scale}); err != nil {
			return err
		}
	}

	d.DrawOutlinedRect(text.Min.X, text.Min.Y, text.Dx(), text.Dy(), render.On)
	rows := layout.Rows(layout.Inset(text, 2), 3)
	lines := []string{p.Title, fmt.Sprintf("lvl %d", p.contrast), "sel: dim"}
	for i, line := range lines {
		row := rows[i]
		if err := d.DrawText(line, row.Min.X+row.Dx()/2, row.Min.Y, render.TextStyle{Align: render.TextAlignCenter}); err != nil {
			return err
		}
	}
	return nil
}
