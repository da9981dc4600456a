package render

import "github.com/rook-computer/monoframe/internal/assets"

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// TextStyle describes how to render text. The zero value draws lit pixels in
// the default font at scale 1, left aligned. Y is the top of the glyph cell;
// Align controls how x is interpreted.
type TextStyle struct {
	Font  string
	Scale int
	Align TextAlign
	// Erase draws with Off instead of On.
	Erase bool
}

func (s TextStyle) withDefaults() TextStyle {
	if s.Font == "" {
		s.Font = assets.DefaultFont
	}
	if s.Scale < 1 {
		s.Scale = 1
	}
	return s
}

func colorFor(erase bool) Color {
	if erase {
		return Off
	}
	return On
}

// TextWidth is the sum of scale*(glyph width + 1) over the characters of
// text, the advance DrawText uses.
func (r *Renderer) TextWidth(text string, style TextStyle) (int, error) {
	style = style.withDefaults()
	_, width, err := r.layout(text, style)
	return width, err
}

func (r *Renderer) layout(text string, style TextStyle) ([]assets.Bitmap, int, error) {
	glyphs := make([]assets.Bitmap, 0, len(text))
	width := 0
	for _, ch := range text {
		g, err := r.assets.Glyph(style.Font, ch)
		if err != nil {
			return nil, 0, err
		}
		glyphs = append(glyphs, g)
		width += style.Scale * (g.Width + 1)
	}
	return glyphs, width, nil
}

// DrawText lays text out left to right. Every glyph is resolved before the
// first pixel is written, so a missing character leaves the buffer untouched.
func (r *Renderer) DrawText(text string, x, y int, style TextStyle) error {
	style = style.withDefaults()
	glyphs, width, err := r.layout(text, style)
	if err != nil {
		return err
	}
	switch style.Align {
	case TextAlignCenter:
		x -= width / 2
	case TextAlignRight:
		x -= width
	}
	c := colorFor(style.Erase)
	for _, g := range glyphs {
		r.blit(g, x, y, c, style.Scale)
		x += style.Scale * (g.Width + 1)
	}
	return nil
}

// blit writes the lit bits of bm with its top-left corner at (x, y). At scale
// 1 bits map to pixels; above that every bit becomes a scale×scale block.
func (r *Renderer) blit(bm assets.Bitmap, x, y int, c Color, scale int) {
	for by := 0; by < bm.Height; by++ {
		for bx := 0; bx < bm.Width; bx++ {
			if !bm.Lit(bx, by) {
				continue
			}
			if scale == 1 {
				r.SetPixel(x+bx, y+by, c)
			} else {
				r.DrawRect(x+bx*scale, y+by*scale, scale, scale, c)
			}
		}
	}
}
