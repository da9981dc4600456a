package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"

	"github.com/rook-computer/monoframe/internal/render"
	"periph.io/x/conn/v3"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// SH1106 drives an SH1106 controller in page addressing mode. The controller
// has 132 columns of RAM; a 128 pixel panel is wired to the middle of them.
type SH1106 struct {
	c      conn.Conn
	width  int
	height int
	offset int

	buf  *image1bit.VerticalLSB
	last []byte
}

const sh1106ColumnOffset = 2

// NewSH1106 initializes the controller over c, which is usually an *i2c.Dev.
func NewSH1106(c conn.Conn, cfg I2CConfig) (*SH1106, error) {
	cfg = cfg.withDefaults()
	if cfg.Height%8 != 0 {
		return nil, fmt.Errorf("sh1106: height %d is not a multiple of 8", cfg.Height)
	}
	d := &SH1106{
		c:      c,
		width:  cfg.Width,
		height: cfg.Height,
		offset: sh1106ColumnOffset,
		buf:    image1bit.NewVerticalLSB(image.Rect(0, 0, cfg.Width, cfg.Height)),
	}
	if err := d.command(sh1106Init(cfg)...); err != nil {
		return nil, fmt.Errorf("sh1106 init: %w", err)
	}
	return d, nil
}

func sh1106Init(cfg I2CConfig) []byte {
	segRemap, comScan := byte(0xA1), byte(0xC8)
	if cfg.Rotated {
		segRemap, comScan = 0xA0, 0xC0
	}
	return []byte{
		0xAE,                       // display off
		0xD5, 0x80,                 // clock divide
		0xA8, byte(cfg.Height - 1), // multiplex
		0xD3, 0x00,                 // display offset
		0x40,                       // start line 0
		0xAD, 0x8B,                 // dc-dc on
		segRemap,
		comScan,
		0xDA, 0x12, // com pins
		0x81, render.NativeContrast(render.ContrastMax),
		0xD9, 0x22, // precharge
		0xDB, 0x40, // vcom detect
		0xA4,       // resume from ram
		0xA6,       // normal, not inverted
		0xAF,       // display on
	}
}

func (d *SH1106) Size() (int, int) { return d.width, d.height }

func (d *SH1106) Clear() error {
	for i := range d.buf.Pix {
		d.buf.Pix[i] = 0
	}
	d.last = nil
	return d.flush()
}

// Display writes the pages of frame that changed since the last call.
func (d *SH1106) Display(frame *render.Frame) error {
	draw.Draw(d.buf, d.buf.Bounds(), frame, image.Point{}, draw.Src)
	return d.flush()
}

func (d *SH1106) Contrast(level uint8) error {
	return d.command(0x81, level)
}

// Close blanks the panel. The bus is owned by the caller.
func (d *SH1106) Close() error {
	return d.command(0xAE)
}

func (d *SH1106) flush() error {
	pages := d.height / 8
	col := d.offset
	for p := 0; p < pages; p++ {
		row := d.buf.Pix[p*d.width : (p+1)*d.width]
		if d.last != nil && bytes.Equal(row, d.last[p*d.width:(p+1)*d.width]) {
			continue
		}
		if err := d.command(0xB0|byte(p), byte(col&0x0F), 0x10|byte(col>>4)); err != nil {
			return err
		}
		if err := d.c.Tx(append([]byte{0x40}, row...), nil); err != nil {
			return err
		}
	}
	if d.last == nil {
		d.last = make([]byte, len(d.buf.Pix))
	}
	copy(d.last, d.buf.Pix)
	return nil
}

func (d *SH1106) command(cmds ...byte) error {
	return d.c.Tx(append([]byte{0x00}, cmds...), nil)
}
