// Package sink holds the display back ends a Renderer can push frames to.
package sink

import (
	"fmt"
	"strings"

	"github.com/rook-computer/monoframe/internal/render"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Panel is a sink that owns a hardware resource.
type Panel interface {
	render.Sink
	Close() error
}

const (
	ControllerSH1106  = "sh1106"
	ControllerSSD1306 = "ssd1306"

	DefaultAddr uint16 = 0x3C
)

type I2CConfig struct {
	// Bus is an i2creg name such as "1" or "/dev/i2c-1"; empty picks the
	// first registered bus.
	Bus        string
	Addr       uint16
	Controller string
	Width      int
	Height     int
	Rotated    bool
}

func (c I2CConfig) withDefaults() I2CConfig {
	if c.Addr == 0 {
		c.Addr = DefaultAddr
	}
	if c.Controller == "" {
		c.Controller = ControllerSH1106
	}
	if c.Width <= 0 {
		c.Width = render.DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = render.DefaultHeight
	}
	return c
}

// OpenI2C initializes the host drivers, opens the bus and brings up the
// panel controller named in cfg.
func OpenI2C(cfg I2CConfig) (Panel, error) {
	cfg = cfg.withDefaults()
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	bus, err := i2creg.Open(cfg.Bus)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", cfg.Bus, err)
	}
	var panel Panel
	switch strings.ToLower(cfg.Controller) {
	case ControllerSH1106:
		panel, err = NewSH1106(&i2c.Dev{Bus: bus, Addr: cfg.Addr}, cfg)
	case ControllerSSD1306:
		panel, err = NewSSD1306(bus, cfg)
	default:
		err = fmt.Errorf("unknown controller %q", cfg.Controller)
	}
	if err != nil {
		_ = bus.Close()
		return nil, err
	}
	return &closingPanel{Panel: panel, bus: bus}, nil
}

type closingPanel struct {
	Panel
	bus i2c.BusCloser
}

func (p *closingPanel) Close() error {
	err := p.Panel.Close()
	if cerr := p.bus.Close(); err == nil {
		err = cerr
	}
	return err
}

// addressedBus sends every transaction to addr, for drivers that hardcode
// the common 0x3C address.
type addressedBus struct {
	i2c.Bus
	addr uint16
}

func (b *addressedBus) Tx(_ uint16, w, r []byte) error {
	return b.Bus.Tx(b.addr, w, r)
}
