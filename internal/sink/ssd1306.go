package sink

import (
	"fmt"
	"image"

	"github.com/rook-computer/monoframe/internal/render"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// SSD1306 adapts the periph ssd1306 driver to render.Sink.
type SSD1306 struct {
	dev *ssd1306.Dev
}

func NewSSD1306(bus i2c.Bus, cfg I2CConfig) (*SSD1306, error) {
	cfg = cfg.withDefaults()
	dev, err := ssd1306.NewI2C(&addressedBus{Bus: bus, addr: cfg.Addr}, &ssd1306.Opts{
		W:       cfg.Width,
		H:       cfg.Height,
		Rotated: cfg.Rotated,
	})
	if err != nil {
		return nil, fmt.Errorf("ssd1306 init: %w", err)
	}
	return &SSD1306{dev: dev}, nil
}

func (s *SSD1306) Size() (int, int) {
	b := s.dev.Bounds()
	return b.Dx(), b.Dy()
}

func (s *SSD1306) Clear() error {
	blank := image1bit.NewVerticalLSB(s.dev.Bounds())
	return s.dev.Draw(blank.Bounds(), blank, image.Point{})
}

func (s *SSD1306) Display(frame *render.Frame) error {
	return s.dev.Draw(s.dev.Bounds(), frame, image.Point{})
}

func (s *SSD1306) Contrast(level uint8) error {
	return s.dev.SetContrast(level)
}

func (s *SSD1306) Close() error {
	return s.dev.Halt()
}
