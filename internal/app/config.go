package app

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rook-computer/monoframe/internal/render"
	"github.com/rook-computer/monoframe/internal/scheduler"
	"github.com/rook-computer/monoframe/internal/sink"
	"github.com/rook-computer/monoframe/internal/web"
)

const (
	EnvFPS              = "MONOFRAME_FPS"
	EnvI2CBus           = "MONOFRAME_I2C_BUS"
	EnvI2CAddr          = "MONOFRAME_I2C_ADDR"
	EnvController       = "MONOFRAME_CONTROLLER"
	EnvWidth            = "MONOFRAME_WIDTH"
	EnvHeight           = "MONOFRAME_HEIGHT"
	EnvRotated          = "MONOFRAME_ROTATED"
	EnvContrastInterval = "MONOFRAME_CONTRAST_INTERVAL"
	EnvFont             = "MONOFRAME_FONT"
	EnvImages           = "MONOFRAME_IMAGES"
	EnvScript           = "MONOFRAME_SCRIPT"
	EnvButtons          = "MONOFRAME_BUTTONS"
)

// Config holds everything the binaries pass to the app. Environment values
// seed the defaults; flags override them.
type Config struct {
	FPS int

	I2CBus     string
	I2CAddr    uint16
	Controller string
	Width      int
	Height     int
	Rotated    bool

	ContrastInterval time.Duration

	// FontPath is a font JSON file registered as the default font. When
	// empty the built-in font is used.
	FontPath   string
	ImagesPath string
	// ScriptPath is a Lua page registered under the "script" route.
	ScriptPath string
	// Buttons maps events to GPIO names, e.g. "select=GPIO17,back=GPIO27".
	Buttons string

	// ListenAddr enables the preview server when non-empty.
	ListenAddr string
	DevMode    bool
}

func DefaultConfig() Config {
	return Config{
		FPS:              scheduler.DefaultFPS,
		I2CBus:           "1",
		I2CAddr:          sink.DefaultAddr,
		Controller:       sink.ControllerSH1106,
		Width:            render.DefaultWidth,
		Height:           render.DefaultHeight,
		ContrastInterval: render.DefaultContrastInterval,
	}
}

// DefaultConfigFromEnv applies MONOFRAME_* variables over DefaultConfig.
func DefaultConfigFromEnv(defaultListenAddr string) (Config, error) {
	server, err := web.DefaultServerConfigFromEnv(defaultListenAddr)
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()
	cfg.ListenAddr = server.ListenAddr
	cfg.DevMode = server.DevMode

	if err := envInt(EnvFPS, &cfg.FPS); err != nil {
		return Config{}, err
	}
	envString(EnvI2CBus, &cfg.I2CBus)
	if raw := os.Getenv(EnvI2CAddr); raw != "" {
		addr, err := parseAddr(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s must be an I2C address (got %q): %w", EnvI2CAddr, raw, err)
		}
		cfg.I2CAddr = addr
	}
	envString(EnvController, &cfg.Controller)
	if err := envInt(EnvWidth, &cfg.Width); err != nil {
		return Config{}, err
	}
	if err := envInt(EnvHeight, &cfg.Height); err != nil {
		return Config{}, err
	}
	if err := envBool(EnvRotated, &cfg.Rotated); err != nil {
		return Config{}, err
	}
	if raw := os.Getenv(EnvContrastInterval); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s must be a duration (got %q): %w", EnvContrastInterval, raw, err)
		}
		cfg.ContrastInterval = d
	}
	envString(EnvFont, &cfg.FontPath)
	envString(EnvImages, &cfg.ImagesPath)
	envString(EnvScript, &cfg.ScriptPath)
	envString(EnvButtons, &cfg.Buttons)
	return cfg, nil
}

// RegisterFlags binds fs to cfg, using the current values as defaults.
func (cfg *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&cfg.FPS, "fps", cfg.FPS, "target frames per second; also configurable via "+EnvFPS)
	fs.StringVar(&cfg.I2CBus, "i2c-bus", cfg.I2CBus, "i2c bus name; also configurable via "+EnvI2CBus)
	fs.Func("i2c-addr", fmt.Sprintf("panel i2c address (default %#x); also configurable via %s", cfg.I2CAddr, EnvI2CAddr), func(raw string) error {
		addr, err := parseAddr(raw)
		if err != nil {
			return err
		}
		cfg.I2CAddr = addr
		return nil
	})
	fs.StringVar(&cfg.Controller, "controller", cfg.Controller, "panel controller: sh1106 | ssd1306; also configurable via "+EnvController)
	fs.IntVar(&cfg.Width, "width", cfg.Width, "panel width in pixels; also configurable via "+EnvWidth)
	fs.IntVar(&cfg.Height, "height", cfg.Height, "panel height in pixels; also configurable via "+EnvHeight)
	fs.BoolVar(&cfg.Rotated, "rotated", cfg.Rotated, "rotate the panel 180 degrees; also configurable via "+EnvRotated)
	fs.DurationVar(&cfg.ContrastInterval, "contrast-interval", cfg.ContrastInterval, "minimum time between contrast updates; also configurable via "+EnvContrastInterval)
	fs.StringVar(&cfg.FontPath, "font", cfg.FontPath, "default font JSON; also configurable via "+EnvFont)
	fs.StringVar(&cfg.ImagesPath, "images", cfg.ImagesPath, "image JSON merged over the built-in icons; also configurable via "+EnvImages)
	fs.StringVar(&cfg.ScriptPath, "script", cfg.ScriptPath, "lua page served on the \"script\" route; also configurable via "+EnvScript)
	fs.StringVar(&cfg.Buttons, "buttons", cfg.Buttons, "gpio button map, e.g. select=GPIO17,back=GPIO27; also configurable via "+EnvButtons)
	fs.StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "preview http listen address, empty to disable; also configurable via "+web.EnvListenAddr)
	fs.BoolVar(&cfg.DevMode, "dev", cfg.DevMode, "enable dev mode; also configurable via "+web.EnvDevMode)
}

func (cfg Config) Validate() error {
	if cfg.FPS <= 0 {
		return fmt.Errorf("fps must be positive (got %d)", cfg.FPS)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid panel size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.ContrastInterval < 0 {
		return fmt.Errorf("contrast interval must not be negative (got %s)", cfg.ContrastInterval)
	}
	return nil
}

func (cfg Config) Server() web.ServerConfig {
	return web.ServerConfig{ListenAddr: cfg.ListenAddr, DevMode: cfg.DevMode}
}

// I2C returns the panel settings for sink.OpenI2C.
func (cfg Config) I2C() sink.I2CConfig {
	return sink.I2CConfig{
		Bus:        cfg.I2CBus,
		Addr:       cfg.I2CAddr,
		Controller: cfg.Controller,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Rotated:    cfg.Rotated,
	}
}

func parseAddr(raw string) (uint16, error) {
	v, err := strconv.ParseUint(raw, 0, 7)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

func envString(name string, dst *string) {
	if raw := os.Getenv(name); raw != "" {
		*dst = raw
	}
}

func envInt(name string, dst *int) error {
	raw := os.Getenv(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%s must be an integer (got %q): %w", name, raw, err)
	}
	*dst = v
	return nil
}

func envBool(name string, dst *bool) error {
	raw := os.Getenv(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("%s must be a boolean (got %q): %w", name, raw, err)
	}
	*dst = v
	return nil
}
