package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/monoframe/internal/app"
	"github.com/rook-computer/monoframe/internal/buttons"
	"github.com/rook-computer/monoframe/internal/sink"
	"github.com/rook-computer/monoframe/internal/web"
)

func main() {
	fmt.Println("monoframe starting")

	cfg, err := app.DefaultConfigFromEnv("")
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	debug := flag.Bool("debug", false, "enable debug logging to ./monoframe-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via MONOFRAME_STDIO_LOG")
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	// Best-effort: keep panic stack traces when running headless under a
	// service manager.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv("MONOFRAME_STDIO_LOG")
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./monoframe-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	if err := run(cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("monoframe error:", err)
		os.Exit(1)
	}
}

func run(cfg app.Config, logger app.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	store, err := app.LoadAssets(cfg)
	if err != nil {
		return err
	}

	panel, err := sink.OpenI2C(cfg.I2C())
	if err != nil {
		return err
	}
	defer func() {
		if err := panel.Close(); err != nil {
			logger.Errorf("main", "panel close error: %v", err)
		}
	}()
	logger.Infof("main", "%s panel on i2c bus %q addr %#x", cfg.Controller, cfg.I2CBus, cfg.I2CAddr)

	a := app.New(cfg, panel, store)
	a.Logger = logger

	if cfg.Buttons != "" {
		names, err := buttons.ParsePinMap(cfg.Buttons)
		if err != nil {
			return err
		}
		btns, err := buttons.OpenGPIOButtons(names)
		if err != nil {
			return err
		}
		btns.Logger = logger
		a.Buttons = btns
	}

	if cfg.ListenAddr != "" {
		server := web.NewHTTPServer(cfg.Server())
		server.Handler = web.NewDefaultMux(a)
		server.Logger = logger
		a.Web = server
	}

	if err := a.UseDefaultRoutes(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.Start(ctx)
}
