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
	"github.com/rook-computer/monoframe/internal/sink/window"
	"github.com/rook-computer/monoframe/internal/system"
	"github.com/rook-computer/monoframe/internal/web"
)

func main() {
	cfg, err := app.DefaultConfigFromEnv(":8080")
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	sinkName := flag.String("sink", "window", "display back end: window | fbdev | memory")
	fbPath := flag.String("fbdev", sink.DefaultFBDevice, "framebuffer device for -sink fbdev")
	scale := flag.Int("scale", 4, "window scale for -sink window")
	debug := flag.Bool("debug", false, "log to stderr")
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		logger = app.NewFileLogger(os.Stderr)
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate(); err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	store, err := app.LoadAssets(cfg)
	if err != nil {
		fmt.Println("assets error:", err)
		os.Exit(2)
	}

	var (
		a   *app.App
		win *window.Window
	)
	switch *sinkName {
	case "memory":
		a = app.New(cfg, sink.NewMemory(cfg.Width, cfg.Height), store)
	case "fbdev":
		fbSink, err := sink.OpenFBDev(*fbPath, cfg.Width, cfg.Height)
		if err != nil {
			fmt.Println("fbdev open error:", err)
			os.Exit(1)
		}
		defer fbSink.Close()
		release := system.AcquireConsole(logger)
		defer release()
		a = app.New(cfg, fbSink, store)
		if keys, err := buttons.OpenEvdevButtons(); err == nil {
			keys.Logger = logger
			a.Buttons = keys
		} else {
			logger.Errorf("main", "keyboard input unavailable: %v", err)
		}
	case "window":
		win = window.New(cfg.Width, cfg.Height)
		win.Scale = *scale
		a = app.New(cfg, win, store)
		a.Buttons = win.Buttons()
	default:
		fmt.Printf("unknown sink %q\n", *sinkName)
		os.Exit(2)
	}
	a.Logger = logger

	if cfg.ListenAddr != "" {
		server := web.NewHTTPServer(cfg.Server())
		server.Handler = web.NewDefaultMux(a)
		server.Logger = logger
		a.Web = server
		fmt.Println("monoframe simulator preview on http://" + trimLeadingColon(cfg.ListenAddr) + "/")
	}
	if err := a.UseDefaultRoutes(); err != nil {
		fmt.Println("routes error:", err)
		os.Exit(2)
	}

	if win == nil {
		if err := a.Start(processCtx); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Println("app error:", err)
			os.Exit(1)
		}
		return
	}

	// ebiten needs the main goroutine; the app runs beside it and closing
	// either side stops the other.
	ctx, cancel := context.WithCancel(processCtx)
	defer cancel()
	appErr := make(chan error, 1)
	go func() {
		appErr <- a.Start(ctx)
		cancel()
	}()
	if err := win.Run(ctx); err != nil {
		fmt.Println("window error:", err)
	}
	cancel()
	if err := <-appErr; err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
}

func trimLeadingColon(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "127.0.0.1" + addr
	}
	return addr
}
