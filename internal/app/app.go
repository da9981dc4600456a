package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rook-computer/monoframe/internal/assets"
	"github.com/rook-computer/monoframe/internal/buttons"
	"github.com/rook-computer/monoframe/internal/render"
	"github.com/rook-computer/monoframe/internal/scheduler"
	"github.com/rook-computer/monoframe/internal/state"
	"github.com/rook-computer/monoframe/internal/web"
)

type requestKind int

const (
	requestRoute requestKind = iota
	requestPop
	requestInput
)

type request struct {
	kind  requestKind
	value string
}

// App owns one display and everything drawn on it. All page code runs on the
// scheduler goroutine; other goroutines talk to the app through the Request
// methods, which are applied at the start of the next tick.
type App struct {
	Config    Config
	Sink      render.Sink
	Assets    *assets.Store
	Machine   *state.Machine
	Store     *state.Store
	Scheduler *scheduler.Scheduler
	Web       web.Server
	Buttons   buttons.Buttons
	Logger    Logger

	// Now stamps status updates; tests replace it.
	Now func() time.Time

	renderer *render.Renderer
	initial  string
	routes   map[string]state.Page
	// closers release route resources once Start returns.
	closers []func()

	mu       sync.Mutex
	requests []request

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(cfg Config, sink render.Sink, store *assets.Store) *App {
	if store == nil {
		store = assets.NewStore()
	}
	return &App{
		Config:    cfg,
		Sink:      sink,
		Assets:    store,
		Machine:   state.NewMachine(),
		Store:     state.NewStore(),
		Scheduler: scheduler.New(cfg.FPS),
		Logger:    NoopLogger{},
		Now:       time.Now,
		exitCh:    make(chan error, 1),
	}
}

// SetRoutes records the route table registered when the app starts.
func (app *App) SetRoutes(initial string, routes map[string]state.Page) {
	app.initial = initial
	app.routes = routes
}

// Renderer is nil until Start has initialized the display.
func (app *App) Renderer() *render.Renderer { return app.renderer }

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// RequestRoute queues a route change. Unknown routes are rejected
// immediately.
func (app *App) RequestRoute(name string) error {
	if _, ok := app.routes[name]; !ok {
		return &state.RouteNotFoundError{Route: name}
	}
	app.enqueue(request{kind: requestRoute, value: name})
	return nil
}

func (app *App) RequestPop() { app.enqueue(request{kind: requestPop}) }

func (app *App) RequestInput(event string) {
	app.enqueue(request{kind: requestInput, value: event})
}

func (app *App) Status() state.Status { return app.Store.Snapshot() }

func (app *App) enqueue(r request) {
	app.mu.Lock()
	app.requests = append(app.requests, r)
	app.mu.Unlock()
}

func (app *App) drain() []request {
	app.mu.Lock()
	defer app.mu.Unlock()
	out := app.requests
	app.requests = nil
	return out
}

func (app *App) Start(ctx context.Context) error {
	defer app.closeRoutes()
	if err := app.Config.Validate(); err != nil {
		return err
	}
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}

	renderer, err := render.NewRenderer(app.Sink, app.Assets, render.WithContrastInterval(app.Config.ContrastInterval))
	if err != nil {
		app.Logger.Errorf("app", "renderer init error: %v", err)
		return err
	}
	renderer.Logger = app.Logger
	app.renderer = renderer
	width, height := renderer.Size()
	app.Logger.Infof("app", "display ready, size=%dx%d fps=%d", width, height, app.Config.FPS)

	app.Machine.Logger = app.Logger
	if err := app.Machine.Register(app.initial, app.routes); err != nil {
		return fmt.Errorf("register routes: %w", err)
	}
	app.Store.SetRoutes(app.Machine.Routes())
	app.Store.UpdateRoute(app.Machine.Current(), app.Machine.Previous())

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if app.Web != nil {
		if err := app.Web.Start(loopCtx); err != nil {
			app.Logger.Errorf("app", "web start error: %v", err)
			return err
		}
		defer func() { _ = app.Web.Stop() }()
	}

	var wg sync.WaitGroup
	if app.Buttons != nil {
		if err := app.Buttons.Start(loopCtx); err != nil {
			app.Logger.Errorf("app", "buttons start error: %v", err)
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.pumpButtons(loopCtx)
		}()
		defer func() { _ = app.Buttons.Stop() }()
	}

	app.Scheduler.Logger = app.Logger
	loopErr := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		loopErr <- app.Scheduler.Run(loopCtx, scheduler.TickerFuncs{UpdateFunc: app.update, RenderFunc: app.render})
	}()

	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-app.exitCh:
	case err = <-loopErr:
		app.Logger.Errorf("app", "render loop stopped: %v", err)
	}
	cancel()
	wg.Wait()
	return err
}

func (app *App) closeRoutes() {
	for _, c := range app.closers {
		c()
	}
	app.closers = nil
}

func (app *App) pumpButtons(ctx context.Context) {
	events := app.Buttons.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			switch e {
			case buttons.Back:
				app.RequestPop()
			case buttons.Exit:
				app.Exit(nil)
			default:
				app.RequestInput(string(e))
			}
		}
	}
}

func (app *App) update(dt time.Duration) error {
	for _, r := range app.drain() {
		switch r.kind {
		case requestRoute:
			if err := app.Machine.SetRoute(r.value); err != nil {
				return err
			}
		case requestPop:
			if err := app.Machine.Pop(); err != nil {
				return err
			}
		case requestInput:
			if _, err := app.Machine.Dispatch(r.value); err != nil {
				return err
			}
		}
	}
	return app.Machine.Update(dt)
}

func (app *App) render() error {
	if err := app.Machine.Render(app.renderer); err != nil {
		return err
	}
	target, applied := app.renderer.Contrast()
	stats := app.Scheduler.Stats()
	app.Store.UpdateRoute(app.Machine.Current(), app.Machine.Previous())
	app.Store.UpdateContrast(target, applied)
	app.Store.UpdateTiming(stats.LastDT, stats.Overruns)
	app.Store.UpdateFrame(app.renderer.Frame(), app.renderer.Frames(), app.Now())
	return nil
}
