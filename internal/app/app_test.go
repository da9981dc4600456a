package app

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rook-computer/monoframe/internal/buttons"
	"github.com/rook-computer/monoframe/internal/render"
	"github.com/rook-computer/monoframe/internal/sink"
	"github.com/rook-computer/monoframe/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPage struct {
	x int

	mu     sync.Mutex
	inits  int
	enters int
	inputs []string
}

func (p *testPage) Init() error {
	p.mu.Lock()
	p.inits++
	p.mu.Unlock()
	return nil
}

func (p *testPage) Enter() error {
	p.mu.Lock()
	p.enters++
	p.mu.Unlock()
	return nil
}

func (p *testPage) Update(dt time.Duration) error { return nil }

func (p *testPage) Render(d render.Drawer) error {
	d.SetPixel(p.x, 0, render.On)
	return nil
}

func (p *testPage) HandleInput(event string) error {
	p.mu.Lock()
	p.inputs = append(p.inputs, event)
	p.mu.Unlock()
	return nil
}

func (p *testPage) seenInputs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.inputs...)
}

func newTestApp(t *testing.T) (*App, *sink.Memory, *testPage, *testPage) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 16, 8
	cfg.FPS = 200
	mem := sink.NewMemory(16, 8)
	a := New(cfg, mem, nil)
	home, other := &testPage{x: 0}, &testPage{x: 1}
	a.SetRoutes("home", map[string]state.Page{"home": home, "other": other})
	return a, mem, home, other
}

func start(t *testing.T, a *App) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Start(ctx) }()
	t.Cleanup(cancel)
	require.Eventually(t, func() bool { return a.Status().Frames > 0 }, 2*time.Second, 5*time.Millisecond)
	return cancel, done
}

func wait(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop")
		return nil
	}
}

func TestAppRendersAndRoutes(t *testing.T) {
	a, mem, home, other := newTestApp(t)
	_, done := start(t, a)

	st := a.Status()
	assert.Equal(t, "home", st.Route)
	assert.Equal(t, "home", st.Previous)
	assert.Equal(t, []string{"home", "other"}, st.Routes)
	assert.Equal(t, 16, st.Width)
	require.NotNil(t, st.Frame)
	assert.True(t, st.Frame.Bit(0, 0))
	assert.NotZero(t, mem.Displays())

	require.NoError(t, a.RequestRoute("other"))
	require.Eventually(t, func() bool {
		f := a.Status().Frame
		return a.Status().Route == "other" && f != nil && f.Bit(1, 0)
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, "home", a.Status().Previous)

	a.RequestInput("select")
	require.Eventually(t, func() bool { return len(other.seenInputs()) == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Empty(t, home.seenInputs())

	a.RequestPop()
	require.Eventually(t, func() bool { return a.Status().Route == "home" }, 2*time.Second, 5*time.Millisecond)

	a.Exit(nil)
	assert.NoError(t, wait(t, done))

	home.mu.Lock()
	defer home.mu.Unlock()
	assert.Equal(t, 1, home.inits)
	assert.Equal(t, 1, home.enters, "initial page is entered only when returned to")
}

func TestAppUnknownRoute(t *testing.T) {
	a, _, _, _ := newTestApp(t)
	var notFound *state.RouteNotFoundError
	require.ErrorAs(t, a.RequestRoute("nowhere"), &notFound)
	assert.Equal(t, "nowhere", notFound.Route)
}

func TestAppExitError(t *testing.T) {
	a, _, _, _ := newTestApp(t)
	_, done := start(t, a)
	want := errors.New("stop")
	a.Exit(want)
	a.Exit(errors.New("ignored"))
	assert.ErrorIs(t, wait(t, done), want)
}

func TestAppContextCancel(t *testing.T) {
	a, _, _, _ := newTestApp(t)
	cancel, done := start(t, a)
	cancel()
	assert.ErrorIs(t, wait(t, done), context.Canceled)
}

func TestAppButtons(t *testing.T) {
	a, _, _, other := newTestApp(t)
	ch := buttons.NewChan(4)
	a.Buttons = ch
	_, done := start(t, a)

	require.NoError(t, a.RequestRoute("other"))
	require.Eventually(t, func() bool { return a.Status().Route == "other" }, 2*time.Second, 5*time.Millisecond)

	ch.Push(buttons.Next)
	require.Eventually(t, func() bool { return len(other.seenInputs()) == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"next"}, other.seenInputs())

	ch.Push(buttons.Back)
	require.Eventually(t, func() bool { return a.Status().Route == "home" }, 2*time.Second, 5*time.Millisecond)

	ch.Push(buttons.Exit)
	assert.NoError(t, wait(t, done))
}

func TestAppStartErrors(t *testing.T) {
	a, _, _, _ := newTestApp(t)
	a.Config.FPS = 0
	assert.Error(t, a.Start(context.Background()))

	a, _, _, _ = newTestApp(t)
	a.SetRoutes("missing", map[string]state.Page{"home": &testPage{}})
	var notFound *state.RouteNotFoundError
	assert.ErrorAs(t, a.Start(context.Background()), &notFound)

	cfg := DefaultConfig()
	a = New(cfg, sink.NewMemory(0, 0), nil)
	a.SetRoutes("home", map[string]state.Page{"home": &testPage{}})
	var initErr *render.InitializationError
	assert.ErrorAs(t, a.Start(context.Background()), &initErr)
}

func TestFileLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewFileLogger(&buf)
	l.Infof("app", "hello %d", 1)
	l.Errorf("sink", "bad")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), " [INFO] app: hello 1")
	assert.Contains(t, string(lines[1]), " [ERROR] sink: bad")
}
