package state

import (
	"errors"
	"testing"
	"time"

	"github.com/rook-computer/monoframe/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPage struct {
	name string
	log  *[]string

	dts       []time.Duration
	inputs    []string
	renderErr error
	initErr   error
	enterErr  error
}

func (p *recordingPage) Init() error {
	*p.log = append(*p.log, p.name+".init")
	return p.initErr
}

func (p *recordingPage) Enter() error {
	*p.log = append(*p.log, p.name+".enter")
	return p.enterErr
}

func (p *recordingPage) Update(dt time.Duration) error {
	p.dts = append(p.dts, dt)
	return nil
}

func (p *recordingPage) Render(d render.Drawer) error {
	*p.log = append(*p.log, p.name+".render")
	d.SetPixel(0, 0, render.On)
	return p.renderErr
}

type inputPage struct {
	recordingPage
}

func (p *inputPage) HandleInput(event string) error {
	p.inputs = append(p.inputs, event)
	return nil
}

// fakeCanvas records the order of clear/present around the page render.
type fakeCanvas struct {
	render.Drawer
	log        *[]string
	presentErr error
}

func (c *fakeCanvas) Clear() { *c.log = append(*c.log, "clear") }

func (c *fakeCanvas) Present() error {
	*c.log = append(*c.log, "present")
	return c.presentErr
}

type nullDrawer struct{ render.Drawer }

func (nullDrawer) SetPixel(x, y int, c render.Color) {}

func newScenario(t *testing.T) (*Machine, *recordingPage, *recordingPage, *[]string) {
	t.Helper()
	var log []string
	a := &recordingPage{name: "A", log: &log}
	b := &recordingPage{name: "B", log: &log}
	m := NewMachine()
	require.NoError(t, m.Register("A", map[string]Page{"A": a, "B": b}))
	return m, a, b, &log
}

func TestRegisterInitializesInitialRouteWithoutEnter(t *testing.T) {
	m, _, _, log := newScenario(t)
	assert.Equal(t, []string{"A.init"}, *log)
	assert.Equal(t, "A", m.Current())
	assert.Equal(t, []string{"A", "B"}, m.Routes())
	assert.True(t, m.Has("B"))
	assert.False(t, m.Has("C"))
}

func TestRegisterUnknownInitialRoute(t *testing.T) {
	m := NewMachine()
	err := m.Register("missing", map[string]Page{})
	var notFound *RouteNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.Route)
}

func TestRegisterOnlyOnce(t *testing.T) {
	m, _, _, _ := newScenario(t)
	assert.Error(t, m.Register("A", map[string]Page{"A": &recordingPage{log: new([]string)}}))
}

func TestSetRouteAndToggle(t *testing.T) {
	m, _, _, log := newScenario(t)

	require.NoError(t, m.SetRoute("B"))
	assert.Equal(t, []string{"A.init", "B.init", "B.enter"}, *log)
	assert.Equal(t, "B", m.Current())
	assert.Equal(t, "A", m.Previous())

	require.NoError(t, m.Pop())
	assert.Equal(t, []string{"A.init", "B.init", "B.enter", "A.enter"}, *log)
	assert.Equal(t, "A", m.Current())
	assert.Equal(t, "B", m.Previous())

	// A second pop toggles instead of unwinding further.
	require.NoError(t, m.Pop())
	assert.Equal(t, []string{"A.init", "B.init", "B.enter", "A.enter", "B.enter"}, *log)
	assert.Equal(t, "B", m.Current())
}

func TestSetRouteUnknownLeavesStateUnchanged(t *testing.T) {
	m, _, _, log := newScenario(t)
	require.NoError(t, m.SetRoute("B"))

	err := m.SetRoute("nowhere")
	var notFound *RouteNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "B", m.Current())
	assert.Equal(t, "A", m.Previous())
	assert.Len(t, *log, 3)
}

func TestInitRunsOnceEvenWhenItFails(t *testing.T) {
	var log []string
	a := &recordingPage{name: "A", log: &log}
	boom := errors.New("no font")
	b := &recordingPage{name: "B", log: &log, initErr: boom}
	m := NewMachine()
	require.NoError(t, m.Register("A", map[string]Page{"A": a, "B": b}))

	assert.ErrorIs(t, m.SetRoute("B"), boom)
	b.initErr = nil
	require.NoError(t, m.SetRoute("B"))
	assert.Equal(t, []string{"A.init", "B.init", "B.enter"}, log)
}

func TestFailedRouteChangeKeepsPrevious(t *testing.T) {
	var log []string
	a := &recordingPage{name: "A", log: &log}
	b := &recordingPage{name: "B", log: &log}
	boom := errors.New("enter failed")
	c := &recordingPage{name: "C", log: &log, enterErr: boom}
	m := NewMachine()
	require.NoError(t, m.Register("A", map[string]Page{"A": a, "B": b, "C": c}))
	require.NoError(t, m.SetRoute("B"))

	assert.ErrorIs(t, m.SetRoute("C"), boom)
	assert.Equal(t, "B", m.Current())
	assert.Equal(t, "A", m.Previous())

	require.NoError(t, m.Pop())
	assert.Equal(t, "A", m.Current())
	assert.Equal(t, "B", m.Previous())
}

func TestUpdateForwardsToCurrentPage(t *testing.T) {
	m, a, b, _ := newScenario(t)
	require.NoError(t, m.Update(16*time.Millisecond))
	require.NoError(t, m.SetRoute("B"))
	require.NoError(t, m.Update(20*time.Millisecond))

	assert.Equal(t, []time.Duration{16 * time.Millisecond}, a.dts)
	assert.Equal(t, []time.Duration{20 * time.Millisecond}, b.dts)
}

func TestRenderOrder(t *testing.T) {
	m, _, _, log := newScenario(t)
	*log = nil
	canvas := &fakeCanvas{Drawer: nullDrawer{}, log: log}
	require.NoError(t, m.Render(canvas))
	assert.Equal(t, []string{"clear", "A.render", "present"}, *log)
}

func TestRenderErrorsPropagate(t *testing.T) {
	m, a, _, log := newScenario(t)
	*log = nil
	boom := errors.New("glyph missing")
	a.renderErr = boom
	canvas := &fakeCanvas{Drawer: nullDrawer{}, log: log}
	assert.ErrorIs(t, m.Render(canvas), boom)
	assert.NotContains(t, *log, "present")

	a.renderErr = nil
	canvas.presentErr = boom
	assert.ErrorIs(t, m.Render(canvas), boom)
}

func TestDispatch(t *testing.T) {
	var log []string
	plain := &recordingPage{name: "plain", log: &log}
	handler := &inputPage{recordingPage{name: "handler", log: &log}}
	m := NewMachine()
	require.NoError(t, m.Register("plain", map[string]Page{"plain": plain, "handler": handler}))

	handled, err := m.Dispatch("select")
	require.NoError(t, err)
	assert.False(t, handled)

	require.NoError(t, m.SetRoute("handler"))
	handled, err = m.Dispatch("select")
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, []string{"select"}, handler.inputs)
}

func TestMachineBeforeRegister(t *testing.T) {
	m := NewMachine()
	var notFound *RouteNotFoundError
	assert.ErrorAs(t, m.Update(time.Millisecond), &notFound)
	assert.ErrorAs(t, m.SetRoute("A"), &notFound)
}
