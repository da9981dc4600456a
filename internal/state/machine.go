package state

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rook-computer/monoframe/internal/render"
)

// Page is one named screen of the application. Init runs once, on first
// entry; Enter runs on every entry except the initial route at startup.
type Page interface {
	Init() error
	Enter() error
	Update(dt time.Duration) error
	Render(d render.Drawer) error
}

// InputHandler is implemented by pages that react to button or remote input.
type InputHandler interface {
	HandleInput(event string) error
}

// Navigator is the route-changing surface handed to pages.
type Navigator interface {
	SetRoute(name string) error
	Pop() error
}

// Canvas is what the machine renders into: the page-facing drawing surface
// plus the per-frame clear and present.
type Canvas interface {
	render.Drawer
	Clear()
	Present() error
}

type RouteNotFoundError struct {
	Route string
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("route not found: %q", e.Route)
}

var errAlreadyRegistered = errors.New("routes already registered")

type route struct {
	page        Page
	initialized bool
}

type Machine struct {
	routes   map[string]*route
	current  string
	previous string

	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}
}

func NewMachine() *Machine {
	return &Machine{}
}

// Register installs the route table and activates initial. The initial page
// is initialized but not entered.
func (m *Machine) Register(initial string, routes map[string]Page) error {
	if m.routes != nil {
		return errAlreadyRegistered
	}
	start, ok := routes[initial]
	if !ok {
		return &RouteNotFoundError{Route: initial}
	}
	table := make(map[string]*route, len(routes))
	for name, page := range routes {
		table[name] = &route{page: page}
	}
	m.routes = table
	m.current = initial
	m.previous = initial

	table[initial].initialized = true
	if err := start.Init(); err != nil {
		return fmt.Errorf("init %s: %w", initial, err)
	}
	m.logf("initial route %s (%d routes)", initial, len(table))
	return nil
}

// SetRoute makes name the current route. An unknown name leaves the machine
// unchanged.
func (m *Machine) SetRoute(name string) error {
	next, ok := m.routes[name]
	if !ok {
		return &RouteNotFoundError{Route: name}
	}
	if !next.initialized {
		next.initialized = true
		if err := next.page.Init(); err != nil {
			return err
		}
	}
	if err := next.page.Enter(); err != nil {
		return err
	}
	// previous only moves once the new page is entered, so a failed change
	// leaves Pop pointing where it did before.
	m.previous, m.current = m.current, name
	m.logf("route %s -> %s", m.previous, name)
	return nil
}

// Pop returns to the previous route. Only one previous route is tracked, so
// consecutive pops alternate between two routes.
func (m *Machine) Pop() error {
	return m.SetRoute(m.previous)
}

func (m *Machine) Update(dt time.Duration) error {
	page, err := m.page()
	if err != nil {
		return err
	}
	return page.Update(dt)
}

// Render clears the canvas, lets the current page draw and presents the
// result.
func (m *Machine) Render(c Canvas) error {
	page, err := m.page()
	if err != nil {
		return err
	}
	c.Clear()
	if err := page.Render(c); err != nil {
		return err
	}
	return c.Present()
}

// Dispatch forwards event to the current page if it handles input. It
// reports whether the page took it.
func (m *Machine) Dispatch(event string) (bool, error) {
	page, err := m.page()
	if err != nil {
		return false, err
	}
	h, ok := page.(InputHandler)
	if !ok {
		return false, nil
	}
	return true, h.HandleInput(event)
}

func (m *Machine) Current() string  { return m.current }
func (m *Machine) Previous() string { return m.previous }

func (m *Machine) Has(name string) bool {
	_, ok := m.routes[name]
	return ok
}

// Routes returns the registered route names, sorted.
func (m *Machine) Routes() []string {
	names := make([]string, 0, len(m.routes))
	for name := range m.routes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Machine) page() (Page, error) {
	r, ok := m.routes[m.current]
	if !ok {
		return nil, &RouteNotFoundError{Route: m.current}
	}
	return r.page, nil
}

func (m *Machine) logf(format string, args ...interface{}) {
	if m.Logger != nil {
		m.Logger.Infof("state", format, args...)
	}
}
