// Package pages holds the built-in pages of the device and simulator.
package pages

import (
	"time"

	"github.com/rook-computer/monoframe/internal/render"
	"github.com/rook-computer/monoframe/internal/state"
)

// Beacon shows an icon and a label and moves to Next once it has been on
// screen for longer than After.
type Beacon struct {
	Icon  string
	Label string
	Next  string
	After time.Duration

	nav     state.Navigator
	elapsed time.Duration
}

func NewBeacon(nav state.Navigator, icon, label, next string) *Beacon {
	return &Beacon{Icon: icon, Label: label, Next: next, After: time.Second, nav: nav}
}

// NewPing and NewPong bounce between each other once a second.
func NewPing(nav state.Navigator) *Beacon {
	return NewBeacon(nav, "weather-rain", "Ping", RoutePong)
}

func NewPong(nav state.Navigator) *Beacon {
	return NewBeacon(nav, "weather-storm", "Pong", RoutePing)
}

func (p *Beacon) Init() error {
	p.elapsed = 0
	return nil
}

func (p *Beacon) Enter() error {
	p.elapsed = 0
	return nil
}

func (p *Beacon) Update(dt time.Duration) error {
	p.elapsed += dt
	if p.Next == "" || p.elapsed <= p.After {
		return nil
	}
	return p.nav.SetRoute(p.Next)
}

func (p *Beacon) Render(d render.Drawer) error {
	if err := d.DrawImage(p.Icon, 0, 0, render.ImageOpts{}); err != nil {
		return err
	}
	return d.DrawText(p.Label, 14, 0, render.TextStyle{})
}
