package buttons

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

type Event string

const (
	Select Event = "select"
	Back   Event = "back"
	Next   Event = "next"
	Exit   Event = "exit"
)

type Buttons interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Event
}

type NoopButtons struct{ ch chan Event }

func NewNoopButtons() *NoopButtons { return &NoopButtons{ch: make(chan Event)} }

func (n *NoopButtons) Start(ctx context.Context) error { return nil }
func (n *NoopButtons) Stop() error                     { close(n.ch); return nil }
func (n *NoopButtons) Events() <-chan Event            { return n.ch }

// Chan turns events pushed from elsewhere (a window's keyboard, tests) into
// Buttons. Push drops events while nobody is reading.
type Chan struct {
	ch   chan Event
	once sync.Once
	done chan struct{}
}

func NewChan(buffer int) *Chan {
	return &Chan{ch: make(chan Event, buffer), done: make(chan struct{})}
}

func (c *Chan) Start(ctx context.Context) error { return nil }

func (c *Chan) Stop() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

func (c *Chan) Events() <-chan Event { return c.ch }

func (c *Chan) Push(e Event) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.ch <- e:
		return true
	default:
		return false
	}
}

const DefaultDebounce = 50 * time.Millisecond

// GPIOButtons watches active-low push buttons wired between a GPIO and
// ground.
type GPIOButtons struct {
	Debounce time.Duration
	Logger   interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}

	pins   map[Event]gpio.PinIn
	ch     chan Event
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewGPIOButtons(pins map[Event]gpio.PinIn) *GPIOButtons {
	return &GPIOButtons{Debounce: DefaultDebounce, pins: pins, ch: make(chan Event, 8)}
}

// ParsePinMap parses "select=GPIO17,back=GPIO27" into event → pin name.
func ParsePinMap(mapping string) (map[Event]string, error) {
	out := map[Event]string{}
	for _, part := range strings.Split(mapping, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		event, pin, ok := strings.Cut(part, "=")
		if !ok || event == "" || pin == "" {
			return nil, fmt.Errorf("invalid button mapping %q", part)
		}
		out[Event(strings.ToLower(strings.TrimSpace(event)))] = strings.TrimSpace(pin)
	}
	return out, nil
}

// OpenGPIOButtons initializes the host drivers and resolves pin names.
func OpenGPIOButtons(names map[Event]string) (*GPIOButtons, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	pins := make(map[Event]gpio.PinIn, len(names))
	for event, name := range names {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("gpio %q for %s not found", name, event)
		}
		pins[event] = p
	}
	return NewGPIOButtons(pins), nil
}

func (b *GPIOButtons) Start(ctx context.Context) error {
	events := make([]Event, 0, len(b.pins))
	for e := range b.pins {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i] < events[j] })
	for _, e := range events {
		if err := b.pins[e].In(gpio.PullUp, gpio.FallingEdge); err != nil {
			return fmt.Errorf("configure %s: %w", b.pins[e], err)
		}
	}

	ctx, b.cancel = context.WithCancel(ctx)
	for _, e := range events {
		b.wg.Add(1)
		go b.watch(ctx, e, b.pins[e])
	}
	if b.Logger != nil {
		b.Logger.Infof("buttons", "watching %d gpio buttons", len(events))
	}
	return nil
}

func (b *GPIOButtons) watch(ctx context.Context, event Event, pin gpio.PinIn) {
	defer b.wg.Done()
	var last time.Time
	for ctx.Err() == nil {
		if !pin.WaitForEdge(100 * time.Millisecond) {
			continue
		}
		if pin.Read() != gpio.Low {
			continue
		}
		now := time.Now()
		if !last.IsZero() && now.Sub(last) < b.Debounce {
			continue
		}
		last = now
		select {
		case b.ch <- event:
		case <-ctx.Done():
			return
		}
	}
}

// Stop waits for the watchers to exit and closes Events.
func (b *GPIOButtons) Stop() error {
	if b.cancel == nil {
		return nil
	}
	b.cancel()
	b.wg.Wait()
	b.cancel = nil
	close(b.ch)
	return nil
}

func (b *GPIOButtons) Events() <-chan Event { return b.ch }
