// Package scheduler paces the update/render loop at a fixed frame rate.
package scheduler

import (
	"context"
	"time"
)

// Clock abstracts wall time so tests can drive the loop deterministically.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, returning ctx.Err() in the
	// latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Ticker is driven once per frame: Update with the elapsed time, then Render.
type Ticker interface {
	Update(dt time.Duration) error
	Render() error
}

// TickerFuncs adapts two functions to Ticker.
type TickerFuncs struct {
	UpdateFunc func(dt time.Duration) error
	RenderFunc func() error
}

func (t TickerFuncs) Update(dt time.Duration) error {
	if t.UpdateFunc == nil {
		return nil
	}
	return t.UpdateFunc(dt)
}

func (t TickerFuncs) Render() error {
	if t.RenderFunc == nil {
		return nil
	}
	return t.RenderFunc()
}

type Stats struct {
	Frames uint64
	// Overruns counts ticks that started a full period or more late.
	Overruns uint64
	LastDT   time.Duration
}

type Scheduler struct {
	Period time.Duration
	Clock  Clock
	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}
	// Heartbeat is the interval between progress log lines; zero disables
	// them.
	Heartbeat time.Duration

	stats Stats
}

const DefaultFPS = 60

// New returns a scheduler targeting fps frames per second on the system
// clock. fps <= 0 selects DefaultFPS.
func New(fps int) *Scheduler {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Scheduler{
		Period:    time.Second / time.Duration(fps),
		Clock:     SystemClock{},
		Heartbeat: time.Second,
	}
}

// Stats may only be read from the goroutine running Run, or after it returns.
func (s *Scheduler) Stats() Stats { return s.stats }

// Run ticks t until ctx is done or a tick fails. Each tick receives the time
// since the previous deadline plus one period, so a slow frame shows up as a
// longer dt. The next deadline is one period after the tick started; missed
// frames are skipped, not replayed.
func (s *Scheduler) Run(ctx context.Context, t Ticker) error {
	clock := s.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	period := s.Period
	if period <= 0 {
		period = time.Second / DefaultFPS
	}

	next := clock.Now()
	lastBeat := next
	var beatFrames uint64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		now := clock.Now()
		if now.Before(next) {
			if err := clock.Sleep(ctx, next.Sub(now)); err != nil {
				return err
			}
			continue
		}

		dt := now.Sub(next) + period
		if err := t.Update(dt); err != nil {
			return err
		}
		if err := t.Render(); err != nil {
			return err
		}
		next = now.Add(period)

		s.stats.Frames++
		s.stats.LastDT = dt
		if dt >= 2*period {
			s.stats.Overruns++
		}

		if s.Logger != nil && s.Heartbeat > 0 {
			beatFrames++
			if elapsed := now.Sub(lastBeat); elapsed >= s.Heartbeat {
				fps := float64(beatFrames) / elapsed.Seconds()
				s.Logger.Infof("loop", "heartbeat frames=%d fps=%.1f overruns=%d", s.stats.Frames, fps, s.stats.Overruns)
				lastBeat = now
				beatFrames = 0
			}
		}
	}
}
