package state

import (
	"sync"
	"time"

	"github.com/rook-computer/monoframe/internal/render"
)

// Status is what readers outside the render loop may see of it.
type Status struct {
	Route    string
	Previous string
	Routes   []string

	Frames          uint64
	ContrastTarget  int
	ContrastApplied int
	LastDT          time.Duration
	Overruns        uint64

	Width  int
	Height int
	// Frame is a private copy of the last presented frame, nil before the
	// first one.
	Frame *render.Frame

	UpdatedAt time.Time
}

// Store publishes Status from the loop goroutine to other goroutines.
type Store struct {
	mu     sync.RWMutex
	status Status
}

func NewStore() *Store {
	return &Store{}
}

func (store *Store) Snapshot() Status {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.status
}

func (store *Store) SetRoutes(routes []string) {
	store.mu.Lock()
	store.status.Routes = append([]string(nil), routes...)
	store.mu.Unlock()
}

func (store *Store) UpdateRoute(current, previous string) {
	store.mu.Lock()
	store.status.Route = current
	store.status.Previous = previous
	store.mu.Unlock()
}

// UpdateFrame copies frame so the renderer can keep reusing its buffer.
func (store *Store) UpdateFrame(frame *render.Frame, frames uint64, at time.Time) {
	var copied *render.Frame
	if frame != nil {
		copied = frame.Clone()
	}
	store.mu.Lock()
	store.status.Frame = copied
	store.status.Frames = frames
	store.status.UpdatedAt = at
	if copied != nil {
		store.status.Width = copied.Width
		store.status.Height = copied.Height
	}
	store.mu.Unlock()
}

func (store *Store) UpdateContrast(target, applied int) {
	store.mu.Lock()
	store.status.ContrastTarget = target
	store.status.ContrastApplied = applied
	store.mu.Unlock()
}

func (store *Store) UpdateTiming(lastDT time.Duration, overruns uint64) {
	store.mu.Lock()
	store.status.LastDT = lastDT
	store.status.Overruns = overruns
	store.mu.Unlock()
}
