package sink

import (
	"sync"

	"github.com/rook-computer/monoframe/internal/render"
)

// Memory keeps the last displayed frame and counts calls. It is safe to read
// from other goroutines while a renderer writes to it.
type Memory struct {
	width  int
	height int

	mu        sync.Mutex
	frame     *render.Frame
	displays  int
	clears    int
	contrasts []uint8
}

func NewMemory(width, height int) *Memory {
	return &Memory{width: width, height: height}
}

func (m *Memory) Size() (int, int) { return m.width, m.height }

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	m.frame = nil
	return nil
}

func (m *Memory) Display(frame *render.Frame) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.displays++
	m.frame = frame.Clone()
	return nil
}

func (m *Memory) Contrast(level uint8) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contrasts = append(m.contrasts, level)
	return nil
}

func (m *Memory) Close() error { return nil }

// Frame returns a copy of the last displayed frame, or nil.
func (m *Memory) Frame() *render.Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.frame == nil {
		return nil
	}
	return m.frame.Clone()
}

func (m *Memory) Displays() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.displays
}

func (m *Memory) Clears() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clears
}

func (m *Memory) Contrasts() []uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]uint8(nil), m.contrasts...)
}
