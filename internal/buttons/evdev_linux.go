//go:build linux

package buttons

import (
	"context"
	"encoding/binary"
	"fmt"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

// EvdevButtons reads key presses from every /dev/input/event* device, for
// running on a console without GPIO buttons.
type EvdevButtons struct {
	Keys   map[uint16]Event
	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}

	paths  []string
	ch     chan Event
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func OpenEvdevButtons() (*EvdevButtons, error) {
	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no evdev devices found")
	}
	return &EvdevButtons{Keys: DefaultKeys(), paths: paths, ch: make(chan Event, 8)}, nil
}

func (b *EvdevButtons) Start(ctx context.Context) error {
	ctx, b.cancel = context.WithCancel(ctx)
	opened := 0
	for _, path := range b.paths {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
		if err != nil {
			if b.Logger != nil {
				b.Logger.Errorf("buttons", "open %s: %v", path, err)
			}
			continue
		}
		opened++
		b.wg.Add(1)
		go b.read(ctx, fd)
	}
	if opened == 0 {
		b.cancel()
		return fmt.Errorf("no readable evdev devices")
	}
	if b.Logger != nil {
		b.Logger.Infof("buttons", "watching %d input devices", opened)
	}
	return nil
}

func (b *EvdevButtons) read(ctx context.Context, fd int) {
	defer b.wg.Done()
	defer unix.Close(fd)

	tvSize := binary.Size(unix.Timeval{})
	buf := make([]byte, 4096)
	for ctx.Err() == nil {
		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}
		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		for _, e := range decodeKeyPresses(buf[:n], tvSize, b.Keys) {
			select {
			case b.ch <- e:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (b *EvdevButtons) Stop() error {
	if b.cancel == nil {
		return nil
	}
	b.cancel()
	b.wg.Wait()
	b.cancel = nil
	close(b.ch)
	return nil
}

func (b *EvdevButtons) Events() <-chan Event { return b.ch }
