//go:build !linux

package buttons

import (
	"context"
	"errors"
)

type EvdevButtons struct {
	Keys   map[uint16]Event
	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}
}

func OpenEvdevButtons() (*EvdevButtons, error) {
	return nil, errors.New("evdev input is only available on linux")
}

func (b *EvdevButtons) Start(ctx context.Context) error { return errors.New("evdev unsupported") }
func (b *EvdevButtons) Stop() error                     { return nil }
func (b *EvdevButtons) Events() <-chan Event            { return nil }
