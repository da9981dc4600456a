package buttons

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func TestParsePinMap(t *testing.T) {
	got, err := ParsePinMap("select=GPIO17, Back=GPIO27,,exit=GPIO22")
	require.NoError(t, err)
	assert.Equal(t, map[Event]string{Select: "GPIO17", Back: "GPIO27", Exit: "GPIO22"}, got)

	_, err = ParsePinMap("select")
	assert.Error(t, err)
	_, err = ParsePinMap("=GPIO1")
	assert.Error(t, err)
}

func TestChan(t *testing.T) {
	c := NewChan(1)
	require.NoError(t, c.Start(context.Background()))
	assert.True(t, c.Push(Select))
	assert.False(t, c.Push(Back), "buffer full")
	assert.Equal(t, Select, <-c.Events())

	require.NoError(t, c.Stop())
	require.NoError(t, c.Stop())
	assert.False(t, c.Push(Back))
}

func TestGPIOButtonsEmitOnFallingEdge(t *testing.T) {
	pin := &gpiotest.Pin{N: "GPIO17", L: gpio.High, EdgesChan: make(chan gpio.Level)}
	b := NewGPIOButtons(map[Event]gpio.PinIn{Select: pin})
	b.Debounce = 0
	require.NoError(t, b.Start(context.Background()))

	pin.EdgesChan <- gpio.Low
	select {
	case e := <-b.Events():
		assert.Equal(t, Select, e)
	case <-time.After(2 * time.Second):
		t.Fatal("no event")
	}

	require.NoError(t, b.Stop())
	_, open := <-b.Events()
	assert.False(t, open)
}
