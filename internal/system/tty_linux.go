//go:build linux

package system

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

var vtPaths = []string{"/dev/tty", "/dev/tty0"}

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// SetGraphicsMode stops the kernel console from drawing over the
// framebuffer.
func SetGraphicsMode() error { return setMode(kdGraphics) }

// RestoreTextMode gives the console back.
func RestoreTextMode() error { return setMode(kdText) }

func HideCursor() error { return writeVT("\x1b[?25l") }
func ShowCursor() error { return writeVT("\x1b[?25h") }

// AcquireConsole switches the active VT to graphics mode and hides the
// cursor. The returned func undoes both; failures are logged, not returned,
// since the framebuffer still works underneath a text console.
func AcquireConsole(l logger) (release func()) {
	logStep(l, "KD_GRAPHICS set", SetGraphicsMode())
	logStep(l, "cursor hidden", HideCursor())
	return func() {
		logStep(l, "KD_TEXT set", RestoreTextMode())
		logStep(l, "cursor shown", ShowCursor())
	}
}

func logStep(l logger, done string, err error) {
	if l == nil {
		return
	}
	if err != nil {
		l.Errorf("tty", "%v", err)
		return
	}
	l.Infof("tty", "%s", done)
}

func setMode(mode int) error {
	var lastErr error
	for _, p := range vtPaths {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		_ = unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("KDSETMODE %d on %s: %w", mode, p, err)
			continue
		}
		return nil
	}
	return lastErr
}

func writeVT(s string) error {
	var lastErr error
	for _, p := range vtPaths {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		_ = f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("write VT failed: %w", lastErr)
}
