//go:build !linux

package system

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// AcquireConsole is a no-op off linux.
func AcquireConsole(l logger) (release func()) {
	if l != nil {
		l.Infof("tty", "console control unsupported on this platform")
	}
	return func() {}
}
