package assets

import (
	"errors"
	"fmt"
)

// ErrNotFound matches every NotFoundError through errors.Is.
var ErrNotFound = errors.New("asset not found")

const (
	KindFont  = "font"
	KindGlyph = "glyph"
	KindImage = "image"
)

// NotFoundError reports a draw call that referenced an unregistered font,
// character or image.
type NotFoundError struct {
	Kind string
	Font string
	Name string
}

func (e *NotFoundError) Error() string {
	switch e.Kind {
	case KindFont:
		return fmt.Sprintf("font %q not registered", e.Font)
	case KindGlyph:
		return fmt.Sprintf("font %q has no glyph for %q", e.Font, e.Name)
	default:
		return fmt.Sprintf("image %q not registered", e.Name)
	}
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// FormatError reports a malformed font or image file.
type FormatError struct {
	Source string
	Key    string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %s", e.Source, e.Reason)
	}
	return fmt.Sprintf("%s: entry %q: %s", e.Source, e.Key, e.Reason)
}
