// Package assets holds the bitmap fonts and images that pages draw with.
package assets

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
)

// IconsJSON is the sample icon set shipped with the binaries.
//
//go:embed icons.json
var IconsJSON []byte

// DefaultFont is the font name used when a text style names none.
const DefaultFont = "default"

// Font maps a character to its glyph.
type Font map[rune]Bitmap

// Store keeps every registered font and image. It is loaded once at startup
// and only read by the render loop afterwards.
type Store struct {
	fonts  map[string]Font
	images map[string]Bitmap
}

func NewStore() *Store {
	return &Store{fonts: map[string]Font{}, images: map[string]Bitmap{}}
}

// RegisterFont parses a font file and stores it under name, replacing any
// font previously registered with the same name.
func (s *Store) RegisterFont(name string, r io.Reader) error {
	f, err := DecodeFont(name, r)
	if err != nil {
		return err
	}
	s.fonts[name] = f
	return nil
}

func (s *Store) LoadFontFile(name, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	f, err := DecodeFont(path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	s.fonts[name] = f
	return nil
}

// SetFont registers an already decoded font.
func (s *Store) SetFont(name string, f Font) { s.fonts[name] = f }

// RegisterImages merges every image of an image file into the registry.
// Existing names are overwritten.
func (s *Store) RegisterImages(r io.Reader) error {
	return s.registerImages("images", r)
}

func (s *Store) LoadImagesFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read images %s: %w", path, err)
	}
	return s.registerImages(path, bytes.NewReader(data))
}

// RegisterEmbeddedImages registers the bundled sample icons.
func (s *Store) RegisterEmbeddedImages() error {
	return s.registerImages("icons.json", bytes.NewReader(IconsJSON))
}

func (s *Store) registerImages(source string, r io.Reader) error {
	images, err := DecodeImages(source, r)
	if err != nil {
		return err
	}
	for name, img := range images {
		s.images[name] = img
	}
	return nil
}

// Glyph returns the bitmap of ch in the named font.
func (s *Store) Glyph(font string, ch rune) (Bitmap, error) {
	f, ok := s.fonts[font]
	if !ok {
		return Bitmap{}, &NotFoundError{Kind: KindFont, Font: font}
	}
	g, ok := f[ch]
	if !ok {
		return Bitmap{}, &NotFoundError{Kind: KindGlyph, Font: font, Name: string(ch)}
	}
	return g, nil
}

func (s *Store) Image(name string) (Bitmap, error) {
	img, ok := s.images[name]
	if !ok {
		return Bitmap{}, &NotFoundError{Kind: KindImage, Name: name}
	}
	return img, nil
}

func (s *Store) HasFont(name string) bool {
	_, ok := s.fonts[name]
	return ok
}

func (s *Store) FontNames() []string  { return sortedKeys(s.fonts) }
func (s *Store) ImageNames() []string { return sortedKeys(s.images) }

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
