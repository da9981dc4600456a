package assets

import (
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf8"
)

// Font and image files are JSON objects whose values are arrays: the first
// element is [width, height], followed by height rows of width 0/1 values.

// DecodeFont parses a font file. Keys must be single characters.
func DecodeFont(source string, r io.Reader) (Font, error) {
	raw, err := decodeEntries(source, r)
	if err != nil {
		return nil, err
	}
	font := make(Font, len(raw))
	for key, entry := range raw {
		ch, size := utf8.DecodeRuneInString(key)
		if key == "" || size != len(key) || ch == utf8.RuneError {
			return nil, &FormatError{Source: source, Key: key, Reason: "font keys must be a single character"}
		}
		bm, err := parseBitmap(source, key, entry)
		if err != nil {
			return nil, err
		}
		font[ch] = bm
	}
	return font, nil
}

// DecodeImages parses an image file holding one or more named images.
func DecodeImages(source string, r io.Reader) (map[string]Bitmap, error) {
	raw, err := decodeEntries(source, r)
	if err != nil {
		return nil, err
	}
	images := make(map[string]Bitmap, len(raw))
	for key, entry := range raw {
		bm, err := parseBitmap(source, key, entry)
		if err != nil {
			return nil, err
		}
		images[key] = bm
	}
	return images, nil
}

func decodeEntries(source string, r io.Reader) (map[string][][]int, error) {
	var raw map[string][][]int
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, &FormatError{Source: source, Reason: err.Error()}
	}
	if raw == nil {
		return nil, &FormatError{Source: source, Reason: "expected a JSON object"}
	}
	return raw, nil
}

func parseBitmap(source, key string, entry [][]int) (Bitmap, error) {
	if len(entry) == 0 || len(entry[0]) != 2 {
		return Bitmap{}, &FormatError{Source: source, Key: key, Reason: "missing [width, height] header"}
	}
	width, height := entry[0][0], entry[0][1]
	if width < 0 || height < 0 {
		return Bitmap{}, &FormatError{Source: source, Key: key, Reason: fmt.Sprintf("negative size %dx%d", width, height)}
	}
	rows := entry[1:]
	if len(rows) != height {
		return Bitmap{}, &FormatError{Source: source, Key: key, Reason: fmt.Sprintf("declared height %d but found %d rows", height, len(rows))}
	}
	// The header size is untrusted; check it against the rows before allocating.
	for y, row := range rows {
		if len(row) != width {
			return Bitmap{}, &FormatError{Source: source, Key: key, Reason: fmt.Sprintf("row %d has %d values, want %d", y, len(row), width)}
		}
		for _, v := range row {
			if v != 0 && v != 1 {
				return Bitmap{}, &FormatError{Source: source, Key: key, Reason: fmt.Sprintf("row %d value %d is not 0 or 1", y, v)}
			}
		}
	}
	bm := NewBitmap(width, height)
	for y, row := range rows {
		for x, v := range row {
			bm.Rows[y][x] = uint8(v)
		}
	}
	return bm, nil
}

// EncodeFont writes f in the font file format.
func EncodeFont(w io.Writer, f Font) error {
	out := make(map[string][][]int, len(f))
	for ch, bm := range f {
		out[string(ch)] = encodeBitmap(bm)
	}
	return json.NewEncoder(w).Encode(out)
}

// EncodeImages writes images in the image file format.
func EncodeImages(w io.Writer, images map[string]Bitmap) error {
	out := make(map[string][][]int, len(images))
	for name, bm := range images {
		out[name] = encodeBitmap(bm)
	}
	return json.NewEncoder(w).Encode(out)
}

func encodeBitmap(bm Bitmap) [][]int {
	out := make([][]int, 0, bm.Height+1)
	out = append(out, []int{bm.Width, bm.Height})
	for y := 0; y < bm.Height; y++ {
		row := make([]int, bm.Width)
		for x := range row {
			if bm.Lit(x, y) {
				row[x] = 1
			}
		}
		out = append(out, row)
	}
	return out
}
