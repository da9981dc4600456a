package main

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"unicode/utf8"

	"github.com/golang/freetype/truetype"
	"github.com/rook-computer/monoframe/internal/assets"
	"github.com/spf13/cobra"
	"golang.org/x/image/font"
)

func init() {
	fontCmd.AddCommand(atlasCmd, ttfCmd)
	rootCmd.AddCommand(fontCmd)

	atlasCmd.Flags().StringVarP(&atlasImage, "image", "i", "", "atlas PNG; pure white pixels are lit")
	atlasCmd.Flags().StringVarP(&atlasMap, "map", "j", "", `JSON object {"A": [x, y, w, h], ...}`)
	atlasCmd.Flags().StringVarP(&fontOutput, "output", "o", "", "font JSON to write")
	for _, name := range []string{"image", "map", "output"} {
		_ = atlasCmd.MarkFlagRequired(name)
	}

	ttfCmd.Flags().StringVar(&ttfPath, "ttf", "", "TrueType font file")
	ttfCmd.Flags().Float64Var(&ttfSize, "size", 10, "font size in points")
	ttfCmd.Flags().Float64Var(&ttfDPI, "dpi", 72, "rasterization DPI")
	ttfCmd.Flags().StringVar(&ttfChars, "chars", assets.PrintableASCII, "characters to rasterize")
	ttfCmd.Flags().StringVarP(&fontOutput, "output", "o", "", "font JSON to write")
	_ = ttfCmd.MarkFlagRequired("ttf")
	_ = ttfCmd.MarkFlagRequired("output")
}

var (
	atlasImage string
	atlasMap   string
	fontOutput string

	ttfPath  string
	ttfSize  float64
	ttfDPI   float64
	ttfChars string
)

var fontCmd = &cobra.Command{
	Use:   "font",
	Short: "generate font files",
}

var atlasCmd = &cobra.Command{
	Use:   "atlas",
	Short: "cut glyphs out of a PNG atlas",
	Long: `Cut glyphs out of a PNG atlas.

The map file names the box of every character in the atlas. A pixel is lit
when it is pure white. A blank 5x11 space is added when the map has none.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := decodeImageFile(atlasImage)
		if err != nil {
			return err
		}
		raw, err := os.ReadFile(atlasMap)
		if err != nil {
			return err
		}
		var boxes map[string][4]int
		if err := json.Unmarshal(raw, &boxes); err != nil {
			return fmt.Errorf("%s: %w", atlasMap, err)
		}
		f, err := atlasFont(img, boxes)
		if err != nil {
			return err
		}
		for ch, bm := range f {
			logf(cmd, "char %q %dx%d", ch, bm.Width, bm.Height)
		}
		return writeFile(fontOutput, func(out *os.File) error { return assets.EncodeFont(out, f) })
	},
}

var ttfCmd = &cobra.Command{
	Use:   "ttf",
	Short: "rasterize a TrueType font",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(ttfPath)
		if err != nil {
			return err
		}
		f, err := ttfFont(raw, ttfSize, ttfDPI, ttfChars)
		if err != nil {
			return err
		}
		logf(cmd, "%d glyphs from %s", len(f), ttfPath)
		return writeFile(fontOutput, func(out *os.File) error { return assets.EncodeFont(out, f) })
	},
}

func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

const (
	spaceWidth  = 5
	spaceHeight = 11
)

func atlasFont(img image.Image, boxes map[string][4]int) (assets.Font, error) {
	bounds := img.Bounds()
	f := assets.Font{}
	for key, box := range boxes {
		ch, size := utf8.DecodeRuneInString(key)
		if key == "" || size != len(key) {
			return nil, fmt.Errorf("atlas key %q must be a single character", key)
		}
		rect := image.Rect(box[0], box[1], box[0]+box[2], box[1]+box[3]).Add(bounds.Min)
		if box[2] <= 0 || box[3] <= 0 || !rect.In(bounds) {
			return nil, fmt.Errorf("atlas box for %q %v is outside the image %v", key, box, bounds)
		}
		bm := assets.NewBitmap(box[2], box[3])
		for y := 0; y < box[3]; y++ {
			for x := 0; x < box[2]; x++ {
				if isWhite(img.At(rect.Min.X+x, rect.Min.Y+y)) {
					bm.Rows[y][x] = 1
				}
			}
		}
		f[ch] = bm
	}
	if _, ok := f[' ']; !ok {
		f[' '] = assets.NewBitmap(spaceWidth, spaceHeight)
	}
	return f, nil
}

func isWhite(c color.Color) bool {
	r, g, b, _ := color.NRGBAModel.Convert(c).RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

func ttfFont(data []byte, size, dpi float64, chars string) (assets.Font, error) {
	tt, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse ttf: %w", err)
	}
	face := truetype.NewFace(tt, &truetype.Options{Size: size, DPI: dpi, Hinting: font.HintingFull})
	defer face.Close()
	f := assets.FontFromFace(face, chars)
	if len(f) == 0 {
		return nil, fmt.Errorf("font has none of the requested characters")
	}
	return f, nil
}
