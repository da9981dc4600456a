package main

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"

	"github.com/rook-computer/monoframe/internal/assets"
	"github.com/spf13/cobra"
	xdraw "golang.org/x/image/draw"
)

func init() {
	rootCmd.AddCommand(imageCmd)
	imageCmd.Flags().StringVarP(&imageInput, "input", "i", "", "source image (PNG)")
	imageCmd.Flags().StringVarP(&imageOutput, "output", "o", "", "image JSON; existing entries are kept")
	imageCmd.Flags().IntVar(&imageWidth, "width", 0, "resize to this width (0 keeps the aspect ratio)")
	imageCmd.Flags().IntVar(&imageHeight, "height", 0, "resize to this height (0 keeps the aspect ratio)")
	imageCmd.Flags().Uint8Var(&imageThreshold, "threshold", 0x80, "minimum luminance of a lit pixel")
	_ = imageCmd.MarkFlagRequired("input")
	_ = imageCmd.MarkFlagRequired("output")
}

var (
	imageInput     string
	imageOutput    string
	imageWidth     int
	imageHeight    int
	imageThreshold uint8
)

var imageCmd = &cobra.Command{
	Use:   "image <name>",
	Short: "add an image to an image file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := decodeImageFile(imageInput)
		if err != nil {
			return err
		}
		bm := imageBitmap(img, imageWidth, imageHeight, imageThreshold)
		images, err := readImages(imageOutput)
		if err != nil {
			return err
		}
		images[args[0]] = bm
		logf(cmd, "image %q %dx%d, %d entries", args[0], bm.Width, bm.Height, len(images))
		return writeFile(imageOutput, func(out *os.File) error { return assets.EncodeImages(out, images) })
	},
}

// imageBitmap resizes img when a target size is given and thresholds it.
func imageBitmap(img image.Image, width, height int, threshold uint8) assets.Bitmap {
	src := img.Bounds()
	switch {
	case width <= 0 && height <= 0:
		return assets.BitmapFromImage(img, src, threshold)
	case width <= 0:
		width = max(src.Dx()*height/max(src.Dy(), 1), 1)
	case height <= 0:
		height = max(src.Dy()*width/max(src.Dx(), 1), 1)
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, src, xdraw.Src, nil)
	return assets.BitmapFromImage(dst, dst.Bounds(), threshold)
}

func readImages(path string) (map[string]assets.Bitmap, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]assets.Bitmap{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	images, err := assets.DecodeImages(path, f)
	if err != nil {
		return nil, fmt.Errorf("merge into %s: %w", path, err)
	}
	return images, nil
}
