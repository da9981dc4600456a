package render

import (
	"errors"

	"github.com/rook-computer/monoframe/internal/assets"
	"github.com/skip2/go-qrcode"
)

// QROpts controls DrawQRCode. The zero Level is qrcode.Low.
type QROpts struct {
	Scale int
	Level qrcode.RecoveryLevel
	Erase bool
}

// qrBitmap encodes payload without the quiet zone; callers leave their own
// margin around the code.
func qrBitmap(payload string, level qrcode.RecoveryLevel) (assets.Bitmap, error) {
	if payload == "" {
		return assets.Bitmap{}, errors.New("qr: empty payload")
	}
	code, err := qrcode.New(payload, level)
	if err != nil {
		return assets.Bitmap{}, err
	}
	code.DisableBorder = true
	modules := code.Bitmap()

	bm := assets.NewBitmap(len(modules), len(modules))
	for y, row := range modules {
		for x, dark := range row {
			if dark {
				bm.Rows[y][x] = 1
			}
		}
	}
	return bm, nil
}

// QRCodeSize returns the scaled edge length of the code for payload.
func (r *Renderer) QRCodeSize(payload string, opts QROpts) (int, error) {
	bm, err := qrBitmap(payload, opts.Level)
	if err != nil {
		return 0, err
	}
	return bm.Width * max(opts.Scale, 1), nil
}

// DrawQRCode draws payload as a QR code with its top-left module at (x, y).
func (r *Renderer) DrawQRCode(payload string, x, y int, opts QROpts) error {
	bm, err := qrBitmap(payload, opts.Level)
	if err != nil {
		return err
	}
	r.blit(bm, x, y, colorFor(opts.Erase), max(opts.Scale, 1))
	return nil
}
