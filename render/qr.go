package render

import (
	imgInternal "github.com/AlexStarov/labelprinter-GoLang-lib/image"
)

// qrQuietZone is the blank border around the modules, in modules.
const qrQuietZone = 1

// QR renders a QR code scaled by the largest integer factor that fits the
// context height, centered vertically.
type QR struct {
	Content string
}

func (q *QR) Render(ctx Context) (*imgInternal.Bitmap, error) {
	if !qrSupported {
		return nil, ErrQrUnavailable
	}
	if q.Content == "" {
		return nil, ErrNoContent
	}

	modules, err := encodeQR(q.Content)
	if err != nil {
		return nil, &QrTooBigError{ContentLen: len(q.Content), HeightPx: ctx.HeightPx, Err: err}
	}

	size := len(modules) + 2*qrQuietZone
	scale := ctx.HeightPx / size
	if scale < 1 {
		return nil, &QrTooBigError{ContentLen: len(q.Content), HeightPx: ctx.HeightPx}
	}
	offset := (ctx.HeightPx - size*scale) / 2

	out := imgInternal.NewBitmap(size*scale, ctx.HeightPx)
	for y, row := range modules {
		for x, dark := range row {
			if !dark {
				continue
			}
			x0 := (x + qrQuietZone) * scale
			y0 := offset + (y+qrQuietZone)*scale
			out.FillRect(x0, y0, x0+scale, y0+scale, true)
		}
	}
	return out, nil
}
