package render

import imgInternal "github.com/AlexStarov/labelprinter-GoLang-lib/image"

// Empty renders a blank bitmap. The zero value is one pixel wide.
type Empty struct {
	WidthPx int
}

func (e Empty) Render(ctx Context) (*imgInternal.Bitmap, error) {
	w := e.WidthPx
	if w <= 0 {
		w = 1
	}
	return imgInternal.NewBitmap(w, ctx.HeightPx), nil
}
