package render

import (
	"fmt"
	"image"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	imgInternal "github.com/AlexStarov/labelprinter-GoLang-lib/image"
)

var defaultFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// DefaultFont returns the embedded Go Regular face.
func DefaultFont() (*opentype.Font, error) {
	return defaultFont()
}

// LoadFont parses an OpenType or TrueType file.
func LoadFont(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return f, nil
}

func newFace(f *opentype.Font, sizePx int) (font.Face, error) {
	if f == nil {
		var err error
		if f, err = DefaultFont(); err != nil {
			return nil, fmt.Errorf("%w: default font: %v", ErrInternal, err)
		}
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(max(sizePx, 1)),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face (%d px): %w", sizePx, err)
	}
	return face, nil
}

func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// ascent is the distance from the top of a text box to its baseline.
func ascent(face font.Face) int {
	return face.Metrics().Ascent.Ceil()
}

// drawText burns s into dst with the top of its box at (x, top).
func drawText(dst *imgInternal.Bitmap, face font.Face, x, top int, s string) {
	w := textWidth(face, s)
	h := ascent(face) + face.Metrics().Descent.Ceil()
	if w <= 0 || h <= 0 {
		return
	}
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, ascent(face)),
	}
	d.DrawString(s)

	glyphs := imgInternal.FromAlpha(mask)
	for gy := 0; gy < h; gy++ {
		for gx := 0; gx < w; gx++ {
			if glyphs.Bit(gx, gy) {
				dst.SetBit(x+gx, top+gy, true)
			}
		}
	}
}
