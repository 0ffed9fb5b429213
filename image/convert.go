package image

import (
	"image"
	"image/color"
)

// Converter turns arbitrary images into bitmaps.
type Converter struct {
	// The threashold between white and black dots
	Threshold float64

	// Invert burns the light pixels instead of the dark ones.
	Invert bool
}

// DefaultConverter burns every pixel at or below half lightness.
var DefaultConverter = Converter{Threshold: 0.5}

// ToBitmap converts img into a bitmap of the same size.
func (c Converter) ToBitmap(img image.Image) *Bitmap {
	bounds := img.Bounds()
	sz := bounds.Size()
	out := NewBitmap(sz.X, sz.Y)

	for y := 0; y < sz.Y; y++ {
		for x := 0; x < sz.X; x++ {
			dark := lightness(img.At(bounds.Min.X+x, bounds.Min.Y+y)) <= c.Threshold
			out.SetBit(x, y, dark != c.Invert)
		}
	}
	return out
}

// FromAlpha burns every pixel of mask whose coverage is at least half.
func FromAlpha(mask *image.Alpha) *Bitmap {
	bounds := mask.Bounds()
	sz := bounds.Size()
	out := NewBitmap(sz.X, sz.Y)
	for y := 0; y < sz.Y; y++ {
		for x := 0; x < sz.X; x++ {
			if mask.AlphaAt(bounds.Min.X+x, bounds.Min.Y+y).A >= 0x80 {
				out.SetBit(x, y, true)
			}
		}
	}
	return out
}

// Colorize paints burned pixels with fg and the rest with bg.
func Colorize(b *Bitmap, fg, bg color.Color) *image.RGBA {
	out := image.NewRGBA(b.Bounds())
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.Bit(x, y) {
				out.Set(x, y, fg)
			} else {
				out.Set(x, y, bg)
			}
		}
	}
	return out
}

const (
	lumR, lumG, lumB = 55, 182, 18
)

func lightness(c color.Color) float64 {
	r, g, b, a := c.RGBA()
	if a == 0 {
		// fully transparent pixels are background
		return 1
	}

	return float64(lumR*r+lumG*g+lumB*b) / float64(0xffff*(lumR+lumG+lumB))
}
