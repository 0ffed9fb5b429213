package image

import (
	"fmt"
	"image"
	"image/color"
)

// Bitmap is a monochrome raster. A set pixel is burned by the print head.
//
// Engines hand out bitmaps that callers must treat as read-only; composition
// always pastes into a freshly allocated canvas.
type Bitmap struct {
	width, height int
	pix           []uint8
}

// NewBitmap returns a blank width×height bitmap.
func NewBitmap(width, height int) *Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Bitmap{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height),
	}
}

// NewFilledBitmap returns a width×height bitmap with every pixel set.
func NewFilledBitmap(width, height int) *Bitmap {
	b := NewBitmap(width, height)
	for i := range b.pix {
		b.pix[i] = 1
	}
	return b
}

func (b *Bitmap) Width() int  { return b.width }
func (b *Bitmap) Height() int { return b.height }

func (b *Bitmap) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

// Bit reports whether the pixel at (x, y) is set. Out of range reads are false.
func (b *Bitmap) Bit(x, y int) bool {
	if !b.inside(x, y) {
		return false
	}
	return b.pix[y*b.width+x] != 0
}

// SetBit sets or clears the pixel at (x, y). Out of range writes are dropped.
func (b *Bitmap) SetBit(x, y int, on bool) {
	if !b.inside(x, y) {
		return
	}
	if on {
		b.pix[y*b.width+x] = 1
	} else {
		b.pix[y*b.width+x] = 0
	}
}

// Toggle inverts the pixel at (x, y).
func (b *Bitmap) Toggle(x, y int) {
	if !b.inside(x, y) {
		return
	}
	b.pix[y*b.width+x] ^= 1
}

// FillRect sets or clears the half-open rectangle [x0,x1)×[y0,y1), clipped
// to the bitmap.
func (b *Bitmap) FillRect(x0, y0, x1, y1 int, on bool) {
	x0, x1 = max(x0, 0), min(x1, b.width)
	y0, y1 = max(y0, 0), min(y1, b.height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			b.SetBit(x, y, on)
		}
	}
}

// StrokeRect draws a frame of the given line width along the inside of the
// rectangle [x0,x1)×[y0,y1).
func (b *Bitmap) StrokeRect(x0, y0, x1, y1, width int) {
	if width <= 0 {
		return
	}
	b.FillRect(x0, y0, x1, y0+width, true)
	b.FillRect(x0, y1-width, x1, y1, true)
	b.FillRect(x0, y0, x0+width, y1, true)
	b.FillRect(x1-width, y0, x1, y1, true)
}

// Paste copies src into b with its top-left corner at (x, y). Pixels falling
// outside b are clipped, src background pixels overwrite b like PIL's paste.
func (b *Bitmap) Paste(src *Bitmap, x, y int) {
	for sy := 0; sy < src.height; sy++ {
		for sx := 0; sx < src.width; sx++ {
			b.SetBit(x+sx, y+sy, src.pix[sy*src.width+sx] != 0)
		}
	}
}

// Clone returns a deep copy.
func (b *Bitmap) Clone() *Bitmap {
	out := &Bitmap{width: b.width, height: b.height, pix: make([]uint8, len(b.pix))}
	copy(out.pix, b.pix)
	return out
}

// Equal reports whether both bitmaps have the same size and pixels.
func (b *Bitmap) Equal(o *Bitmap) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.width != o.width || b.height != o.height {
		return false
	}
	for i := range b.pix {
		if b.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// Count returns the number of set pixels.
func (b *Bitmap) Count() int {
	n := 0
	for _, p := range b.pix {
		n += int(p)
	}
	return n
}

func (b *Bitmap) String() string {
	return fmt.Sprintf("Bitmap(%d,%d)", b.width, b.height)
}

// ColorModel, Bounds and At make a Bitmap usable as an image.Image. Burned
// pixels are black.
func (b *Bitmap) ColorModel() color.Model { return color.GrayModel }

func (b *Bitmap) Bounds() image.Rectangle { return image.Rect(0, 0, b.width, b.height) }

func (b *Bitmap) At(x, y int) color.Color {
	if b.Bit(x, y) {
		return color.Gray{Y: 0}
	}
	return color.Gray{Y: 0xff}
}
