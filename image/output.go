package image

import (
	"fmt"
	"image/png"
	"io"
	"strings"
)

// Sink consumes a finished label bitmap.
type Sink interface {
	Write(b *Bitmap) error
}

// PNGSink encodes bitmaps as PNG, burned pixels black.
type PNGSink struct {
	W io.Writer
}

func (s PNGSink) Write(b *Bitmap) error {
	if err := png.Encode(s.W, b); err != nil {
		return fmt.Errorf("png encode: %w", err)
	}
	return nil
}

// ConsoleSink draws bitmaps with unicode half blocks, rotated so that the
// tape runs down the terminal.
type ConsoleSink struct {
	W      io.Writer
	Invert bool
}

func (s ConsoleSink) Write(b *Bitmap) error {
	_, err := io.WriteString(s.W, ToUnicode(Rotate270(b), s.Invert))
	return err
}

// Rotate270 rotates b by 270° counter-clockwise (90° clockwise).
func Rotate270(b *Bitmap) *Bitmap {
	out := NewBitmap(b.height, b.width)
	for y := 0; y < out.height; y++ {
		for x := 0; x < out.width; x++ {
			out.SetBit(x, y, b.Bit(y, b.height-1-x))
		}
	}
	return out
}

// ToUnicode renders two bitmap rows per text line.
func ToUnicode(b *Bitmap, invert bool) string {
	var sb strings.Builder
	for y := 0; y < b.height; y += 2 {
		for x := 0; x < b.width; x++ {
			top := b.Bit(x, y) != invert
			bottom := b.Bit(x, y+1) != invert
			if y+1 >= b.height {
				bottom = false
			}
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
