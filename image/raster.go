package image

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrRowPacking reports an internal arithmetic mismatch while packing a
// bitmap into device rows. It is a defect, never a user error.
var ErrRowPacking = errors.New("image: internal row packing mismatch")

// RowOrder describes how a print head expects label rows.
type RowOrder struct {
	// MirrorRows flips every row after the 270° rotation so that the first
	// byte holds the top edge of the label.
	MirrorRows bool

	// ReverseBits sends every byte least significant bit first.
	ReverseBits bool
}

// RowBytes returns the number of bytes needed for one device row of a label
// that is height pixels tall.
func RowBytes(height int) int {
	return (height + 7) >> 3
}

// ToRows converts a label bitmap into device rows. Row i describes column i
// of the label, from the left edge of the tape to the right.
func ToRows(b *Bitmap, order RowOrder) ([][]byte, error) {
	stream, rowLen := pack(b, order.MirrorRows)
	if rowLen == 0 {
		return make([][]byte, b.width), nil
	}
	if len(stream)/rowLen != b.width || len(stream)%rowLen != 0 {
		return nil, fmt.Errorf("%w: %d bytes / %d per row != width %d", ErrRowPacking, len(stream), rowLen, b.width)
	}

	rows := make([][]byte, 0, b.width)
	for i := 0; i < len(stream); i += rowLen {
		row := stream[i : i+rowLen : i+rowLen]
		if order.ReverseBits {
			for j := range row {
				row[j] = bits.Reverse8(row[j])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// pack rotates b by 270° (optionally mirroring) and packs the result most
// significant bit first, one padded row per label column.
func pack(b *Bitmap, mirror bool) ([]byte, int) {
	rowLen := RowBytes(b.height)
	stream := make([]byte, rowLen*b.width)

	for r := 0; r < b.width; r++ {
		for c := 0; c < b.height; c++ {
			y := b.height - 1 - c
			if mirror {
				y = c
			}
			if b.Bit(r, y) {
				stream[r*rowLen+c/8] |= 0x80 >> uint(c%8)
			}
		}
	}
	return stream, rowLen
}
