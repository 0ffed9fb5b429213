package render

import (
	"math"
	"strconv"

	"golang.org/x/image/font"

	imgInternal "github.com/AlexStarov/labelprinter-GoLang-lib/image"
)

const (
	patternLabelFontPx    = 12
	patternStaggerWidth   = 40
	patternStaggerLines   = 4
	patternVerticalLines  = 5
	patternCheckerWidthPx = 12
	patternSolidWidthPx   = 12
)

// SamplePattern renders a fixed calibration strip: staggered lines with the
// height written in, a vertical comb, a fine checkerboard, a solid block and
// a labelled dyadic checkerboard. It takes no content.
type SamplePattern struct {
	// HeightPx overrides the context height when positive.
	HeightPx int
}

func (s SamplePattern) Render(ctx Context) (*imgInternal.Bitmap, error) {
	h := ctx.HeightPx
	if s.HeightPx > 0 {
		h = s.HeightPx
	}
	face, err := newFace(nil, patternLabelFontPx)
	if err != nil {
		return nil, err
	}
	defer face.Close()
	staggered := staggeredLines(h)
	drawText(staggered, face, 3, (h-ascent(face))/2, "h="+strconv.Itoa(h))

	parts := []*imgInternal.Bitmap{
		staggered,
		verticalComb(h),
		fineChecker(h),
		imgInternal.NewFilledBitmap(patternSolidWidthPx, h),
		dyadicChecker(h, face),
		staggeredLines(h),
	}

	out := imgInternal.NewBitmap(totalWidth(parts, 0), h)
	x := 0
	for _, p := range parts {
		out.Paste(p, x, 0)
		x += p.Width()
	}
	return out, nil
}

// staggeredLines draws single pixel lines at the top and bottom whose right
// half is shifted by one row.
func staggeredLines(h int) *imgInternal.Bitmap {
	b := imgInternal.NewBitmap(patternStaggerWidth, h)
	half := patternStaggerWidth / 2
	for i := 0; i < patternStaggerLines; i++ {
		top := 2 * i
		bottom := h - 2*patternStaggerLines + 2*i
		for x := 0; x < patternStaggerWidth; x++ {
			if x < half {
				b.SetBit(x, top, true)
				b.SetBit(x, bottom+1, true)
			} else {
				b.SetBit(x, top+1, true)
				b.SetBit(x, bottom, true)
			}
		}
	}
	return b
}

func verticalComb(h int) *imgInternal.Bitmap {
	b := imgInternal.NewBitmap(2*patternVerticalLines-1, h)
	for i := 0; i < patternVerticalLines; i++ {
		b.FillRect(2*i, 0, 2*i+1, h, true)
	}
	return b
}

func fineChecker(h int) *imgInternal.Bitmap {
	b := imgInternal.NewBitmap(patternCheckerWidthPx, h)
	for y := 0; y < h; y++ {
		for x := 0; x < patternCheckerWidthPx; x++ {
			b.SetBit(x, y, (x+y)%2 == 0)
		}
	}
	return b
}

// dyadicChecker alternates every 2^k rows in the k-th column block and
// labels multiples of the block size counted from the bottom.
func dyadicChecker(h int, face font.Face) *imgInternal.Bitmap {
	logBlock := int(math.Ceil(math.Log2(float64(ascent(face) + 3))))
	block := 1 << logBlock
	textX := logBlock * block

	labelWidth := 0
	for yc := block; yc <= h; yc += block {
		labelWidth = max(labelWidth, textWidth(face, strconv.Itoa(yc)))
	}

	b := imgInternal.NewBitmap(textX+labelWidth+2, h)
	for yc := block; yc <= h; yc += block {
		drawText(b, face, textX+1, h-yc+1, strconv.Itoa(yc))
	}
	for yc := 0; yc < h; yc++ {
		y := h - yc - 1
		for x := 0; x < b.Width(); x++ {
			shift := min(x/block, logBlock)
			if (yc>>shift)&1 == 0 {
				b.Toggle(x, y)
			}
		}
	}
	return b
}
