package render

import (
	"fmt"
	"math"

	"golang.org/x/image/font/opentype"
	"golang.org/x/text/unicode/norm"

	imgInternal "github.com/AlexStarov/labelprinter-GoLang-lib/image"
)

// DefaultFontSizeRatio is the share of a line's height taken by glyphs.
const DefaultFontSizeRatio = 0.9

const maxFrameWidthPx = 3

// Text renders one or more lines, each occupying an equal share of the
// height.
type Text struct {
	Lines []string

	// Font defaults to Go Regular.
	Font *opentype.Font

	// FrameWidthPx draws a border when positive. It is capped by the font
	// offset and by three pixels.
	FrameWidthPx int

	// FontSizeRatio defaults to DefaultFontSizeRatio.
	FontSizeRatio float64

	// Align defaults to Center.
	Align Direction
}

// NewText returns a centered text engine using the default font.
func NewText(lines ...string) *Text {
	return &Text{Lines: lines, Align: Center, FontSizeRatio: DefaultFontSizeRatio}
}

// TextLayout holds the geometry computed for a Text render.
type TextLayout struct {
	LineHeight   float64
	FontSizePx   int
	FontOffsetPx int
	FrameWidthPx int
}

// Layout computes the per-line geometry for the given height.
func (t *Text) Layout(heightPx int) TextLayout {
	ratio := t.FontSizeRatio
	if ratio <= 0 {
		ratio = DefaultFontSizeRatio
	}
	n := max(len(t.Lines), 1)
	lineHeight := float64(heightPx) / float64(n)
	fontSize := int(math.RoundToEven(lineHeight * ratio))
	offset := int((lineHeight - float64(fontSize)) / 2)

	frame := 0
	if t.FrameWidthPx > 0 {
		frame = min(t.FrameWidthPx, offset, maxFrameWidthPx)
	}
	return TextLayout{
		LineHeight:   lineHeight,
		FontSizePx:   fontSize,
		FontOffsetPx: offset,
		FrameWidthPx: frame,
	}
}

func (t *Text) Render(ctx Context) (*imgInternal.Bitmap, error) {
	align := t.Align.orCenter()
	if err := align.validate(); err != nil {
		return nil, err
	}
	if t.FontSizeRatio < 0 || t.FontSizeRatio > 1 {
		return nil, fmt.Errorf("%w: font size ratio %v", ErrInvalidOption, t.FontSizeRatio)
	}
	if len(t.Lines) == 0 {
		return Empty{}.Render(ctx)
	}

	// Composed forms map to the precomposed glyphs of the font.
	lines := make([]string, len(t.Lines))
	for i, line := range t.Lines {
		lines[i] = norm.NFC.String(line)
	}

	layout := t.Layout(ctx.HeightPx)
	face, err := newFace(t.Font, layout.FontSizePx)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	widths := make([]int, len(lines))
	widest := 0
	for i, line := range lines {
		widths[i] = textWidth(face, line)
		widest = max(widest, widths[i])
	}
	labelWidth := widest + 2*layout.FontOffsetPx

	out := imgInternal.NewBitmap(labelWidth, ctx.HeightPx)
	for i, line := range lines {
		top := int(float64(i)*layout.LineHeight) + layout.FontOffsetPx
		var x int
		switch align {
		case Left:
			x = layout.FontOffsetPx
		case Center:
			x = (labelWidth - widths[i]) / 2
		case Right:
			x = labelWidth - layout.FontOffsetPx - widths[i]
		}
		drawText(out, face, x, top, line)
	}

	if layout.FrameWidthPx > 0 {
		out.StrokeRect(0, 0, labelWidth, ctx.HeightPx, layout.FrameWidthPx)
	}
	return out, nil
}
