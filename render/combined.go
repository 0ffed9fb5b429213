package render

import imgInternal "github.com/AlexStarov/labelprinter-GoLang-lib/image"

// DefaultPadding is the gap between horizontally combined engines.
const DefaultPadding = 4

// HorizontallyCombined places its engines left to right, vertically
// centered on the tallest one.
type HorizontallyCombined struct {
	Engines []Engine
	Padding int
}

// NewHorizontallyCombined combines engines with DefaultPadding.
func NewHorizontallyCombined(engines ...Engine) *HorizontallyCombined {
	return &HorizontallyCombined{Engines: engines, Padding: DefaultPadding}
}

func (h *HorizontallyCombined) Render(ctx Context) (*imgInternal.Bitmap, error) {
	engines := h.Engines
	if len(engines) == 0 {
		engines = []Engine{Empty{}}
	}

	bitmaps := make([]*imgInternal.Bitmap, 0, len(engines))
	for _, e := range engines {
		b, err := e.Render(ctx)
		if err != nil {
			return nil, err
		}
		bitmaps = append(bitmaps, b)
	}
	if len(bitmaps) == 1 {
		return bitmaps[0], nil
	}

	height := 0
	for _, b := range bitmaps {
		height = max(height, b.Height())
	}
	merged := imgInternal.NewBitmap(totalWidth(bitmaps, h.Padding), height)
	x := 0
	for _, b := range bitmaps {
		merged.Paste(b, x, (height-b.Height())/2)
		x += b.Width() + h.Padding
	}
	return merged, nil
}

// totalWidth alternates bitmaps and paddings with a bitmap on each end.
func totalWidth(bitmaps []*imgInternal.Bitmap, padding int) int {
	w := 0
	for _, b := range bitmaps {
		w += b.Width()
	}
	return w + (len(bitmaps)-1)*padding
}
