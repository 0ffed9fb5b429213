package render

import (
	"fmt"

	imgInternal "github.com/AlexStarov/labelprinter-GoLang-lib/image"
)

// Mode selects between the printed band and its on-screen preview.
type Mode int

const (
	ModePrint Mode = iota
	ModePreview
)

func (m Mode) String() string {
	if m == ModePreview {
		return "preview"
	}
	return "print"
}

// LabelerMargin is the fixed hardware offset of a labeler: Horizontal is the
// print head to cutter distance and Vertical the band between the printable
// area and the tape edge.
type LabelerMargin struct {
	Horizontal int
	Vertical   int
}

// MarginOverrides carries development switches read once at startup.
type MarginOverrides struct {
	// NoMargins drops the visible margin, the horizontal labeler margin and
	// the minimum width. The vertical labeler margin is kept.
	NoMargins bool
}

// MarginOptions configures a Margins engine.
type MarginOptions struct {
	Justify                   Direction
	VisibleHorizontalMarginPx int
	LabelerMargin             LabelerMargin

	// MaxWidthPx is a hard cap when positive.
	MaxWidthPx int
	MinWidthPx int

	Overrides MarginOverrides
}

// Margins places a payload on a label canvas.
type Margins struct {
	payload Engine
	mode    Mode
	opts    MarginOptions
}

// NewMargins validates opts and wraps payload.
func NewMargins(payload Engine, mode Mode, opts MarginOptions) (*Margins, error) {
	if opts.Justify == "" {
		opts.Justify = Center
	}
	if err := opts.Justify.validate(); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidJustify, string(opts.Justify))
	}
	switch {
	case opts.VisibleHorizontalMarginPx < 0:
		return nil, fmt.Errorf("%w: visible horizontal margin %d", ErrInvalidOption, opts.VisibleHorizontalMarginPx)
	case opts.LabelerMargin.Horizontal < 0 || opts.LabelerMargin.Vertical < 0:
		return nil, fmt.Errorf("%w: labeler margin %+v", ErrInvalidOption, opts.LabelerMargin)
	case opts.MaxWidthPx < 0:
		return nil, fmt.Errorf("%w: max width %d", ErrInvalidOption, opts.MaxWidthPx)
	case opts.MinWidthPx < 0:
		return nil, fmt.Errorf("%w: min width %d", ErrInvalidOption, opts.MinWidthPx)
	}

	if opts.Overrides.NoMargins {
		opts.VisibleHorizontalMarginPx = 0
		opts.LabelerMargin.Horizontal = 0
		opts.MinWidthPx = 0
	}
	return &Margins{payload: payload, mode: mode, opts: opts}, nil
}

// NewPrintPayload wraps payload for printing.
func NewPrintPayload(payload Engine, opts MarginOptions) (*Margins, error) {
	return NewMargins(payload, ModePrint, opts)
}

func (m *Margins) Mode() Mode { return m.mode }

func (m *Margins) Render(ctx Context) (*imgInternal.Bitmap, error) {
	b, _, err := m.RenderWithMeta(ctx)
	return b, err
}

func (m *Margins) RenderWithMeta(ctx Context) (*imgInternal.Bitmap, Meta, error) {
	payload, err := m.payload.Render(ctx)
	if err != nil {
		return nil, Meta{}, err
	}

	visible := m.opts.VisibleHorizontalMarginPx
	offset, labelWidth, err := horizontalPlacement(payload.Width(), visible, m.opts.MinWidthPx, m.opts.MaxWidthPx, m.opts.Justify)
	if err != nil {
		return nil, Meta{}, err
	}
	if m.mode == ModePrint {
		offset -= m.opts.LabelerMargin.Horizontal
	}

	vertical := m.opts.LabelerMargin.Vertical
	canvas := imgInternal.NewBitmap(labelWidth, payload.Height()+2*vertical)
	canvas.Paste(payload, offset, vertical)

	return canvas, Meta{HorizontalOffsetPx: offset, VerticalOffsetPx: vertical}, nil
}

// horizontalPlacement returns the payload offset and the label width
// before any hardware correction.
func horizontalPlacement(payloadWidth, visible, minWidth, maxWidth int, justify Direction) (int, int, error) {
	minimal := payloadWidth + 2*visible
	if maxWidth > 0 && minimal > maxWidth {
		return 0, 0, &BitmapTooBigError{WidthPx: minimal, MaxWidthPx: maxWidth}
	}

	labelWidth := max(minimal, minWidth)
	padding := labelWidth - payloadWidth

	var offset int
	switch justify {
	case Left:
		offset = visible
	case Center:
		offset = padding / 2
	case Right:
		offset = padding - visible
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidJustify, string(justify))
	}
	if offset < visible {
		return 0, 0, fmt.Errorf("%w: offset %d below visible margin %d", ErrInternal, offset, visible)
	}
	return offset, labelWidth, nil
}
