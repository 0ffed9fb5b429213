// Package render turns label content into monochrome bitmaps.
//
// Every engine is a pure function of its parameters and the Context it is
// given, so independent renders may run concurrently.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	imgInternal "github.com/AlexStarov/labelprinter-GoLang-lib/image"
)

// Context carries the per-call render parameters.
type Context struct {
	// HeightPx is the target raster height.
	HeightPx int

	// Foreground and Background are only used by the preview.
	Foreground color.Color
	Background color.Color

	PreviewShowMargins bool
}

// NewContext returns a context of the given height with black on white
// preview colors.
func NewContext(heightPx int) Context {
	return Context{
		HeightPx:   heightPx,
		Foreground: color.Black,
		Background: color.White,
	}
}

// Engine produces a bitmap at the context height.
type Engine interface {
	Render(ctx Context) (*imgInternal.Bitmap, error)
}

// Meta reports the offsets a margin aware engine actually used.
type Meta struct {
	HorizontalOffsetPx int
	VerticalOffsetPx   int
}

// MetaEngine is implemented by engines that place a payload on a canvas.
type MetaEngine interface {
	Engine
	RenderWithMeta(ctx Context) (*imgInternal.Bitmap, Meta, error)
}

// RenderWithMeta renders e and returns its offsets when it reports any.
func RenderWithMeta(e Engine, ctx Context) (*imgInternal.Bitmap, *Meta, error) {
	if me, ok := e.(MetaEngine); ok {
		b, meta, err := me.RenderWithMeta(ctx)
		if err != nil {
			return nil, nil, err
		}
		return b, &meta, nil
	}
	b, err := e.Render(ctx)
	return b, nil, err
}

// Direction is a horizontal alignment.
type Direction string

const (
	Left   Direction = "left"
	Center Direction = "center"
	Right  Direction = "right"
)

// Configuration errors.
var (
	ErrInvalidAlign   = errors.New("render: invalid align value")
	ErrInvalidJustify = errors.New("render: invalid justify value")
	ErrInvalidOption  = errors.New("render: invalid option")
)

// Content errors.
var (
	ErrNoContent         = errors.New("render: no content")
	ErrPictureNotFound   = errors.New("render: picture path does not exist")
	ErrUnidentifiedImage = errors.New("render: cannot identify image file")
	ErrQrUnavailable     = errors.New("render: QR support is not compiled in")
)

// ErrInternal reports a broken invariant inside an engine.
var ErrInternal = errors.New("render: internal error")

// ParseDirection accepts left, center and right in any case.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	if err := d.validate(); err != nil {
		return "", err
	}
	return d, nil
}

func (d Direction) validate() error {
	switch d {
	case Left, Center, Right:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidAlign, string(d))
}

func (d Direction) orCenter() Direction {
	if d == "" {
		return Center
	}
	return d
}

// BitmapTooBigError is returned when a label would exceed the maximum width.
type BitmapTooBigError struct {
	WidthPx    int
	MaxWidthPx int
}

func (e *BitmapTooBigError) Error() string {
	return fmt.Sprintf("bitmap too big: width_px: %d, max_width_px: %d", e.WidthPx, e.MaxWidthPx)
}

// BarcodeRenderError wraps a symbology failure.
type BarcodeRenderError struct {
	Symbology string
	Err       error
}

func (e *BarcodeRenderError) Error() string {
	return fmt.Sprintf("barcode render error (%s): %v", e.Symbology, e.Err)
}

func (e *BarcodeRenderError) Unwrap() error { return e.Err }

// QrTooBigError is returned when content does not fit a QR code of the
// context height.
type QrTooBigError struct {
	ContentLen int
	HeightPx   int
	Err        error
}

func (e *QrTooBigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("too much content for a QR code (%d bytes, height %d px): %v", e.ContentLen, e.HeightPx, e.Err)
	}
	return fmt.Sprintf("too much content for a QR code (%d bytes, height %d px)", e.ContentLen, e.HeightPx)
}

func (e *QrTooBigError) Unwrap() error { return e.Err }
