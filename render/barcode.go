package render

import (
	"errors"
	"fmt"

	"golang.org/x/image/font/opentype"

	imgInternal "github.com/AlexStarov/labelprinter-GoLang-lib/image"
)

const (
	barcodeModuleWidthPx    = 2
	barcodeVerticalMarginPx = 8

	// DefaultQuietZone is the blank run on each side of a symbol, in pixels.
	DefaultQuietZone = 6.5
)

// Symbol is the module sequence of an encoded barcode: '1' is a bar and
// '0' a space.
type Symbol struct {
	Modules   string
	QuietZone float64
}

// Symbology encodes content into modules. Concrete symbologies such as
// Code 128 or EAN live outside this package.
type Symbology interface {
	Name() string
	Encode(content string) (Symbol, error)
}

var errBadModule = errors.New("module string may only contain 0 and 1")

// Binary treats the content itself as the module string. Empty content
// yields a blank symbol of quiet zones only.
type Binary struct{}

func (Binary) Name() string { return "binary" }

func (Binary) Encode(content string) (Symbol, error) {
	for _, c := range content {
		if c != '0' && c != '1' {
			return Symbol{}, errBadModule
		}
	}
	return Symbol{Modules: content, QuietZone: DefaultQuietZone}, nil
}

// RunLengths run-length encodes a module string. Bars are positive and
// spaces negative: "11010111" gives [2 -1 1 -1 3].
func RunLengths(modules string) ([]int, error) {
	var runs []int
	for i := 0; i < len(modules); i++ {
		var sign int
		switch modules[i] {
		case '1':
			sign = 1
		case '0':
			sign = -1
		default:
			return nil, errBadModule
		}
		if n := len(runs); n > 0 && (runs[n-1] > 0) == (sign > 0) {
			runs[n-1] += sign
			continue
		}
		runs = append(runs, sign)
	}
	return runs, nil
}

// Barcode renders a one dimensional symbol spanning the context height,
// minus a fixed margin above and below.
type Barcode struct {
	Content   string
	Symbology Symbology
}

// NewBarcode returns a barcode using the Binary symbology.
func NewBarcode(content string) *Barcode {
	return &Barcode{Content: content, Symbology: Binary{}}
}

func (b *Barcode) symbology() Symbology {
	if b.Symbology == nil {
		return Binary{}
	}
	return b.Symbology
}

func (b *Barcode) Render(ctx Context) (*imgInternal.Bitmap, error) {
	sym := b.symbology()
	symbol, err := sym.Encode(b.Content)
	if err != nil {
		return nil, &BarcodeRenderError{Symbology: sym.Name(), Err: err}
	}
	runs, err := RunLengths(symbol.Modules)
	if err != nil {
		return nil, &BarcodeRenderError{Symbology: sym.Name(), Err: err}
	}

	moduleHeight := ctx.HeightPx - 2*barcodeVerticalMarginPx
	if moduleHeight <= 0 {
		return nil, &BarcodeRenderError{
			Symbology: sym.Name(),
			Err:       fmt.Errorf("height %d px leaves no room for bars", ctx.HeightPx),
		}
	}

	width := int(2*symbol.QuietZone + float64(len(symbol.Modules)*barcodeModuleWidthPx))
	out := imgInternal.NewBitmap(width, ctx.HeightPx)

	pos := symbol.QuietZone
	for _, run := range runs {
		w := float64(abs(run) * barcodeModuleWidthPx)
		if run > 0 {
			out.FillRect(int(pos), barcodeVerticalMarginPx, int(pos+w), barcodeVerticalMarginPx+moduleHeight, true)
		}
		pos += w
	}
	return out, nil
}

// BarcodeWithText renders a barcode with a caption pasted over its lower
// edge.
type BarcodeWithText struct {
	Barcode

	// Caption defaults to the barcode content.
	Caption string

	Font          *opentype.Font
	FontSizeRatio float64
	Align         Direction
}

// captionHeightRatio is the share of the height given to the caption.
const captionHeightRatio = 0.4

func (b *BarcodeWithText) Render(ctx Context) (*imgInternal.Bitmap, error) {
	align := b.Align.orCenter()
	if err := align.validate(); err != nil {
		return nil, err
	}

	barcode, err := b.Barcode.Render(ctx)
	if err != nil {
		return nil, err
	}

	caption := b.Caption
	if caption == "" {
		caption = b.Content
	}
	text := &Text{
		Lines:         []string{caption},
		Font:          b.Font,
		FontSizeRatio: b.FontSizeRatio,
		Align:         align,
	}
	textCtx := ctx
	textCtx.HeightPx = int(float64(ctx.HeightPx) * captionHeightRatio)
	label, err := text.Render(textCtx)
	if err != nil {
		return nil, err
	}

	var x int
	switch align {
	case Left:
		x = 0
	case Center:
		x = barcode.Width()/2 - label.Width()/2
	case Right:
		x = barcode.Width() - label.Width()
	}
	y := barcode.Height() - label.Height() - 1

	out := barcode.Clone()
	out.Paste(label, x, y)
	return out, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
