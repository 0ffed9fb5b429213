package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	imgInternal "github.com/AlexStarov/labelprinter-GoLang-lib/image"
	"github.com/AlexStarov/labelprinter-GoLang-lib/util"
)

const (
	previewMarginXPx = 80
	previewMarginYPx = 30
	previewDX        = previewMarginXPx * 3 / 10
	previewDY        = previewMarginYPx * 3 / 10
	previewFontPx    = 11
)

// GuideColors are the colors of the preview annotations.
type GuideColors struct {
	Margin color.Color
	Mark   color.Color
	Text   color.Color
}

var (
	LightGuides = GuideColors{
		Margin: color.RGBA{0x80, 0x80, 0x80, 0xff},
		Mark:   color.RGBA{0xff, 0x00, 0x00, 0xff},
		Text:   color.RGBA{0x00, 0x00, 0xff, 0xff},
	}
	DarkGuides = GuideColors{
		Margin: color.RGBA{0xff, 0x00, 0x00, 0xff},
		Mark:   color.RGBA{0xff, 0xff, 0x00, 0xff},
		Text:   color.RGBA{0xff, 0xff, 0xff, 0xff},
	}
)

// Preview renders a colored label as it will come out of the labeler,
// optionally framed by margin guides and millimetre sizes.
type Preview struct {
	margins *Margins
	Guides  GuideColors
}

// NewPreview wraps payload in a preview mode Margins engine.
func NewPreview(payload Engine, opts MarginOptions) (*Preview, error) {
	m, err := NewMargins(payload, ModePreview, opts)
	if err != nil {
		return nil, err
	}
	return &Preview{margins: m, Guides: LightGuides}, nil
}

// Render returns the bare label bitmap in preview mode.
func (p *Preview) Render(ctx Context) (*imgInternal.Bitmap, error) {
	return p.margins.Render(ctx)
}

// RenderPreview returns the colored preview.
func (p *Preview) RenderPreview(ctx Context) (*image.RGBA, error) {
	bitmap, meta, err := p.margins.RenderWithMeta(ctx)
	if err != nil {
		return nil, err
	}
	fg, bg := ctx.Foreground, ctx.Background
	if fg == nil {
		fg = color.Black
	}
	if bg == nil {
		bg = color.White
	}
	label := imgInternal.Colorize(bitmap, fg, bg)
	if !ctx.PreviewShowMargins {
		return label, nil
	}

	lw, lh := bitmap.Width(), bitmap.Height()
	out := image.NewRGBA(image.Rect(0, 0, lw+previewMarginXPx+previewDX, lh+previewMarginYPx+previewDY))
	draw.Draw(out, label.Bounds().Add(image.Pt(previewMarginXPx, previewDY)), label, image.Point{}, draw.Src)

	if err := p.drawGuides(out, lw, lh, meta); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Preview) drawGuides(dst *image.RGBA, lw, lh int, meta Meta) error {
	pw, ph := dst.Bounds().Dx(), dst.Bounds().Dy()
	xm, ym := meta.HorizontalOffsetPx, meta.VerticalOffsetPx

	payloadMarkY := ph - previewMarginYPx + previewDY
	labelMarkY := ph - previewDY
	payloadMarkX := previewMarginXPx - previewDX
	labelMarkX := previewDX
	g := p.Guides

	// margins
	vline(dst, previewMarginXPx+xm, 0, payloadMarkY, g.Margin)
	vline(dst, previewMarginXPx+lw-xm, 0, payloadMarkY, g.Margin)
	hline(dst, payloadMarkX, pw, previewDY+ym, g.Margin)
	hline(dst, payloadMarkX, pw, previewDY+lh-ym, g.Margin)

	// sizes
	hline(dst, previewMarginXPx+xm, previewMarginXPx+lw-xm, payloadMarkY, g.Mark)
	hline(dst, previewMarginXPx, previewMarginXPx+lw, labelMarkY, g.Mark)
	vline(dst, payloadMarkX, previewDY+ym, previewDY+lh-ym, g.Mark)
	vline(dst, labelMarkX, previewDY, previewDY+lh, g.Mark)

	face, err := newFace(nil, previewFontPx)
	if err != nil {
		return err
	}
	defer face.Close()

	labels := []struct {
		x, y int
		px   int
	}{
		{previewMarginXPx + lw/2, payloadMarkY, lw - 2*xm},
		{previewMarginXPx + lw/2, labelMarkY, lw},
		{payloadMarkX, lh / 2, lh - 2*ym},
		{labelMarkX, previewDY + lh/2 + previewDY, lh},
	}
	for _, l := range labels {
		drawCenteredLabel(dst, face, l.x, l.y, fmt.Sprintf("%g mm", util.PxToMm(l.px)), g.Text)
	}
	return nil
}

func hline(dst *image.RGBA, x0, x1, y int, c color.Color) {
	for x := x0; x <= x1; x++ {
		dst.Set(x, y, c)
	}
}

func vline(dst *image.RGBA, x, y0, y1 int, c color.Color) {
	for y := y0; y <= y1; y++ {
		dst.Set(x, y, c)
	}
}

// drawCenteredLabel clears a box around (cx, cy) and writes s centered in it.
func drawCenteredLabel(dst *image.RGBA, face font.Face, cx, cy int, s string, c color.Color) {
	w := textWidth(face, s)
	m := face.Metrics()
	h := (m.Ascent + m.Descent).Ceil()
	box := image.Rect(cx-w/2, cy-h/2, cx-w/2+w, cy-h/2+h)
	draw.Draw(dst, box, image.Transparent, image.Point{}, draw.Src)

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(box.Min.X, box.Min.Y+m.Ascent.Ceil()),
	}
	d.DrawString(s)
}
