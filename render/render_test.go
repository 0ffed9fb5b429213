package render

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	imgInternal "github.com/AlexStarov/labelprinter-GoLang-lib/image"
)

func TestHorizontallyCombinedWidthLaw(t *testing.T) {
	ctx := NewContext(10)
	e := NewHorizontallyCombined(Empty{WidthPx: 3}, Empty{WidthPx: 5}, Empty{WidthPx: 7})
	b, err := e.Render(ctx)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b.Width() != 3+5+7+2*DefaultPadding || b.Height() != 10 {
		t.Fatalf("unexpected size %dx%d", b.Width(), b.Height())
	}
}

func TestHorizontallyCombinedDegenerate(t *testing.T) {
	ctx := NewContext(10)

	b, err := (&HorizontallyCombined{}).Render(ctx)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b.Width() != 1 || b.Height() != 10 {
		t.Fatalf("zero engines: got %dx%d", b.Width(), b.Height())
	}

	single := SamplePattern{}
	want, _ := single.Render(ctx)
	got, err := NewHorizontallyCombined(single).Render(ctx)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("single engine must be returned unchanged")
	}
}

type fixedEngine struct{ w, h int }

func (f fixedEngine) Render(Context) (*imgInternal.Bitmap, error) {
	b := imgInternal.NewBitmap(f.w, f.h)
	b.FillRect(0, 0, f.w, f.h, true)
	return b, nil
}

func TestHorizontallyCombinedCentersVertically(t *testing.T) {
	e := &HorizontallyCombined{Engines: []Engine{fixedEngine{2, 10}, fixedEngine{2, 4}}, Padding: 1}
	b, err := e.Render(NewContext(10))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b.Bit(3, 2) || !b.Bit(3, 3) || !b.Bit(3, 6) || b.Bit(3, 7) {
		t.Fatalf("short child not centered:\n%s", b)
	}
}

func TestMarginsJustify(t *testing.T) {
	tests := []struct {
		name     string
		minWidth int
		justify  Direction
		want     int
		width    int
	}{
		{"left", 0, Left, 20, 140},
		{"center", 0, Center, 20, 140},
		{"right", 0, Right, 20, 140},
		{"left min", 200, Left, 20, 200},
		{"center min", 200, Center, 50, 200},
		{"right min", 200, Right, 80, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMargins(Empty{WidthPx: 100}, ModePreview, MarginOptions{
				Justify:                   tt.justify,
				VisibleHorizontalMarginPx: 20,
				MinWidthPx:                tt.minWidth,
			})
			if err != nil {
				t.Fatalf("NewMargins: %v", err)
			}
			b, meta, err := m.RenderWithMeta(NewContext(30))
			if err != nil {
				t.Fatalf("RenderWithMeta: %v", err)
			}
			if b.Width() != tt.width {
				t.Errorf("width = %d, want %d", b.Width(), tt.width)
			}
			if diff := cmp.Diff(Meta{HorizontalOffsetPx: tt.want}, meta); diff != "" {
				t.Errorf("meta mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMarginsTooBig(t *testing.T) {
	m, err := NewMargins(Empty{WidthPx: 500}, ModePrint, MarginOptions{
		VisibleHorizontalMarginPx: 10,
		MaxWidthPx:                400,
	})
	if err != nil {
		t.Fatalf("NewMargins: %v", err)
	}
	_, _, err = m.RenderWithMeta(NewContext(30))
	var tooBig *BitmapTooBigError
	if !errors.As(err, &tooBig) {
		t.Fatalf("expected BitmapTooBigError, got %v", err)
	}
	if tooBig.WidthPx != 520 || tooBig.MaxWidthPx != 400 {
		t.Fatalf("unexpected values %+v", tooBig)
	}
}

func TestMarginsPrintMode(t *testing.T) {
	m, err := NewPrintPayload(fixedEngine{10, 20}, MarginOptions{
		Justify:                   Center,
		VisibleHorizontalMarginPx: 57,
		LabelerMargin:             LabelerMargin{Horizontal: 57, Vertical: 3},
	})
	if err != nil {
		t.Fatalf("NewPrintPayload: %v", err)
	}
	b, meta, err := m.RenderWithMeta(NewContext(20))
	if err != nil {
		t.Fatalf("RenderWithMeta: %v", err)
	}
	if diff := cmp.Diff(Meta{HorizontalOffsetPx: 0, VerticalOffsetPx: 3}, meta); diff != "" {
		t.Fatalf("meta mismatch (-want +got):\n%s", diff)
	}
	if b.Width() != 10+2*57 || b.Height() != 26 {
		t.Fatalf("unexpected size %dx%d", b.Width(), b.Height())
	}
	if !b.Bit(0, 3) || b.Bit(0, 2) || b.Bit(10, 3) {
		t.Fatalf("payload misplaced")
	}
}

func TestMarginsNoMarginsOverride(t *testing.T) {
	m, err := NewMargins(Empty{WidthPx: 10}, ModePrint, MarginOptions{
		VisibleHorizontalMarginPx: 20,
		LabelerMargin:             LabelerMargin{Horizontal: 57, Vertical: 4},
		MinWidthPx:                300,
		Overrides:                 MarginOverrides{NoMargins: true},
	})
	if err != nil {
		t.Fatalf("NewMargins: %v", err)
	}
	b, meta, err := m.RenderWithMeta(NewContext(20))
	if err != nil {
		t.Fatalf("RenderWithMeta: %v", err)
	}
	if b.Width() != 10 || b.Height() != 28 {
		t.Fatalf("unexpected size %dx%d", b.Width(), b.Height())
	}
	if meta != (Meta{HorizontalOffsetPx: 0, VerticalOffsetPx: 4}) {
		t.Fatalf("unexpected meta %+v", meta)
	}
}

func TestMarginsOffsetNeverBelowVisible(t *testing.T) {
	for _, justify := range []Direction{Left, Center, Right} {
		for visible := 0; visible < 30; visible += 7 {
			for minWidth := 0; minWidth < 200; minWidth += 33 {
				for payload := 0; payload < 90; payload += 13 {
					offset, _, err := horizontalPlacement(payload, visible, minWidth, 0, justify)
					if err != nil {
						t.Fatalf("%s %d %d %d: %v", justify, visible, minWidth, payload, err)
					}
					if offset < visible {
						t.Fatalf("%s %d %d %d: offset %d", justify, visible, minWidth, payload, offset)
					}
				}
			}
		}
	}
}

func TestMarginsRejectsInvalidJustify(t *testing.T) {
	_, err := NewMargins(Empty{}, ModePrint, MarginOptions{Justify: "middle"})
	if !errors.Is(err, ErrInvalidJustify) {
		t.Fatalf("expected ErrInvalidJustify, got %v", err)
	}
}

func TestRunLengths(t *testing.T) {
	tests := map[string][]int{
		"11010111": {2, -1, 1, -1, 3},
		"0011":     {-2, 2},
		"1":        {1},
		"":         nil,
	}
	for in, want := range tests {
		got, err := RunLengths(in)
		if err != nil {
			t.Fatalf("RunLengths(%q): %v", in, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("RunLengths(%q) mismatch (-want +got):\n%s", in, diff)
		}
	}
	if _, err := RunLengths("10a"); err == nil {
		t.Fatalf("expected error for invalid module")
	}
}

func TestBarcodeGeometry(t *testing.T) {
	b, err := NewBarcode("1001").Render(NewContext(64))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b.Width() != 21 || b.Height() != 64 {
		t.Fatalf("unexpected size %dx%d", b.Width(), b.Height())
	}
	// quiet zone, first bar at 6..7, gap 8..11, bar 12..13
	for x, want := range map[int]bool{5: false, 6: true, 7: true, 8: false, 11: false, 12: true, 13: true, 14: false} {
		if got := b.Bit(x, 30); got != want {
			t.Errorf("bit(%d) = %v, want %v", x, got, want)
		}
	}
	if b.Bit(6, 7) || !b.Bit(6, 8) || !b.Bit(6, 55) || b.Bit(6, 56) {
		t.Errorf("vertical margins not respected")
	}
}

type failingSymbology struct{}

func (failingSymbology) Name() string { return "ean13" }
func (failingSymbology) Encode(string) (Symbol, error) {
	return Symbol{}, errors.New("invalid character")
}

func TestBarcodeEncoderFailure(t *testing.T) {
	_, err := (&Barcode{Content: "x", Symbology: failingSymbology{}}).Render(NewContext(64))
	var be *BarcodeRenderError
	if !errors.As(err, &be) || be.Symbology != "ean13" {
		t.Fatalf("expected BarcodeRenderError, got %v", err)
	}
}

func TestBarcodeWithText(t *testing.T) {
	ctx := NewContext(64)
	plain, err := NewBarcode("110011001100").Render(ctx)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	e := &BarcodeWithText{Barcode: *NewBarcode("110011001100"), Caption: "12"}
	b, err := e.Render(ctx)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b.Width() != plain.Width() || b.Height() != plain.Height() {
		t.Fatalf("caption changed barcode size")
	}

	e.Align = "top"
	if _, err := e.Render(ctx); !errors.Is(err, ErrInvalidAlign) {
		t.Fatalf("expected ErrInvalidAlign, got %v", err)
	}
}

func TestTextLayout(t *testing.T) {
	text := &Text{Lines: []string{"a"}, FrameWidthPx: 5}
	got := text.Layout(64)
	want := TextLayout{LineHeight: 64, FontSizePx: 58, FontOffsetPx: 3, FrameWidthPx: 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("layout mismatch (-want +got):\n%s", diff)
	}

	two := (&Text{Lines: []string{"a", "b"}}).Layout(64)
	if two.LineHeight != 32 || two.FontSizePx != 29 || two.FrameWidthPx != 0 {
		t.Fatalf("unexpected two line layout %+v", two)
	}
}

func TestDefaultFontParsedOnce(t *testing.T) {
	a, err := DefaultFont()
	if err != nil {
		t.Fatal(err)
	}
	b, err := DefaultFont()
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("DefaultFont returned distinct fonts")
	}
}

func TestTextRenderConcurrent(t *testing.T) {
	ctx := NewContext(64)
	want, err := NewText("Hello").Render(ctx)
	if err != nil {
		t.Fatal(err)
	}
	results := make(chan *imgInternal.Bitmap, 8)
	for i := 0; i < cap(results); i++ {
		go func() {
			b, err := NewText("Hello").Render(ctx)
			if err != nil {
				t.Error(err)
			}
			results <- b
		}()
	}
	for i := 0; i < cap(results); i++ {
		if got := <-results; !want.Equal(got) {
			t.Errorf("concurrent render %d differs", i)
		}
	}
}

func TestTextRender(t *testing.T) {
	ctx := NewContext(32)

	empty, err := (&Text{}).Render(ctx)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if empty.Width() != 1 || empty.Height() != 32 {
		t.Fatalf("empty text: got %dx%d", empty.Width(), empty.Height())
	}

	b, err := NewText("Hello").Render(ctx)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b.Height() != 32 || b.Width() < 10 || b.Count() == 0 {
		t.Fatalf("unexpected text bitmap %dx%d (%d set)", b.Width(), b.Height(), b.Count())
	}

	framed := NewText("Hello")
	framed.FrameWidthPx = 1
	fb, err := framed.Render(ctx)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !fb.Bit(0, 0) || !fb.Bit(fb.Width()-1, fb.Height()-1) {
		t.Fatalf("frame missing")
	}

	if _, err := (&Text{Lines: []string{"x"}, Align: "up"}).Render(ctx); !errors.Is(err, ErrInvalidAlign) {
		t.Fatalf("expected ErrInvalidAlign, got %v", err)
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	ctx := NewContext(64)
	engines := map[string]Engine{
		"text":     NewText("abc", "def"),
		"barcode":  NewBarcode("1011001"),
		"qr":       &QR{Content: "hello"},
		"pattern":  SamplePattern{},
		"combined": NewHorizontallyCombined(NewText("a"), &QR{Content: "b"}),
	}
	for name, e := range engines {
		first, err := e.Render(ctx)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		second, err := e.Render(ctx)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !first.Equal(second) {
			t.Errorf("%s: renders differ", name)
		}
	}
}

func TestQR(t *testing.T) {
	if _, err := (&QR{}).Render(NewContext(64)); !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}

	var tooBig *QrTooBigError
	if _, err := (&QR{Content: "hello"}).Render(NewContext(10)); !errors.As(err, &tooBig) {
		t.Fatalf("expected QrTooBigError, got %v", err)
	}

	b, err := (&QR{Content: "hello"}).Render(NewContext(64))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	// version 1 is 21 modules plus a one module border on each side
	if b.Width() != 46 || b.Height() != 64 {
		t.Fatalf("unexpected size %dx%d", b.Width(), b.Height())
	}
	// scale 2, vertical offset 9: the finder pattern corner sits at (2, 11)
	if !b.Bit(2, 11) || b.Bit(0, 11) || b.Bit(2, 9) {
		t.Fatalf("finder pattern misplaced")
	}
}

func TestSamplePattern(t *testing.T) {
	b, err := SamplePattern{HeightPx: 64}.Render(NewContext(10))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b.Height() != 64 {
		t.Fatalf("height = %d", b.Height())
	}
	// first staggered line: left half on row 0, right half on row 1
	if !b.Bit(0, 0) || b.Bit(0, 1) || b.Bit(patternStaggerWidth-1, 0) || !b.Bit(patternStaggerWidth-1, 1) {
		t.Fatalf("staggered lines wrong")
	}
	// vertical comb follows
	if !b.Bit(patternStaggerWidth, 30) || b.Bit(patternStaggerWidth+1, 30) {
		t.Fatalf("vertical comb wrong")
	}
}

func writePNG(t *testing.T, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(t.TempDir(), "pic.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPicture(t *testing.T) {
	path := writePNG(t, 20, 100, color.Black)
	p, err := NewPicture(path)
	if err != nil {
		t.Fatalf("NewPicture: %v", err)
	}
	b, err := p.Render(NewContext(50))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b.Width() != 10 || b.Height() != 50 || b.Count() != 500 {
		t.Fatalf("unexpected bitmap %dx%d (%d set)", b.Width(), b.Height(), b.Count())
	}

	small, err := p.Render(NewContext(200))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if small.Width() != 20 || small.Height() != 100 {
		t.Fatalf("picture must never be upscaled, got %dx%d", small.Width(), small.Height())
	}

	white := writePNG(t, 4, 4, color.White)
	wb, err := (&Picture{Path: white}).Render(NewContext(50))
	if err != nil || wb.Count() != 0 {
		t.Fatalf("white picture burned %d pixels (%v)", wb.Count(), err)
	}
}

func TestPictureErrors(t *testing.T) {
	if _, err := NewPicture(filepath.Join(t.TempDir(), "nope.png")); !errors.Is(err, ErrPictureNotFound) {
		t.Fatalf("expected ErrPictureNotFound, got %v", err)
	}

	garbage := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (&Picture{Path: garbage}).Render(NewContext(50)); !errors.Is(err, ErrUnidentifiedImage) {
		t.Fatalf("expected ErrUnidentifiedImage, got %v", err)
	}
}

func TestPreviewShowMargins(t *testing.T) {
	p, err := NewPreview(Empty{WidthPx: 100}, MarginOptions{
		VisibleHorizontalMarginPx: 20,
		LabelerMargin:             LabelerMargin{Vertical: 4},
	})
	if err != nil {
		t.Fatalf("NewPreview: %v", err)
	}

	ctx := NewContext(60)
	plain, err := p.RenderPreview(ctx)
	if err != nil {
		t.Fatalf("RenderPreview: %v", err)
	}
	if plain.Bounds().Dx() != 140 || plain.Bounds().Dy() != 68 {
		t.Fatalf("unexpected plain size %v", plain.Bounds())
	}

	ctx.PreviewShowMargins = true
	framed, err := p.RenderPreview(ctx)
	if err != nil {
		t.Fatalf("RenderPreview: %v", err)
	}
	if framed.Bounds().Dx() != 140+previewMarginXPx+previewDX || framed.Bounds().Dy() != 68+previewMarginYPx+previewDY {
		t.Fatalf("unexpected framed size %v", framed.Bounds())
	}
	if got := framed.RGBAAt(previewMarginXPx+20, 0); got != LightGuides.Margin {
		t.Fatalf("left margin guide missing, got %v", got)
	}
}
