package printer

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/gousb"

	"github.com/AlexStarov/labelprinter-GoLang-lib/config"
	"github.com/AlexStarov/labelprinter-GoLang-lib/render"
)

func mustDevice(t *testing.T, product gousb.ID) DeviceConfig {
	t.Helper()
	d, err := LookupDevice(VendorDymo, product)
	if err != nil {
		t.Fatalf("LookupDevice: %v", err)
	}
	return d
}

func opener(ft *fakeTransport) Opener {
	return func() (Transport, error) { return ft, nil }
}

func TestNewLabeler(t *testing.T) {
	pnp := mustDevice(t, 0x1002)

	l, err := NewLabeler(pnp, config.Default())
	if err != nil {
		t.Fatalf("NewLabeler: %v", err)
	}
	if got := l.RenderContext().HeightPx; got != 64 {
		t.Errorf("render height %d, want 64", got)
	}
	opts, err := l.MarginOptions()
	if err != nil {
		t.Fatalf("MarginOptions: %v", err)
	}
	want := render.MarginOptions{
		Justify:                   render.Center,
		VisibleHorizontalMarginPx: 56,
		LabelerMargin:             render.LabelerMargin{Horizontal: 57, Vertical: 0},
	}
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Errorf("margin options mismatch (-want +got):\n%s", diff)
	}

	if err := l.SetTapeSize(6); err != nil {
		t.Fatalf("SetTapeSize: %v", err)
	}
	if got := l.RenderContext().HeightPx; got != 30 {
		t.Errorf("6 mm render height %d, want 30", got)
	}

	conf := config.Default()
	conf.TapeSizeMM = 19
	if _, err := NewLabeler(pnp, conf); !errors.Is(err, ErrUnsupportedTapeSize) {
		t.Errorf("19 mm on PnP: got %v", err)
	}
}

func TestLabelerNoMarginsOverride(t *testing.T) {
	conf := config.Default()
	conf.DevModeNoMargins = true
	l, err := NewLabeler(mustDevice(t, 0x1002), conf)
	if err != nil {
		t.Fatalf("NewLabeler: %v", err)
	}
	payload, err := l.Payload(render.Empty{WidthPx: 10})
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	b, err := payload.Render(l.RenderContext())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b.Width() != 10 || b.Height() != 64 {
		t.Errorf("got %dx%d, want 10x64", b.Width(), b.Height())
	}
}

func TestLabelerPrintLegacy(t *testing.T) {
	l, err := NewLabeler(mustDevice(t, 0x1002), config.Default())
	if err != nil {
		t.Fatalf("NewLabeler: %v", err)
	}
	ft := &fakeTransport{defaultReply: []byte{0x00}}
	if err := l.Connect(opener(ft)); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := l.PrintEngine(context.Background(), render.Empty{WidthPx: 10}); err != nil {
		t.Fatalf("PrintEngine: %v", err)
	}

	stream := ft.written()
	// 10 px payload plus 56 px visible margin on both sides, one line per column.
	if got := bytes.Count(stream, []byte{SYN}); got != 122 {
		t.Errorf("printed %d lines, want 122", got)
	}
	if !bytes.Contains(stream, []byte{ESC, 'D', 8}) {
		t.Errorf("rows of 8 bytes not announced")
	}
	if ft.closed != 1 {
		t.Errorf("device closed %d times, want 1", ft.closed)
	}
	if err := l.Print(context.Background(), nil); !errors.Is(err, ErrNotConnected) {
		t.Errorf("print after release: got %v", err)
	}
}

func TestLabelerPrintLW550(t *testing.T) {
	conf := config.Default()
	conf.TapeSizeMM = 19
	l, err := NewLabeler(mustDevice(t, 0x0028), conf)
	if err != nil {
		t.Fatalf("NewLabeler: %v", err)
	}
	ft := &fakeTransport{}
	if err := l.Connect(opener(ft)); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	bitmap := checkerboard(5, 16)
	if err := l.Print(context.Background(), bitmap); err != nil {
		t.Fatalf("Print: %v", err)
	}

	if len(ft.writes) != 6 {
		t.Fatalf("got %d commands, want 6", len(ft.writes))
	}
	if !bytes.HasPrefix(ft.writes[0], []byte{ESC, 's'}) {
		t.Errorf("job does not start with ESC s: % x", ft.writes[0])
	}
	data := ft.writes[3]
	if !bytes.HasPrefix(data, []byte{ESC, 'D', 1, 2}) {
		t.Fatalf("label data command expected, got % x", data[:4])
	}
	if w, h := binary.BigEndian.Uint32(data[4:8]), binary.BigEndian.Uint32(data[8:12]); w != 5 || h != 2 {
		t.Errorf("label header %dx%d, want 5x2", w, h)
	}
	if diff := cmp.Diff([]byte{ESC, 'Q'}, ft.writes[5]); diff != "" {
		t.Errorf("last command mismatch (-want +got):\n%s", diff)
	}
	if ft.closed != 1 {
		t.Errorf("device closed %d times, want 1", ft.closed)
	}
}

func TestLabelerPrintErrors(t *testing.T) {
	l, err := NewLabeler(mustDevice(t, 0x1002), config.Default())
	if err != nil {
		t.Fatalf("NewLabeler: %v", err)
	}

	ft := &fakeTransport{failWrite: errBrokenPipe}
	if err := l.Connect(opener(ft)); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	err = l.Print(context.Background(), checkerboard(4, 64))
	var pe *PrintError
	if !errors.As(err, &pe) || !errors.Is(err, errBrokenPipe) {
		t.Fatalf("got %v, want a PrintError wrapping the write error", err)
	}
	if ft.closed != 1 {
		t.Errorf("device must be released on failure, closed %d times", ft.closed)
	}

	if err := l.Connect(func() (Transport, error) { return nil, ErrUnknownDevice }); !errors.As(err, &pe) {
		t.Errorf("connect failure: got %v", err)
	}
}

func TestLabelerLengthLimits(t *testing.T) {
	// 40 mm is 283 px; 56 px of visible margin on each end leaves 171.
	tests := []struct {
		name    string
		edit    func(*config.Config)
		payload int
		wantW   int
		wantErr bool
	}{
		{name: "fixed pads short payload", edit: func(c *config.Config) { c.FixedLengthMM = 40 }, payload: 10, wantW: 171},
		{name: "fixed rejects long payload", edit: func(c *config.Config) { c.FixedLengthMM = 40 }, payload: 100, wantErr: true},
		{name: "max accepts fitting payload", edit: func(c *config.Config) { c.MaxLengthMM = 40 }, payload: 50, wantW: 162},
		{name: "max rejects long payload", edit: func(c *config.Config) { c.MaxLengthMM = 40 }, payload: 60, wantErr: true},
		{name: "min subtracts margins", edit: func(c *config.Config) { c.MinLengthMM = 40 }, payload: 10, wantW: 171},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := config.Default()
			tt.edit(&conf)
			l, err := NewLabeler(mustDevice(t, 0x1002), conf)
			if err != nil {
				t.Fatalf("NewLabeler: %v", err)
			}
			payload, err := l.Payload(render.Empty{WidthPx: tt.payload})
			if err != nil {
				t.Fatalf("Payload: %v", err)
			}
			b, err := payload.Render(l.RenderContext())
			if tt.wantErr {
				var big *render.BitmapTooBigError
				if !errors.As(err, &big) || big.MaxWidthPx != 171 {
					t.Fatalf("got %v, want BitmapTooBigError against 171 px", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if b.Width() != tt.wantW {
				t.Errorf("label width %d, want %d", b.Width(), tt.wantW)
			}
		})
	}
}

func TestLabelerPrintTooLong(t *testing.T) {
	conf := config.Default()
	conf.MaxLengthMM = 40
	l, err := NewLabeler(mustDevice(t, 0x1002), conf)
	if err != nil {
		t.Fatalf("NewLabeler: %v", err)
	}
	ft := &fakeTransport{defaultReply: []byte{0x00}}
	if err := l.Connect(opener(ft)); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	var big *render.BitmapTooBigError
	if err := l.PrintEngine(context.Background(), render.Empty{WidthPx: 500}); !errors.As(err, &big) {
		t.Fatalf("got %v, want BitmapTooBigError", err)
	}
	if len(ft.writes) != 0 {
		t.Errorf("nothing may be sent for an oversized label, got %d writes", len(ft.writes))
	}
}

func TestLabelerMaxLengthInsideMargins(t *testing.T) {
	conf := config.Default()
	conf.MaxLengthMM = 10 // 70 px, less than both margins
	l, err := NewLabeler(mustDevice(t, 0x1002), conf)
	if err != nil {
		t.Fatalf("NewLabeler: %v", err)
	}
	if _, err := l.MarginOptions(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v, want ErrInvalidArgument", err)
	}
}
