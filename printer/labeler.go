package printer

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/AlexStarov/labelprinter-GoLang-lib/config"
	imgInternal "github.com/AlexStarov/labelprinter-GoLang-lib/image"
	logInternal "github.com/AlexStarov/labelprinter-GoLang-lib/log"
	"github.com/AlexStarov/labelprinter-GoLang-lib/render"
	"github.com/AlexStarov/labelprinter-GoLang-lib/util"
)

// Opener opens the transport of a labeler, for example
// func() (Transport, error) { return OpenUSB(cfg) }.
type Opener func() (Transport, error)

// Labeler ties a device descriptor, the selected tape and the user
// configuration together. It renders payloads to the device geometry and
// prints them through whichever protocol the device speaks.
type Labeler struct {
	Device DeviceConfig

	conf       config.Config
	tapeSizeMM int
	tape       TapePrintProperties

	mu sync.Mutex
	t  Transport

	log *zap.SugaredLogger
}

// NewLabeler checks the device and the configured tape size.
func NewLabeler(dev DeviceConfig, conf config.Config) (*Labeler, error) {
	if err := dev.Validate(); err != nil {
		return nil, err
	}
	if err := config.Validate(conf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	l := &Labeler{Device: dev, conf: conf, log: logInternal.Named("labeler").Sugar()}
	if err := l.SetTapeSize(conf.TapeSizeMM); err != nil {
		return nil, err
	}
	return l, nil
}

// SetTapeSize selects the inserted tape.
func (l *Labeler) SetTapeSize(mm int) error {
	props, err := l.Device.TapePrintProperties(mm)
	if err != nil {
		return err
	}
	l.tapeSizeMM, l.tape = mm, props
	return nil
}

func (l *Labeler) TapeSizeMM() int { return l.tapeSizeMM }

func (l *Labeler) TapePrintProperties() TapePrintProperties { return l.tape }

// RenderContext returns the context engines render into: the usable band
// of the selected tape.
func (l *Labeler) RenderContext() render.Context {
	return render.NewContext(l.tape.UsableTapeHeightPx)
}

// MarginOptions converts the configuration into pixel margins.
func (l *Labeler) MarginOptions() (render.MarginOptions, error) {
	justify, err := render.ParseDirection(l.conf.Justify)
	if err != nil {
		return render.MarginOptions{}, err
	}
	minMM, maxMM := l.conf.LengthLimitsMM()
	maxWidthPx := 0
	if maxMM > 0 {
		if maxWidthPx = l.payloadWidthPx(maxMM); maxWidthPx == 0 {
			return render.MarginOptions{}, fmt.Errorf("%w: %v mm label leaves no room inside %d px margins", ErrInvalidArgument, maxMM, l.conf.MarginPx)
		}
	}
	return render.MarginOptions{
		Justify:                   justify,
		VisibleHorizontalMarginPx: l.conf.MarginPx,
		LabelerMargin: render.LabelerMargin{
			Horizontal: l.Device.HeadToCutterPx(),
			Vertical:   l.tape.TopMarginPx,
		},
		MinWidthPx: l.payloadWidthPx(minMM),
		MaxWidthPx: maxWidthPx,
		Overrides:  render.MarginOverrides{NoMargins: l.conf.DevModeNoMargins},
	}, nil
}

// payloadWidthPx converts a label length into the pixels left once the
// visible margin is taken off both ends.
func (l *Labeler) payloadWidthPx(mm float64) int {
	return max(0, util.MmToPx(mm)-2*l.conf.MarginPx)
}

// Payload wraps engine with the print margins of this labeler.
func (l *Labeler) Payload(engine render.Engine) (*render.Margins, error) {
	opts, err := l.MarginOptions()
	if err != nil {
		return nil, err
	}
	return render.NewPrintPayload(engine, opts)
}

// Preview wraps engine with the preview margins of this labeler.
func (l *Labeler) Preview(engine render.Engine) (*render.Preview, error) {
	opts, err := l.MarginOptions()
	if err != nil {
		return nil, err
	}
	return render.NewPreview(engine, opts)
}

// RetryPolicy is the configured NFC poll policy.
func (l *Labeler) RetryPolicy() RetryPolicy {
	delay, err := l.conf.RetryDelay()
	if err != nil {
		return DefaultRetryPolicy
	}
	return RetryPolicy{Attempts: l.conf.Retry.Attempts, Delay: delay}
}

// Connect opens the device. A previous connection is closed first.
func (l *Labeler) Connect(open Opener) error {
	t, err := open()
	if err != nil {
		return printError("connect", err)
	}
	l.mu.Lock()
	prev := l.t
	l.t = t
	l.mu.Unlock()
	if prev != nil {
		cerr := prev.Close()
		logInternal.PrintIfErr("close previous connection", &cerr)
	}
	l.log.Infof("connected to %s (%s protocol)", l.Device.Name, l.Device.Protocol)
	return nil
}

// Disconnect releases the device. It is a no-op when not connected.
func (l *Labeler) Disconnect() error {
	l.mu.Lock()
	t := l.t
	l.t = nil
	l.mu.Unlock()
	if t == nil {
		return nil
	}
	return t.Close()
}

// PrintEngine renders engine with print margins and prints it.
func (l *Labeler) PrintEngine(ctx context.Context, engine render.Engine) error {
	payload, err := l.Payload(engine)
	if err != nil {
		return err
	}
	bitmap, err := payload.Render(l.RenderContext())
	if err != nil {
		return err
	}
	return l.Print(ctx, bitmap)
}

// Print sends a margin adjusted bitmap to the connected device. The device
// is released afterwards, also on failure.
func (l *Labeler) Print(ctx context.Context, bitmap *imgInternal.Bitmap) (err error) {
	l.mu.Lock()
	t := l.t
	l.mu.Unlock()
	if t == nil {
		return printError("print", ErrNotConnected)
	}
	defer func() {
		if cerr := l.Disconnect(); cerr != nil && err == nil {
			err = printError("release device", cerr)
		}
	}()

	l.log.Debugf("printing %dx%d px on %d mm tape", bitmap.Width(), bitmap.Height(), l.tapeSizeMM)
	switch l.Device.Protocol {
	case ProtocolLegacy, ProtocolBLE:
		err = l.printLegacy(ctx, t, bitmap)
	case ProtocolLW550:
		err = l.printLW550(ctx, t, bitmap)
	default:
		err = fmt.Errorf("%w: protocol %s", ErrInternal, l.Device.Protocol)
	}
	return printError("print", err)
}

func (l *Labeler) printLegacy(ctx context.Context, t Transport, bitmap *imgInternal.Bitmap) error {
	rows, err := imgInternal.ToRows(bitmap, imgInternal.RowOrder{
		MirrorRows:  l.Device.MirrorRows,
		ReverseBits: l.Device.ReverseBits,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if limit := imgInternal.RowBytes(l.Device.PrintHeadPx); len(rows) > 0 && len(rows[0]) > limit {
		l.log.Warnf("row of %d bytes is wider than the %d px print head", len(rows[0]), l.Device.PrintHeadPx)
	}
	return NewLegacyEncoder(t, l.tapeSizeMM, l.conf.Synwait).PrintLabel(ctx, rows)
}

func (l *Labeler) printLW550(ctx context.Context, t Transport, bitmap *imgInternal.Bitmap) error {
	label, err := LabelDataFromBitmap(bitmap)
	if err != nil {
		return err
	}
	return NewLW550(t, l.RetryPolicy()).PrintLabels(ctx, []LabelData{label})
}
