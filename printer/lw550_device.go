package printer

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	imgInternal "github.com/AlexStarov/labelprinter-GoLang-lib/image"
	logInternal "github.com/AlexStarov/labelprinter-GoLang-lib/log"
)

var lastJobID atomic.Uint32

// nextJobID hands out process wide unique print job ids.
func nextJobID() uint32 {
	return lastJobID.Add(1)
}

// LW550 executes framed commands on one transport. It is not safe for
// concurrent use.
type LW550 struct {
	t     Transport
	retry RetryPolicy
	log   *zap.SugaredLogger
}

// NewLW550 wraps an opened transport. A zero policy selects
// DefaultRetryPolicy.
func NewLW550(t Transport, retry RetryPolicy) *LW550 {
	if retry.Attempts == 0 {
		retry = DefaultRetryPolicy
	}
	return &LW550{t: t, retry: retry, log: logInternal.Named("lw550").Sugar()}
}

// Execute writes one command.
func (d *LW550) Execute(ctx context.Context, cmd Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.log.Debugf("%s: %s", cmd.Description, abbreviate(cmd.Hex()))
	if err := writeAll(d.t, cmd.Payload); err != nil {
		return fmt.Errorf("%s: %w", cmd.Description, err)
	}
	return nil
}

// ExecuteBatch writes every command of b in order.
func (d *LW550) ExecuteBatch(ctx context.Context, b CommandBatch) error {
	d.log.Debugf("batch %q: %d commands", b.Title, len(b.Commands))
	for _, c := range b.Commands {
		if err := d.Execute(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// Bounds on empty reads while waiting for a response. Serial ports report a
// read timeout as (0, nil) and BLE returns an empty characteristic the same
// way.
const (
	maxIdleReads  = 20
	idleReadPause = 10 * time.Millisecond
)

// query executes cmd and reads exactly size bytes back.
func (d *LW550) query(ctx context.Context, cmd Command, size int) ([]byte, error) {
	if err := d.Execute(ctx, cmd); err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	got, idle := 0, 0
	for got < size {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", cmd.Description, err)
		}
		n, err := d.t.Read(buf[got:])
		got += n
		switch {
		case got >= size:
			return buf, nil
		case err == io.EOF || err == io.ErrUnexpectedEOF:
			return nil, fmt.Errorf("%s: %w: got %d of %d bytes", cmd.Description, ErrShortResponse, got, size)
		case err != nil:
			return nil, fmt.Errorf("%s: read: %w", cmd.Description, err)
		case n > 0:
			idle = 0
			continue
		}

		if idle++; idle >= maxIdleReads {
			return nil, fmt.Errorf("%s: %w: got %d of %d bytes after %d empty reads", cmd.Description, ErrShortResponse, got, size, idle)
		}
		timer := time.NewTimer(idleReadPause)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("%s: %w", cmd.Description, ctx.Err())
		case <-timer.C:
		}
	}
	return buf, nil
}

// Status requests and decodes the print engine status.
func (d *LW550) Status(ctx context.Context) (PrintEngineStatus, error) {
	b, err := d.query(ctx, RequestPrintEngineStatus(), PrintEngineStatusSize)
	if err != nil {
		return PrintEngineStatus{}, err
	}
	return DecodePrintEngineStatus(b)
}

// SkuInformation reads the consumable record, retrying while the NFC reader
// reports no data.
func (d *LW550) SkuInformation(ctx context.Context) (SkuInformation, error) {
	return Poll(ctx, d.retry, func(ctx context.Context) (Response[SkuInformation], error) {
		b, err := d.query(ctx, GetSkuInformation(), SkuInformationSize)
		if err != nil {
			return Response[SkuInformation]{}, err
		}
		resp, err := DecodeSkuInformation(b)
		if err == nil && resp.Outcome == NotReady {
			d.log.Debug("SKU information not ready yet")
		}
		return resp, err
	})
}

// Version requests and decodes the firmware version.
func (d *LW550) Version(ctx context.Context) (PrintEngineVersion, error) {
	b, err := d.query(ctx, RequestPrintEngineVersion(), PrintEngineVersionSize)
	if err != nil {
		return PrintEngineVersion{}, err
	}
	return DecodePrintEngineVersion(b)
}

// PrintLabels sends one print job holding labels.
func (d *LW550) PrintLabels(ctx context.Context, labels []LabelData) error {
	job, err := LabelPrintJob(labels, nextJobID())
	if err != nil {
		return err
	}
	return d.ExecuteBatch(ctx, job)
}

// LabelDataFromBitmap packs a label bitmap into LW550 raster data: one line
// per label column, top edge first, most significant bit first.
func LabelDataFromBitmap(b *imgInternal.Bitmap) (LabelData, error) {
	rows, err := imgInternal.ToRows(b, imgInternal.RowOrder{MirrorRows: true})
	if err != nil {
		return LabelData{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	height := imgInternal.RowBytes(b.Height())
	data := make([]byte, 0, len(rows)*height)
	for _, r := range rows {
		data = append(data, r...)
	}
	return NewLabelData(len(rows), height, data)
}

func abbreviate(s string) string {
	const limit = 64
	if len(s) <= limit {
		return s
	}
	return fmt.Sprintf("%s...(%d hex chars)", s[:limit], len(s))
}
