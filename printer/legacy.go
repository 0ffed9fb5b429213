package printer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logInternal "github.com/AlexStarov/labelprinter-GoLang-lib/log"
)

// Legacy protocol bytes.
const (
	ESC = 0x1B
	SYN = 0x16
)

const (
	// DefaultSynwait is the number of lines sent between two status polls.
	DefaultSynwait = 64

	// MaxLines is the largest number of lines sent as one label batch.
	MaxLines = 200

	statusResponseSize = 512
	chainMarkByte      = 0x99
)

// MaxBytesPerLine is the widest row the labeler accepts for a tape size.
func MaxBytesPerLine(tapeSizeMM int) int {
	return 8 * tapeSizeMM / 12
}

// LegacyHeightPx is the raster height addressed by MaxBytesPerLine.
func LegacyHeightPx(tapeSizeMM int) int {
	return MaxBytesPerLine(tapeSizeMM) * 8
}

type segment struct {
	data []byte
	line bool
}

// LegacyEncoder builds and sends ESC/SYN command streams. Commands are
// queued by the builder methods and go out on Send. An encoder serves one
// print operation on one transport and is not safe for concurrent use.
type LegacyEncoder struct {
	t          Transport
	synwait    int
	tapeSizeMM int

	pending  []segment
	response bool

	bytesPerLine    int
	hasBytesPerLine bool
	dotTab          int

	log *zap.SugaredLogger
}

// NewLegacyEncoder returns an encoder writing to t. A synwait of zero sends
// every command in one write.
func NewLegacyEncoder(t Transport, tapeSizeMM, synwait int) *LegacyEncoder {
	return &LegacyEncoder{
		t:          t,
		synwait:    max(synwait, 0),
		tapeSizeMM: tapeSizeMM,
		log:        logInternal.Named("legacy").Sugar(),
	}
}

func (e *LegacyEncoder) build(data ...byte) {
	e.pending = append(e.pending, segment{data: data})
}

// StatusRequest queues ESC A and marks the queue as expecting a response.
func (e *LegacyEncoder) StatusRequest() {
	e.build(ESC, 'A')
	e.response = true
}

// DotTab sets the bias text height, in bytes.
func (e *LegacyEncoder) DotTab(value int) error {
	if value < 0 || value > MaxBytesPerLine(e.tapeSizeMM) {
		return fmt.Errorf("%w: dot tab %d outside 0..%d", ErrInvalidArgument, value, MaxBytesPerLine(e.tapeSizeMM))
	}
	e.build(ESC, 'B', byte(value))
	e.dotTab = value
	e.hasBytesPerLine = false
	return nil
}

// TapeColor selects the tape color.
func (e *LegacyEncoder) TapeColor(value int) error {
	if value < 0 || value > 0xFF {
		return fmt.Errorf("%w: tape color %d", ErrInvalidArgument, value)
	}
	e.build(ESC, 'C', byte(value))
	return nil
}

// BytesPerLine declares the row length of the following lines. Nothing is
// queued when it does not change.
func (e *LegacyEncoder) BytesPerLine(value int) {
	if e.hasBytesPerLine && value == e.bytesPerLine {
		return
	}
	e.build(ESC, 'D', byte(value))
	e.bytesPerLine = value
	e.hasBytesPerLine = true
}

// Cut triggers the cutter.
func (e *LegacyEncoder) Cut() {
	e.build(ESC, 'E')
}

// Line queues one printed line.
func (e *LegacyEncoder) Line(row []byte) {
	e.BytesPerLine(len(row))
	data := make([]byte, 0, len(row)+1)
	data = append(data, SYN)
	data = append(data, row...)
	e.pending = append(e.pending, segment{data: data, line: true})
}

// ChainMark prints a dotted separator across the whole head.
func (e *LegacyEncoder) ChainMark() error {
	if err := e.DotTab(0); err != nil {
		return err
	}
	n := MaxBytesPerLine(e.tapeSizeMM)
	e.BytesPerLine(n)
	row := make([]byte, n)
	for i := range row {
		row[i] = chainMarkByte
	}
	e.Line(row)
	return nil
}

// SkipLines feeds n blank lines.
func (e *LegacyEncoder) SkipLines(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: skip %d lines", ErrInvalidArgument, n)
	}
	e.BytesPerLine(0)
	for i := 0; i < n; i++ {
		e.pending = append(e.pending, segment{data: []byte{SYN}, line: true})
	}
	return nil
}

// InitLabel queues the label initialization sequence of eight zero bytes.
func (e *LegacyEncoder) InitLabel() {
	e.build(make([]byte, 8)...)
}

// Reset drops a partially built command.
func (e *LegacyEncoder) Reset() {
	e.pending = nil
	e.response = false
}

// Send transmits the queued commands. With synwait enabled every chunk of
// at most synwait lines is preceded by a status round trip. When a status
// request was queued the final response is returned.
func (e *LegacyEncoder) Send(ctx context.Context) ([]byte, error) {
	if len(e.pending) == 0 {
		return nil, nil
	}
	pending := e.pending
	e.pending = nil

	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var chunk []segment
		if e.synwait == 0 {
			chunk, pending = pending, nil
		} else {
			if _, err := e.roundTrip([]byte{ESC, 'A'}); err != nil {
				return nil, err
			}
			chunk, pending = splitLines(pending, e.synwait)
		}

		data := joinSegments(chunk)
		e.log.Debugf("sending chunk of %d bytes", len(data))
		if err := writeAll(e.t, data); err != nil {
			return nil, fmt.Errorf("write chunk: %w", err)
		}
	}

	if !e.response {
		return nil, nil
	}
	e.response = false
	return e.read()
}

// Status asks for and returns the device status.
func (e *LegacyEncoder) Status(ctx context.Context) ([]byte, error) {
	e.StatusRequest()
	return e.Send(ctx)
}

// PrintLabel prints rows, splitting labels longer than MaxLines into
// several batches.
func (e *LegacyEncoder) PrintLabel(ctx context.Context, rows [][]byte) error {
	for len(rows) > MaxLines {
		if err := e.printBatch(ctx, rows[:MaxLines]); err != nil {
			return err
		}
		rows = rows[MaxLines:]
	}
	return e.printBatch(ctx, rows)
}

func (e *LegacyEncoder) printBatch(ctx context.Context, rows [][]byte) error {
	if err := e.TapeColor(0); err != nil {
		return err
	}
	for _, row := range rows {
		e.Line(row)
	}
	e.StatusRequest()
	status, err := e.Status(ctx)
	if err != nil {
		return err
	}
	e.log.Debugf("post-send response: % x", status)
	return nil
}

func (e *LegacyEncoder) roundTrip(cmd []byte) ([]byte, error) {
	if err := writeAll(e.t, cmd); err != nil {
		return nil, fmt.Errorf("write status request: %w", err)
	}
	return e.read()
}

func (e *LegacyEncoder) read() ([]byte, error) {
	buf := make([]byte, statusResponseSize)
	n, err := e.t.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("read status: %w", err)
	}
	return buf[:n], nil
}

// splitLines returns the leading segments holding at most n lines, and the
// rest. A chunk always ends right before a line.
func splitLines(segments []segment, n int) ([]segment, []segment) {
	lines := 0
	for i, s := range segments {
		if !s.line {
			continue
		}
		if lines == n {
			return segments[:i], segments[i:]
		}
		lines++
	}
	return segments, nil
}

func joinSegments(segments []segment) []byte {
	size := 0
	for _, s := range segments {
		size += len(s.data)
	}
	out := make([]byte, 0, size)
	for _, s := range segments {
		out = append(out, s.data...)
	}
	return out
}
