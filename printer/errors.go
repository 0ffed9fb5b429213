package printer

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedTapeSize = errors.New("printer: unsupported tape size")
	ErrUnknownDevice       = errors.New("printer: unknown device")
	ErrNotConnected        = errors.New("printer: not connected")

	// ErrNotReady is returned once a poll gave up on a device that kept
	// answering with placeholder data.
	ErrNotReady = errors.New("printer: device not ready")

	ErrShortResponse = errors.New("printer: short response")
	ErrBadResponse   = errors.New("printer: malformed response")

	// ErrReservedField flags a response whose reserved bytes are not zero.
	ErrReservedField = errors.New("printer: reserved field is not zero")

	// ErrSpoolerReadUnsupported is returned by reads on a spooler queue.
	ErrSpoolerReadUnsupported = errors.New("printer: spooler queues are write only")

	ErrInvalidArgument = errors.New("printer: invalid argument")
	ErrInternal        = errors.New("printer: internal error")
)

// PrintError wraps any transport or protocol failure raised while printing.
type PrintError struct {
	Op  string
	Err error
}

func (e *PrintError) Error() string {
	return fmt.Sprintf("print error: %s: %v", e.Op, e.Err)
}

func (e *PrintError) Unwrap() error { return e.Err }

func printError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PrintError
	if errors.As(err, &pe) {
		return err
	}
	return &PrintError{Op: op, Err: err}
}
