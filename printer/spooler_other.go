//go:build !windows

package printer

import "fmt"

// OpenSpooler is only available on Windows.
func OpenSpooler(printerName string) (Transport, error) {
	return nil, fmt.Errorf("%w: spooler printing to %q is only supported on Windows", ErrUnknownDevice, printerName)
}
