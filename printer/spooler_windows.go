//go:build windows

package printer

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	logInternal "github.com/AlexStarov/labelprinter-GoLang-lib/log"
)

// spoolerConn writes a RAW document through the Windows spooler.
type spoolerConn struct {
	hPrinter windows.Handle

	closeOnce sync.Once
}

func (s *spoolerConn) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	var written uint32
	r1, _, err := procWritePrinter.Call(
		uintptr(s.hPrinter),
		uintptr(unsafe.Pointer(&p[0])),
		uintptr(len(p)),
		uintptr(unsafe.Pointer(&written)),
	)
	if r1 == 0 {
		return int(written), fmt.Errorf("WritePrinter: %w", err)
	}
	return int(written), nil
}

func (s *spoolerConn) Read(p []byte) (int, error) {
	return 0, ErrSpoolerReadUnsupported
}

func (s *spoolerConn) Close() error {
	s.closeOnce.Do(func() {
		procEndPagePrinter.Call(uintptr(s.hPrinter))
		procEndDocPrinter.Call(uintptr(s.hPrinter))
		procClosePrinter.Call(uintptr(s.hPrinter))
	})
	return nil
}

// OpenSpooler starts a RAW print document on the named Windows printer
// queue. The queue is write only, so it serves protocols that never wait
// for a device response, such as LW550 print jobs.
func OpenSpooler(printerName string) (Transport, error) {
	var hPrinter windows.Handle
	pname, err := windows.UTF16PtrFromString(printerName)
	if err != nil {
		return nil, fmt.Errorf("%w: printer name %q", ErrInvalidArgument, printerName)
	}
	r1, _, err := procOpenPrinter.Call(
		uintptr(unsafe.Pointer(pname)),
		uintptr(unsafe.Pointer(&hPrinter)),
		0,
	)
	if r1 == 0 {
		return nil, fmt.Errorf("failed to open printer %q: %w", printerName, err)
	}

	docName, _ := windows.UTF16PtrFromString("Label RAW Document")
	dataType, _ := windows.UTF16PtrFromString("RAW")
	di := docInfo1{
		pDocName:  docName,
		pDatatype: dataType,
	}
	r1, _, err = procStartDocPrinter.Call(
		uintptr(hPrinter),
		1,
		uintptr(unsafe.Pointer(&di)),
	)
	if r1 == 0 {
		procClosePrinter.Call(uintptr(hPrinter))
		return nil, fmt.Errorf("StartDocPrinter failed: %w", err)
	}
	procStartPagePrinter.Call(uintptr(hPrinter))

	logInternal.S().Debugf("spooler document started on %q", printerName)
	return &RawTransport{conn: &spoolerConn{hPrinter: hPrinter}}, nil
}

var (
	modwinspool          = windows.NewLazySystemDLL("winspool.drv")
	procOpenPrinter      = modwinspool.NewProc("OpenPrinterW")
	procClosePrinter     = modwinspool.NewProc("ClosePrinter")
	procStartDocPrinter  = modwinspool.NewProc("StartDocPrinterW")
	procEndDocPrinter    = modwinspool.NewProc("EndDocPrinter")
	procStartPagePrinter = modwinspool.NewProc("StartPagePrinter")
	procEndPagePrinter   = modwinspool.NewProc("EndPagePrinter")
	procWritePrinter     = modwinspool.NewProc("WritePrinter")
)

// DOC_INFO_1
type docInfo1 struct {
	pDocName    *uint16
	pOutputFile *uint16
	pDatatype   *uint16
}
