package printer

import (
	"fmt"
	"slices"
	"time"

	"go.bug.st/serial"

	logInternal "github.com/AlexStarov/labelprinter-GoLang-lib/log"
)

// DefaultSerialReadTimeout bounds each status read on a serial line.
const DefaultSerialReadTimeout = 2 * time.Second

// OpenSerial opens a labeler reachable through a serial port, such as the
// RFCOMM node of a Bluetooth classic pairing.
func OpenSerial(portName string, baudRate int) (Transport, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		logInternal.S().Errorf("serial port listing failed: %v", err)
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	logInternal.S().Debugf("serial ports: %v", ports)

	if !slices.Contains(ports, portName) {
		return nil, fmt.Errorf("%w: serial port %s not found", ErrUnknownDevice, portName)
	}

	mode := &serial.Mode{
		BaudRate: baudRate,
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}
	if err := port.SetReadTimeout(DefaultSerialReadTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("serial port %s read timeout: %w", portName, err)
	}

	logInternal.S().Debugf("serial port %s opened at %d baud", portName, baudRate)
	return &RawTransport{conn: port}, nil
}
