package printer

import (
	"encoding/binary"
	"fmt"
)

// SpeedMode is the LW550 content type.
type SpeedMode byte

const (
	NormalSpeed SpeedMode = 0x10
	HighSpeed   SpeedMode = 0x20
)

func (m SpeedMode) String() string {
	switch m {
	case NormalSpeed:
		return "NORMAL_SPEED"
	case HighSpeed:
		return "HIGH_SPEED"
	}
	return fmt.Sprintf("SPEED_0x%02X", byte(m))
}

const (
	lw550BitsPerPixel = 1
	lw550Alignment    = 2
	lw550Lock         = 0
)

// StartOfPrintJob (ESC s) opens a print job with a unique id.
func StartOfPrintJob(jobID uint32) Command {
	payload := binary.LittleEndian.AppendUint32([]byte{ESC, 's'}, jobID)
	return Command{Description: fmt.Sprintf("Start of Print Job #%d", jobID), Payload: payload}
}

// SetMaximumLabelLength (ESC L) switches between normal and continuous stock.
func SetMaximumLabelLength() Command {
	return newCommand("Set Maximum Label Length", ESC, 'L')
}

// SelectTextOutputMode (ESC h) is the printer default.
func SelectTextOutputMode() Command {
	return newCommand("Select Text Output Mode", ESC, 'h')
}

// SelectGraphicsOutputMode (ESC i) tunes the print for graphics and barcodes.
func SelectGraphicsOutputMode() Command {
	return newCommand("Select Graphics Output Mode", ESC, 'i')
}

// ContentType (ESC T) selects the speed mode.
func ContentType(mode SpeedMode) Command {
	return newCommand(fmt.Sprintf("Content Type (Speed Mode %s)", mode), ESC, 'T', byte(mode))
}

// SetLabelIndex (ESC n) tags the following label; the index is echoed in
// the print status.
func SetLabelIndex(index uint16) Command {
	payload := binary.LittleEndian.AppendUint16([]byte{ESC, 'n'}, index)
	return Command{Description: fmt.Sprintf("Set Label Index #%d", index), Payload: payload}
}

// LabelData is one raster label. Height is the number of bytes per line and
// Width the number of lines.
type LabelData struct {
	Width  int
	Height int
	Data   []byte
}

// NewLabelData checks that data holds exactly width*height bytes.
func NewLabelData(width, height int, data []byte) (LabelData, error) {
	if width < 0 || height < 0 || len(data) != width*height {
		return LabelData{}, fmt.Errorf("%w: label data of %d bytes for %dx%d", ErrInvalidArgument, len(data), width, height)
	}
	return LabelData{Width: width, Height: height, Data: data}, nil
}

// LabelPrintData (ESC D) carries the raster of one label, preceded by a
// big endian header.
func LabelPrintData(label LabelData) (Command, error) {
	if len(label.Data) != label.Width*label.Height {
		return Command{}, fmt.Errorf("%w: label data of %d bytes for %dx%d", ErrInvalidArgument, len(label.Data), label.Width, label.Height)
	}
	payload := make([]byte, 0, 12+len(label.Data))
	payload = append(payload, ESC, 'D', lw550BitsPerPixel, lw550Alignment)
	payload = binary.BigEndian.AppendUint32(payload, uint32(label.Width))
	payload = binary.BigEndian.AppendUint32(payload, uint32(label.Height))
	payload = append(payload, label.Data...)
	return Command{
		Description: fmt.Sprintf("Label Print Data (Width %d, Height %d)", label.Width, label.Height),
		Payload:     payload,
	}, nil
}

// FeedToPrintHead (ESC G) is the short form feed used between labels.
func FeedToPrintHead() Command {
	return newCommand("Feed to Print Head (Short Form Feed)", ESC, 'G')
}

// FeedToTearPosition (ESC E) is the long form feed after the last label.
func FeedToTearPosition() Command {
	return newCommand("Feed to Tear Position (Long Form Feed)", ESC, 'E')
}

// EndOfPrintJob (ESC Q) releases the print engine.
func EndOfPrintJob() Command {
	return newCommand("End of Print Job", ESC, 'Q')
}

// SetPrintDensity (ESC C) sets the strobe duty cycle in percent, 0..200.
func SetPrintDensity(dutyCycle int) (Command, error) {
	if dutyCycle < 0 || dutyCycle > 200 {
		return Command{}, fmt.Errorf("%w: duty cycle %d outside 0..200", ErrInvalidArgument, dutyCycle)
	}
	return newCommand(fmt.Sprintf("Set Print Density (Duty Cycle %d)", dutyCycle), ESC, 'C', byte(dutyCycle)), nil
}

// ResetPrintDensityToDefault (ESC e) restores a 100% duty cycle.
func ResetPrintDensityToDefault() Command {
	return newCommand("Set Print Density to Default", ESC, 'e')
}

// RestartPrintEngine (ESC *) reboots the engine.
func RestartPrintEngine() Command {
	return newCommand("Restart Print Engine", ESC, '*')
}

// RestoreFactorySettings (ESC $).
func RestoreFactorySettings() Command {
	return newCommand("Restore all the factory settings of the printer", ESC, '$')
}

// SetLabelCount (ESC o).
func SetLabelCount(count int) (Command, error) {
	if count < 0 || count > 255 {
		return Command{}, fmt.Errorf("%w: label count %d outside 0..255", ErrInvalidArgument, count)
	}
	return newCommand(fmt.Sprintf("Set label count (Label Count %d)", count), ESC, 'o', byte(count)), nil
}

// RequestPrintEngineStatus (ESC A) answers with a 32 byte status record.
func RequestPrintEngineStatus() Command {
	return newCommand("Request Print Engine Status", ESC, 'A', lw550Lock)
}

// GetSkuInformation (ESC U) answers with the 64 byte NFC record of the
// inserted consumable.
func GetSkuInformation() Command {
	return newCommand("Get SKU Information", ESC, 'U')
}

// RequestPrintEngineVersion (ESC V) answers with a 34 byte version record.
func RequestPrintEngineVersion() Command {
	return newCommand("Request Print Engine Version", ESC, 'V')
}

// PrintJobHeader starts a job in graphics mode.
func PrintJobHeader(jobID uint32) CommandBatch {
	return CommandBatch{
		Title:    "Print Job Header",
		Commands: []Command{StartOfPrintJob(jobID), SelectGraphicsOutputMode()},
	}
}

// PrintLabelBatch prints one label and feeds it to the tear position when
// it is the last one.
func PrintLabelBatch(label LabelData, index uint16, last bool) (CommandBatch, error) {
	data, err := LabelPrintData(label)
	if err != nil {
		return CommandBatch{}, err
	}
	feed := FeedToPrintHead()
	if last {
		feed = FeedToTearPosition()
	}
	return CommandBatch{
		Title:    fmt.Sprintf("Print Label #%d", index),
		Commands: []Command{SetLabelIndex(index), data, feed},
	}, nil
}

// LabelPrintJob builds a complete job: header, one block per label, end.
func LabelPrintJob(labels []LabelData, jobID uint32) (CommandBatch, error) {
	if len(labels) > 0xFFFF {
		return CommandBatch{}, fmt.Errorf("%w: %d labels in one job", ErrInvalidArgument, len(labels))
	}
	batches := []CommandBatch{PrintJobHeader(jobID)}
	for i, label := range labels {
		b, err := PrintLabelBatch(label, uint16(i), i == len(labels)-1)
		if err != nil {
			return CommandBatch{}, err
		}
		batches = append(batches, b)
	}
	batches = append(batches, CommandBatch{Title: "End of Print Job", Commands: []Command{EndOfPrintJob()}})
	return flatten(fmt.Sprintf("Label Print Job #%d", jobID), batches...), nil
}
