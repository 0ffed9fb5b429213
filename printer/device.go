package printer

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/google/gousb"

	"github.com/AlexStarov/labelprinter-GoLang-lib/util"
)

// VendorDymo is the USB vendor id of every supported labeler.
const VendorDymo gousb.ID = 0x0922

// USB interface classes a labeler may expose.
const (
	PrinterInterfaceClass = gousb.ClassPrinter
	HIDInterfaceClass     = gousb.ClassHID
)

const (
	DefaultTapeAlignmentInaccuracyMM = 1.0
	DefaultHeadToCutterMM            = 8.1
	DefaultTapeSizeMM                = 12
)

// Protocol is the command language a device speaks.
type Protocol int

const (
	ProtocolLegacy Protocol = iota
	ProtocolLW550
	ProtocolBLE
)

func (p Protocol) String() string {
	switch p {
	case ProtocolLegacy:
		return "legacy"
	case ProtocolLW550:
		return "lw550"
	case ProtocolBLE:
		return "ble"
	}
	return fmt.Sprintf("Protocol(%d)", int(p))
}

// DeviceConfig describes the geometry of one labeler model.
type DeviceConfig struct {
	Name       string
	ProductIDs []gousb.ID
	BLEModels  []string

	// PrintHeadPx and PrintHeadMM come from calibration with the sample
	// pattern.
	PrintHeadPx int
	PrintHeadMM float64

	SupportedTapeSizesMM      []int
	TapeAlignmentInaccuracyMM float64
	HeadToCutterMM            float64

	Protocol Protocol

	// Row packing for the legacy protocol.
	MirrorRows  bool
	ReverseBits bool

	// Unconfirmed devices have never been reported working.
	Unconfirmed bool
}

// Validate checks the static invariants of the descriptor.
func (c DeviceConfig) Validate() error {
	switch {
	case len(c.SupportedTapeSizesMM) == 0:
		return fmt.Errorf("%w: %s has no supported tape sizes", ErrInvalidArgument, c.Name)
	case c.HeadToCutterMM < 0:
		return fmt.Errorf("%w: %s head to cutter distance %v", ErrInvalidArgument, c.Name, c.HeadToCutterMM)
	case c.PrintHeadPx <= 0 || c.PrintHeadMM <= 0:
		return fmt.Errorf("%w: %s print head %d px / %v mm", ErrInvalidArgument, c.Name, c.PrintHeadPx, c.PrintHeadMM)
	}
	return nil
}

func (c DeviceConfig) MatchesProductID(id gousb.ID) bool {
	return slices.Contains(c.ProductIDs, id)
}

func (c DeviceConfig) MatchesBLEModel(model string) bool {
	return slices.ContainsFunc(c.BLEModels, func(m string) bool {
		return strings.EqualFold(m, strings.TrimSpace(model))
	})
}

func (c DeviceConfig) SupportsTapeSize(mm int) bool {
	return slices.Contains(c.SupportedTapeSizesMM, mm)
}

// TapePrintProperties is the printable band for one tape size.
type TapePrintProperties struct {
	UsableTapeHeightPx int
	TopMarginPx        int
	BottomMarginPx     int
}

// TapePrintProperties computes the printable band for tapeSizeMM. The band
// and both margins always add up to the print head width.
func (c DeviceConfig) TapePrintProperties(tapeSizeMM int) (TapePrintProperties, error) {
	if !c.SupportsTapeSize(tapeSizeMM) {
		return TapePrintProperties{}, fmt.Errorf("%w: %d mm on %s (supported %v)",
			ErrUnsupportedTapeSize, tapeSizeMM, c.Name, c.SupportedTapeSizesMM)
	}
	inaccuracy := c.TapeAlignmentInaccuracyMM
	if inaccuracy == 0 {
		inaccuracy = DefaultTapeAlignmentInaccuracyMM
	}

	usableMM := math.Min(float64(tapeSizeMM)-2*inaccuracy, c.PrintHeadMM)
	usable := int(math.RoundToEven(usableMM / c.PrintHeadMM * float64(c.PrintHeadPx)))
	usable = max(min(usable, c.PrintHeadPx), 0)

	margin := c.PrintHeadPx - usable
	return TapePrintProperties{
		UsableTapeHeightPx: usable,
		TopMarginPx:        margin / 2,
		BottomMarginPx:     margin - margin/2,
	}, nil
}

// HeadToCutterPx is the horizontal labeler margin.
func (c DeviceConfig) HeadToCutterPx() int {
	return util.MmToPx(c.HeadToCutterMM)
}

var legacyTapes = []int{6, 9, 12}

// Devices is the table of known labelers.
var Devices = []DeviceConfig{
	{
		Name:        "LabelManager PC",
		ProductIDs:  []gousb.ID{0x0011},
		PrintHeadPx: 128, PrintHeadMM: 18.0,
		SupportedTapeSizesMM: []int{6, 9, 12, 19},
	},
	{
		Name:        "LabelPoint 350",
		ProductIDs:  []gousb.ID{0x0015},
		PrintHeadPx: 64, PrintHeadMM: 8.5,
		SupportedTapeSizesMM: legacyTapes,
	},
	{
		Name:        "Rhino 6000+",
		ProductIDs:  []gousb.ID{0x0016},
		PrintHeadPx: 128, PrintHeadMM: 18.0,
		SupportedTapeSizesMM: []int{6, 9, 12, 19, 24},
		Unconfirmed:          true,
	},
	{
		Name:        "LabelManager PnP",
		ProductIDs:  []gousb.ID{0x1001, 0x1002},
		PrintHeadPx: 64, PrintHeadMM: 8.5,
		SupportedTapeSizesMM: legacyTapes,
	},
	{
		Name:        "LabelManager 420P",
		ProductIDs:  []gousb.ID{0x1003, 0x1004},
		PrintHeadPx: 128, PrintHeadMM: 17.7,
		SupportedTapeSizesMM: []int{6, 9, 12, 19},
		Unconfirmed:          true,
	},
	{
		Name:        "LabelManager 280",
		ProductIDs:  []gousb.ID{0x1005, 0x1006},
		PrintHeadPx: 64, PrintHeadMM: 8.5,
		SupportedTapeSizesMM: legacyTapes,
	},
	{
		Name:        "LabelManager Wireless PnP",
		ProductIDs:  []gousb.ID{0x1007, 0x1008},
		PrintHeadPx: 64, PrintHeadMM: 8.5,
		SupportedTapeSizesMM: legacyTapes,
		Unconfirmed:          true,
	},
	{
		Name:        "MobileLabeler",
		ProductIDs:  []gousb.ID{0x1009},
		PrintHeadPx: 128, PrintHeadMM: 17.7,
		SupportedTapeSizesMM: []int{6, 9, 12, 19, 24},
		Unconfirmed:          true,
	},
	{
		Name:        "LabelWriter 550",
		ProductIDs:  []gousb.ID{0x0028, 0x0029},
		PrintHeadPx: 672, PrintHeadMM: 56.9,
		SupportedTapeSizesMM: []int{19, 25, 32, 36, 54, 57},
		Protocol:             ProtocolLW550,
		Unconfirmed:          true,
	},
	{
		Name:        "LetraTag 200B",
		BLEModels:   []string{"LT200B"},
		PrintHeadPx: 32, PrintHeadMM: 4.5,
		SupportedTapeSizesMM: []int{12},
		Protocol:             ProtocolBLE,
		Unconfirmed:          true,
	},
}

func init() {
	for i := range Devices {
		d := &Devices[i]
		if d.TapeAlignmentInaccuracyMM == 0 {
			d.TapeAlignmentInaccuracyMM = DefaultTapeAlignmentInaccuracyMM
		}
		if d.HeadToCutterMM == 0 {
			d.HeadToCutterMM = DefaultHeadToCutterMM
		}
		if d.Protocol == ProtocolLegacy {
			d.MirrorRows = true
			d.ReverseBits = true
		}
	}
}

// LookupDevice finds the descriptor for a Dymo USB product id.
func LookupDevice(vendor, product gousb.ID) (DeviceConfig, error) {
	if vendor != VendorDymo {
		return DeviceConfig{}, fmt.Errorf("%w: vendor %s", ErrUnknownDevice, vendor)
	}
	for _, d := range Devices {
		if d.MatchesProductID(product) {
			return d, nil
		}
	}
	return DeviceConfig{}, fmt.Errorf("%w: product %s", ErrUnknownDevice, product)
}

// LookupBLEDevice finds the descriptor for a BLE model string.
func LookupBLEDevice(model string) (DeviceConfig, error) {
	for _, d := range Devices {
		if d.MatchesBLEModel(model) {
			return d, nil
		}
	}
	return DeviceConfig{}, fmt.Errorf("%w: BLE model %q", ErrUnknownDevice, model)
}

// LookupDeviceByName finds a descriptor by its model name, ignoring case.
func LookupDeviceByName(name string) (DeviceConfig, error) {
	for _, d := range Devices {
		if strings.EqualFold(d.Name, strings.TrimSpace(name)) {
			return d, nil
		}
	}
	return DeviceConfig{}, fmt.Errorf("%w: model %q", ErrUnknownDevice, name)
}
