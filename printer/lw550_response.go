package printer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	logInternal "github.com/AlexStarov/labelprinter-GoLang-lib/log"
)

// Response record sizes.
const (
	PrintEngineStatusSize  = 32
	SkuInformationSize     = 64
	PrintEngineVersionSize = 34
)

// SkuMagicNumber identifies a populated SKU record.
const SkuMagicNumber = 0xCAB6

type enumNames[T ~uint8] map[T]string

func (n enumNames[T]) name(v T) string {
	if s, ok := n[v]; ok {
		return s
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(v))
}

// strictEnum decodes a status field; unknown values make the record invalid.
func strictEnum[T ~uint8](field string, v uint8, names enumNames[T]) (T, error) {
	if _, ok := names[T(v)]; !ok {
		return 0, fmt.Errorf("%w: %s 0x%02X", ErrBadResponse, field, v)
	}
	return T(v), nil
}

// lenientEnum decodes descriptive consumable metadata, falling back to def.
func lenientEnum[T ~uint8](field string, v uint8, names enumNames[T], def T) T {
	if _, ok := names[T(v)]; !ok {
		logInternal.S().Warnf("%s 0x%02x not recognized, using %s", field, v, names.name(def))
		return def
	}
	return T(v)
}

type PrintStatus uint8

const (
	PrintStatusIdle PrintStatus = iota
	PrintStatusPrinting
	PrintStatusError
	PrintStatusCancel
	PrintStatusBusy
	PrintStatusUnlock
)

var printStatusNames = enumNames[PrintStatus]{
	PrintStatusIdle: "IDLE", PrintStatusPrinting: "PRINTING", PrintStatusError: "ERROR",
	PrintStatusCancel: "CANCEL", PrintStatusBusy: "BUSY", PrintStatusUnlock: "UNLOCK",
}

func (s PrintStatus) String() string { return printStatusNames.name(s) }

type PrintHeadStatus uint8

const (
	PrintHeadOK PrintHeadStatus = iota
	PrintHeadOverheated
	PrintHeadStatusUnknown
)

var printHeadStatusNames = enumNames[PrintHeadStatus]{
	PrintHeadOK: "OK", PrintHeadOverheated: "OVERHEATED", PrintHeadStatusUnknown: "STATUS_UNKNOWN",
}

func (s PrintHeadStatus) String() string { return printHeadStatusNames.name(s) }

type MainBayStatus uint8

const (
	BayStatusUnknown MainBayStatus = iota
	BayOpenMediaPresenceUnknown
	NoMediaPresent
	MediaNotInsertedProperly
	MediaPresentStatusUnknown
	MediaPresentEmpty
	MediaPresentCriticallyLow
	MediaPresentLow
	MediaPresentOK
	MediaPresentJammed
	MediaPresentCounterfeit
)

var mainBayStatusNames = enumNames[MainBayStatus]{
	BayStatusUnknown:            "BAY_STATUS_UNKNOWN",
	BayOpenMediaPresenceUnknown: "BAY_OPEN__MEDIA_PRESENCE_UNKNOWN",
	NoMediaPresent:              "NO_MEDIA_PRESENT",
	MediaNotInsertedProperly:    "MEDIA_NOT_INSERTED_PROPERLY",
	MediaPresentStatusUnknown:   "MEDIA_PRESENT__MEDIA_STATUS_UNKNOWN",
	MediaPresentEmpty:           "MEDIA_PRESENT__EMPTY",
	MediaPresentCriticallyLow:   "MEDIA_PRESENT__CRITICALLY_LOW",
	MediaPresentLow:             "MEDIA_PRESENT__LOW",
	MediaPresentOK:              "MEDIA_PRESENT__OK",
	MediaPresentJammed:          "MEDIA_PRESENT__JAMMED",
	MediaPresentCounterfeit:     "MEDIA_PRESENT__COUNTERFEIT_MEDIA",
}

func (s MainBayStatus) String() string { return mainBayStatusNames.name(s) }

type EPSStatus uint8

const (
	// EPSUnknown is reported by real devices although it is undocumented.
	EPSUnknown EPSStatus = iota
	EPSPresent
)

var epsStatusNames = enumNames[EPSStatus]{EPSUnknown: "UNKNOWN", EPSPresent: "EPS_PRESENT"}

func (s EPSStatus) String() string { return epsStatusNames.name(s) }

type PrintHeadVoltage uint8

const (
	VoltageUnknown PrintHeadVoltage = iota
	VoltageOK
	VoltageLow
	VoltageCriticallyLow
	VoltageTooLowForPrinting
)

var printHeadVoltageNames = enumNames[PrintHeadVoltage]{
	VoltageUnknown: "UNKNOWN", VoltageOK: "OK", VoltageLow: "LOW",
	VoltageCriticallyLow: "CRITICALLY_LOW", VoltageTooLowForPrinting: "TOO_LOW_FOR_PRINTING",
}

func (v PrintHeadVoltage) String() string { return printHeadVoltageNames.name(v) }

type BrandID uint8

const BrandDymo BrandID = 0

var brandNames = enumNames[BrandID]{BrandDymo: "DYMO"}

func (b BrandID) String() string { return brandNames.name(b) }

type Region uint8

const RegionGlobal Region = 0xFF

var regionNames = enumNames[Region]{RegionGlobal: "GLOBAL"}

func (r Region) String() string { return regionNames.name(r) }

type MaterialType uint8

const (
	MaterialCard MaterialType = iota
	MaterialClear
	MaterialDurable
	MaterialPaper
	MaterialPermanent
	MaterialPlastic
	MaterialRemovable
	MaterialTimeExp
)

var materialNames = enumNames[MaterialType]{
	MaterialCard: "CARD", MaterialClear: "CLEAR", MaterialDurable: "DURABLE", MaterialPaper: "PAPER",
	MaterialPermanent: "PERMANENT", MaterialPlastic: "PLASTIC", MaterialRemovable: "REMOVABLE", MaterialTimeExp: "TIME_EXP",
}

func (m MaterialType) String() string { return materialNames.name(m) }

type LabelType uint8

const (
	LabelContinuous LabelType = iota
	LabelDie
	LabelCard
)

var labelTypeNames = enumNames[LabelType]{LabelContinuous: "CONTINUOUS", LabelDie: "DIE", LabelCard: "CARD"}

func (l LabelType) String() string { return labelTypeNames.name(l) }

type LabelColor uint8

const (
	LabelColorClear LabelColor = iota
	LabelColorWhite
	LabelColorPink
	LabelColorYellow
	LabelColorGreen
	LabelColorBlue
)

var labelColorNames = enumNames[LabelColor]{
	LabelColorClear: "CLEAR", LabelColorWhite: "WHITE", LabelColorPink: "PINK",
	LabelColorYellow: "YELLOW", LabelColorGreen: "GREEN", LabelColorBlue: "BLUE",
}

func (c LabelColor) String() string { return labelColorNames.name(c) }

type ContentColor uint8

const (
	ContentBlack ContentColor = iota
	ContentRedOrBlack
)

var contentColorNames = enumNames[ContentColor]{ContentBlack: "BLACK", ContentRedOrBlack: "RED_OR_BLACK"}

func (c ContentColor) String() string { return contentColorNames.name(c) }

// MarkerType describes how the markers on the liner locate cut and label
// start.
type MarkerType uint8

const (
	MarkerM1FEOffsetCutOffsetStart MarkerType = iota
	MarkerM1FEOffsetCutM1REOffsetStart
	MarkerM1FEOffsetStartM1REOffsetCut
	MarkerM1FECutM2FEOffsetStart
)

var markerNames = enumNames[MarkerType]{
	MarkerM1FEOffsetCutOffsetStart:     "M1FE_O2CL_O2SOL",
	MarkerM1FEOffsetCutM1REOffsetStart: "M1FE_O2CL_M1RE_O2SOL",
	MarkerM1FEOffsetStartM1REOffsetCut: "M1FE_O2SOL_M1RE_O2CL",
	MarkerM1FECutM2FEOffsetStart:       "M1FE_O2CL_M2FE_O2SOL",
}

func (m MarkerType) String() string { return markerNames.name(m) }

type CounterStrategy uint8

const (
	CountUp   CounterStrategy = 0x01
	CountDown CounterStrategy = 0x02
)

var counterNames = enumNames[CounterStrategy]{CountUp: "COUNT_UP", CountDown: "COUNT_DOWN"}

func (c CounterStrategy) String() string { return counterNames.name(c) }

type FirmwareVersion uint8

const (
	FirmwareApplication FirmwareVersion = iota
	FirmwareBootLoader
)

var firmwareNames = enumNames[FirmwareVersion]{FirmwareApplication: "FWAP", FirmwareBootLoader: "FWBL"}

func (f FirmwareVersion) String() string { return firmwareNames.name(f) }

// PrintEngineStatus is the reply to RequestPrintEngineStatus.
type PrintEngineStatus struct {
	PrintStatus      PrintStatus
	PrintJobID       uint32
	LabelIndex       uint16
	PrintHeadStatus  PrintHeadStatus
	PrintDensity     uint8
	MainBayStatus    MainBayStatus
	SkuInfo          string
	ErrorID          uint32
	LabelCount       uint16
	EPSStatus        EPSStatus
	PrintHeadVoltage PrintHeadVoltage
}

type rawPrintEngineStatus struct {
	PrintStatus      uint8
	PrintJobID       uint32
	LabelIndex       uint16
	Reserved7        uint8
	PrintHeadStatus  uint8
	PrintDensity     uint8
	MainBayStatus    uint8
	SkuInfo          [12]byte
	ErrorID          uint32
	LabelCount       uint16
	EPSStatus        uint8
	PrintHeadVoltage uint8
	Reserved31       uint8
}

func decodeRecord(b []byte, size int, v any) error {
	if len(b) != size {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrShortResponse, len(b), size)
	}
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}

// DecodePrintEngineStatus parses a 32 byte status record.
func DecodePrintEngineStatus(b []byte) (PrintEngineStatus, error) {
	var raw rawPrintEngineStatus
	if err := decodeRecord(b, PrintEngineStatusSize, &raw); err != nil {
		return PrintEngineStatus{}, err
	}
	if raw.Reserved7 != 0 || raw.Reserved31 != 0 {
		return PrintEngineStatus{}, fmt.Errorf("%w: bytes 7/31 = %02x/%02x", ErrReservedField, raw.Reserved7, raw.Reserved31)
	}

	var (
		s   PrintEngineStatus
		err error
	)
	if s.PrintStatus, err = strictEnum("print status", raw.PrintStatus, printStatusNames); err != nil {
		return PrintEngineStatus{}, err
	}
	if s.PrintHeadStatus, err = strictEnum("print head status", raw.PrintHeadStatus, printHeadStatusNames); err != nil {
		return PrintEngineStatus{}, err
	}
	if s.MainBayStatus, err = strictEnum("main bay status", raw.MainBayStatus, mainBayStatusNames); err != nil {
		return PrintEngineStatus{}, err
	}
	if s.EPSStatus, err = strictEnum("EPS status", raw.EPSStatus, epsStatusNames); err != nil {
		return PrintEngineStatus{}, err
	}
	if s.PrintHeadVoltage, err = strictEnum("print head voltage", raw.PrintHeadVoltage, printHeadVoltageNames); err != nil {
		return PrintEngineStatus{}, err
	}
	s.PrintJobID = raw.PrintJobID
	s.LabelIndex = raw.LabelIndex
	s.PrintDensity = raw.PrintDensity
	s.SkuInfo = cString(raw.SkuInfo[:])
	s.ErrorID = raw.ErrorID
	s.LabelCount = raw.LabelCount
	return s, nil
}

func valOrMsg(v uint32, msg string) string {
	if v == 0 {
		return msg
	}
	return strconv.FormatUint(uint64(v), 10)
}

// String renders the status as a table.
func (s PrintEngineStatus) String() string {
	return table("Print Engine Status", [][3]string{
		{"Print Status", s.PrintStatus.String(), "The actual print engine status"},
		{"Print Job ID", valOrMsg(s.PrintJobID, "Printer Idle"), "The Job ID of the ongoing print process"},
		{"Label Index", strconv.Itoa(int(s.LabelIndex)), "The index of the label/page currently being printed"},
		{"Print Head Status", s.PrintHeadStatus.String(), "The actual thermal print head status"},
		{"Print Density", fmt.Sprintf("%d%%", s.PrintDensity), "The actual print density setting in %"},
		{"Main Bay Status", s.MainBayStatus.String(), "The status of the main bay"},
		{"SKU Info", s.SkuInfo, "The SKU of the inserted consumable"},
		{"Error ID", valOrMsg(s.ErrorID, "No Error Present"), "The ID of the present error"},
		{"Label Count", strconv.Itoa(int(s.LabelCount)), "Remaining count of inserted consumable"},
		{"EPS Status", s.EPSStatus.String(), "The status of the external power supply"},
		{"Print Head Voltage", s.PrintHeadVoltage.String(), "Print Head Voltage"},
	})
}

// SkuInformation is the NFC record of the inserted consumable. Lengths are
// in tenths of a millimetre.
type SkuInformation struct {
	MagicNumber uint16
	Version     uint8
	Length      uint8
	CRC         uint32
	SkuNumber   string

	BrandID      BrandID
	Region       Region
	MaterialType MaterialType
	LabelType    LabelType
	LabelColor   LabelColor
	ContentColor ContentColor
	MarkerType   MarkerType

	MarkerPitch                   uint16
	Marker1Width                  uint16
	Marker1ToStartOfLabel         uint16
	Marker2Width                  uint16
	Marker2Offset                 uint16
	VerticalOffset                uint16
	LabelLength                   uint16
	LabelWidth                    uint16
	PrintableAreaHorizontalOffset uint16
	PrintableAreaVerticalOffset   uint16
	LinerWidth                    uint16
	TotalLabelCount               uint16
	TotalLength                   uint16
	CounterMargin                 uint16
	CounterStrategy               CounterStrategy

	Reserved27 uint8
	Reserved57 [3]uint8

	ProductionDate time.Time
	ProductionTime time.Time
}

type rawSkuInformation struct {
	MagicNumber                   uint16
	Version                       uint8
	Length                        uint8
	CRC                           uint32
	SkuNumber                     [12]byte
	BrandID                       uint8
	Region                        uint8
	MaterialType                  uint8
	LabelType                     uint8
	LabelColor                    uint8
	ContentColor                  uint8
	MarkerType                    uint8
	Reserved27                    uint8
	MarkerPitch                   uint16
	Marker1Width                  uint16
	Marker1ToStartOfLabel         uint16
	Marker2Width                  uint16
	Marker2Offset                 uint16
	VerticalOffset                uint16
	LabelLength                   uint16
	LabelWidth                    uint16
	PrintableAreaHorizontalOffset uint16
	PrintableAreaVerticalOffset   uint16
	LinerWidth                    uint16
	TotalLabelCount               uint16
	TotalLength                   uint16
	CounterMargin                 uint16
	CounterStrategy               uint8
	Reserved57                    [3]uint8
	ProductionDate                uint16
	ProductionTime                uint16
}

// DecodeSkuInformation parses a 64 byte SKU record. An all zero magic
// number means the NFC reader is still waking up.
func DecodeSkuInformation(b []byte) (Response[SkuInformation], error) {
	var raw rawSkuInformation
	if err := decodeRecord(b, SkuInformationSize, &raw); err != nil {
		return Response[SkuInformation]{}, err
	}
	if raw.MagicNumber == 0 {
		return notReadyResponse[SkuInformation](), nil
	}
	if raw.MagicNumber != SkuMagicNumber {
		return Response[SkuInformation]{}, fmt.Errorf("%w: SKU magic number 0x%04X", ErrBadResponse, raw.MagicNumber)
	}
	if raw.Version != 0 {
		return Response[SkuInformation]{}, fmt.Errorf("%w: SKU record version %d", ErrBadResponse, raw.Version)
	}

	return readyResponse(SkuInformation{
		MagicNumber:  raw.MagicNumber,
		Version:      raw.Version,
		Length:       raw.Length,
		CRC:          raw.CRC,
		SkuNumber:    cString(raw.SkuNumber[:]),
		BrandID:      lenientEnum("brand id", raw.BrandID, brandNames, BrandDymo),
		Region:       lenientEnum("region", raw.Region, regionNames, RegionGlobal),
		MaterialType: lenientEnum("material type", raw.MaterialType, materialNames, MaterialCard),
		LabelType:    lenientEnum("label type", raw.LabelType, labelTypeNames, LabelContinuous),
		LabelColor:   lenientEnum("label color", raw.LabelColor, labelColorNames, LabelColorWhite),
		ContentColor: lenientEnum("content color", raw.ContentColor, contentColorNames, ContentBlack),
		MarkerType:   lenientEnum("marker type", raw.MarkerType, markerNames, MarkerM1FEOffsetCutOffsetStart),

		MarkerPitch:                   raw.MarkerPitch,
		Marker1Width:                  raw.Marker1Width,
		Marker1ToStartOfLabel:         raw.Marker1ToStartOfLabel,
		Marker2Width:                  raw.Marker2Width,
		Marker2Offset:                 raw.Marker2Offset,
		VerticalOffset:                raw.VerticalOffset,
		LabelLength:                   raw.LabelLength,
		LabelWidth:                    raw.LabelWidth,
		PrintableAreaHorizontalOffset: raw.PrintableAreaHorizontalOffset,
		PrintableAreaVerticalOffset:   raw.PrintableAreaVerticalOffset,
		LinerWidth:                    raw.LinerWidth,
		TotalLabelCount:               raw.TotalLabelCount,
		TotalLength:                   raw.TotalLength,
		CounterMargin:                 raw.CounterMargin,
		CounterStrategy:               lenientEnum("counter strategy", raw.CounterStrategy, counterNames, CountUp),

		Reserved27: raw.Reserved27,
		Reserved57: raw.Reserved57,

		ProductionDate: dayOfYearDate(raw.ProductionDate),
		ProductionTime: clockTime(raw.ProductionTime),
	}), nil
}

// dayOfYearDate reads DDDYY packed as a decimal number.
func dayOfYearDate(v uint16) time.Time {
	day, year := int(v)/100, int(v)%100
	if day == 0 {
		return time.Time{}
	}
	return time.Date(2000+year, time.January, day, 0, 0, 0, 0, time.UTC)
}

// clockTime reads HHMM packed as a decimal number.
func clockTime(v uint16) time.Time {
	return time.Date(0, time.January, 1, int(v)/100, int(v)%100, 0, 0, time.UTC)
}

func tenthMM(v uint16) string {
	return fmt.Sprintf("%.1fmm", float64(v)/10)
}

func (s SkuInformation) String() string {
	return table("SKU Information", [][3]string{
		{"Version", strconv.Itoa(int(s.Version)), ""},
		{"Length", strconv.Itoa(int(s.Length)), ""},
		{"CRC", strconv.FormatUint(uint64(s.CRC), 10), ""},
		{"SKU Number", s.SkuNumber, "The SKU # of inserted"},
		{"Brand ID", s.BrandID.String(), ""},
		{"Region", s.Region.String(), ""},
		{"Material Type", s.MaterialType.String(), "The type of label material"},
		{"Label Type", s.LabelType.String(), ""},
		{"Label Color", s.LabelColor.String(), ""},
		{"Content Color", s.ContentColor.String(), ""},
		{"Marker Type", s.MarkerType.String(), ""},
		{"Marker Pitch", tenthMM(s.MarkerPitch), ""},
		{"Marker 1 Width", tenthMM(s.Marker1Width), ""},
		{"Marker 1 to Start of Label", tenthMM(s.Marker1ToStartOfLabel), ""},
		{"Marker 2 Width", tenthMM(s.Marker2Width), ""},
		{"Marker 2 Offset", tenthMM(s.Marker2Offset), ""},
		{"Vertical Offset", tenthMM(s.VerticalOffset), ""},
		{"Label Length", tenthMM(s.LabelLength), ""},
		{"Label Width", tenthMM(s.LabelWidth), ""},
		{"Printable Area Horizontal Offset", tenthMM(s.PrintableAreaHorizontalOffset), ""},
		{"Printable Area Vertical Offset", tenthMM(s.PrintableAreaVerticalOffset), ""},
		{"Liner Width", tenthMM(s.LinerWidth), ""},
		{"Total Label Count", strconv.Itoa(int(s.TotalLabelCount)), ""},
		{"Total Length", tenthMM(s.TotalLength), "Length of roll"},
		{"Counter Margin", strconv.Itoa(int(s.CounterMargin)), "Used to determine remaining labels on roll or limit usage"},
		{"Counter Strategy", s.CounterStrategy.String(), ""},
		{"Production Date", s.ProductionDate.Format("01/02/06"), ""},
		{"Production Time", s.ProductionTime.Format("15:04:05"), ""},
	})
}

// PrintEngineVersion is the reply to RequestPrintEngineVersion.
type PrintEngineVersion struct {
	HWVersion           string
	FWVersion           FirmwareVersion
	MajorReleaseVersion string
	MinorReleaseVersion string
	ReleaseDate         time.Time
	ProductID           string
}

type rawPrintEngineVersion struct {
	HWVersion    [16]byte
	FWVersion    [4]byte
	MajorRelease uint32
	MinorRelease uint32
	ReleaseDate  [4]byte
	ProductID    uint16
}

// DecodePrintEngineVersion parses a 34 byte version record.
func DecodePrintEngineVersion(b []byte) (PrintEngineVersion, error) {
	var raw rawPrintEngineVersion
	if err := decodeRecord(b, PrintEngineVersionSize, &raw); err != nil {
		return PrintEngineVersion{}, err
	}

	fw, ok := firmwareByName(string(raw.FWVersion[:]))
	if !ok {
		return PrintEngineVersion{}, fmt.Errorf("%w: firmware kind %q", ErrBadResponse, raw.FWVersion[:])
	}
	release, err := monthYear(raw.ReleaseDate[:])
	if err != nil {
		return PrintEngineVersion{}, err
	}
	return PrintEngineVersion{
		HWVersion:           cString(raw.HWVersion[:]),
		FWVersion:           fw,
		MajorReleaseVersion: stringFromInt(uint64(raw.MajorRelease)),
		MinorReleaseVersion: stringFromInt(uint64(raw.MinorRelease)),
		ReleaseDate:         release,
		ProductID:           stringFromInt(uint64(raw.ProductID)),
	}, nil
}

func (v PrintEngineVersion) String() string {
	return table("Print Engine Version", [][3]string{
		{"HW Version", v.HWVersion, "The hardware version"},
		{"FW Version", v.FWVersion.String(), "The firmware version"},
		{"Major Release Version", v.MajorReleaseVersion, ""},
		{"Minor Release Version", v.MinorReleaseVersion, ""},
		{"Release Date", v.ReleaseDate.Format("01-2006"), ""},
		{"Product ID", v.ProductID, "Two bytes of USB PID"},
	})
}

func firmwareByName(s string) (FirmwareVersion, bool) {
	for k, name := range firmwareNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// monthYear reads four ASCII digits MMYY.
func monthYear(b []byte) (time.Time, error) {
	n, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: release date %q", ErrBadResponse, b)
	}
	month, year := n/100, n%100
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%w: release month %d", ErrBadResponse, month)
	}
	return time.Date(2000+year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), nil
}

// stringFromInt reads the hex digits of v two at a time as character codes,
// so 0x3132 becomes "12".
func stringFromInt(v uint64) string {
	digits := strconv.FormatUint(v, 16)
	var sb strings.Builder
	for i := 0; i < len(digits); i += 2 {
		end := min(i+2, len(digits))
		c, _ := strconv.ParseUint(digits[i:end], 16, 8)
		sb.WriteByte(byte(c))
	}
	return sb.String()
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

func table(title string, rows [][3]string) string {
	var buf bytes.Buffer
	buf.WriteString(title + "\n")
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r[0], r[1], r[2])
	}
	w.Flush()
	return buf.String()
}
