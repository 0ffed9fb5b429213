package util

import "math"

// Print heads of the supported labelers resolve 180 dots per inch.
const (
	DPI         = 180
	MMPerInch   = 25.4
	PixelsPerMM = DPI / MMPerInch
)

// MmToPx converts a length in millimeters to whole pixels, truncating.
func MmToPx(mm float64) int {
	return int(mm * PixelsPerMM)
}

// PxToMm converts pixels to millimeters rounded up to one decimal.
func PxToMm(px int) float64 {
	return math.Ceil(float64(px)/PixelsPerMM*10) / 10
}
