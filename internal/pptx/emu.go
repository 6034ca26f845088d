package pptx

import "math"

// English Metric Units, the native length unit of OOXML drawing.
const (
	emuPerInch = 914400

	// Canvas size for a 16:9 deck in EMU (13.333 x 7.5 inches).
	slideWidthEMU  = 12192000
	slideHeightEMU = 6858000
)

// emu converts inches to EMU, rounding to the nearest unit.
func emu(inches float64) int64 {
	return int64(math.Round(inches * emuPerInch))
}

// centipoints converts a font size in points to hundredths of a point, the
// unit of the sz attribute on run properties.
func centipoints(points int) int {
	return points * 100
}
