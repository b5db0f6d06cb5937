package core

// Color is a foreground color for a screen cell. The platform maps each value
// to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorGreen
	ColorBlue
	ColorCyan
	ColorWhite
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightWhite
	ColorGray
	ColorDarkGray
)

// ShadeRamp orders colors from brightest to darkest. Renderers index it with
// a normalized brightness level.
var ShadeRamp = []Color{
	ColorBrightWhite,
	ColorWhite,
	ColorGray,
	ColorDarkGray,
}

// Shade picks a color from ShadeRamp for level in [0, 1], 0 being brightest.
func Shade(level float64) Color {
	level = ClampF(level, 0, 1)
	idx := int(level * float64(len(ShadeRamp)-1))
	return ShadeRamp[idx]
}
