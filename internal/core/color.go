package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for arena elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// HealthColor maps a health fraction in [0, 1] to a color, green at full
// health shading through yellow and orange down to red.
func HealthColor(frac float64) Color {
	switch {
	case frac > 0.75:
		return ColorBrightGreen
	case frac > 0.5:
		return ColorBrightYellow
	case frac > 0.25:
		return ColorOrange
	default:
		return ColorBrightRed
	}
}
