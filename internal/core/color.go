package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
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

// Palette roles used by the drake games.
const (
	ColorSky    = ColorBlue
	ColorGround = ColorYellow
	ColorPipe   = ColorGreen
	ColorDrake  = ColorOrange
	ColorStar   = ColorGray
	ColorGuide  = ColorBrightRed
	ColorHUD    = ColorBrightWhite
)
