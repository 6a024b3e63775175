package core

// Color is a hex RGB color ("#rrggbb") for a screen cell.
// The empty Color means "terminal default".
type Color string

// Scene colors.
const (
	ColorDefault Color = ""
	ColorSky     Color = "#08011a"
	ColorGround  Color = "#24201a"
	ColorBlack   Color = "#000000"
	ColorWhite   Color = "#ffffff"
)
