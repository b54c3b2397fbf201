package rules

import "strconv"

// Color is a hex RGB color, "#rrggbb".
type Color string

// The fixed palette. Snake colors follow the player slot, fruit colors
// follow the fruit type.
const (
	ColorGreen  Color = "#00ff00"
	ColorPurple Color = "#800080"
	ColorRed    Color = "#ff0000"
	ColorYellow Color = "#ffff00"
	ColorBlue   Color = "#0000ff"
	ColorWhite  Color = "#ffffff"
	ColorBlack  Color = "#000000"
)

var playerColors = [2]Color{ColorGreen, ColorPurple}

// PlayerColor returns the color of the snake in the given slot (0 or 1).
func PlayerColor(slot int) Color {
	return playerColors[slot%len(playerColors)]
}

// RGB splits the color into its components. Malformed colors are black.
func (c Color) RGB() (r, g, b int32) {
	s := string(c)
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int32(v >> 16 & 0xff), int32(v >> 8 & 0xff), int32(v & 0xff)
}
