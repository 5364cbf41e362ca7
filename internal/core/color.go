package core

// Color is the foreground color of a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Colors used by the board, the HUD and the overlays.
const (
	ColorDefault      Color = iota
	ColorRed                // unhappy roundy
	ColorGreen              // happy roundy
	ColorYellow             // added roundy, happy
	ColorOrange             // added roundy, unhappy
	ColorCyan               // cursor
	ColorBrightWhite        // moving roundy
	ColorBrightYellow       // toast messages
	ColorGray               // empty cells and hints
)
