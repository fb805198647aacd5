package term

import "strconv"

// Control sequences shared by the renderer and the drivers.
const (
	ESC = "\x1b"
	CSI = ESC + "["

	EnterAltScreen = CSI + "?1049h"
	ExitAltScreen  = CSI + "?1049l"
	HideCursor     = CSI + "?25l"
	ShowCursor     = CSI + "?25h"
	ClearScreen    = CSI + "2J"
	CursorHome     = CSI + "H"
	ResetStyle     = CSI + "0m"
)

// MoveCursor returns the sequence positioning the cursor at (x, y) in
// 0-based cell coordinates. The wire format is 1-based.
func MoveCursor(x, y int) string {
	return CSI + strconv.Itoa(y+1) + ";" + strconv.Itoa(x+1) + "H"
}
