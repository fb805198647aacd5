package frame

import (
	"github.com/mattn/go-runewidth"
)

// Cell is one terminal cell: a rune plus its style. A zero rune marks
// the continuation cell of a wide rune to its left.
type Cell struct {
	Rune  rune
	Style Style
}

// Equals compares two cells.
func (c Cell) Equals(other Cell) bool {
	return c == other
}

// blank is what Clear fills with.
var blank = Cell{Rune: ' '}

// Frame is a fixed-size 2D grid of cells, the unit the renderer diffs.
// Writes clip silently at the boundary.
type Frame struct {
	width  int
	height int
	cells  []Cell
}

// NewFrame returns a cleared frame of the given dimensions.
func NewFrame(width, height int) *Frame {
	f := &Frame{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	f.Clear()
	return f
}

// Size returns the frame dimensions.
func (f *Frame) Size() (width, height int) {
	return f.width, f.height
}

// Get retrieves the cell at (x, y). Out-of-bounds reads return a blank
// cell.
func (f *Frame) Get(x, y int) Cell {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return blank
	}
	return f.cells[y*f.width+x]
}

// Set writes the cell at (x, y). Out-of-bounds writes are dropped.
func (f *Frame) Set(x, y int, cell Cell) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	f.cells[y*f.width+x] = cell
}

// Clear fills the frame with blank cells.
func (f *Frame) Clear() {
	for i := range f.cells {
		f.cells[i] = blank
	}
}

// WriteAt writes text into the frame starting at (x, y), clipping
// silently at the frame boundary. Text never wraps to the next row.
// Wide runes advance by their display width and leave continuation
// cells behind them; a wide rune that would straddle the right edge is
// dropped.
func (f *Frame) WriteAt(x, y int, text string, style Style) {
	if y < 0 || y >= f.height {
		return
	}
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > f.width {
			return
		}
		if x >= 0 {
			f.cells[y*f.width+x] = Cell{Rune: r, Style: style}
			for i := 1; i < w; i++ {
				f.cells[y*f.width+x+i] = Cell{Style: style}
			}
		}
		x += w
	}
}

// FillRect fills the rectangle with r, clipped to the frame.
func (f *Frame) FillRect(x, y, w, h int, r rune, style Style) {
	cell := Cell{Rune: r, Style: style}
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			f.Set(col, row, cell)
		}
	}
}

// DrawBox draws a single-line box with the given outer dimensions.
// Boxes smaller than 2x2 are dropped.
func (f *Frame) DrawBox(x, y, w, h int, style Style) {
	if w < 2 || h < 2 {
		return
	}
	for col := x + 1; col < x+w-1; col++ {
		f.Set(col, y, Cell{Rune: '─', Style: style})
		f.Set(col, y+h-1, Cell{Rune: '─', Style: style})
	}
	for row := y + 1; row < y+h-1; row++ {
		f.Set(x, row, Cell{Rune: '│', Style: style})
		f.Set(x+w-1, row, Cell{Rune: '│', Style: style})
	}
	f.Set(x, y, Cell{Rune: '┌', Style: style})
	f.Set(x+w-1, y, Cell{Rune: '┐', Style: style})
	f.Set(x, y+h-1, Cell{Rune: '└', Style: style})
	f.Set(x+w-1, y+h-1, Cell{Rune: '┘', Style: style})
}

// Row returns the y-th row's cells. The slice aliases the frame.
func (f *Frame) Row(y int) []Cell {
	if y < 0 || y >= f.height {
		return nil
	}
	return f.cells[y*f.width : (y+1)*f.width]
}

// Text returns the row's characters as a string, continuation cells
// skipped. Intended for tests and debugging.
func (f *Frame) Text(y int) string {
	row := f.Row(y)
	if row == nil {
		return ""
	}
	runes := make([]rune, 0, len(row))
	for _, c := range row {
		if c.Rune == 0 {
			continue
		}
		runes = append(runes, c.Rune)
	}
	return string(runes)
}
