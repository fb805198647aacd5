package frame

import (
	"bytes"
	"time"

	"github.com/dshills/termio/pkg/term"
)

// Renderer owns the two frames of the double buffer and reconciles the
// terminal to the next frame once per EndFrame. After EndFrame the
// current frame is a byte-for-byte model of the physical display,
// assuming nothing else writes to the terminal.
type Renderer struct {
	drv term.Driver

	current *Frame
	next    *Frame
	width   int
	height  int

	forceFull bool
	buf       bytes.Buffer
}

// NewRenderer returns a renderer sized to the given dimensions. The
// first EndFrame paints the full screen.
func NewRenderer(drv term.Driver, width, height int) *Renderer {
	return &Renderer{
		drv:       drv,
		current:   NewFrame(width, height),
		next:      NewFrame(width, height),
		width:     width,
		height:    height,
		forceFull: true,
	}
}

// Size returns the renderer's frame dimensions.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// Frame returns the next frame, the one consumers paint into.
func (r *Renderer) Frame() *Frame {
	return r.next
}

// BeginFrame clears the next frame for immediate-mode repainting.
func (r *Renderer) BeginFrame() {
	r.next.Clear()
}

// WriteAt writes into the next frame. See Frame.WriteAt.
func (r *Renderer) WriteAt(x, y int, text string, style Style) {
	r.next.WriteAt(x, y, text, style)
}

// FillRect fills into the next frame. See Frame.FillRect.
func (r *Renderer) FillRect(x, y, w, h int, ch rune, style Style) {
	r.next.FillRect(x, y, w, h, ch, style)
}

// DrawBox draws into the next frame. See Frame.DrawBox.
func (r *Renderer) DrawBox(x, y, w, h int, style Style) {
	r.next.DrawBox(x, y, w, h, style)
}

// Invalidate forces the next EndFrame to clear and repaint the full
// screen. Use it when something outside the renderer may have written
// to the terminal.
func (r *Renderer) Invalidate() {
	r.forceFull = true
}

// Resize reallocates both frames for the new dimensions and forces the
// next EndFrame to repaint the full screen instead of diffing.
func (r *Renderer) Resize(width, height int) {
	if width == r.width && height == r.height {
		return
	}
	r.width = width
	r.height = height
	r.current = NewFrame(width, height)
	r.next = NewFrame(width, height)
	r.forceFull = true
}

// EndFrame diffs the next frame against the current one, emits the
// reconciling write batch, flushes it, and swaps buffers. The evicted
// buffer becomes the new next frame, overwritten in place. With no
// intervening writes a second EndFrame emits nothing.
func (r *Renderer) EndFrame() (time.Duration, error) {
	start := time.Now()

	r.buf.Reset()
	if r.forceFull {
		// A forced redraw clears the screen, which makes the cleared
		// current frame an accurate model to diff against.
		r.current.Clear()
		r.buf.WriteString(term.ClearScreen)
		r.buf.WriteString(term.CursorHome)
		r.forceFull = false
	}

	runs := DiffFrames(r.current, r.next)
	if len(runs) == 0 && r.buf.Len() == 0 {
		return time.Since(start), nil
	}

	r.emit(runs)
	if _, err := r.drv.Write(r.buf.Bytes()); err != nil {
		return time.Since(start), err
	}
	if err := r.drv.Flush(); err != nil {
		return time.Since(start), err
	}

	r.current, r.next = r.next, r.current
	copy(r.next.cells, r.current.cells)
	return time.Since(start), nil
}

// emit renders runs into the batch buffer: one cursor move per run,
// style sequences only where the rendition changes, one trailing
// reset. The terminal sits at the default rendition between batches.
func (r *Renderer) emit(runs []Run) {
	style := StyleDefault
	for _, run := range runs {
		r.buf.WriteString(term.MoveCursor(run.X, run.Y))
		for _, cell := range run.Cells {
			if cell.Rune == 0 {
				// Continuation of a wide rune already written.
				continue
			}
			if cell.Style != style {
				r.buf.WriteString(cell.Style.Sequence())
				style = cell.Style
			}
			r.buf.WriteRune(cell.Rune)
		}
	}
	r.buf.WriteString(term.ResetStyle)
}
