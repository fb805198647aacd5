package frame

// Run is a horizontal stretch of changed cells on one row.
type Run struct {
	X     int
	Y     int
	Cells []Cell
}

// DiffFrames walks two equally-sized frames row by row and coalesces
// consecutive changed cells into runs. Unchanged cells appear in no
// run and therefore cost nothing to emit.
func DiffFrames(current, next *Frame) []Run {
	var runs []Run
	if current.width != next.width || current.height != next.height {
		// Mismatched sizes only occur mid-resize; the renderer forces a
		// full redraw instead of diffing.
		return nil
	}

	for y := 0; y < next.height; y++ {
		cur := current.Row(y)
		nxt := next.Row(y)

		var run *Run
		for x := 0; x < next.width; x++ {
			if nxt[x].Equals(cur[x]) {
				run = nil
				continue
			}
			if run == nil {
				runs = append(runs, Run{X: x, Y: y})
				run = &runs[len(runs)-1]
			}
			run.Cells = append(run.Cells, nxt[x])
		}
	}
	return runs
}
