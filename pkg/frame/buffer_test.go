package frame

import (
	"strings"
	"testing"
)

func TestNewFrame_StartsCleared(t *testing.T) {
	f := NewFrame(4, 3)
	w, h := f.Size()
	if w != 4 || h != 3 {
		t.Fatalf("Size() = %dx%d, want 4x3", w, h)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if got := f.Get(x, y); got != blank {
				t.Fatalf("cell (%d,%d) = %+v, want blank", x, y, got)
			}
		}
	}
}

func TestFrame_SetGet(t *testing.T) {
	f := NewFrame(4, 3)
	cell := Cell{Rune: 'x', Style: Style{}.Bold()}
	f.Set(2, 1, cell)
	if got := f.Get(2, 1); got != cell {
		t.Errorf("Get(2,1) = %+v, want %+v", got, cell)
	}

	// Out-of-bounds writes are dropped, reads come back blank
	for _, p := range [][2]int{{-1, 0}, {4, 0}, {0, -1}, {0, 3}} {
		f.Set(p[0], p[1], cell)
		if got := f.Get(p[0], p[1]); got != blank {
			t.Errorf("Get(%d,%d) = %+v, want blank", p[0], p[1], got)
		}
	}
}

func TestFrame_WriteAt(t *testing.T) {
	f := NewFrame(10, 2)
	f.WriteAt(2, 0, "Hello", Style{})
	if got := f.Text(0); got != "  Hello   " {
		t.Errorf("Text(0) = %q", got)
	}
	if got := f.Text(1); got != strings.Repeat(" ", 10) {
		t.Errorf("row 1 touched: %q", got)
	}
}

func TestFrame_WriteAt_ClipsAtRightEdge(t *testing.T) {
	f := NewFrame(5, 1)
	f.WriteAt(3, 0, "long text", Style{})
	if got := f.Text(0); got != "   lo" {
		t.Errorf("Text(0) = %q, want clipped %q", got, "   lo")
	}
}

func TestFrame_WriteAt_NegativeXClipsLeft(t *testing.T) {
	f := NewFrame(5, 1)
	f.WriteAt(-2, 0, "abcd", Style{})
	if got := f.Text(0); got != "cd   " {
		t.Errorf("Text(0) = %q, want %q", got, "cd   ")
	}
}

func TestFrame_WriteAt_RowOutOfBounds(t *testing.T) {
	f := NewFrame(5, 2)
	f.WriteAt(0, -1, "x", Style{})
	f.WriteAt(0, 2, "x", Style{})
	if f.Text(0) != "     " || f.Text(1) != "     " {
		t.Error("out-of-bounds row write landed")
	}
}

func TestFrame_WriteAt_WideRunes(t *testing.T) {
	f := NewFrame(6, 1)
	f.WriteAt(0, 0, "日本", Style{})

	if got := f.Get(0, 0).Rune; got != '日' {
		t.Errorf("cell 0 = %q", got)
	}
	if got := f.Get(1, 0).Rune; got != 0 {
		t.Errorf("cell 1 = %q, want continuation", got)
	}
	if got := f.Get(2, 0).Rune; got != '本' {
		t.Errorf("cell 2 = %q", got)
	}
	if got := f.Text(0); got != "日本  " {
		t.Errorf("Text(0) = %q", got)
	}
}

func TestFrame_WriteAt_WideRuneStraddlingEdgeDropped(t *testing.T) {
	f := NewFrame(5, 1)
	f.WriteAt(4, 0, "日", Style{})
	if got := f.Get(4, 0); got != blank {
		t.Errorf("straddling wide rune landed: %+v", got)
	}
}

func TestFrame_FillRect(t *testing.T) {
	f := NewFrame(6, 4)
	f.FillRect(1, 1, 3, 2, '#', Style{})
	if f.Text(0) != "      " {
		t.Error("row 0 touched")
	}
	if f.Text(1) != " ###  " || f.Text(2) != " ###  " {
		t.Errorf("rows = %q / %q", f.Text(1), f.Text(2))
	}

	// Clips at the boundary
	f.FillRect(4, 3, 10, 10, '*', Style{})
	if f.Text(3) != "    **" {
		t.Errorf("clipped fill = %q", f.Text(3))
	}
}

func TestFrame_DrawBox(t *testing.T) {
	f := NewFrame(5, 3)
	f.DrawBox(0, 0, 5, 3, Style{})

	if got := f.Text(0); got != "┌───┐" {
		t.Errorf("top = %q", got)
	}
	if got := f.Text(1); got != "│   │" {
		t.Errorf("middle = %q", got)
	}
	if got := f.Text(2); got != "└───┘" {
		t.Errorf("bottom = %q", got)
	}
}

func TestFrame_DrawBox_TooSmallDropped(t *testing.T) {
	f := NewFrame(5, 3)
	f.DrawBox(0, 0, 1, 3, Style{})
	f.DrawBox(0, 0, 3, 1, Style{})
	if f.Text(0) != "     " {
		t.Errorf("degenerate box drew: %q", f.Text(0))
	}
}

func TestFrame_Clear(t *testing.T) {
	f := NewFrame(3, 2)
	f.WriteAt(0, 0, "abc", Style{}.Bold())
	f.Clear()
	for x := 0; x < 3; x++ {
		if got := f.Get(x, 0); got != blank {
			t.Fatalf("cell %d after Clear = %+v", x, got)
		}
	}
}

func TestFrame_Row(t *testing.T) {
	f := NewFrame(4, 2)
	if row := f.Row(1); len(row) != 4 {
		t.Errorf("Row(1) len = %d", len(row))
	}
	if f.Row(-1) != nil || f.Row(2) != nil {
		t.Error("out-of-bounds Row returned cells")
	}
}
