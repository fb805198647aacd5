package term

import "testing"

func TestMoveCursor(t *testing.T) {
	tests := []struct {
		x, y int
		want string
	}{
		{0, 0, "\x1b[1;1H"},
		{8, 0, "\x1b[1;9H"},
		{0, 8, "\x1b[9;1H"},
		{79, 23, "\x1b[24;80H"},
	}
	for _, tt := range tests {
		if got := MoveCursor(tt.x, tt.y); got != tt.want {
			t.Errorf("MoveCursor(%d, %d) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}
}
