package termtest

import (
	"testing"

	"github.com/dshills/termio/pkg/decode"
	"github.com/dshills/termio/pkg/key"
	"github.com/dshills/termio/pkg/term"
)

// Every encodable spec must decode back to the combination it names,
// or scripted tests and the decoder disagree about what was pressed.
func TestEncode_DecodeRoundTrip(t *testing.T) {
	specs := []string{
		"q",
		"shift+q",
		"ctrl+q",
		"alt+q",
		"alt+shift+q",
		"ctrl+alt+q",
		"7",
		"space",
		"ctrl+space",
		"enter",
		"tab",
		"shift+tab",
		"backspace",
		"up",
		"down",
		"left",
		"right",
		"ctrl+up",
		"alt+up",
		"shift+down",
		"home",
		"end",
		"insert",
		"delete",
		"page_up",
		"page_down",
		"f1",
		"f5",
		"f12",
		"escape",
		"alt+escape",
		"alt+enter",
	}

	for _, spec := range specs {
		t.Run(spec, func(t *testing.T) {
			p, err := Encode(spec)
			if err != nil {
				t.Fatalf("Encode(%q) failed: %v", spec, err)
			}

			drv := term.NewVirtualDriver(80, 24)
			drv.Feed(p)
			d := decode.NewDecoder(drv)

			ev, ok := d.Poll()
			if !ok {
				t.Fatalf("no event decoded from % x", p)
			}
			want := key.MustParse(spec)
			if !ev.Combination().Equal(want) {
				t.Errorf("decoded %s, want %s (bytes % x)", ev.Label(), want.Label(), p)
			}
			if _, ok := d.Poll(); ok {
				t.Errorf("trailing event after % x", p)
			}
		})
	}
}

func TestEncode_Errors(t *testing.T) {
	for _, spec := range []string{"", "ctrl+", "bogus", "ctrl+shift+a"} {
		if _, err := Encode(spec); err == nil {
			t.Errorf("Encode(%q) succeeded", spec)
		}
	}
}

func TestScript_Concatenates(t *testing.T) {
	p, err := Script("i", "shift+h", "i", "enter")
	if err != nil {
		t.Fatalf("Script failed: %v", err)
	}
	if string(p) != "iHi\x0a" {
		t.Errorf("Script = %q, want %q", p, "iHi\x0a")
	}
}
