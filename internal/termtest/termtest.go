// Package termtest synthesizes terminal input for tests: it renders
// binding specs back into the byte sequences a terminal would send, so
// integration tests can script keypresses without hard-coding escape
// sequences.
package termtest

import (
	"fmt"

	"github.com/dshills/termio/pkg/decode"
	"github.com/dshills/termio/pkg/key"
)

// Encode renders one binding spec ("ctrl+left", "alt+x", "q") as the
// bytes a terminal sends for that keypress.
//
// A lone Escape should only end a script. Any byte that follows it
// without a pause joins the escape sequence, exactly as on a real
// terminal.
func Encode(spec string) ([]byte, error) {
	combo, err := key.Parse(spec)
	if err != nil {
		return nil, err
	}
	p, err := encodeCombo(combo)
	if err != nil {
		return nil, fmt.Errorf("encode %q: %w", spec, err)
	}
	return p, nil
}

// Script encodes each spec and concatenates the results.
func Script(specs ...string) ([]byte, error) {
	var out []byte
	for _, s := range specs {
		p, err := Encode(s)
		if err != nil {
			return nil, err
		}
		out = append(out, p...)
	}
	return out, nil
}

func encodeCombo(c key.Combination) ([]byte, error) {
	// Exact table match covers special keys, modified arrows,
	// back-tab, and Ctrl+letter.
	if seq, ok := lookupSeq(c.Key, c.Mods); ok {
		return []byte(seq), nil
	}
	// Plain and shifted printables are not table entries.
	if b, ok := printableByte(c.Key, c.Mods); ok {
		return []byte{b}, nil
	}
	// Remaining Alt chords are ESC-prefixed.
	if c.Mods.HasAlt() {
		rest := key.Combination{Key: c.Key, Mods: c.Mods.Without(key.ModAlt)}
		base, err := encodeCombo(rest)
		if err != nil {
			return nil, err
		}
		return append([]byte{0x1b}, base...), nil
	}
	return nil, fmt.Errorf("no terminal sequence produces %s", c.Label())
}

func lookupSeq(k key.Key, mods key.Modifier) (string, bool) {
	for _, e := range decode.Default().FindByKey(k) {
		if e.Mods == mods {
			return e.Seq, true
		}
	}
	return "", false
}

func printableByte(k key.Key, mods key.Modifier) (byte, bool) {
	switch {
	case k.IsLetter():
		switch mods {
		case key.ModNone:
			return byte('a' + (k - key.KeyA)), true
		case key.ModShift:
			return byte('A' + (k - key.KeyA)), true
		}
	case k.IsDigit():
		if mods == key.ModNone {
			return byte('0' + (k - key.Key0)), true
		}
	}
	return 0, false
}
