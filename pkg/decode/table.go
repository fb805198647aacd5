// Package decode turns the raw byte stream of a terminal into logical
// key events. The sequence table holds every byte sequence the decoder
// recognizes; the decoder resolves prefix ambiguity between them with
// bounded waits and structural cues.
package decode

import (
	"fmt"
	"sync"

	"github.com/dshills/termio/pkg/key"
)

// Class describes what kind of byte sequence an entry is.
type Class uint8

const (
	// ClassEscape is a multi-byte sequence starting with ESC.
	ClassEscape Class = iota
	// ClassControl is a single ASCII control code (Ctrl+letter).
	ClassControl
	// ClassSpecial is a single special byte (Enter, Tab, Space, ...).
	ClassSpecial
)

// Family tags entries whose byte sequences differ between terminal
// types for the same logical key.
type Family uint8

const (
	// FamilyCommon sequences are shared by the supported terminals.
	FamilyCommon Family = iota
	// FamilyXterm sequences follow xterm (SS3 function keys,
	// application-mode arrows).
	FamilyXterm
	// FamilyLinux sequences follow the Linux console (numbered
	// function-key encodings).
	FamilyLinux
)

func (f Family) String() string {
	switch f {
	case FamilyXterm:
		return "xterm"
	case FamilyLinux:
		return "linux"
	default:
		return "common"
	}
}

// Entry maps one byte sequence to a logical key plus modifiers.
type Entry struct {
	Seq    string
	Key    key.Key
	Mods   key.Modifier
	Class  Class
	Family Family
}

// Table is the static sequence registry the decoder consults. Exact
// matches are O(1); prefix queries drive incremental matching while an
// escape sequence accumulates.
type Table struct {
	entries  []Entry
	bySeq    map[string]int
	prefixes map[string]struct{}
}

const (
	esc = "\x1b"
	csi = esc + "["
	ss3 = esc + "O"
)

// NewTable builds the standard sequence table and validates it: no two
// entries may share a byte sequence, and the control codes claimed by
// Enter, Tab, and Backspace must never resolve to Ctrl+letter.
func NewTable() (*Table, error) {
	t := &Table{
		bySeq:    make(map[string]int, 128),
		prefixes: make(map[string]struct{}, 64),
	}

	if err := t.registerAll(); err != nil {
		return nil, err
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

var (
	defaultTable *Table
	defaultOnce  sync.Once
)

// Default returns the shared standard table. It panics if the standard
// table fails its own validation, which indicates a bug in the
// registrations, not a runtime condition.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := NewTable()
		if err != nil {
			panic("decode: invalid standard key table: " + err.Error())
		}
		defaultTable = t
	})
	return defaultTable
}

func (t *Table) registerAll() error {
	type row struct {
		seq    string
		key    key.Key
		mods   key.Modifier
		class  Class
		family Family
	}

	arrows := []struct {
		suffix string
		key    key.Key
	}{
		{"A", key.KeyUp},
		{"B", key.KeyDown},
		{"C", key.KeyRight},
		{"D", key.KeyLeft},
	}

	var rows []row

	// Arrow keys: CSI, application-mode SS3, and modified variants.
	for _, a := range arrows {
		rows = append(rows, row{csi + a.suffix, a.key, key.ModNone, ClassEscape, FamilyCommon})
	}
	for _, a := range arrows {
		rows = append(rows, row{ss3 + a.suffix, a.key, key.ModNone, ClassEscape, FamilyXterm})
	}
	for _, m := range []struct {
		code string
		mods key.Modifier
	}{
		{"2", key.ModShift},
		{"3", key.ModAlt},
		{"5", key.ModCtrl},
	} {
		for _, a := range arrows {
			rows = append(rows, row{csi + "1;" + m.code + a.suffix, a.key, m.mods, ClassEscape, FamilyCommon})
		}
	}

	// Home/End and the page/edit block.
	rows = append(rows,
		row{csi + "H", key.KeyHome, key.ModNone, ClassEscape, FamilyCommon},
		row{csi + "F", key.KeyEnd, key.ModNone, ClassEscape, FamilyCommon},
		row{ss3 + "H", key.KeyHome, key.ModNone, ClassEscape, FamilyXterm},
		row{ss3 + "F", key.KeyEnd, key.ModNone, ClassEscape, FamilyXterm},
		row{csi + "1~", key.KeyHome, key.ModNone, ClassEscape, FamilyLinux},
		row{csi + "4~", key.KeyEnd, key.ModNone, ClassEscape, FamilyLinux},
		row{csi + "2~", key.KeyInsert, key.ModNone, ClassEscape, FamilyCommon},
		row{csi + "3~", key.KeyDelete, key.ModNone, ClassEscape, FamilyCommon},
		row{csi + "5~", key.KeyPageUp, key.ModNone, ClassEscape, FamilyCommon},
		row{csi + "6~", key.KeyPageDown, key.ModNone, ClassEscape, FamilyCommon},
	)

	// F1-F4 exist twice: xterm SS3 letters and Linux-console numbers.
	for i, suffix := range []string{"P", "Q", "R", "S"} {
		rows = append(rows, row{ss3 + suffix, key.KeyF1 + key.Key(i), key.ModNone, ClassEscape, FamilyXterm})
	}
	for i, num := range []string{"11", "12", "13", "14"} {
		rows = append(rows, row{csi + num + "~", key.KeyF1 + key.Key(i), key.ModNone, ClassEscape, FamilyLinux})
	}
	// F5-F12 share one encoding. The numbering gaps at 16 and 22 are
	// historical.
	for i, num := range []string{"15", "17", "18", "19", "20", "21", "23", "24"} {
		rows = append(rows, row{csi + num + "~", key.KeyF5 + key.Key(i), key.ModNone, ClassEscape, FamilyCommon})
	}

	// Back-tab.
	rows = append(rows, row{csi + "Z", key.KeyTab, key.ModShift, ClassEscape, FamilyCommon})

	// Special single bytes. Enter tolerates Unix, legacy-Mac, and
	// Windows line endings; Backspace covers both 0x08 and DEL 0x7F.
	rows = append(rows,
		row{"\x0a", key.KeyEnter, key.ModNone, ClassSpecial, FamilyCommon},
		row{"\x0d", key.KeyEnter, key.ModNone, ClassSpecial, FamilyCommon},
		row{"\x0d\x0a", key.KeyEnter, key.ModNone, ClassSpecial, FamilyCommon},
		row{"\x09", key.KeyTab, key.ModNone, ClassSpecial, FamilyCommon},
		row{esc, key.KeyEscape, key.ModNone, ClassSpecial, FamilyCommon},
		row{"\x08", key.KeyBackspace, key.ModNone, ClassSpecial, FamilyCommon},
		row{"\x7f", key.KeyBackspace, key.ModNone, ClassSpecial, FamilyCommon},
	)

	// Ctrl+letter for control codes 1-26, minus the codes the special
	// keys above already claim (8, 9, 10, 13).
	for c := byte(1); c <= 26; c++ {
		switch c {
		case 8, 9, 10, 13:
			continue
		}
		rows = append(rows, row{string([]byte{c}), key.KeyA + key.Key(c-1), key.ModCtrl, ClassControl, FamilyCommon})
	}

	// Space and Ctrl+Space (NUL is what terminals transmit).
	rows = append(rows,
		row{" ", key.KeySpace, key.ModNone, ClassSpecial, FamilyCommon},
		row{"\x00", key.KeySpace, key.ModCtrl, ClassSpecial, FamilyCommon},
	)

	for _, r := range rows {
		if err := t.register(Entry{Seq: r.seq, Key: r.key, Mods: r.mods, Class: r.class, Family: r.family}); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) register(e Entry) error {
	if e.Seq == "" {
		return fmt.Errorf("empty sequence for key %s", e.Key)
	}
	if prev, ok := t.bySeq[e.Seq]; ok {
		return fmt.Errorf("sequence %q registered for both %s and %s",
			e.Seq, t.entries[prev].Key, e.Key)
	}
	t.bySeq[e.Seq] = len(t.entries)
	t.entries = append(t.entries, e)
	for i := 1; i < len(e.Seq); i++ {
		t.prefixes[e.Seq[:i]] = struct{}{}
	}
	return nil
}

// validate asserts the invariants the decoder depends on: the four
// reserved control codes resolve to their special keys and Ctrl+H/I/J/M
// are unreachable.
func (t *Table) validate() error {
	reserved := []struct {
		b    byte
		want key.Key
	}{
		{8, key.KeyBackspace},
		{9, key.KeyTab},
		{10, key.KeyEnter},
		{13, key.KeyEnter},
	}
	for _, r := range reserved {
		e, ok := t.Find([]byte{r.b})
		if !ok {
			return fmt.Errorf("control code %#02x is unregistered", r.b)
		}
		if e.Key != r.want || e.Mods != key.ModNone {
			return fmt.Errorf("control code %#02x resolves to %s, want %s", r.b, e.Key, r.want)
		}
	}
	for _, e := range t.entries {
		if e.Mods == key.ModCtrl {
			switch e.Key {
			case key.KeyH, key.KeyI, key.KeyJ, key.KeyM:
				return fmt.Errorf("Ctrl+%s must not be registered: its control code belongs to a special key", e.Key)
			}
		}
	}
	return nil
}

// Find returns the entry registered for exactly seq.
func (t *Table) Find(seq []byte) (Entry, bool) {
	if i, ok := t.bySeq[string(seq)]; ok {
		return t.entries[i], true
	}
	return Entry{}, false
}

// HasPrefix reports whether seq is a proper prefix of at least one
// registered sequence.
func (t *Table) HasPrefix(seq []byte) bool {
	_, ok := t.prefixes[string(seq)]
	return ok
}

// FindByKey returns every entry for a logical key, across terminal
// families, in registration order.
func (t *Table) FindByKey(k key.Key) []Entry {
	var out []Entry
	for _, e := range t.entries {
		if e.Key == k {
			out = append(out, e)
		}
	}
	return out
}

// FindByName resolves a key name or alias and returns its entries.
func (t *Table) FindByName(name string) []Entry {
	k := key.KeyFromName(name)
	if k == key.KeyNone {
		return nil
	}
	return t.FindByKey(k)
}

// Entries returns all entries in registration order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of registered entries.
func (t *Table) Len() int {
	return len(t.entries)
}
