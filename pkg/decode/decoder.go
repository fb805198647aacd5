package decode

import (
	"log"
	"time"
	"unicode/utf8"

	"github.com/dshills/termio/pkg/key"
	"github.com/dshills/termio/pkg/term"
)

const (
	// DefaultTimeout is the per-byte wait while an escape sequence
	// accumulates. It is empirical: long enough that a sequence split
	// across two reads is not torn apart, short enough not to lag a
	// bare Escape press. Tune via SetTimeout.
	DefaultTimeout = 100 * time.Millisecond

	// maxSequenceLen caps escape-sequence accumulation.
	maxSequenceLen = 16
)

// Decoder converts the driver's byte stream into logical key events,
// one per Poll call, without blocking beyond the bounded escape wait.
type Decoder struct {
	drv     term.Driver
	table   *Table
	timeout time.Duration

	pending []byte
	unread  []byte
}

// NewDecoder returns a decoder over drv using the standard table.
func NewDecoder(drv term.Driver) *Decoder {
	return NewDecoderWithTable(drv, Default())
}

// NewDecoderWithTable returns a decoder over drv using a custom table.
func NewDecoderWithTable(drv term.Driver, table *Table) *Decoder {
	return &Decoder{
		drv:     drv,
		table:   table,
		timeout: DefaultTimeout,
		pending: make([]byte, 0, maxSequenceLen),
	}
}

// SetTimeout changes the bounded per-byte wait used while an escape
// sequence accumulates.
func (d *Decoder) SetTimeout(t time.Duration) {
	if t > 0 {
		d.timeout = t
	}
}

// Timeout returns the current per-byte escape wait.
func (d *Decoder) Timeout() time.Duration {
	return d.timeout
}

// Table returns the sequence table the decoder consults.
func (d *Decoder) Table() *Table {
	return d.table
}

// Poll decodes the next pending keypress. ok is false when no input is
// pending; Poll never blocks in that case.
func (d *Decoder) Poll() (Event, bool) {
	b, ok := d.readByte()
	if !ok {
		return Event{}, false
	}
	if b == 0x1b {
		return d.decodeEscape(), true
	}
	return d.decodeSingle(b), true
}

// readByte pops a pushed-back byte before consulting the driver.
func (d *Decoder) readByte() (byte, bool) {
	if len(d.unread) > 0 {
		b := d.unread[0]
		d.unread = d.unread[1:]
		return b, true
	}
	return d.drv.ReadByte()
}

func (d *Decoder) pushBack(b byte) {
	d.unread = append(d.unread, b)
}

// hasByte reports whether a byte is immediately available.
func (d *Decoder) hasByte() bool {
	return len(d.unread) > 0 || d.drv.HasInput()
}

// waitByte waits up to the decoder timeout for a byte.
func (d *Decoder) waitByte() bool {
	if len(d.unread) > 0 {
		return true
	}
	return d.drv.WaitInput(d.timeout)
}

// decodeSingle resolves one non-ESC byte: a table entry, a printable
// character, or the start of a UTF-8 sequence.
func (d *Decoder) decodeSingle(b byte) Event {
	if e, ok := d.table.Find([]byte{b}); ok {
		// CR immediately followed by LF is one Enter (the CRLF
		// registration), never two. A bare CR does not wait.
		if b == 0x0d && d.hasByte() {
			if next, ok := d.readByte(); ok {
				if next == 0x0a {
					crlf, _ := d.table.Find([]byte{0x0d, 0x0a})
					return d.event(crlf.Key, crlf.Mods, []byte{0x0d, 0x0a})
				}
				d.pushBack(next)
			}
		}
		return d.event(e.Key, e.Mods, []byte{b})
	}

	if b >= 0x20 && b < 0x7f {
		return d.printable(rune(b), key.ModNone, []byte{b})
	}
	if b >= 0x80 {
		return d.decodeUTF8(b)
	}
	return d.unknown([]byte{b})
}

// decodeEscape accumulates bytes after ESC until the table matches,
// structure says the sequence ended, the per-byte wait times out, or
// the length cap is hit.
func (d *Decoder) decodeEscape() Event {
	d.pending = d.pending[:0]
	d.pending = append(d.pending, 0x1b)

	for len(d.pending) < maxSequenceLen {
		if !d.waitByte() {
			break
		}
		b, ok := d.readByte()
		if !ok {
			break
		}
		d.pending = append(d.pending, b)

		if e, ok := d.table.Find(d.pending); ok {
			return d.event(e.Key, e.Mods, d.pending)
		}
		if !d.continueEscape() {
			break
		}
	}
	return d.finalizeEscape()
}

// continueEscape applies the structural cues: CSI runs while bytes are
// digits or ';' and ends at the first letter or '~'; SS3 consumes
// exactly one byte; anything else ends immediately.
func (d *Decoder) continueEscape() bool {
	if len(d.pending) < 2 {
		return true
	}
	last := d.pending[len(d.pending)-1]
	switch d.pending[1] {
	case '[':
		if len(d.pending) == 2 {
			return true
		}
		return last >= '0' && last <= '9' || last == ';'
	case 'O':
		return len(d.pending) < 3
	default:
		return false
	}
}

// finalizeEscape resolves whatever accumulated: a lone ESC is Escape,
// ESC ESC is Alt+Escape, ESC plus one byte is the Alt-modified form of
// that byte, and anything else is an unknown-sequence diagnostic.
func (d *Decoder) finalizeEscape() Event {
	if len(d.pending) == 1 {
		return d.event(key.KeyEscape, key.ModNone, d.pending)
	}

	if e, ok := d.table.Find(d.pending); ok {
		return d.event(e.Key, e.Mods, d.pending)
	}

	if len(d.pending) == 2 {
		b := d.pending[1]
		if b == 0x1b {
			return d.event(key.KeyEscape, key.ModAlt, d.pending)
		}
		if e, ok := d.table.Find([]byte{b}); ok {
			return d.event(e.Key, e.Mods.With(key.ModAlt), d.pending)
		}
		if b >= 0x20 && b < 0x7f {
			return d.printable(rune(b), key.ModAlt, d.pending)
		}
	}

	raw := make([]byte, len(d.pending))
	copy(raw, d.pending)
	return d.unknown(raw)
}

// decodeUTF8 completes a multi-byte character whose first byte already
// arrived. Continuation bytes split across reads get the same bounded
// wait as escape sequences.
func (d *Decoder) decodeUTF8(first byte) Event {
	n := utf8SeqLen(first)
	if n < 2 {
		return d.unknown([]byte{first})
	}

	buf := make([]byte, 1, n)
	buf[0] = first
	for len(buf) < n {
		if !d.waitByte() {
			return d.unknown(buf)
		}
		b, ok := d.readByte()
		if !ok {
			return d.unknown(buf)
		}
		buf = append(buf, b)
	}

	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError && size <= 1 {
		return d.unknown(buf)
	}
	return Event{Key: key.KeyChar, Rune: r, Raw: buf, Time: time.Now()}
}

// printable classifies an ASCII printable: letters and digits land on
// their enumerated keys (an uppercase letter is the shifted letter),
// everything else is a character event.
func (d *Decoder) printable(r rune, mods key.Modifier, raw []byte) Event {
	if k := key.LetterKey(r); k != key.KeyNone {
		if r >= 'A' && r <= 'Z' {
			mods = mods.With(key.ModShift)
		}
		return d.event(k, mods, raw)
	}
	if k := key.DigitKey(r); k != key.KeyNone {
		return d.event(k, mods, raw)
	}
	return Event{Key: key.KeyChar, Rune: r, Mods: mods, Raw: append([]byte(nil), raw...), Time: time.Now()}
}

// event builds a key event. raw is copied because escape accumulation
// reuses the pending buffer across calls.
func (d *Decoder) event(k key.Key, mods key.Modifier, raw []byte) Event {
	return Event{Key: k, Mods: mods, Raw: append([]byte(nil), raw...), Time: time.Now()}
}

func (d *Decoder) unknown(raw []byte) Event {
	ev := Event{Key: key.KeyUnknown, Raw: raw, Time: time.Now()}
	log.Printf("decode: unknown sequence %x", raw)
	return ev
}

// utf8SeqLen returns the byte length a UTF-8 lead byte announces, or 0
// for invalid lead bytes.
func utf8SeqLen(b byte) int {
	switch {
	case b&0xe0 == 0xc0:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b&0xf8 == 0xf0:
		return 4
	default:
		return 0
	}
}
