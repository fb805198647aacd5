package decode

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/dshills/termio/pkg/key"
)

// Event is one decoded keypress.
type Event struct {
	Key  key.Key
	Mods key.Modifier

	// Rune carries the character for KeyChar events.
	Rune rune

	// Raw holds the exact bytes the decoder consumed for this event.
	Raw []byte

	// Time is when the event was decoded.
	Time time.Time
}

// Token renders the event as its wire token, the form the binding
// registry matches on: combination tokens for enumerated keys, the
// literal character for KeyChar, and UNKNOWN_<hex> for unmatched
// sequences.
func (e Event) Token() string {
	switch e.Key {
	case key.KeyChar:
		return string(e.Rune)
	case key.KeyUnknown:
		return "UNKNOWN_" + hex.EncodeToString(e.Raw)
	default:
		return key.Combination{Key: e.Key, Mods: e.Mods}.RawToken()
	}
}

// Label renders the event for humans, e.g. "Ctrl+Page Up" or "q".
func (e Event) Label() string {
	switch e.Key {
	case key.KeyChar:
		if e.Mods == key.ModNone {
			return string(e.Rune)
		}
		return e.Mods.String() + "+" + string(e.Rune)
	case key.KeyUnknown:
		return fmt.Sprintf("Unknown(%x)", e.Raw)
	default:
		return key.Combination{Key: e.Key, Mods: e.Mods}.Label()
	}
}

// IsUnknown reports whether the event is an unmatched-sequence
// diagnostic.
func (e Event) IsUnknown() bool {
	return e.Key == key.KeyUnknown
}

// Combination returns the event's key combination. Meaningless for
// KeyChar and KeyUnknown events.
func (e Event) Combination() key.Combination {
	return key.Combination{Key: e.Key, Mods: e.Mods}
}
