package key

import (
	"fmt"
	"strings"
)

// Key identifies a logical keyboard key, independent of the byte
// sequence a particular terminal transmits for it.
type Key uint16

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// Special keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeySpace

	// Letters A-Z. The key is the letter; Shift carries the case.
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	// Digits 0-9.
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	// KeyChar is a printable character outside the enumerated set
	// (punctuation, non-ASCII). The character travels alongside the key
	// in the decoder's event, not in the key itself.
	KeyChar

	// KeyUnknown is the diagnostic key for byte sequences that match no
	// table entry.
	KeyUnknown
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch {
	case k.IsLetter():
		return string(rune('A' + k - KeyA))
	case k.IsDigit():
		return string(rune('0' + k - Key0))
	case k.IsFunctionKey():
		return fmt.Sprintf("F%d", k-KeyF1+1)
	}
	switch k {
	case KeyNone:
		return "None"
	case KeyEscape:
		return "Escape"
	case KeyEnter:
		return "Enter"
	case KeyTab:
		return "Tab"
	case KeyBackspace:
		return "Backspace"
	case KeyDelete:
		return "Delete"
	case KeyInsert:
		return "Insert"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyPageUp:
		return "Page Up"
	case KeyPageDown:
		return "Page Down"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeySpace:
		return "Space"
	case KeyChar:
		return "Char"
	case KeyUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("Key(%d)", k)
	}
}

// TokenName returns the key's name as used inside wire tokens:
// "UP", "PAGE_DOWN", "F5", "A", "7", "SPACE".
func (k Key) TokenName() string {
	switch {
	case k.IsLetter():
		return string(rune('A' + k - KeyA))
	case k.IsDigit():
		return string(rune('0' + k - Key0))
	case k.IsFunctionKey():
		return fmt.Sprintf("F%d", k-KeyF1+1)
	}
	switch k {
	case KeyEscape:
		return "ESCAPE"
	case KeyEnter:
		return "ENTER"
	case KeyTab:
		return "TAB"
	case KeyBackspace:
		return "BACKSPACE"
	case KeyDelete:
		return "DELETE"
	case KeyInsert:
		return "INSERT"
	case KeyHome:
		return "HOME"
	case KeyEnd:
		return "END"
	case KeyPageUp:
		return "PAGE_UP"
	case KeyPageDown:
		return "PAGE_DOWN"
	case KeyUp:
		return "UP"
	case KeyDown:
		return "DOWN"
	case KeyLeft:
		return "LEFT"
	case KeyRight:
		return "RIGHT"
	case KeySpace:
		return "SPACE"
	default:
		return ""
	}
}

// IsLetter returns true for the letter keys A-Z.
func (k Key) IsLetter() bool {
	return k >= KeyA && k <= KeyZ
}

// IsDigit returns true for the digit keys 0-9.
func (k Key) IsDigit() bool {
	return k >= Key0 && k <= Key9
}

// IsFunctionKey returns true for F1-F12.
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF12
}

// IsArrowKey returns true for the arrow keys.
func (k Key) IsArrowKey() bool {
	return k >= KeyUp && k <= KeyRight
}

// IsNavigationKey returns true for arrows, Home, End, PageUp, PageDown.
func (k Key) IsNavigationKey() bool {
	return k.IsArrowKey() || k == KeyHome || k == KeyEnd || k == KeyPageUp || k == KeyPageDown
}

// LetterKey returns the letter key for r (either case), or KeyNone if r
// is not an ASCII letter.
func LetterKey(r rune) Key {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyA + Key(r-'a')
	case r >= 'A' && r <= 'Z':
		return KeyA + Key(r-'A')
	}
	return KeyNone
}

// DigitKey returns the digit key for r, or KeyNone if r is not an ASCII
// digit.
func DigitKey(r rune) Key {
	if r >= '0' && r <= '9' {
		return Key0 + Key(r-'0')
	}
	return KeyNone
}

// keyNameMap maps key names and aliases (lowercase) to Key values.
var keyNameMap = map[string]Key{
	"escape":    KeyEscape,
	"esc":       KeyEscape,
	"enter":     KeyEnter,
	"return":    KeyEnter,
	"tab":       KeyTab,
	"backspace": KeyBackspace,
	"bs":        KeyBackspace,
	"delete":    KeyDelete,
	"del":       KeyDelete,
	"insert":    KeyInsert,
	"ins":       KeyInsert,
	"home":      KeyHome,
	"end":       KeyEnd,
	"pageup":    KeyPageUp,
	"page_up":   KeyPageUp,
	"page up":   KeyPageUp,
	"pgup":      KeyPageUp,
	"pagedown":  KeyPageDown,
	"page_down": KeyPageDown,
	"page down": KeyPageDown,
	"pgdn":      KeyPageDown,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
	"space":     KeySpace,
	"f1":        KeyF1,
	"f2":        KeyF2,
	"f3":        KeyF3,
	"f4":        KeyF4,
	"f5":        KeyF5,
	"f6":        KeyF6,
	"f7":        KeyF7,
	"f8":        KeyF8,
	"f9":        KeyF9,
	"f10":       KeyF10,
	"f11":       KeyF11,
	"f12":       KeyF12,
}

// KeyFromName returns the Key for a given name or alias
// (case-insensitive). Single letters and digits resolve to their keys.
// Returns KeyNone if the name is not recognized.
func KeyFromName(name string) Key {
	name = strings.ToLower(strings.TrimSpace(name))
	if k, ok := keyNameMap[name]; ok {
		return k
	}
	if len(name) == 1 {
		r := rune(name[0])
		if k := LetterKey(r); k != KeyNone {
			return k
		}
		if k := DigitKey(r); k != KeyNone {
			return k
		}
	}
	return KeyNone
}
