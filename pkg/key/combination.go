package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
	ErrBadToken    = errors.New("invalid wire token")
)

// Combination is a logical key plus a modifier set. It is the unit the
// binding registry matches on and the value a human-readable
// specification like "Ctrl+Shift+A" parses into.
type Combination struct {
	Key  Key
	Mods Modifier
}

// Parse parses a human-readable key specification into a Combination.
//
// Supported forms:
//   - Bare key: "a", "7", "F5", "Enter", "Space"
//   - With modifiers: "Ctrl+S", "Alt+F4", "shift+ctrl+p"
//
// Modifier names are case-insensitive and order-insensitive. The key
// token is case-insensitive and may use the aliases ESC, DEL, INS, BS,
// RETURN, PGUP/PAGEUP, PGDN/PAGEDOWN.
func Parse(spec string) (Combination, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Combination{}, ErrEmptySpec
	}

	parts := strings.Split(spec, "+")
	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Combination{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, strings.TrimSpace(p))
		}
		mods = mods.With(mod)
	}

	keyPart := strings.TrimSpace(parts[len(parts)-1])
	if keyPart == "" {
		return Combination{}, fmt.Errorf("%w: missing key in %q", ErrInvalidSpec, spec)
	}
	k := KeyFromName(keyPart)
	if k == KeyNone {
		return Combination{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
	}
	return Combination{Key: k, Mods: mods}, nil
}

// MustParse parses a key specification and panics on error. Use only
// for known-valid specs in initialization code.
func MustParse(spec string) Combination {
	c, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return c
}

// RawToken renders the combination as its wire token, the exact form
// the decoder emits for the corresponding keypress:
//
//   - bare Space is the literal " " (what the space bar transmits)
//   - an unmodified letter is its lowercase character, a
//     shifted-only letter its uppercase character
//   - everything else is the modifier prefix in fixed CTRL, ALT,
//     SHIFT order followed by the key's token name: "CTRL_C",
//     "SHIFT_TAB", "PAGE_UP", "CTRL_SHIFT_A", "CTRL_SPACE"
func (c Combination) RawToken() string {
	if c.Mods == ModNone {
		switch {
		case c.Key == KeySpace:
			return " "
		case c.Key.IsLetter():
			return string(rune('a' + c.Key - KeyA))
		}
		return c.Key.TokenName()
	}
	if c.Mods == ModShift && c.Key.IsLetter() {
		return string(rune('A' + c.Key - KeyA))
	}
	return c.Mods.tokenPrefix() + c.Key.TokenName()
}

// Label renders the combination for humans: modifiers in fixed
// "Ctrl+Alt+Shift" order, then the key's display name ("Page Up",
// "F5", "A").
func (c Combination) Label() string {
	if c.Mods == ModNone {
		return c.Key.String()
	}
	return c.Mods.String() + "+" + c.Key.String()
}

// Spec renders the combination in canonical parseable form, lowercase
// with "+" separators: "ctrl+q", "shift+tab", "ctrl+page_up". Parse of
// the result yields the combination back.
func (c Combination) Spec() string {
	name := strings.ToLower(c.Key.TokenName())
	if c.Mods == ModNone {
		return name
	}
	prefix := strings.ToLower(c.Mods.tokenPrefix())
	return strings.ReplaceAll(prefix, "_", "+") + name
}

// Equal reports whether two combinations map to the same wire token.
func (c Combination) Equal(other Combination) bool {
	return c.RawToken() == other.RawToken()
}

// String implements fmt.Stringer using the human-readable label.
func (c Combination) String() string {
	return c.Label()
}

// FromRaw parses a wire token back into a Combination. It is the exact
// inverse of RawToken over the decoder's non-diagnostic output
// alphabet; tokens that cannot name a combination (punctuation
// characters, UNKNOWN_ diagnostics) return ErrBadToken.
func FromRaw(token string) (Combination, error) {
	if token == "" {
		return Combination{}, fmt.Errorf("%w: empty token", ErrBadToken)
	}
	if token == " " {
		return Combination{Key: KeySpace}, nil
	}

	runes := []rune(token)
	if len(runes) == 1 {
		r := runes[0]
		switch {
		case r >= 'a' && r <= 'z':
			return Combination{Key: LetterKey(r)}, nil
		case r >= 'A' && r <= 'Z':
			return Combination{Key: LetterKey(r), Mods: ModShift}, nil
		case r >= '0' && r <= '9':
			return Combination{Key: DigitKey(r)}, nil
		}
		return Combination{}, fmt.Errorf("%w: %q is not a bindable key", ErrBadToken, token)
	}

	var mods Modifier
	rest := token
	for {
		switch {
		case strings.HasPrefix(rest, "CTRL_"):
			mods = mods.With(ModCtrl)
			rest = rest[len("CTRL_"):]
		case strings.HasPrefix(rest, "ALT_"):
			mods = mods.With(ModAlt)
			rest = rest[len("ALT_"):]
		case strings.HasPrefix(rest, "SHIFT_"):
			mods = mods.With(ModShift)
			rest = rest[len("SHIFT_"):]
		default:
			k := KeyFromName(rest)
			if k == KeyNone {
				return Combination{}, fmt.Errorf("%w: %q", ErrBadToken, token)
			}
			return Combination{Key: k, Mods: mods}, nil
		}
	}
}
