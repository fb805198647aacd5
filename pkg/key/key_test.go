package key

import "testing"

func TestKeyFromName(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"escape", KeyEscape},
		{"ESC", KeyEscape},
		{"enter", KeyEnter},
		{"return", KeyEnter},
		{"tab", KeyTab},
		{"backspace", KeyBackspace},
		{"bs", KeyBackspace},
		{"delete", KeyDelete},
		{"del", KeyDelete},
		{"insert", KeyInsert},
		{"ins", KeyInsert},
		{"pageup", KeyPageUp},
		{"page_up", KeyPageUp},
		{"page up", KeyPageUp},
		{"pgup", KeyPageUp},
		{"pgdn", KeyPageDown},
		{"Space", KeySpace},
		{"f1", KeyF1},
		{"F12", KeyF12},
		{"a", KeyA},
		{"Z", KeyZ},
		{"0", Key0},
		{"9", Key9},
		{"bogus", KeyNone},
		{"f13", KeyNone},
		{"", KeyNone},
		{"!", KeyNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeyFromName(tt.name); got != tt.want {
				t.Errorf("KeyFromName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestKey_String(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyNone, "None"},
		{KeyEscape, "Escape"},
		{KeyPageUp, "Page Up"},
		{KeyPageDown, "Page Down"},
		{KeyF1, "F1"},
		{KeyF12, "F12"},
		{KeyA, "A"},
		{KeyZ, "Z"},
		{Key5, "5"},
		{KeySpace, "Space"},
		{KeyUnknown, "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("Key(%d).String() = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestKey_TokenName(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyUp, "UP"},
		{KeyPageDown, "PAGE_DOWN"},
		{KeyF5, "F5"},
		{KeyA, "A"},
		{Key7, "7"},
		{KeySpace, "SPACE"},
		{KeyEscape, "ESCAPE"},
		{KeyChar, ""},
		{KeyUnknown, ""},
		{KeyNone, ""},
	}
	for _, tt := range tests {
		if got := tt.key.TokenName(); got != tt.want {
			t.Errorf("TokenName(%v) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

// Every key with a token name must resolve back through KeyFromName, or
// FromRaw cannot invert RawToken.
func TestKeyFromName_InvertsTokenName(t *testing.T) {
	for k := KeyEscape; k <= Key9; k++ {
		name := k.TokenName()
		if name == "" {
			t.Fatalf("key %v has no token name", k)
		}
		if got := KeyFromName(name); got != k {
			t.Errorf("KeyFromName(%q) = %v, want %v", name, got, k)
		}
	}
}

func TestKey_Predicates(t *testing.T) {
	if !KeyA.IsLetter() || !KeyZ.IsLetter() {
		t.Error("letter keys fail IsLetter")
	}
	if Key0.IsLetter() || KeyF1.IsLetter() {
		t.Error("non-letters pass IsLetter")
	}
	if !Key0.IsDigit() || !Key9.IsDigit() {
		t.Error("digit keys fail IsDigit")
	}
	if !KeyF1.IsFunctionKey() || !KeyF12.IsFunctionKey() {
		t.Error("function keys fail IsFunctionKey")
	}
	if KeySpace.IsFunctionKey() {
		t.Error("KeySpace passes IsFunctionKey")
	}
	if !KeyUp.IsArrowKey() || !KeyRight.IsArrowKey() {
		t.Error("arrow keys fail IsArrowKey")
	}
	if KeyHome.IsArrowKey() {
		t.Error("KeyHome passes IsArrowKey")
	}
	for _, k := range []Key{KeyUp, KeyDown, KeyLeft, KeyRight, KeyHome, KeyEnd, KeyPageUp, KeyPageDown} {
		if !k.IsNavigationKey() {
			t.Errorf("%v fails IsNavigationKey", k)
		}
	}
	if KeyEnter.IsNavigationKey() {
		t.Error("KeyEnter passes IsNavigationKey")
	}
}

func TestLetterKey(t *testing.T) {
	if LetterKey('a') != KeyA || LetterKey('z') != KeyZ {
		t.Error("lowercase letters map wrong")
	}
	if LetterKey('A') != KeyA || LetterKey('Z') != KeyZ {
		t.Error("uppercase letters map wrong")
	}
	if LetterKey('0') != KeyNone || LetterKey('!') != KeyNone || LetterKey('é') != KeyNone {
		t.Error("non-letters map to a key")
	}
}

func TestDigitKey(t *testing.T) {
	if DigitKey('0') != Key0 || DigitKey('9') != Key9 {
		t.Error("digits map wrong")
	}
	if DigitKey('a') != KeyNone || DigitKey(' ') != KeyNone {
		t.Error("non-digits map to a key")
	}
}
