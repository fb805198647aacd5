package key

import "testing"

func TestModifier_String(t *testing.T) {
	tests := []struct {
		mods Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "Ctrl"},
		{ModAlt, "Alt"},
		{ModShift, "Shift"},
		{ModCtrl | ModShift, "Ctrl+Shift"},
		{ModShift | ModAlt | ModCtrl, "Ctrl+Alt+Shift"},
	}
	for _, tt := range tests {
		if got := tt.mods.String(); got != tt.want {
			t.Errorf("Modifier(%b).String() = %q, want %q", tt.mods, got, tt.want)
		}
	}
}

func TestModifier_SetOperations(t *testing.T) {
	m := ModNone.With(ModCtrl).With(ModShift)
	if !m.HasCtrl() || !m.HasShift() || m.HasAlt() {
		t.Errorf("With produced %v", m)
	}

	m = m.Without(ModCtrl)
	if m.HasCtrl() || !m.HasShift() {
		t.Errorf("Without produced %v", m)
	}

	// Adding a present modifier changes nothing
	if m.With(ModShift) != m {
		t.Error("With is not idempotent")
	}

	if !ModNone.IsEmpty() {
		t.Error("ModNone is not empty")
	}
	if ModCtrl.IsEmpty() {
		t.Error("ModCtrl is empty")
	}
}

func TestModifierFromName(t *testing.T) {
	tests := []struct {
		name string
		want Modifier
	}{
		{"ctrl", ModCtrl},
		{"Control", ModCtrl},
		{"ALT", ModAlt},
		{"option", ModAlt},
		{"shift", ModShift},
		{" shift ", ModShift},
		{"meta", ModNone},
		{"", ModNone},
	}
	for _, tt := range tests {
		if got := ModifierFromName(tt.name); got != tt.want {
			t.Errorf("ModifierFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
