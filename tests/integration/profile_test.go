package integration

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/termio/pkg/app"
	"github.com/dshills/termio/pkg/decode"
	"github.com/dshills/termio/pkg/frame"
	"github.com/dshills/termio/pkg/keymap"
	"github.com/dshills/termio/pkg/term"
)

const sessionProfile = `name: session
version: "1"
description: Scripted session profile
options:
  decode_timeout_ms: 50
  frame_rate: 60
theme:
  foreground: default
  background: default
  accent: "39"
bindings:
  - keys: f2
    action: custom.ping
    description: Ping
    category: Test
  - keys: ctrl+x
    action: app.quit
    description: Quit
    category: Test
`

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

// TestProfileDrivenSession imports a profile from disk, applies it to a
// running engine, and checks that its bindings, options, and theme all
// take effect.
func TestProfileDrivenSession(t *testing.T) {
	path := writeProfile(t, sessionProfile)

	prof, err := keymap.ImportProfile(path)
	if err != nil {
		t.Fatalf("ImportProfile failed: %v", err)
	}

	drv := term.NewVirtualDriver(40, 10)
	a := app.New(drv, app.Config{})
	if err := a.ApplyProfile(prof); err != nil {
		t.Fatalf("ApplyProfile failed: %v", err)
	}

	if got := a.Decoder().Timeout(); got != 50*time.Millisecond {
		t.Errorf("decoder timeout = %v, want 50ms", got)
	}
	if got := a.Theme().Accent; got != frame.Indexed(39) {
		t.Errorf("theme accent = %+v, want palette 39", got)
	}

	pings := 0
	a.HandleAction("custom.ping", func(decode.Event) error {
		pings++
		return nil
	})

	feedKeys(t, drv, "f2", "f2", "ctrl+x")
	runEngine(t, a)

	if pings != 2 {
		t.Errorf("pings = %d, want 2", pings)
	}
}

// TestProfileImport_ShadowedBindingStillRuns imports a profile whose
// second binding on a key can never fire. The import reports the shadow
// but still yields a usable profile, and the first binding wins at
// dispatch.
func TestProfileImport_ShadowedBindingStillRuns(t *testing.T) {
	path := writeProfile(t, `name: shadowed
version: "1"
bindings:
  - keys: f2
    action: first.action
  - keys: f2
    action: second.action
  - keys: ctrl+x
    action: app.quit
`)

	prof, err := keymap.ImportProfile(path)
	var warn *keymap.ShadowedBindingWarning
	if !errors.As(err, &warn) {
		t.Fatalf("ImportProfile error = %v, want ShadowedBindingWarning", err)
	}
	if prof == nil {
		t.Fatal("ImportProfile returned nil profile alongside the warning")
	}
	if len(warn.Shadowed) != 1 {
		t.Fatalf("Shadowed = %v, want one entry", warn.Shadowed)
	}

	drv := term.NewVirtualDriver(40, 10)
	a := app.New(drv, app.Config{})
	if err := a.ApplyProfile(prof); err != nil {
		t.Fatalf("ApplyProfile failed: %v", err)
	}

	var fired []string
	a.HandleAction("first.action", func(decode.Event) error {
		fired = append(fired, "first")
		return nil
	})
	a.HandleAction("second.action", func(decode.Event) error {
		fired = append(fired, "second")
		return nil
	})

	feedKeys(t, drv, "f2", "ctrl+x")
	runEngine(t, a)

	if len(fired) != 1 || fired[0] != "first" {
		t.Errorf("fired = %v, want [first]", fired)
	}
}

// TestProfileImport_RejectsBadVersion keeps incompatible profiles out
// of the engine entirely.
func TestProfileImport_RejectsBadVersion(t *testing.T) {
	path := writeProfile(t, `name: future
version: "2"
bindings:
  - keys: ctrl+x
    action: app.quit
`)

	_, err := keymap.ImportProfile(path)
	var verr *keymap.IncompatibleVersionError
	if !errors.As(err, &verr) {
		t.Fatalf("ImportProfile error = %v, want IncompatibleVersionError", err)
	}
}
