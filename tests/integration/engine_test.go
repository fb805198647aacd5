package integration

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/dshills/termio/internal/termtest"
	"github.com/dshills/termio/pkg/app"
	"github.com/dshills/termio/pkg/decode"
	"github.com/dshills/termio/pkg/frame"
	"github.com/dshills/termio/pkg/key"
	"github.com/dshills/termio/pkg/keymap"
	"github.com/dshills/termio/pkg/term"
)

// feedKeys schedules one keypress per engine tick. The virtual driver
// surfaces one scheduled chunk per wait, so each spec is decoded,
// dispatched, and rendered before the next arrives.
func feedKeys(t *testing.T, drv *term.VirtualDriver, specs ...string) {
	t.Helper()
	for _, s := range specs {
		p, err := termtest.Encode(s)
		if err != nil {
			t.Fatalf("encode %q: %v", s, err)
		}
		drv.FeedLater(p)
	}
}

func runEngine(t *testing.T, a *app.App) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func mustBind(t *testing.T, reg *keymap.Registry, spec, action string) {
	t.Helper()
	if _, err := reg.Bind(spec, action); err != nil {
		t.Fatalf("bind %q -> %q: %v", spec, action, err)
	}
}

func mustBindWhen(t *testing.T, reg *keymap.Registry, spec, action, when string) {
	t.Helper()
	b := keymap.NewBinding(key.MustParse(spec), action).WithGuard(when)
	if _, err := reg.Register(b); err != nil {
		t.Fatalf("bind %q -> %q when %q: %v", spec, action, when, err)
	}
}

// TestEngine_ScriptedSession drives a full session: scripted keypresses
// in, dispatched actions and rendered frames out.
func TestEngine_ScriptedSession(t *testing.T) {
	drv := term.NewVirtualDriver(40, 10)
	a := app.New(drv, app.Config{})

	var moves []string
	record := func(dir string) app.ActionFunc {
		return func(decode.Event) error {
			moves = append(moves, dir)
			return nil
		}
	}

	reg := a.Registry()
	mustBind(t, reg, "up", "nav.up")
	mustBind(t, reg, "down", "nav.down")
	mustBind(t, reg, "ctrl+q", "app.quit")
	a.HandleAction("nav.up", record("up"))
	a.HandleAction("nav.down", record("down"))

	a.OnFrame(func(r *frame.Renderer) {
		r.WriteAt(0, 0, "moves: "+strconv.Itoa(len(moves)), frame.StyleDefault)
	})

	feedKeys(t, drv, "up", "up", "down", "ctrl+q")
	runEngine(t, a)

	if got := strings.Join(moves, ","); got != "up,up,down" {
		t.Errorf("moves = %q, want %q", got, "up,up,down")
	}
	if drv.InitCalls != 1 || drv.CleanupCalls != 1 {
		t.Errorf("driver calls = (%d, %d), want (1, 1)", drv.InitCalls, drv.CleanupCalls)
	}
	if a.Running() {
		t.Error("Running() = true after Run returned")
	}

	// The frame painted after the last movement survives in the buffer.
	if text := strings.TrimRight(a.Renderer().Frame().Text(0), " "); text != "moves: 3" {
		t.Errorf("final frame row = %q, want %q", text, "moves: 3")
	}
}

// TestEngine_GuardedDispatch checks that guard expressions select
// between bindings on the same key as registry context changes
// mid-session.
func TestEngine_GuardedDispatch(t *testing.T) {
	drv := term.NewVirtualDriver(40, 10)
	a := app.New(drv, app.Config{})

	reg := a.Registry()
	reg.Set("mode", "normal")

	mustBindWhen(t, reg, "s", "act.normal", `mode == "normal"`)
	mustBindWhen(t, reg, "s", "act.special", `mode == "special"`)
	mustBind(t, reg, "x", "mode.toggle")
	mustBind(t, reg, "ctrl+q", "app.quit")

	var calls []string
	a.HandleAction("act.normal", func(decode.Event) error {
		calls = append(calls, "normal")
		return nil
	})
	a.HandleAction("act.special", func(decode.Event) error {
		calls = append(calls, "special")
		return nil
	})
	a.HandleAction("mode.toggle", func(decode.Event) error {
		reg.Set("mode", "special")
		return nil
	})

	feedKeys(t, drv, "s", "x", "s", "ctrl+q")
	runEngine(t, a)

	if got := strings.Join(calls, ","); got != "normal,special" {
		t.Errorf("calls = %q, want %q", got, "normal,special")
	}
}

// TestEngine_ResizeMidSession grows the terminal from an action handler
// and checks that the renderer adopts the size, guards see the new
// dimensions, and the screen repaints in full.
func TestEngine_ResizeMidSession(t *testing.T) {
	drv := term.NewVirtualDriver(40, 10)
	a := app.New(drv, app.Config{})

	reg := a.Registry()
	mustBind(t, reg, "g", "win.grow")
	mustBindWhen(t, reg, "p", "size.probe", "width > 45")
	mustBind(t, reg, "ctrl+q", "app.quit")

	probes := 0
	a.HandleAction("size.probe", func(decode.Event) error {
		probes++
		return nil
	})
	a.HandleAction("win.grow", func(decode.Event) error {
		drv.SetSize(50, 12)
		return nil
	})
	a.OnFrame(func(r *frame.Renderer) {
		w, h := r.Size()
		r.WriteAt(0, 0, strconv.Itoa(w)+"x"+strconv.Itoa(h), frame.StyleDefault)
	})

	feedKeys(t, drv, "p", "g", "p", "ctrl+q")
	runEngine(t, a)

	if probes != 1 {
		t.Errorf("probes = %d, want 1 (guard must only pass after the resize)", probes)
	}
	if w, h := a.Renderer().Size(); w != 50 || h != 12 {
		t.Errorf("renderer size = %dx%d, want 50x12", w, h)
	}
	if got := strings.Count(drv.Output(), term.ClearScreen); got < 2 {
		t.Errorf("full clears = %d, want at least 2 (initial paint and resize)", got)
	}
	if text := strings.TrimRight(a.Renderer().Frame().Text(0), " "); text != "50x12" {
		t.Errorf("final frame row = %q, want %q", text, "50x12")
	}
}

// TestEngine_UnknownSequencesIgnored feeds a sequence no table entry
// matches between two bound keys. The observer sees its diagnostic
// token; dispatch skips it; the session carries on.
func TestEngine_UnknownSequencesIgnored(t *testing.T) {
	drv := term.NewVirtualDriver(40, 10)
	a := app.New(drv, app.Config{})

	reg := a.Registry()
	mustBind(t, reg, "up", "nav.up")
	mustBind(t, reg, "ctrl+q", "app.quit")

	ups := 0
	a.HandleAction("nav.up", func(decode.Event) error {
		ups++
		return nil
	})

	var tokens []string
	a.OnKey(func(ev decode.Event) {
		tokens = append(tokens, ev.Token())
	})

	up, err := termtest.Encode("up")
	if err != nil {
		t.Fatal(err)
	}
	drv.FeedLater(up)
	drv.FeedLater([]byte("\x1b[99z"))
	feedKeys(t, drv, "up", "ctrl+q")
	runEngine(t, a)

	if ups != 2 {
		t.Errorf("ups = %d, want 2", ups)
	}
	want := "UP,UNKNOWN_1b5b39397a,UP,CTRL_Q"
	if got := strings.Join(tokens, ","); got != want {
		t.Errorf("observed tokens = %q, want %q", got, want)
	}
}

// TestEngine_ContextCancelStopsRun cancels the context of an idle
// session and expects a clean exit with exactly one driver cleanup.
func TestEngine_ContextCancelStopsRun(t *testing.T) {
	drv := term.NewVirtualDriver(40, 10)
	a := app.New(drv, app.Config{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for !a.Running() {
		if time.Now().After(deadline) {
			t.Fatal("Run never started")
		}
		time.Sleep(time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not exit after cancel")
	}
	if drv.CleanupCalls != 1 {
		t.Errorf("CleanupCalls = %d, want 1", drv.CleanupCalls)
	}
}
