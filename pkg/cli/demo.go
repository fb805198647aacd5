package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/termio/pkg/app"
	"github.com/dshills/termio/pkg/decode"
	"github.com/dshills/termio/pkg/frame"
	"github.com/dshills/termio/pkg/key"
	"github.com/dshills/termio/pkg/keymap"
	"github.com/dshills/termio/pkg/term"
)

// NewDemoCommand creates the demo command
func NewDemoCommand() *cobra.Command {
	var profileArg string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive demo screen",
		Long: `Run a small full-screen demo of the runtime.

The demo draws a box with a marker you can steer with the arrow keys,
echoes every decoded key event in the status bar, and switches between
NORMAL and INSERT modes to show guarded bindings. In INSERT mode typed
characters land in a text field and Escape returns to NORMAL mode; in
NORMAL mode q, Escape, or Ctrl+Q quits.

Requires an interactive terminal.

Examples:
  termio demo
  termio demo --profile my-profile
  termio demo --debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			drv, err := term.New()
			if err != nil {
				return err
			}

			a := app.New(drv, app.Config{})
			st := &demoState{markerX: 1, markerY: 1, mode: "normal"}
			a.Registry().Set("mode", st.mode)

			if err := registerDemoBindings(a, st); err != nil {
				return err
			}

			if profileArg != "" {
				path, err := resolveProfileArg(profileArg)
				if err != nil {
					return err
				}
				prof, err := keymap.ImportProfile(path)
				if err != nil {
					// Shadowed bindings are a warning; the profile
					// still loads. Anything else aborts.
					var warn *keymap.ShadowedBindingWarning
					if prof == nil || !errors.As(err, &warn) {
						return err
					}
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "⚠ %v\n", warn)
				}
				if err := a.ApplyProfile(prof); err != nil {
					return err
				}
			}

			a.OnKey(func(ev decode.Event) {
				st.lastKey = fmt.Sprintf("%s  (%s)", ev.Label(), ev.Token())
				if st.mode == "insert" {
					st.typeEvent(ev)
				}
			})
			a.OnFrame(func(r *frame.Renderer) {
				drawDemo(r, a.Theme(), st)
			})

			return a.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&profileArg, "profile", "", "Profile name or file to layer under the demo bindings")

	return cmd
}

// demoState is the mutable model behind the demo screen.
type demoState struct {
	markerX int
	markerY int
	mode    string
	text    []rune
	lastKey string
}

// typeEvent folds a key event into the insert-mode text field. Only
// plain and shifted printables are taken; everything else is left for
// the binding registry.
func (st *demoState) typeEvent(ev decode.Event) {
	if ev.Key == key.KeyBackspace && ev.Mods.IsEmpty() {
		if n := len(st.text); n > 0 {
			st.text = st.text[:n-1]
		}
		return
	}
	if ev.Mods != key.ModNone && ev.Mods != key.ModShift {
		return
	}
	if ev.Key.IsLetter() || ev.Key.IsDigit() || ev.Key == key.KeySpace || ev.Key == key.KeyChar {
		st.text = append(st.text, []rune(ev.Token())...)
	}
}

func registerDemoBindings(a *app.App, st *demoState) error {
	reg := a.Registry()

	// The guarded escape binding sits in front of the unguarded quit so
	// Escape leaves insert mode first and only quits from normal mode.
	bindings := []keymap.Binding{
		keymap.NewBinding(key.MustParse("escape"), "demo.leave-insert").
			WithDescription("Return to normal mode").
			WithCategory("Mode").
			WithGuard(`mode == "insert"`),
		keymap.NewBinding(key.MustParse("i"), "demo.insert-mode").
			WithDescription("Enter insert mode").
			WithCategory("Mode").
			WithGuard(`mode == "normal"`),
		keymap.NewBinding(key.MustParse("left"), "demo.move-left").
			WithDescription("Move marker left").
			WithCategory("Movement").
			WithGuard(`mode == "normal"`),
		keymap.NewBinding(key.MustParse("right"), "demo.move-right").
			WithDescription("Move marker right").
			WithCategory("Movement").
			WithGuard(`mode == "normal"`),
		keymap.NewBinding(key.MustParse("up"), "demo.move-up").
			WithDescription("Move marker up").
			WithCategory("Movement").
			WithGuard(`mode == "normal"`),
		keymap.NewBinding(key.MustParse("down"), "demo.move-down").
			WithDescription("Move marker down").
			WithCategory("Movement").
			WithGuard(`mode == "normal"`),
		keymap.NewBinding(key.MustParse("q"), "app.quit").
			WithDescription("Quit").
			WithGuard(`mode == "normal"`),
		keymap.NewBinding(key.MustParse("escape"), "app.quit").
			WithDescription("Quit"),
		keymap.NewBinding(key.MustParse("ctrl+q"), "app.quit").
			WithDescription("Quit"),
		keymap.NewBinding(key.MustParse("ctrl+l"), "app.redraw").
			WithDescription("Force full redraw"),
	}
	for _, b := range bindings {
		if _, err := reg.Register(b); err != nil {
			return err
		}
	}

	move := func(dx, dy int) app.ActionFunc {
		return func(decode.Event) error {
			st.markerX += dx
			st.markerY += dy
			return nil
		}
	}
	a.HandleAction("demo.move-left", move(-1, 0))
	a.HandleAction("demo.move-right", move(1, 0))
	a.HandleAction("demo.move-up", move(0, -1))
	a.HandleAction("demo.move-down", move(0, 1))
	a.HandleAction("demo.insert-mode", func(decode.Event) error {
		st.mode = "insert"
		reg.Set("mode", st.mode)
		return nil
	})
	a.HandleAction("demo.leave-insert", func(decode.Event) error {
		st.mode = "normal"
		reg.Set("mode", st.mode)
		return nil
	})

	return nil
}

func drawDemo(r *frame.Renderer, th keymap.Theme, st *demoState) {
	w, h := r.Size()
	base := frame.Style{}.Foreground(th.Foreground).Background(th.Background)
	accent := frame.Style{}.Foreground(th.Accent).Bold()
	bar := frame.Style{}.Foreground(th.Accent).Reverse()

	r.FillRect(0, 0, w, 1, ' ', bar)
	r.WriteAt(1, 0, "termio demo", bar.Bold())
	mode := strings.ToUpper(st.mode)
	if w > len(mode)+1 {
		r.WriteAt(w-len(mode)-1, 0, mode, bar.Bold())
	}

	boxX, boxY := 2, 2
	boxW, boxH := w-4, h-7
	if boxW >= 3 && boxH >= 3 {
		r.DrawBox(boxX, boxY, boxW, boxH, base)
		if st.markerX < 1 {
			st.markerX = 1
		}
		if st.markerY < 1 {
			st.markerY = 1
		}
		if st.markerX > boxW-2 {
			st.markerX = boxW - 2
		}
		if st.markerY > boxH-2 {
			st.markerY = boxH - 2
		}
		r.WriteAt(boxX+st.markerX, boxY+st.markerY, "◆", accent)
	}

	if h >= 5 {
		r.WriteAt(2, h-3, "text: "+string(st.text), base)
		r.WriteAt(2, h-2, "i insert   esc leave/quit   arrows move   ctrl+l redraw", base.Dim())
	}

	status := fmt.Sprintf(" %dx%d   last: %s", w, h, st.lastKey)
	r.FillRect(0, h-1, w, 1, ' ', bar)
	r.WriteAt(0, h-1, status, bar)
}
