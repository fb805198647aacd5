// Package app runs the interactive session: it owns the driver, the
// decoder, the binding registry, and the renderer, and turns them into
// a paced input-dispatch-render loop.
package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dshills/termio/pkg/decode"
	"github.com/dshills/termio/pkg/errors"
	"github.com/dshills/termio/pkg/frame"
	"github.com/dshills/termio/pkg/keymap"
	"github.com/dshills/termio/pkg/term"
)

// ActionFunc handles a dispatched action.
type ActionFunc func(ev decode.Event) error

// FrameFunc paints one frame. It runs once per tick between BeginFrame
// and EndFrame, so it should draw the complete screen contents.
type FrameFunc func(r *frame.Renderer)

// App wires the terminal driver, decoder, registry, and renderer into
// a running session.
//
// The loop each tick: drain and dispatch pending input, pick up any
// terminal resize, paint via the OnFrame callback, reconcile the
// screen, then wait out the frame interval (waking early on input).
// An App is good for one Run.
type App struct {
	drv      term.Driver
	decoder  *decode.Decoder
	registry *keymap.Registry
	renderer *frame.Renderer

	cfg      Config
	interval time.Duration
	theme    keymap.Theme

	actions map[string]ActionFunc
	onFrame FrameFunc
	onKey   func(decode.Event)

	mu       sync.RWMutex
	running  bool
	quit     chan struct{}
	quitOnce sync.Once
}

// New creates an engine on the given driver. The renderer starts at the
// fallback size and adopts the real terminal size when Run starts.
func New(drv term.Driver, cfg Config) *App {
	cfg = cfg.normalize()

	a := &App{
		drv:      drv,
		registry: keymap.NewRegistry(),
		renderer: frame.NewRenderer(drv, FallbackWidth, FallbackHeight),
		cfg:      cfg,
		interval: cfg.interval(),
		actions:  make(map[string]ActionFunc),
		quit:     make(chan struct{}),
	}
	a.decoder = decode.NewDecoderWithTable(drv, cfg.Table)
	a.decoder.SetTimeout(cfg.DecodeTimeout)

	// Built-in actions. HandleAction replaces them.
	a.actions["app.quit"] = func(decode.Event) error {
		a.Quit()
		return nil
	}
	a.actions["app.redraw"] = func(decode.Event) error {
		a.renderer.Invalidate()
		return nil
	}

	return a
}

// Registry returns the binding registry.
func (a *App) Registry() *keymap.Registry {
	return a.registry
}

// Renderer returns the renderer. Callbacks receive it too; this
// accessor exists for setup code that draws before Run.
func (a *App) Renderer() *frame.Renderer {
	return a.renderer
}

// Decoder returns the key decoder.
func (a *App) Decoder() *decode.Decoder {
	return a.decoder
}

// Theme returns the colors from the applied profile.
func (a *App) Theme() keymap.Theme {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.theme
}

// HandleAction installs the handler for an action identifier,
// replacing any builtin.
func (a *App) HandleAction(action string, fn ActionFunc) {
	a.actions[action] = fn
}

// OnFrame installs the per-tick paint callback.
func (a *App) OnFrame(fn FrameFunc) {
	a.onFrame = fn
}

// OnKey installs an observer that sees every decoded event before
// dispatch, including unknown sequences. Used by the key inspector.
func (a *App) OnKey(fn func(decode.Event)) {
	a.onKey = fn
}

// ApplyProfile applies a profile's options, theme, and bindings.
func (a *App) ApplyProfile(p *keymap.Profile) error {
	a.decoder.SetTimeout(p.Options.DecodeTimeout)

	a.mu.Lock()
	a.cfg.FrameRate = p.Options.FrameRate
	a.interval = a.cfg.interval()
	a.theme = p.Theme
	a.mu.Unlock()

	return p.Apply(a.registry)
}

// Quit asks the run loop to exit after the current tick. Safe to call
// from action handlers and from other goroutines.
func (a *App) Quit() {
	a.quitOnce.Do(func() { close(a.quit) })
}

// Running reports whether the run loop is active.
func (a *App) Running() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.running
}

// Run initializes the terminal and drives the session until the
// context is canceled, Quit is called, a termination signal arrives,
// or an action handler fails. The driver is cleaned up exactly once on
// every exit path.
func (a *App) Run(ctx context.Context) error {
	if err := a.drv.Init(); err != nil {
		return errors.NewRuntimeError("initialize", "terminal", err)
	}

	var cleanupOnce sync.Once
	var cleanupErr error
	cleanup := func() {
		cleanupOnce.Do(func() { cleanupErr = a.drv.Cleanup() })
	}
	defer cleanup()

	a.mu.Lock()
	a.running = true
	a.mu.Unlock()
	defer func() {
		a.mu.Lock()
		a.running = false
		a.mu.Unlock()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	winch := make(chan os.Signal, 1)
	notifyResize(winch)
	defer signal.Stop(winch)

	a.adoptSize()

	// Initial paint before any input arrives.
	if err := a.renderFrame(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return cleanupErr
		case <-a.quit:
			cleanup()
			return cleanupErr
		case <-sigChan:
			cleanup()
			return cleanupErr
		case <-winch:
			a.adoptSize()
		default:
		}

		deadline := time.Now().Add(a.frameInterval())

		if err := a.drainInput(); err != nil {
			cleanup()
			return err
		}

		select {
		case <-a.quit:
			cleanup()
			return cleanupErr
		default:
		}

		// Poll for resizes the signal missed; on a virtual driver this
		// is the only resize source.
		a.adoptSize()

		if err := a.renderFrame(); err != nil {
			cleanup()
			return err
		}

		if rem := time.Until(deadline); rem > 0 {
			a.drv.WaitInput(rem)
		}
	}
}

// frameInterval returns the current tick duration.
func (a *App) frameInterval() time.Duration {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.interval
}

// adoptSize reconciles the renderer with the driver's reported size,
// falling back to 80x24 when the driver cannot say. A change forces a
// full repaint and republishes the dimensions to guard expressions.
func (a *App) adoptSize() {
	w, h, err := a.drv.Size()
	if err != nil || w <= 0 || h <= 0 {
		w, h = FallbackWidth, FallbackHeight
	}
	cw, ch := a.renderer.Size()
	if w == cw && h == ch {
		return
	}
	a.renderer.Resize(w, h)
	a.registry.Set("width", w)
	a.registry.Set("height", h)
}

// drainInput decodes and dispatches every pending event.
func (a *App) drainInput() error {
	for {
		ev, ok := a.decoder.Poll()
		if !ok {
			return nil
		}
		if err := a.dispatch(ev); err != nil {
			return err
		}
	}
}

// dispatch routes one decoded event: observer first, then the binding
// registry, then the action handler. Unknown sequences and unbound
// combinations are ignored.
func (a *App) dispatch(ev decode.Event) error {
	if a.onKey != nil {
		a.onKey(ev)
	}
	if ev.IsUnknown() {
		log.Printf("app: ignoring %s", ev.Token())
		return nil
	}

	binding, ok := a.registry.Match(ev.Token())
	if !ok {
		return nil
	}

	fn := a.actions[binding.Action]
	if fn == nil {
		log.Printf("app: no handler for action %q", binding.Action)
		return nil
	}

	if err := fn(ev); err != nil {
		return errors.NewRuntimeErrorWithAttrs("dispatch", "action", err, map[string]interface{}{
			"action": binding.Action,
			"keys":   binding.Label(),
		})
	}
	return nil
}

// renderFrame runs one paint pass and reconciles the screen.
func (a *App) renderFrame() error {
	a.renderer.BeginFrame()
	if a.onFrame != nil {
		a.onFrame(a.renderer)
	}
	dur, err := a.renderer.EndFrame()
	if err != nil {
		return errors.NewRuntimeError("render", "renderer", err)
	}
	if interval := a.frameInterval(); dur > interval {
		log.Printf("app: frame took %v, budget %v", dur, interval)
	}
	return nil
}
