package keymap

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/dshills/termio/pkg/key"
	"github.com/dshills/termio/pkg/validation"
)

// Registry holds the active bindings and resolves decoded key tokens to
// actions.
//
// Bindings are kept in registration order and matched by a linear scan:
// when several bindings share a combination, the first one registered
// wins. A binding with a when-condition is skipped while the condition
// evaluates false against the current context, which lets a later
// binding on the same combination take over in other application states.
type Registry struct {
	mu       sync.RWMutex
	bindings []Binding
	context  map[string]interface{}
	guards   *GuardEvaluator
}

// NewRegistry creates an empty binding registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings: make([]Binding, 0),
		context:  make(map[string]interface{}),
		guards:   NewGuardEvaluator(),
	}
}

// Register adds a binding to the registry and returns its ID.
//
// The action identifier and any guard expression are validated here, so
// a malformed binding fails at registration rather than at keystroke
// time. Duplicate combinations are allowed; earlier registrations take
// precedence.
func (r *Registry) Register(b Binding) (BindingID, error) {
	if err := validation.ValidateActionID(b.Action); err != nil {
		return "", fmt.Errorf("binding %s: %w", b.Combo.Label(), err)
	}
	if b.When != "" {
		if err := r.guards.Compile(b.When); err != nil {
			return "", fmt.Errorf("binding %s: %w", b.Combo.Label(), err)
		}
	}
	if b.Category == "" {
		b.Category = DefaultCategory
	}
	if b.ID == "" {
		b.ID = NewBindingID()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings = append(r.bindings, b)
	return b.ID, nil
}

// Bind parses a combination spec such as "ctrl+q" and registers it
// against the given action.
func (r *Registry) Bind(spec, action string) (BindingID, error) {
	combo, err := key.Parse(spec)
	if err != nil {
		return "", err
	}
	return r.Register(NewBinding(combo, action))
}

// Unregister removes the binding with the given ID.
func (r *Registry) Unregister(id BindingID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, b := range r.bindings {
		if b.ID == id {
			r.bindings = append(r.bindings[:i], r.bindings[i+1:]...)
			return nil
		}
	}
	return ErrBindingNotFound
}

// SetContext replaces the guard evaluation context. The map is copied.
func (r *Registry) SetContext(ctx map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.context = make(map[string]interface{}, len(ctx))
	for k, v := range ctx {
		r.context[k] = v
	}
}

// Set publishes a single context variable for guard expressions.
func (r *Registry) Set(name string, value interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.context[name] = value
}

// Context returns a copy of the current guard context.
func (r *Registry) Context() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ctx := make(map[string]interface{}, len(r.context))
	for k, v := range r.context {
		ctx[k] = v
	}
	return ctx
}

// Match resolves a wire-format token such as "CTRL_C" to the first
// registered binding whose guard passes. Returns false when nothing is
// bound to the token in the current context.
func (r *Registry) Match(token string) (Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bindings {
		if b.Combo.RawToken() != token {
			continue
		}
		if b.When != "" {
			ok, err := r.guards.EvalBool(b.When, r.context)
			if err != nil {
				log.Printf("keymap: guard %q: %v", b.When, err)
				continue
			}
			if !ok {
				continue
			}
		}
		return b, true
	}
	return Binding{}, false
}

// Get returns the binding with the given ID.
func (r *Registry) Get(id BindingID) (Binding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bindings {
		if b.ID == id {
			return b, nil
		}
	}
	return Binding{}, ErrBindingNotFound
}

// ByAction returns all bindings registered for an action, in
// registration order.
func (r *Registry) ByAction(action string) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Binding
	for _, b := range r.bindings {
		if b.Action == action {
			out = append(out, b)
		}
	}
	return out
}

// ByCategory returns the bindings in a category sorted by ascending
// priority. Bindings with equal priority keep registration order.
func (r *Registry) ByCategory(category string) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Binding
	for _, b := range r.bindings {
		if b.Category == category {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}

// Categories returns the category names in first-registration order.
func (r *Registry) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, b := range r.bindings {
		if !seen[b.Category] {
			seen[b.Category] = true
			out = append(out, b.Category)
		}
	}
	return out
}

// Bindings returns a copy of all bindings in registration order.
func (r *Registry) Bindings() []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Binding, len(r.bindings))
	copy(out, r.bindings)
	return out
}

// Len returns the number of registered bindings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bindings)
}

// HelpText renders the registered bindings grouped by category, one
// category per section, bindings ordered by ascending priority.
func (r *Registry) HelpText() string {
	var sb strings.Builder
	for i, category := range r.Categories() {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(category)
		sb.WriteString("\n")
		for _, b := range r.ByCategory(category) {
			desc := b.Description
			if desc == "" {
				desc = b.Action
			}
			sb.WriteString(fmt.Sprintf("  %-18s %s\n", b.Combo.Label(), desc))
		}
	}
	return sb.String()
}
