package keymap

import (
	"fmt"

	"github.com/dshills/termio/pkg/key"
)

// DefaultCategory is assigned to bindings registered without one.
const DefaultCategory = "General"

// Binding associates a key combination with an application action.
//
// The Action is an identifier such as "app.quit" or "nav.page-down";
// the application decides what it means. Description and Category feed
// the generated help text, Priority orders bindings within a category
// (lower first), and When is an optional guard expression evaluated
// against the registry context before the binding fires.
type Binding struct {
	ID          BindingID
	Combo       key.Combination
	Action      string
	Description string
	Category    string
	Priority    int
	When        string
}

// NewBinding creates a binding for the given combination and action.
func NewBinding(combo key.Combination, action string) Binding {
	return Binding{
		Combo:    combo,
		Action:   action,
		Category: DefaultCategory,
	}
}

// WithDescription returns a copy of the binding with the description set.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// WithCategory returns a copy of the binding with the category set.
func (b Binding) WithCategory(category string) Binding {
	b.Category = category
	return b
}

// WithPriority returns a copy of the binding with the priority set.
func (b Binding) WithPriority(priority int) Binding {
	b.Priority = priority
	return b
}

// WithGuard returns a copy of the binding with the when-condition set.
func (b Binding) WithGuard(when string) Binding {
	b.When = when
	return b
}

// Token returns the wire-format token the binding matches against,
// such as "CTRL_C" or "SHIFT_TAB".
func (b Binding) Token() string {
	return b.Combo.RawToken()
}

// Label returns the human-readable form, such as "Ctrl+C".
func (b Binding) Label() string {
	return b.Combo.Label()
}

// String implements fmt.Stringer.
func (b Binding) String() string {
	return fmt.Sprintf("%s -> %s", b.Combo.Label(), b.Action)
}
