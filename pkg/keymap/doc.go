/*
Package keymap maps decoded key combinations to application actions.

# Architecture

The package has three layers:

 1. Binding: a key combination paired with an action identifier, plus
    the metadata that drives help text (description, category,
    priority) and an optional guard expression.

 2. Registry: the ordered collection of bindings. Lookup is by the
    decoder's wire token ("CTRL_C", "SHIFT_TAB", "a"); the first
    registered binding whose guard passes wins. Guards are boolean
    expressions evaluated against a context map the application
    publishes, so the same combination can do different things in
    different application states.

 3. Profile: the on-disk YAML (or JSON) form of a binding set together
    with runtime options and theme colors. Profiles are
    schema-validated before parsing, and every key spec, action
    identifier, and guard is checked at load time so a broken profile
    fails before the first keystroke.

# Profile format

	name: default
	description: My bindings
	options:
	  decode_timeout_ms: 100
	  frame_rate: 30
	theme:
	  foreground: "#d0d0d0"
	  background: default
	  accent: "39"
	bindings:
	  - keys: ctrl+q
	    action: app.quit
	    description: Quit
	    category: Application
	    priority: 10
	  - keys: enter
	    action: edit.accept
	    when: mode == "insert"

# Usage

	reg := keymap.NewRegistry()
	profile, err := keymap.ImportProfile(path)
	if err != nil {
		// ShadowedBindingWarning still carries a usable profile
	}
	if err := profile.Apply(reg); err != nil {
		log.Fatal(err)
	}

	reg.Set("mode", "insert")
	if b, ok := reg.Match(event.Token()); ok {
		dispatch(b.Action)
	}

Help text for all registered bindings, grouped by category and ordered
by priority, comes from Registry.HelpText.
*/
package keymap
