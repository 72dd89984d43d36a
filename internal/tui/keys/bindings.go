package keys

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/hirechat/internal/tui/ui"
)

// Action represents a keybinding action.
type Action struct {
	Key         tcell.Key
	Rune        rune
	Hint        string // key label in the menu, e.g. "Enter"
	Description string
	Handler     func()
	Visible     bool
	Numeric     bool
}

// Matches returns true if the event matches this action.
func (a *Action) Matches(ev *tcell.EventKey) bool {
	if a.Key != tcell.KeyRune {
		return ev.Key() == a.Key
	}
	return ev.Key() == tcell.KeyRune && ev.Rune() == a.Rune
}

type binding struct {
	name   string
	action *Action
}

// Registry holds keybindings organized by scope. Bindings keep their
// registration order, which is also the order of their menu hints.
type Registry struct {
	global []binding
	views  map[string][]binding
}

// NewRegistry creates a new keybinding registry.
func NewRegistry() *Registry {
	return &Registry{
		views: make(map[string][]binding),
	}
}

// AddGlobal registers a global keybinding. Registering a name again replaces it.
func (r *Registry) AddGlobal(name string, action *Action) {
	r.global = upsert(r.global, name, action)
}

// AddView registers a view-specific keybinding.
func (r *Registry) AddView(view, name string, action *Action) {
	r.views[view] = upsert(r.views[view], name, action)
}

func upsert(list []binding, name string, action *Action) []binding {
	for i := range list {
		if list[i].name == name {
			list[i].action = action
			return list
		}
	}
	return append(list, binding{name: name, action: action})
}

// Hints returns the visible bindings of a view followed by the global ones.
func (r *Registry) Hints(view string) []ui.MenuHint {
	var hints []ui.MenuHint
	add := func(list []binding) {
		for _, b := range list {
			if b.action.Visible {
				hints = append(hints, ui.MenuHint{Key: b.action.Hint, Description: b.action.Description, Numeric: b.action.Numeric})
			}
		}
	}
	add(r.views[view])
	add(r.global)
	return hints
}

// HandleEvent dispatches a key event to the matching action in the given view.
// View bindings shadow global ones. Returns true if a handler matched.
func (r *Registry) HandleEvent(view string, ev *tcell.EventKey) bool {
	for _, b := range r.views[view] {
		if b.action.Matches(ev) {
			b.action.Handler()
			return true
		}
	}
	for _, b := range r.global {
		if b.action.Matches(ev) {
			b.action.Handler()
			return true
		}
	}
	return false
}
