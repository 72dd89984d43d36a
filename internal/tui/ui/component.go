package ui

// MenuHint describes a keyboard shortcut for display in the menu bar.
type MenuHint struct {
	Key         string
	Description string
	Numeric     bool // true for 1-9 view shortcuts (displayed in a different color)
}

// Component is implemented by every screen that can hold focus. Its hints
// replace the header menu while it is focused.
type Component interface {
	Name() string
	Hints() []MenuHint
}
