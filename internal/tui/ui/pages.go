package ui

import "github.com/rivo/tview"

// Pages is a stack-based page manager wrapping tview.Pages.
// The bottom of the stack is the main screen; overlays such as help, search
// or an alert are pushed on top and popped with Esc.
type Pages struct {
	*tview.Pages
	stack    []string
	modal    map[string]bool
	onChange func(stack []string)
}

// NewPages creates a new stack-based page manager.
func NewPages() *Pages {
	return &Pages{
		Pages: tview.NewPages(),
		modal: make(map[string]bool),
	}
}

// SetOnChange sets a callback that fires when the stack changes.
func (p *Pages) SetOnChange(fn func(stack []string)) {
	p.onChange = fn
}

// Push adds a page to the top of the stack and shows it full screen.
func (p *Pages) Push(name string) {
	if len(p.stack) > 0 {
		p.HidePage(p.stack[len(p.stack)-1])
	}
	p.stack = append(p.stack, name)
	p.ShowPage(name)
	p.SendToFront(name)
	p.notify()
}

// Overlay adds a transient primitive, typically a tview.Modal, on top of the
// current page without hiding it. It is removed again when popped.
func (p *Pages) Overlay(name string, item tview.Primitive) {
	if p.HasPage(name) {
		p.RemovePage(name)
		p.drop(name)
	}
	p.AddPage(name, item, false, true)
	p.modal[name] = true
	p.stack = append(p.stack, name)
	p.notify()
}

// Pop removes the top page and shows the previous one.
// Returns the name of the popped page, or empty if only the base page is left.
func (p *Pages) Pop() string {
	if len(p.stack) <= 1 {
		return ""
	}
	top := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	if p.modal[top] {
		delete(p.modal, top)
		p.RemovePage(top)
	} else {
		p.HidePage(top)
	}
	current := p.stack[len(p.stack)-1]
	p.ShowPage(current)
	p.SendToFront(current)
	p.notify()
	return top
}

// Current returns the name of the current (top) page.
func (p *Pages) Current() string {
	if len(p.stack) == 0 {
		return ""
	}
	return p.stack[len(p.stack)-1]
}

// Stack returns a copy of the current page stack.
func (p *Pages) Stack() []string {
	s := make([]string, len(p.stack))
	copy(s, p.stack)
	return s
}

// Depth returns the current stack depth.
func (p *Pages) Depth() int {
	return len(p.stack)
}

// Reset clears the stack and shows only the given page.
func (p *Pages) Reset(name string) {
	for _, n := range p.stack {
		if p.modal[n] {
			delete(p.modal, n)
			p.RemovePage(n)
			continue
		}
		p.HidePage(n)
	}
	p.stack = []string{name}
	p.ShowPage(name)
	p.SendToFront(name)
	p.notify()
}

func (p *Pages) drop(name string) {
	for i, n := range p.stack {
		if n == name {
			p.stack = append(p.stack[:i], p.stack[i+1:]...)
			return
		}
	}
}

func (p *Pages) notify() {
	if p.onChange != nil {
		p.onChange(p.Stack())
	}
}
