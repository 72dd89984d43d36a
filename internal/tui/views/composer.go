package views

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/hirechat/internal/chat"
	"github.com/matheus3301/hirechat/internal/tui/ui"
	"github.com/rivo/tview"
)

// Composer is the input bound to the open conversation. It implements
// chat.Composer the same way Thread implements chat.Pane: calls record
// state and Paint applies it on the UI goroutine.
type Composer struct {
	*tview.InputField
	theme  *ui.Theme
	redraw func()
	onSend func(text string)

	mu    sync.Mutex
	conv  chat.Conversation
	bound bool
	dirty bool
	wipe  bool
}

// NewComposer creates a new message composer.
func NewComposer(theme *ui.Theme, redraw func()) *Composer {
	input := tview.NewInputField().
		SetLabel(" > ").
		SetFieldWidth(0).
		SetPlaceholder("Type your message...")
	input.SetBorder(true)
	input.SetBorderColor(theme.BorderColor)
	input.SetBackgroundColor(theme.BgColor)
	input.SetFieldBackgroundColor(theme.BgColor)
	input.SetFieldTextColor(theme.FgColor)
	input.SetLabelColor(theme.MenuKeyColor)
	input.SetTitle(" Compose (i to focus) ")
	input.SetTitleColor(theme.TitleColor)

	c := &Composer{
		InputField: input,
		theme:      theme,
		redraw:     redraw,
	}

	// The text stays in the field until the send is confirmed; the controller
	// clears it on success and leaves it for a retry on failure.
	input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter || c.onSend == nil {
			return
		}
		if _, ok := c.Bound(); !ok {
			return
		}
		c.onSend(c.GetText())
	})

	return c
}

// Name implements ui.Component.
func (c *Composer) Name() string { return "Compose" }

// Hints implements ui.Component.
func (c *Composer) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Leave"},
	}
}

// SetOnSend sets the callback when Enter is pressed in a bound composer.
func (c *Composer) SetOnSend(fn func(text string)) {
	c.onSend = fn
}

// Bound returns the conversation the composer posts to.
func (c *Composer) Bound() (chat.Conversation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv, c.bound
}

// Bind implements chat.Composer.
func (c *Composer) Bind(conv chat.Conversation) {
	c.mu.Lock()
	c.conv, c.bound = conv, true
	c.dirty = true
	c.mu.Unlock()
	c.redraw()
}

// Unbind detaches the composer; Enter does nothing until the next Bind.
func (c *Composer) Unbind() {
	c.mu.Lock()
	c.conv, c.bound = chat.Conversation{}, false
	c.dirty = true
	c.mu.Unlock()
	c.redraw()
}

// Clear implements chat.Composer.
func (c *Composer) Clear() {
	c.mu.Lock()
	c.wipe = true
	c.mu.Unlock()
	c.redraw()
}

// Paint applies pending changes. Must run on the UI goroutine.
func (c *Composer) Paint() {
	c.mu.Lock()
	conv, bound, dirty, wipe := c.conv, c.bound, c.dirty, c.wipe
	c.dirty, c.wipe = false, false
	c.mu.Unlock()

	if dirty {
		if bound {
			c.SetLabel(fmt.Sprintf(" %s > ", conv))
		} else {
			c.SetLabel(" > ")
		}
		c.SetText("")
	}
	if wipe {
		c.SetText("")
	}
}
