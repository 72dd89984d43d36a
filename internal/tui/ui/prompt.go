package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// PromptMode indicates the type of prompt (command or filter).
type PromptMode int

const (
	PromptCommand PromptMode = iota
	PromptFilter
)

// maxHistory bounds the remembered commands.
const maxHistory = 50

// Prompt is a command/filter input bar. Command mode remembers submitted
// commands (Up/Down) and completes words from a supplied list.
type Prompt struct {
	*tview.InputField
	theme    *Theme
	mode     PromptMode
	history  []string
	cursor   int
	words    []string
	onSubmit func(mode PromptMode, text string)
	onCancel func()
}

// NewPrompt creates a new prompt input bar.
func NewPrompt(theme *Theme) *Prompt {
	input := tview.NewInputField()
	input.SetBorder(true)
	input.SetBorderColor(theme.PromptBorderColor)
	input.SetBackgroundColor(theme.BgColor)
	input.SetFieldBackgroundColor(theme.BgColor)
	input.SetFieldTextColor(theme.FgColor)
	input.SetLabelColor(theme.MenuKeyColor)

	p := &Prompt{
		InputField: input,
		theme:      theme,
	}

	input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			text := strings.TrimSpace(p.GetText())
			p.SetText("")
			if text == "" {
				if p.onCancel != nil {
					p.onCancel()
				}
				return
			}
			if p.mode == PromptCommand {
				p.remember(text)
			}
			if p.onSubmit != nil {
				p.onSubmit(p.mode, text)
			}
		case tcell.KeyEscape:
			p.SetText("")
			if p.onCancel != nil {
				p.onCancel()
			}
		}
	})

	input.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if p.mode != PromptCommand {
			return ev
		}
		switch ev.Key() {
		case tcell.KeyUp:
			p.recall(-1)
			return nil
		case tcell.KeyDown:
			p.recall(1)
			return nil
		}
		return ev
	})

	input.SetAutocompleteFunc(func(current string) []string {
		if p.mode != PromptCommand || current == "" {
			return nil
		}
		var out []string
		for _, w := range p.words {
			if strings.HasPrefix(w, current) && w != current {
				out = append(out, w)
			}
		}
		return out
	})

	return p
}

// SetOnSubmit sets the callback when the prompt is submitted.
func (p *Prompt) SetOnSubmit(fn func(mode PromptMode, text string)) {
	p.onSubmit = fn
}

// SetOnCancel sets the callback when the prompt is cancelled.
func (p *Prompt) SetOnCancel(fn func()) {
	p.onCancel = fn
}

// SetCompletions sets the command-mode completion candidates.
func (p *Prompt) SetCompletions(words []string) {
	p.words = words
}

// Activate shows the prompt in the specified mode. A filter prompt starts
// with the filter already in effect so it can be edited.
func (p *Prompt) Activate(mode PromptMode, initial string) {
	p.mode = mode
	p.cursor = len(p.history)
	p.SetText(initial)
	switch mode {
	case PromptCommand:
		p.SetLabel(":")
		p.SetTitle(" Command ")
	case PromptFilter:
		p.SetLabel("/")
		p.SetTitle(" Filter ")
	}
}

// Mode returns the current prompt mode.
func (p *Prompt) Mode() PromptMode {
	return p.mode
}

// History returns the remembered commands, oldest first.
func (p *Prompt) History() []string {
	out := make([]string, len(p.history))
	copy(out, p.history)
	return out
}

func (p *Prompt) remember(cmd string) {
	if n := len(p.history); n > 0 && p.history[n-1] == cmd {
		return
	}
	p.history = append(p.history, cmd)
	if len(p.history) > maxHistory {
		p.history = p.history[len(p.history)-maxHistory:]
	}
}

func (p *Prompt) recall(step int) {
	if len(p.history) == 0 {
		return
	}
	p.cursor += step
	switch {
	case p.cursor < 0:
		p.cursor = 0
	case p.cursor >= len(p.history):
		p.cursor = len(p.history)
		p.SetText("")
		return
	}
	p.SetText(p.history[p.cursor])
}
