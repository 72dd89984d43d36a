package views

import (
	"github.com/matheus3301/hirechat/internal/tui/ui"
	"github.com/rivo/tview"
)

// NewAlert returns a blocking modal with a single OK button. done runs when
// it is dismissed.
func NewAlert(theme *ui.Theme, text string, done func()) *tview.Modal {
	m := tview.NewModal().
		SetText(text).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(int, string) { done() })
	m.SetBackgroundColor(theme.BgColor)
	m.SetTextColor(theme.FlashErrColor)
	m.SetBorderColor(theme.FlashErrColor)
	m.SetTitle(" Error ")
	return m
}
