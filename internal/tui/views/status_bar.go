package views

import (
	"fmt"
	"time"

	"github.com/rivo/tview"
)

// StatusBar displays the persistent session line: profile, surface, the
// open conversation's poll state and the clock.
type StatusBar struct {
	*tview.TextView
	profile string
	surface string
	state   string
	polling bool
	now     func() time.Time
}

// NewStatusBar creates a new status bar.
func NewStatusBar(profile, surface string) *StatusBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(tview.Styles.MoreContrastBackgroundColor)

	sb := &StatusBar{TextView: tv, profile: profile, surface: surface, state: "IDLE", now: time.Now}
	sb.render()
	return sb
}

// SetState updates the conversation state display.
func (sb *StatusBar) SetState(state string, polling bool) {
	sb.state = state
	sb.polling = polling
	sb.render()
}

// Tick re-renders the clock.
func (sb *StatusBar) Tick() {
	sb.render()
}

func (sb *StatusBar) render() {
	sb.Clear()

	pollIcon := " "
	if sb.polling {
		pollIcon = "[green]~[-]"
	}

	clock := sb.now().Format("15:04")
	_, _ = fmt.Fprintf(sb, " [::b]%s[-:-:-] | %s | %s %s | %s",
		tview.Escape(sb.profile), tview.Escape(sb.surface), sb.state, pollIcon, clock)
}
