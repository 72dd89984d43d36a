package ui

import (
	"fmt"

	"github.com/rivo/tview"
)

// SessionData holds the header summary of the running client.
type SessionData struct {
	Profile      string
	Surface      string
	Host         string
	View         string
	Conversation string
	State        string
	Known        int
}

// SessionInfo displays session metadata in the header.
type SessionInfo struct {
	*tview.TextView
	theme *Theme
}

// NewSessionInfo creates a new session info panel.
func NewSessionInfo(theme *Theme) *SessionInfo {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 1, 1)

	return &SessionInfo{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders the session info.
func (si *SessionInfo) Update(data *SessionData) {
	si.Clear()
	if data == nil {
		return
	}

	fgColor := colorName(si.theme.FgColor)
	counterColor := colorName(si.theme.CounterColor)

	rows := []struct {
		label string
		value string
	}{
		{"Profile:", data.Profile},
		{"Surface:", data.Surface},
		{"Host:", data.Host},
		{"View:", data.View},
		{"Chat:", data.Conversation},
		{"State:", data.State},
		{"Known:", fmt.Sprintf("%d", data.Known)},
	}
	for i, r := range rows {
		v := r.value
		if v == "" {
			v = "-"
		}
		if i > 0 {
			_, _ = fmt.Fprint(si, "\n")
		}
		_, _ = fmt.Fprintf(si, "[%s::b]%-9s[-:-:-][%s]%s[-]", fgColor, r.label, counterColor, tview.Escape(v))
	}
}
