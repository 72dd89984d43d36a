package views

import (
	"fmt"
	"time"

	"github.com/matheus3301/hirechat/internal/chat"
	intsync "github.com/matheus3301/hirechat/internal/sync"
	"github.com/matheus3301/hirechat/internal/tui/ui"
	"github.com/rivo/tview"
)

// ConversationInfo displays what the client knows about a conversation:
// its endpoints and the summary of the cached transcript.
type ConversationInfo struct {
	*tview.TextView
	theme *ui.Theme
}

// NewConversationInfo creates a new conversation info view.
func NewConversationInfo(theme *ui.Theme) *ConversationInfo {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Conversation Details ")
	tv.SetTitleColor(theme.TitleColor)

	return &ConversationInfo{
		TextView: tv,
		theme:    theme,
	}
}

// Name implements ui.Component.
func (ci *ConversationInfo) Name() string { return "Details" }

// Hints implements ui.Component.
func (ci *ConversationInfo) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

// Update renders the details of k as reached through route.
func (ci *ConversationInfo) Update(k intsync.Known, route chat.Route) {
	ci.Clear()

	fg := ui.Tag(ci.theme.FgColor)
	ct := ui.Tag(ci.theme.CounterColor)

	key := k.Conversation.Key
	if key == "" {
		key = "-"
	}
	opened := "never"
	if k.Summary.OpenedAt > 0 {
		opened = time.UnixMilli(k.Summary.OpenedAt).Format("Jan 2 15:04")
	}
	last := "-"
	if k.Summary.LastMessageAt != "" {
		last = chat.FormatTime(k.Summary.LastMessageAt)
	}

	rows := []struct{ label, value string }{
		{"Title:", k.Title()},
		{"Channel:", string(k.Conversation.Channel)},
		{"Key:", key},
		{"With:", route.Counterpart},
		{"Fetch:", "GET " + route.FetchPath},
		{"Post:", "POST " + route.PostPath},
		{"Cached:", fmt.Sprintf("%d messages", k.Summary.MessageCount)},
		{"Last At:", last},
		{"Last:", k.Summary.LastMessagePreview},
		{"Opened:", opened},
	}
	_, _ = fmt.Fprint(ci, "\n")
	for _, r := range rows {
		_, _ = fmt.Fprintf(ci, " [%s::b]%-9s[-:-:-] [%s]%s[-]\n", fg, r.label, ct, tview.Escape(r.value))
	}
	ci.SetTitle(fmt.Sprintf(" %s ", tview.Escape(k.Title())))
}
