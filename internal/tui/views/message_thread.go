package views

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/hirechat/internal/chat"
	"github.com/matheus3301/hirechat/internal/tui/ui"
	"github.com/rivo/tview"
)

// Thread is the transcript pane of the open conversation. It implements
// chat.Pane: the controller calls it from poll goroutines, so every method
// only records state and asks for a repaint; Paint applies it on the UI
// goroutine.
type Thread struct {
	*tview.TextView
	theme  *ui.Theme
	redraw func()

	// follow mirrors whether the viewer is at the end of the transcript.
	follow atomic.Bool

	mu    sync.Mutex
	conv  chat.Conversation
	title string
	open  bool
	body  chat.Transcript
	dirty bool
	toEnd bool
}

// NewThread creates the transcript pane. redraw must schedule a call to
// Paint on the UI goroutine without blocking.
func NewThread(theme *ui.Theme, redraw func()) *Thread {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Messages ")
	tv.SetTitleColor(theme.TitleColor)

	t := &Thread{
		TextView: tv,
		theme:    theme,
		redraw:   redraw,
	}
	t.follow.Store(true)

	tv.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		switch ev.Key() {
		case tcell.KeyUp, tcell.KeyPgUp, tcell.KeyHome, tcell.KeyCtrlB:
			t.follow.Store(false)
		case tcell.KeyEnd:
			t.follow.Store(true)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'k', 'g', 'b':
				t.follow.Store(false)
			case 'G':
				t.follow.Store(true)
			}
		}
		return ev
	})
	tv.SetMouseCapture(func(action tview.MouseAction, ev *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		if action == tview.MouseScrollUp {
			t.follow.Store(false)
		}
		return action, ev
	})

	t.body = chat.Placeholder("Select a conversation.")
	t.dirty = true
	return t
}

// Name implements ui.Component.
func (t *Thread) Name() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.open {
		return t.title
	}
	return "Messages"
}

// Hints implements ui.Component.
func (t *Thread) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "i", Description: "Compose"},
		{Key: "r", Description: "Refresh"},
		{Key: "G", Description: "Follow"},
		{Key: "d", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

// Current returns the conversation the pane was last loaded with.
func (t *Thread) Current() (chat.Conversation, string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conv, t.title, t.open
}

// Reset detaches the pane from any conversation and shows text.
func (t *Thread) Reset(text string) {
	t.mu.Lock()
	t.conv, t.title, t.open = chat.Conversation{}, "", false
	t.body = chat.Placeholder(text)
	t.dirty = true
	t.mu.Unlock()
	t.follow.Store(true)
	t.redraw()
}

// ShowLoading implements chat.Pane.
func (t *Thread) ShowLoading(conv chat.Conversation, title string) {
	t.mu.Lock()
	t.conv, t.title, t.open = conv, title, true
	t.body = chat.Placeholder(chat.LoadingText)
	t.dirty = true
	t.toEnd = false
	t.mu.Unlock()
	t.follow.Store(true)
	t.redraw()
}

// ShowTranscript implements chat.Pane.
func (t *Thread) ShowTranscript(tr chat.Transcript) {
	t.set(tr)
}

// ShowError implements chat.Pane.
func (t *Thread) ShowError(text string) {
	t.set(chat.Placeholder(text))
}

// AtBottom implements chat.Pane.
func (t *Thread) AtBottom() bool {
	return t.follow.Load()
}

// ScrollToEnd implements chat.Pane.
func (t *Thread) ScrollToEnd() {
	t.mu.Lock()
	t.toEnd = true
	t.mu.Unlock()
	t.follow.Store(true)
	t.redraw()
}

func (t *Thread) set(tr chat.Transcript) {
	t.mu.Lock()
	t.body = tr
	t.dirty = true
	t.mu.Unlock()
	t.redraw()
}

// Paint applies pending changes. Must run on the UI goroutine.
func (t *Thread) Paint() {
	t.mu.Lock()
	body, dirty, toEnd := t.body, t.dirty, t.toEnd
	title, open := t.title, t.open
	t.dirty, t.toEnd = false, false
	t.mu.Unlock()

	if dirty {
		// Clear keeps the line offset; a viewer scrolled up stays where the
		// text view leaves them.
		t.Clear()
		_, _ = fmt.Fprint(t, renderTranscript(t.theme, body))
		if open {
			t.SetTitle(fmt.Sprintf(" %s ", tview.Escape(title)))
		} else {
			t.SetTitle(" Messages ")
		}
	}
	if toEnd {
		t.TextView.ScrollToEnd()
	}
}

// renderTranscript formats a transcript as tview dynamic-color text.
func renderTranscript(theme *ui.Theme, tr chat.Transcript) string {
	if tr.IsPlaceholder() {
		return fmt.Sprintf("\n  [%s]%s[-]", ui.Tag(theme.PlaceholderColor), tview.Escape(tr.Placeholder))
	}

	var sb strings.Builder
	timeTag := ui.Tag(theme.TimeColor)
	for i, b := range tr.Bubbles {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch {
		case b.Pending:
			fmt.Fprintf(&sb, "[%s::b]You[-:-:-] [%s::i]%s[-:-:-]\n", ui.Tag(theme.PendingColor), timeTag, tview.Escape(b.Time))
		case b.Sent:
			fmt.Fprintf(&sb, "[%s::b]You[-:-:-] [%s]%s[-]\n", ui.Tag(theme.SentColor), timeTag, tview.Escape(b.Time))
		case b.Header != "":
			fmt.Fprintf(&sb, "[%s::b]%s[-:-:-] [%s]%s[-]\n", ui.Tag(theme.ReceivedColor), tview.Escape(b.Header), timeTag, tview.Escape(b.Time))
		default:
			fmt.Fprintf(&sb, "[%s]%s[-]\n", timeTag, tview.Escape(b.Time))
		}
		textTag := ui.Tag(theme.FgColor)
		if b.Pending {
			textTag = ui.Tag(theme.PendingColor)
		}
		for _, line := range strings.Split(b.Text, "\n") {
			fmt.Fprintf(&sb, "  [%s]%s[-]\n", textTag, tview.Escape(line))
		}
	}
	return sb.String()
}
