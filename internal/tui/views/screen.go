package views

import (
	"fmt"

	"github.com/matheus3301/hirechat/internal/chat"
	"github.com/matheus3301/hirechat/internal/router"
	"github.com/matheus3301/hirechat/internal/tui/ui"
	"github.com/rivo/tview"
)

// Screen is the content shown for one dashboard view. It implements
// router.Panel by showing or hiding its page in the content area.
type Screen struct {
	tview.Primitive
	pages *tview.Pages
	view  router.View
	focus tview.Primitive

	// List is set on views that browse conversations.
	List *ConversationList
	// Channel is the conversation kind List holds.
	Channel chat.ChannelType
}

// Show implements router.Panel.
func (s *Screen) Show() {
	s.pages.ShowPage(s.view.ID)
	s.pages.SendToFront(s.view.ID)
}

// Hide implements router.Panel.
func (s *Screen) Hide() {
	s.pages.HidePage(s.view.ID)
}

// View returns the dashboard view this screen serves.
func (s *Screen) View() router.View { return s.view }

// HasChat reports whether the screen shows the transcript pane.
func (s *Screen) HasChat() bool {
	return s.List != nil || s.view.Chat != nil
}

// Focus returns what should take focus when the screen is shown.
func (s *Screen) Focus() tview.Primitive {
	if s.List != nil {
		return s.List
	}
	if s.focus != nil {
		return s.focus
	}
	return s.Primitive
}

// NewScreens builds one screen per panel view of d inside pages. chatColumn
// is the shared transcript and composer; it is placed in every screen that
// shows a conversation, and only one screen is visible at a time. thread is
// focused on screens dedicated to a single conversation. link returns the
// web URL of a view.
func NewScreens(theme *ui.Theme, d router.Dashboard, pages *tview.Pages, chatColumn, thread tview.Primitive, link func(view string) string) []*Screen {
	var screens []*Screen
	for _, v := range d.Views {
		if v.External != "" {
			continue
		}
		s := &Screen{pages: pages, view: v}
		switch {
		case v.Chat != nil:
			s.Primitive = chatColumn
			s.focus = thread
		case v.ID == d.ChatView:
			s.List = NewConversationList(theme, v.Title)
			s.Channel = d.OpenChannel
			s.Primitive = tview.NewFlex().
				AddItem(s.List, 0, 2, true).
				AddItem(chatColumn, 0, 3, false)
		default:
			s.Primitive = newInfo(theme, v, link(v.ID))
		}
		pages.AddPage(v.ID, s.Primitive, true, false)
		screens = append(screens, s)
	}
	return screens
}

// newInfo is the screen of views whose content the web dashboard renders.
func newInfo(theme *ui.Theme, v router.View, link string) *tview.TextView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(fmt.Sprintf(" %s ", v.Title))
	tv.SetTitleColor(theme.TitleColor)

	kc := ui.Tag(theme.MenuKeyColor)
	_, _ = fmt.Fprintf(tv, "\n  [::b]%s[-:-:-] is rendered by the web dashboard.\n\n  Open: [%s]%s[-]\n\n  [%s]:share[-] shows this link as a QR code.",
		tview.Escape(v.Title), ui.Tag(theme.CounterColor), tview.Escape(link), kc)
	if v.Filterable {
		_, _ = fmt.Fprintf(tv, "\n  [%s]:view %s <status>[-] opens it filtered by status.", kc, v.ID)
	}
	return tv
}
