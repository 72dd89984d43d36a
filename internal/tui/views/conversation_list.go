package views

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/hirechat/internal/chat"
	intsync "github.com/matheus3301/hirechat/internal/sync"
	"github.com/matheus3301/hirechat/internal/tui/ui"
	"github.com/rivo/tview"
)

// ConversationList is a table of known conversations of one channel.
type ConversationList struct {
	*tview.Table
	theme  *ui.Theme
	title  string
	items  []intsync.Known
	filter string
	active chat.Conversation
}

// NewConversationList creates a new conversation list table.
func NewConversationList(theme *ui.Theme, title string) *ConversationList {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false).
		SetFixed(1, 0)
	table.SetBorder(true)
	table.SetBorderColor(theme.BorderColor)
	table.SetBackgroundColor(theme.BgColor)
	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))
	table.SetTitleColor(theme.TitleColor)

	cl := &ConversationList{
		Table: table,
		theme: theme,
		title: title,
	}
	cl.render()
	return cl
}

// Name implements ui.Component.
func (cl *ConversationList) Name() string { return cl.title }

// Hints implements ui.Component.
func (cl *ConversationList) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Open"},
		{Key: "d", Description: "Details"},
		{Key: "/", Description: "Filter"},
		{Key: "Tab", Description: "Next pane"},
	}
}

// Update replaces the rows. filter is only shown in the title; items are
// already filtered.
func (cl *ConversationList) Update(items []intsync.Known, filter string) {
	selected, hadSelection := cl.Selected()
	cl.items = items
	cl.filter = filter
	cl.render()
	if hadSelection {
		cl.selectConversation(selected.Conversation)
	}
}

// SetActive marks the conversation open in the thread.
func (cl *ConversationList) SetActive(conv chat.Conversation) {
	cl.active = conv
	cl.render()
}

// Selected returns the entry under the cursor.
func (cl *ConversationList) Selected() (intsync.Known, bool) {
	row, _ := cl.GetSelection()
	idx := row - 1 // account for header
	if idx < 0 || idx >= len(cl.items) {
		return intsync.Known{}, false
	}
	return cl.items[idx], true
}

// Len returns the number of rows shown.
func (cl *ConversationList) Len() int { return len(cl.items) }

func (cl *ConversationList) selectConversation(conv chat.Conversation) {
	for i, k := range cl.items {
		if k.Conversation == conv {
			cl.Select(i+1, 0)
			return
		}
	}
}

func (cl *ConversationList) render() {
	cl.Clear()

	headers := []struct {
		text  string
		exp   int
		align int
	}{
		{" NAME", 1, tview.AlignLeft},
		{" LAST MESSAGE", 2, tview.AlignLeft},
		{"MSGS", 0, tview.AlignRight},
		{" LAST AT", 0, tview.AlignRight},
	}
	for col, h := range headers {
		cl.SetCell(0, col, tview.NewTableCell(h.text).
			SetSelectable(false).
			SetTextColor(cl.theme.TableHeaderFg).
			SetBackgroundColor(cl.theme.TableHeaderBg).
			SetAttributes(tcell.AttrBold).
			SetExpansion(h.exp).
			SetAlign(h.align))
	}

	for i, k := range cl.items {
		row := i + 1
		name := k.Title()
		color := cl.theme.FgColor
		if k.Conversation == cl.active {
			name = "* " + name
			color = cl.theme.CounterColor
		}
		count := ""
		if k.Summary.MessageCount > 0 {
			count = strconv.Itoa(k.Summary.MessageCount)
		}
		last := ""
		if k.Summary.LastMessageAt != "" {
			last = chat.FormatTime(k.Summary.LastMessageAt)
		}
		cl.SetCell(row, 0, tview.NewTableCell(" "+tview.Escape(name)).SetExpansion(1).SetTextColor(color))
		cl.SetCell(row, 1, tview.NewTableCell(" "+tview.Escape(k.Summary.LastMessagePreview)).SetExpansion(2).SetTextColor(cl.theme.FgColor))
		cl.SetCell(row, 2, tview.NewTableCell(count).SetAlign(tview.AlignRight).SetTextColor(cl.theme.FgColor))
		cl.SetCell(row, 3, tview.NewTableCell(" "+last).SetAlign(tview.AlignRight).SetTextColor(cl.theme.FgColor))
	}

	if cl.filter != "" {
		cl.SetTitle(fmt.Sprintf(" %s (%d) filter: %s ", cl.title, len(cl.items), tview.Escape(cl.filter)))
	} else {
		cl.SetTitle(fmt.Sprintf(" %s (%d) ", cl.title, len(cl.items)))
	}
}
