package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/hirechat/internal/chat"
	"github.com/matheus3301/hirechat/internal/store"
	"github.com/matheus3301/hirechat/internal/tui/ui"
	"github.com/rivo/tview"
)

// SearchView searches the cached transcripts of the current surface.
type SearchView struct {
	*tview.Flex
	theme   *ui.Theme
	input   *tview.InputField
	results *tview.Table
	onQuery func(query string)
	data    []store.SearchResult
}

// NewSearchView creates a new search view.
func NewSearchView(theme *ui.Theme) *SearchView {
	input := tview.NewInputField().
		SetLabel(" Search: ").
		SetFieldWidth(0)
	input.SetBorderColor(theme.BorderColor)
	input.SetBackgroundColor(theme.BgColor)
	input.SetFieldBackgroundColor(theme.BgColor)
	input.SetFieldTextColor(theme.FgColor)
	input.SetLabelColor(theme.MenuKeyColor)

	results := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false).
		SetFixed(1, 0)
	results.SetBorder(true)
	results.SetBorderColor(theme.BorderColor)
	results.SetBackgroundColor(theme.BgColor)
	results.SetTitle(" Results ")
	results.SetTitleColor(theme.TitleColor)
	results.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(input, 1, 0, true).
		AddItem(results, 0, 1, false)

	sv := &SearchView{
		Flex:    flex,
		theme:   theme,
		input:   input,
		results: results,
	}
	input.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter && sv.onQuery != nil {
			sv.onQuery(sv.input.GetText())
		}
	})

	return sv
}

// Name implements ui.Component.
func (sv *SearchView) Name() string { return "Search" }

// Hints implements ui.Component.
func (sv *SearchView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Search/Open"},
		{Key: "Esc", Description: "Back"},
	}
}

// SetOnQuery sets the callback when a search query is submitted.
func (sv *SearchView) SetOnQuery(fn func(query string)) {
	sv.onQuery = fn
}

// Reset clears the query and results.
func (sv *SearchView) Reset() {
	sv.input.SetText("")
	sv.Update(nil, "")
}

// Update refreshes search results for query.
func (sv *SearchView) Update(results []store.SearchResult, query string) {
	sv.data = results
	sv.results.Clear()

	headers := []string{" CONVERSATION", " FROM", " SNIPPET", " AT"}
	for col, h := range headers {
		sv.results.SetCell(0, col, tview.NewTableCell(h).
			SetSelectable(false).
			SetTextColor(sv.theme.TableHeaderFg).
			SetBackgroundColor(sv.theme.TableHeaderBg).
			SetAttributes(tcell.AttrBold))
	}

	for i, r := range results {
		row := i + 1
		conv := r.Message.Channel
		if r.Message.Key != "" {
			conv += ":" + r.Message.Key
		}
		sv.results.SetCell(row, 0, tview.NewTableCell(" "+tview.Escape(conv)).SetMaxWidth(25).SetTextColor(sv.theme.FgColor))
		sv.results.SetCell(row, 1, tview.NewTableCell(" "+tview.Escape(r.Message.SenderName)).SetMaxWidth(20).SetTextColor(sv.theme.FgColor))
		sv.results.SetCell(row, 2, tview.NewTableCell(" "+tview.Escape(r.Snippet)).SetExpansion(1).SetTextColor(sv.theme.FgColor))
		sv.results.SetCell(row, 3, tview.NewTableCell(" "+chat.FormatTime(r.Message.CreatedAt)).SetMaxWidth(14).SetTextColor(sv.theme.FgColor))
	}
	if query != "" {
		sv.results.SetTitle(fmt.Sprintf(" Results for %q (%d) ", query, len(results)))
	} else {
		sv.results.SetTitle(" Results ")
	}
}

// SelectedResult returns the conversation of the selected result.
func (sv *SearchView) SelectedResult() (chat.Conversation, bool) {
	row, _ := sv.results.GetSelection()
	idx := row - 1
	if idx < 0 || idx >= len(sv.data) {
		return chat.Conversation{}, false
	}
	m := sv.data[idx].Message
	conv, err := chat.ParseConversation(m.Channel, m.Key)
	if err != nil {
		return chat.Conversation{}, false
	}
	return conv, true
}

// Input returns the search input field.
func (sv *SearchView) Input() *tview.InputField {
	return sv.input
}

// Results returns the results table.
func (sv *SearchView) Results() *tview.Table {
	return sv.results
}
