package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/hirechat/internal/router"
	"github.com/matheus3301/hirechat/internal/tui/ui"
	"github.com/rivo/tview"
)

// Sidebar lists the views of a dashboard. It implements router.Nav: the
// router highlights the active entry, and selecting an entry asks the app
// to switch.
type Sidebar struct {
	*tview.Table
	theme    *ui.Theme
	views    []router.View
	active   string
	onSelect func(view string)
}

// NewSidebar creates the sidebar for dashboard d.
func NewSidebar(theme *ui.Theme, d router.Dashboard) *Sidebar {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false)
	table.SetBorder(true)
	table.SetBorderColor(theme.BorderColor)
	table.SetBackgroundColor(theme.BgColor)
	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))
	table.SetTitle(" Views ")
	table.SetTitleColor(theme.TitleColor)

	s := &Sidebar{
		Table: table,
		theme: theme,
		views: d.Views,
	}
	table.SetSelectedFunc(func(row, _ int) {
		if row >= 0 && row < len(s.views) && s.onSelect != nil {
			s.onSelect(s.views[row].ID)
		}
	})
	s.render()
	return s
}

// Name implements ui.Component.
func (s *Sidebar) Name() string { return "Views" }

// Hints implements ui.Component.
func (s *Sidebar) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Switch"},
		{Key: "Tab", Description: "Next pane"},
	}
}

// SetOnSelect sets the callback when an entry is chosen.
func (s *Sidebar) SetOnSelect(fn func(view string)) {
	s.onSelect = fn
}

// Highlight implements router.Nav.
func (s *Sidebar) Highlight(view string) {
	s.active = view
	for i, v := range s.views {
		if v.ID == view {
			s.Select(i, 0)
		}
	}
	s.render()
}

// Active returns the highlighted view id.
func (s *Sidebar) Active() string { return s.active }

// ViewAt returns the id of the n-th entry, 1-based.
func (s *Sidebar) ViewAt(n int) (string, bool) {
	if n < 1 || n > len(s.views) {
		return "", false
	}
	return s.views[n-1].ID, true
}

func (s *Sidebar) render() {
	s.Clear()
	for i, v := range s.views {
		label := fmt.Sprintf(" %d %s", i+1, v.Title)
		if v.External != "" {
			label += " ->"
		}
		color := s.theme.FgColor
		attr := tcell.AttrNone
		if v.ID == s.active {
			color = s.theme.CrumbActiveBg
			attr = tcell.AttrBold
		}
		s.SetCell(i, 0, tview.NewTableCell(tview.Escape(label)).
			SetTextColor(color).
			SetAttributes(attr).
			SetExpansion(1))
	}
}
