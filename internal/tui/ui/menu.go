package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
)

// menuRows is how many hints fit in one column of the header.
const menuRows = 6

// Menu displays keyboard shortcut hints in columns of menuRows.
type Menu struct {
	*tview.TextView
	theme *Theme
}

// NewMenu creates a new menu hint bar.
func NewMenu(theme *Theme) *Menu {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 2, 0)

	return &Menu{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders menu hints, filling each column top to bottom.
func (m *Menu) Update(hints []MenuHint) {
	m.Clear()
	if len(hints) == 0 {
		return
	}

	keyColor := colorName(m.theme.MenuKeyColor)
	numColor := colorName(m.theme.NumericKeyColor)

	cols := (len(hints) + menuRows - 1) / menuRows
	width := 0
	for _, h := range hints {
		if w := len(h.Key) + len(h.Description) + 3; w > width {
			width = w
		}
	}

	lines := make([]strings.Builder, min(menuRows, len(hints)))
	for c := 0; c < cols; c++ {
		for r := range lines {
			i := c*menuRows + r
			if i >= len(hints) {
				break
			}
			h := hints[i]
			kc := keyColor
			if h.Numeric {
				kc = numColor
			}
			pad := width - len(h.Key) - len(h.Description) - 3
			fmt.Fprintf(&lines[r], "[%s::b]<%s>[-:-:-] %s%s  ", kc, h.Key, tview.Escape(h.Description), strings.Repeat(" ", pad))
		}
	}
	for i := range lines {
		if i > 0 {
			_, _ = fmt.Fprint(m, "\n")
		}
		_, _ = fmt.Fprint(m, lines[i].String())
	}
}
