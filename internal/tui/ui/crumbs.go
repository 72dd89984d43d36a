package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Crumbs is a breadcrumb bar showing where the user is: the active view,
// the open conversation and any overlay pushed on top.
type Crumbs struct {
	*tview.TextView
	theme *Theme
}

// NewCrumbs creates a new breadcrumb bar.
func NewCrumbs(theme *Theme) *Crumbs {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)

	return &Crumbs{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders the trail. Empty parts are skipped; the last one is active.
func (c *Crumbs) Update(parts ...string) {
	c.Clear()

	trail := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			trail = append(trail, p)
		}
	}
	if len(trail) == 0 {
		return
	}

	out := make([]string, len(trail))
	for i, name := range trail {
		name = tview.Escape(name)
		if i == len(trail)-1 {
			out[i] = fmt.Sprintf("[%s:%s:b] %s [-:-:-]",
				colorName(c.theme.CrumbActiveFg), colorName(c.theme.CrumbActiveBg), name)
		} else {
			out[i] = fmt.Sprintf("[%s:%s:] %s [-:-:-]",
				colorName(c.theme.CrumbInactiveFg), colorName(c.theme.CrumbInactiveBg), name)
		}
	}
	_, _ = fmt.Fprint(c, strings.Join(out, " > "))
}

// colorName returns a tview-compatible color name string.
func colorName(c tcell.Color) string {
	for name, val := range tcell.ColorNames {
		if val == c {
			return name
		}
	}
	return fmt.Sprintf("#%06x", c.Hex())
}
