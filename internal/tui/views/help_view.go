package views

import (
	"fmt"
	"strings"

	"github.com/matheus3301/hirechat/internal/router"
	"github.com/matheus3301/hirechat/internal/tui/ui"
	"github.com/rivo/tview"
)

// HelpView displays the key binding and command reference.
type HelpView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewHelpView creates a new help view listing the views of d.
func NewHelpView(theme *ui.Theme, d router.Dashboard) *HelpView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Help ")
	tv.SetTitleColor(theme.TitleColor)

	hv := &HelpView{
		TextView: tv,
		theme:    theme,
	}
	hv.render(d)
	return hv
}

// Name implements ui.Component.
func (hv *HelpView) Name() string { return "Help" }

// Hints implements ui.Component.
func (hv *HelpView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (hv *HelpView) render(d router.Dashboard) {
	kc := ui.Tag(hv.theme.MenuKeyColor)
	key := func(k string) string { return fmt.Sprintf("[%s]%-30s[-]", kc, tview.Escape(k)) }

	var sb strings.Builder
	section := func(title string, rows ...[2]string) {
		fmt.Fprintf(&sb, "\n  [::b]%s[-:-:-]\n\n", title)
		for _, r := range rows {
			fmt.Fprintf(&sb, "  %s %s\n", key(r[0]), r[1])
		}
	}

	section("Global Keys",
		[2]string{"1-9", "Switch view"},
		[2]string{"Tab", "Next pane"},
		[2]string{":", "Command mode"},
		[2]string{"/", "Filter conversations"},
		[2]string{"s", "Search cached messages"},
		[2]string{"Esc", "Close overlay / previous view"},
		[2]string{"?", "Help"},
		[2]string{"q", "Quit"},
	)
	section("Conversations",
		[2]string{"Enter", "Open conversation"},
		[2]string{"d", "Conversation details"},
		[2]string{"i", "Focus composer"},
		[2]string{"r", "Refresh now"},
		[2]string{"G / End", "Follow new messages"},
	)
	section("Commands",
		[2]string{":view <id> [status]", "Switch view, optionally filtered"},
		[2]string{":open <channel> [key] [title]", "Open a conversation"},
		[2]string{":back", "Previous view"},
		[2]string{":refresh", "Re-fetch the open conversation"},
		[2]string{":search <query>", "Search cached messages"},
		[2]string{":share", "Show the current URL as a QR code"},
		[2]string{":help / :h", "Show this help"},
		[2]string{":quit / :q", "Quit"},
	)

	views := make([][2]string, 0, len(d.Views))
	for i, v := range d.Views {
		desc := v.Title
		if v.External != "" {
			desc += " (web only)"
		}
		views = append(views, [2]string{fmt.Sprintf("%d  %s", i+1, v.ID), desc})
	}
	section("Views", views...)

	_, _ = fmt.Fprint(hv, sb.String())
}
