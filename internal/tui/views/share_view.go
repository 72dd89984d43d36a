package views

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/matheus3301/hirechat/internal/tui/ui"
	"github.com/rivo/tview"
)

// ShareView shows the shareable dashboard URL of the current view as a QR
// code, so it can be opened on another device.
type ShareView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewShareView creates a new share view.
func NewShareView(theme *ui.Theme) *ShareView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Share ")
	tv.SetTitleColor(theme.TitleColor)

	return &ShareView{
		TextView: tv,
		theme:    theme,
	}
}

// Name implements ui.Component.
func (sv *ShareView) Name() string { return "Share" }

// Hints implements ui.Component.
func (sv *ShareView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
	}
}

// ShowURL renders link as a scannable QR block followed by the link itself.
func (sv *ShareView) ShowURL(link string) {
	sv.Clear()
	_, _ = fmt.Fprintf(sv, "\n%s\n[%s]%s[-]", RenderQR(link), ui.Tag(sv.theme.CounterColor), tview.Escape(link))
	sv.ScrollToBeginning()
}

// RenderQR converts a string to a compact text QR code using Unicode
// half-block characters, two modules per character cell.
func RenderQR(content string) string {
	qr, err := qrcode.New(content, qrcode.Low)
	if err != nil {
		return "(QR generation failed: " + err.Error() + ")"
	}
	qr.DisableBorder = false

	bitmap := qr.Bitmap()
	rows := len(bitmap)
	cols := 0
	if rows > 0 {
		cols = len(bitmap[0])
	}

	var sb strings.Builder
	for y := 0; y < rows; y += 2 {
		for x := 0; x < cols; x++ {
			top := bitmap[y][x]
			bot := false
			if y+1 < rows {
				bot = bitmap[y+1][x]
			}
			switch {
			case top && bot:
				sb.WriteRune('█')
			case top && !bot:
				sb.WriteRune('▀')
			case !top && bot:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune('\n')
	}

	return sb.String()
}
