package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/matheus3301/hirechat/internal/chat"
)

// linePane is a chat.Pane for a terminal that only appends: each transcript
// prints the confirmed bubbles not printed yet. When the server's transcript
// no longer starts with what was printed, it is printed again in full.
type linePane struct {
	mu      sync.Mutex
	w       io.Writer
	printed []chat.Bubble
	last    string // last placeholder shown
}

func newLinePane(w io.Writer) *linePane {
	return &linePane{w: w}
}

func (p *linePane) ShowLoading(conv chat.Conversation, title string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.printed = nil
	p.last = ""
	_, _ = fmt.Fprintf(p.w, "-- %s (%s)\n", title, conv)
}

func (p *linePane) ShowTranscript(t chat.Transcript) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if t.IsPlaceholder() {
		p.placeholder(t.Placeholder)
		return
	}
	p.last = ""

	var confirmed []chat.Bubble
	for _, b := range t.Bubbles {
		if !b.Pending {
			confirmed = append(confirmed, b)
		}
	}
	if !hasPrefix(confirmed, p.printed) {
		_, _ = fmt.Fprintln(p.w, "-- transcript changed")
		p.printed = nil
	}
	for _, b := range confirmed[len(p.printed):] {
		_, _ = fmt.Fprintln(p.w, formatBubble(b))
	}
	p.printed = confirmed
}

func (p *linePane) ShowError(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.placeholder(text)
}

func (p *linePane) placeholder(text string) {
	if text == p.last {
		return
	}
	p.last = text
	p.printed = nil
	_, _ = fmt.Fprintln(p.w, text)
}

// AtBottom is always true; output only ever grows at the end.
func (p *linePane) AtBottom() bool { return true }

func (p *linePane) ScrollToEnd() {}

func hasPrefix(all, prefix []chat.Bubble) bool {
	if len(prefix) > len(all) {
		return false
	}
	for i := range prefix {
		if all[i] != prefix[i] {
			return false
		}
	}
	return true
}
