package chat

import (
	"strings"
	"time"

	"github.com/matheus3301/hirechat/internal/api"
)

// Bubble is one rendered message.
type Bubble struct {
	Sent    bool
	Header  string // counterpart name; empty on sent bubbles
	Text    string
	Time    string
	Pending bool   // optimistic, not yet acknowledged by the server
	LocalID string // client message id of a pending bubble
}

// Transcript is what a pane shows: either a single placeholder line or a
// list of bubbles, never both.
type Transcript struct {
	Placeholder string
	Bubbles     []Bubble
}

// Placeholder returns a transcript holding only text.
func Placeholder(text string) Transcript {
	return Transcript{Placeholder: text}
}

// IsPlaceholder reports whether the transcript is a single placeholder line.
func (t Transcript) IsPlaceholder() bool {
	return t.Placeholder != ""
}

// withPending appends optimistic bubbles. A placeholder is replaced, since
// an empty thread stops being empty the moment something is sent.
func (t Transcript) withPending(pending []Bubble) Transcript {
	if len(pending) == 0 {
		return t
	}
	out := Transcript{Bubbles: make([]Bubble, 0, len(t.Bubbles)+len(pending))}
	out.Bubbles = append(out.Bubbles, t.Bubbles...)
	out.Bubbles = append(out.Bubbles, pending...)
	return out
}

// Renderer maps message records to a transcript for one route. It remembers
// the last rendered fingerprint and reports unchanged input so callers can
// skip touching the pane. Not safe for concurrent use.
type Renderer struct {
	route Route
	last  Fingerprint
	seen  bool
}

// NewRenderer creates a renderer with no stored fingerprint.
func NewRenderer(route Route) *Renderer {
	return &Renderer{route: route}
}

// Render returns the transcript for msgs and whether it differs from the
// previous call. When changed is false the returned transcript is empty and
// must not be shown.
func (r *Renderer) Render(msgs []api.Message) (t Transcript, changed bool) {
	fp := FingerprintOf(msgs)
	if r.seen && fp == r.last {
		return Transcript{}, false
	}
	r.last, r.seen = fp, true

	if len(msgs) == 0 {
		return Placeholder(r.route.EmptyText), true
	}
	t.Bubbles = make([]Bubble, 0, len(msgs))
	for _, m := range msgs {
		t.Bubbles = append(t.Bubbles, r.bubble(m))
	}
	return t, true
}

// Reset forgets the stored fingerprint so the next Render always reports a
// change.
func (r *Renderer) Reset() {
	r.last, r.seen = Fingerprint{}, false
}

// Fingerprint returns the last rendered fingerprint, if any.
func (r *Renderer) Fingerprint() (Fingerprint, bool) {
	return r.last, r.seen
}

func (r *Renderer) bubble(m api.Message) Bubble {
	b := Bubble{
		Sent: m.SenderRole == r.route.ViewerRole,
		Text: cleanText(m.Message),
		Time: FormatTime(m.CreatedAt),
	}
	if !b.Sent {
		b.Header = cleanText(m.DisplayName())
		if b.Header == "" {
			b.Header = r.route.Counterpart
		}
	}
	return b
}

var timeLayouts = []struct {
	layout   string
	dateOnly bool
}{
	{time.RFC3339Nano, false},
	{"2006-01-02T15:04:05.999999999", false},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02T15:04", false},
	{"2006-01-02 15:04:05", false},
	{time.DateOnly, true},
}

// FormatTime renders a server timestamp short: "Jan 2" for a date, "Jan 2
// 15:04" when a time of day is present. Unparseable input is returned as is.
func FormatTime(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, l := range timeLayouts {
		ts, err := time.Parse(l.layout, s)
		if err != nil {
			continue
		}
		if l.dateOnly {
			return ts.Format("Jan 2")
		}
		return ts.Format("Jan 2 15:04")
	}
	return s
}
