package views

import (
	"strings"
	"testing"

	"github.com/matheus3301/hirechat/internal/chat"
	"github.com/matheus3301/hirechat/internal/router"
	"github.com/matheus3301/hirechat/internal/store"
	intsync "github.com/matheus3301/hirechat/internal/sync"
	"github.com/matheus3301/hirechat/internal/tui/ui"
)

var app42 = chat.Conversation{Channel: chat.Application, Key: "42"}

func TestThreadRecordsUntilPaint(t *testing.T) {
	var redraws int
	th := NewThread(ui.DefaultTheme(), func() { redraws++ })
	var _ chat.Pane = th

	th.ShowLoading(app42, "Jane Doe")
	if redraws != 1 {
		t.Errorf("redraws = %d", redraws)
	}
	if strings.Contains(th.GetText(true), chat.LoadingText) {
		t.Error("ShowLoading drew before Paint")
	}

	th.Paint()
	if !strings.Contains(th.GetText(true), chat.LoadingText) {
		t.Errorf("text = %q", th.GetText(true))
	}
	if th.GetTitle() != " Jane Doe " {
		t.Errorf("title = %q", th.GetTitle())
	}
	conv, title, open := th.Current()
	if conv != app42 || title != "Jane Doe" || !open {
		t.Errorf("Current = %v %q %v", conv, title, open)
	}
}

func TestThreadFollowFlag(t *testing.T) {
	th := NewThread(ui.DefaultTheme(), func() {})
	if !th.AtBottom() {
		t.Fatal("new thread should follow")
	}
	th.follow.Store(false)
	th.ScrollToEnd()
	if !th.AtBottom() {
		t.Error("ScrollToEnd did not restore follow")
	}

	th.follow.Store(false)
	th.ShowLoading(app42, "Jane Doe")
	if !th.AtBottom() {
		t.Error("ShowLoading did not restore follow")
	}
}

func TestThreadRepaintKeepsDefaultPosition(t *testing.T) {
	th := NewThread(ui.DefaultTheme(), func() {})
	th.ShowLoading(app42, "Jane Doe")
	th.Paint()

	// The viewer scrolled up; a changed transcript is drawn without moving
	// the pane.
	th.TextView.ScrollTo(3, 0)
	th.follow.Store(false)
	th.ShowTranscript(chat.Transcript{Bubbles: []chat.Bubble{
		{Header: "Candidate", Text: "one"},
		{Header: "Candidate", Text: "two"},
	}})
	th.Paint()
	if row, col := th.GetScrollOffset(); row != 3 || col != 0 {
		t.Errorf("offset = %d,%d, want 3,0", row, col)
	}
	if !strings.Contains(th.GetText(true), "two") {
		t.Errorf("text = %q", th.GetText(true))
	}

	th.ScrollToEnd()
	th.Paint()
	if !th.AtBottom() {
		t.Error("ScrollToEnd did not follow")
	}
}

func TestThreadReset(t *testing.T) {
	th := NewThread(ui.DefaultTheme(), func() {})
	th.ShowLoading(app42, "Jane Doe")
	th.Reset("Select a conversation.")
	th.Paint()

	if _, _, open := th.Current(); open {
		t.Error("Reset left the thread open")
	}
	if th.GetTitle() != " Messages " {
		t.Errorf("title = %q", th.GetTitle())
	}
}

func TestRenderTranscript(t *testing.T) {
	theme := ui.DefaultTheme()
	out := renderTranscript(theme, chat.Transcript{Bubbles: []chat.Bubble{
		{Header: "Candidate", Text: "Hi [there]", Time: "May 1, 10:00 AM"},
		{Sent: true, Text: "line one\nline two", Time: "May 1, 10:05 AM"},
		{Sent: true, Pending: true, Text: "still going", Time: chat.SendingTime},
	}})

	for _, want := range []string{"Candidate", "You", "  [", "line two", chat.SendingTime, "::i]"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
	// Message text is escaped so brackets are not read as color tags.
	if !strings.Contains(out, "Hi [there[]") {
		t.Errorf("text not escaped: %q", out)
	}

	placeholder := renderTranscript(theme, chat.Placeholder(chat.EmptyText))
	if !strings.Contains(placeholder, chat.EmptyText) {
		t.Errorf("placeholder = %q", placeholder)
	}
}

func TestComposerBindClear(t *testing.T) {
	var redraws int
	c := NewComposer(ui.DefaultTheme(), func() { redraws++ })
	var _ chat.Composer = c

	if _, ok := c.Bound(); ok {
		t.Fatal("new composer is bound")
	}
	c.Bind(app42)
	c.Paint()
	if got := c.GetLabel(); got != " application:42 > " {
		t.Errorf("label = %q", got)
	}

	c.SetText("hello")
	c.Clear()
	if c.GetText() != "hello" {
		t.Error("Clear wiped before Paint")
	}
	c.Paint()
	if c.GetText() != "" {
		t.Errorf("text after Paint = %q", c.GetText())
	}

	c.Unbind()
	c.Paint()
	if _, ok := c.Bound(); ok || c.GetLabel() != " > " {
		t.Errorf("unbind: label %q", c.GetLabel())
	}
	if redraws != 3 {
		t.Errorf("redraws = %d, want 3", redraws)
	}
}

func TestSidebarHighlight(t *testing.T) {
	s := NewSidebar(ui.DefaultTheme(), router.For(chat.SurfaceEmployer))
	var _ router.Nav = s

	s.Highlight("support")
	if s.Active() != "support" {
		t.Errorf("active = %q", s.Active())
	}
	if row, _ := s.GetSelection(); row != 3 {
		t.Errorf("selected row = %d", row)
	}

	if id, ok := s.ViewAt(2); !ok || id != "messages" {
		t.Errorf("ViewAt(2) = %q %v", id, ok)
	}
	if _, ok := s.ViewAt(0); ok {
		t.Error("ViewAt(0) should fail")
	}
	if _, ok := s.ViewAt(6); ok {
		t.Error("ViewAt past end should fail")
	}
}

func TestSidebarMarksExternalViews(t *testing.T) {
	s := NewSidebar(ui.DefaultTheme(), router.For(chat.SurfaceAdmin))
	if got := s.GetCell(1, 0).Text; !strings.HasSuffix(got, " ->") {
		t.Errorf("external entry = %q", got)
	}
	if got := s.GetCell(0, 0).Text; strings.HasSuffix(got, " ->") {
		t.Errorf("panel entry = %q", got)
	}
}

func TestConversationListKeepsSelection(t *testing.T) {
	cl := NewConversationList(ui.DefaultTheme(), "Applicant Inbox")
	known := func(key, title string) intsync.Known {
		return intsync.Known{
			Conversation: chat.Conversation{Channel: chat.Application, Key: key},
			Summary:      store.Conversation{Title: title},
		}
	}

	cl.Update([]intsync.Known{known("1", "Ann"), known("2", "Bob")}, "")
	cl.Select(2, 0)
	k, ok := cl.Selected()
	if !ok || k.Conversation.Key != "2" {
		t.Fatalf("Selected = %+v %v", k, ok)
	}

	// A reload that reorders rows keeps the cursor on the same conversation.
	cl.Update([]intsync.Known{known("2", "Bob"), known("3", "Cy"), known("1", "Ann")}, "b")
	k, ok = cl.Selected()
	if !ok || k.Conversation.Key != "2" {
		t.Errorf("after reload Selected = %+v %v", k, ok)
	}
	if cl.Len() != 3 {
		t.Errorf("Len = %d", cl.Len())
	}
	if !strings.Contains(cl.GetTitle(), "filter: b") {
		t.Errorf("title = %q", cl.GetTitle())
	}

	cl.SetActive(chat.Conversation{Channel: chat.Application, Key: "3"})
	if got := cl.GetCell(2, 0).Text; got != " * Cy" {
		t.Errorf("active row = %q", got)
	}
}
