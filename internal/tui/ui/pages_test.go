package ui

import (
	"reflect"
	"testing"

	"github.com/rivo/tview"
)

func newTestPages() *Pages {
	p := NewPages()
	for _, name := range []string{"main", "help", "search"} {
		p.AddPage(name, tview.NewBox(), true, false)
	}
	return p
}

func TestPagesPushPop(t *testing.T) {
	p := newTestPages()
	var changes int
	p.SetOnChange(func([]string) { changes++ })

	p.Push("main")
	p.Push("help")
	if p.Current() != "help" || p.Depth() != 2 {
		t.Fatalf("stack = %v", p.Stack())
	}

	if got := p.Pop(); got != "help" {
		t.Errorf("Pop = %q", got)
	}
	// The base page is never popped.
	if got := p.Pop(); got != "" {
		t.Errorf("Pop on base = %q", got)
	}
	if p.Current() != "main" {
		t.Errorf("current = %q", p.Current())
	}
	if changes != 3 {
		t.Errorf("changes = %d, want 3", changes)
	}
}

func TestPagesOverlayRemovedOnPop(t *testing.T) {
	p := newTestPages()
	p.Push("main")
	p.Overlay("alert", tview.NewModal())
	if !p.HasPage("alert") || p.Current() != "alert" {
		t.Fatalf("overlay not shown: %v", p.Stack())
	}

	// Re-adding the same overlay replaces it instead of stacking twice.
	p.Overlay("alert", tview.NewModal())
	if want := []string{"main", "alert"}; !reflect.DeepEqual(p.Stack(), want) {
		t.Errorf("stack = %v, want %v", p.Stack(), want)
	}

	p.Pop()
	if p.HasPage("alert") {
		t.Error("overlay still registered after pop")
	}
}

func TestPagesReset(t *testing.T) {
	p := newTestPages()
	p.Push("main")
	p.Push("search")
	p.Overlay("alert", tview.NewModal())

	p.Reset("main")
	if want := []string{"main"}; !reflect.DeepEqual(p.Stack(), want) {
		t.Errorf("stack = %v", p.Stack())
	}
	if p.HasPage("alert") {
		t.Error("Reset kept the overlay")
	}
}
