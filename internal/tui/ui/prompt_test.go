package ui

import (
	"fmt"
	"reflect"
	"testing"
)

func TestPromptHistoryRecall(t *testing.T) {
	p := NewPrompt(DefaultTheme())
	p.remember("view messages")
	p.remember("open application 42")
	p.remember("open application 42")

	if want := []string{"view messages", "open application 42"}; !reflect.DeepEqual(p.History(), want) {
		t.Fatalf("history = %v", p.History())
	}

	p.Activate(PromptCommand, "")
	p.recall(-1)
	if got := p.GetText(); got != "open application 42" {
		t.Errorf("first recall = %q", got)
	}
	p.recall(-1)
	p.recall(-1)
	if got := p.GetText(); got != "view messages" {
		t.Errorf("recall past oldest = %q", got)
	}
	p.recall(1)
	p.recall(1)
	if got := p.GetText(); got != "" {
		t.Errorf("recall past newest = %q", got)
	}
}

func TestPromptHistoryBounded(t *testing.T) {
	p := NewPrompt(DefaultTheme())
	for i := 0; i < maxHistory+10; i++ {
		p.remember(fmt.Sprintf("cmd %d", i))
	}
	h := p.History()
	if len(h) != maxHistory {
		t.Fatalf("len = %d", len(h))
	}
	if h[0] != "cmd 10" {
		t.Errorf("oldest = %q", h[0])
	}
}

func TestPromptActivateModes(t *testing.T) {
	p := NewPrompt(DefaultTheme())
	p.Activate(PromptFilter, "jane")
	if p.Mode() != PromptFilter || p.GetLabel() != "/" || p.GetText() != "jane" {
		t.Errorf("filter prompt = %v %q %q", p.Mode(), p.GetLabel(), p.GetText())
	}
	p.Activate(PromptCommand, "")
	if p.GetLabel() != ":" {
		t.Errorf("label = %q", p.GetLabel())
	}
}
