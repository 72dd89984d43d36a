package ui

import (
	"errors"
	"testing"
	"time"
)

func TestFlashExpires(t *testing.T) {
	now := time.Unix(1000, 0)
	f := NewFlashModel()
	f.now = func() time.Time { return now }

	f.Info("Message sent")
	if got := f.Get(); got != "Message sent" {
		t.Fatalf("Get = %q", got)
	}

	now = now.Add(flashInfoTTL - time.Millisecond)
	if f.GetMessage() == nil {
		t.Fatal("message expired early")
	}

	now = now.Add(time.Millisecond)
	if m := f.GetMessage(); m != nil {
		t.Errorf("expected expiry, got %+v", m)
	}
}

func TestFlashLevels(t *testing.T) {
	f := NewFlashModel()

	f.Warn("poll failed")
	if m := f.GetMessage(); m == nil || m.Level != FlashWarn {
		t.Errorf("warn = %+v", m)
	}
	f.Err(errors.New("boom"))
	if m := f.GetMessage(); m == nil || m.Level != FlashErr || m.Text != "boom" {
		t.Errorf("err = %+v", m)
	}
	f.Clear()
	if f.GetMessage() != nil {
		t.Error("Clear left a message")
	}
}

func TestFlashWatchDoesNotBlock(t *testing.T) {
	f := NewFlashModel()
	for i := 0; i < 20; i++ {
		f.Infof("message %d", i)
	}

	select {
	case m := <-f.Watch():
		if m.Text != "message 0" {
			t.Errorf("first watched = %q", m.Text)
		}
	default:
		t.Fatal("nothing watched")
	}
	if got := f.Get(); got != "message 19" {
		t.Errorf("current = %q", got)
	}
}
