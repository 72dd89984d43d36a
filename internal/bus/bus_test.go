package bus

import (
	"testing"
	"time"
)

func TestPublishSubscribe(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("chat.", 10)
	defer unsub()

	b.Publish(Event{Kind: KindChatRendered, Payload: "support"})

	select {
	case evt := <-ch:
		if evt.Kind != KindChatRendered {
			t.Errorf("got kind %q, want %s", evt.Kind, KindChatRendered)
		}
		if evt.Timestamp.IsZero() {
			t.Error("Publish did not stamp the event")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestNamespaceFiltering(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("send.", 10)
	defer unsub()

	b.Emit(KindChatOpened, nil)
	b.Emit(KindSendFailed, nil)

	select {
	case evt := <-ch:
		if evt.Kind != KindSendFailed {
			t.Errorf("got kind %q, want %s", evt.Kind, KindSendFailed)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}

	select {
	case evt := <-ch:
		t.Errorf("unexpected event: %v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("chat.", 10)
	unsub()

	b.Emit(KindChatOpened, nil)

	select {
	case evt := <-ch:
		t.Errorf("received event after unsubscribe: %v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDropOnFullBuffer(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("chat.", 1)
	defer unsub()

	b.Emit(KindChatOpened, "one")
	b.Emit(KindChatOpened, "two")

	evt := <-ch
	if evt.Payload != "one" {
		t.Errorf("got %v, want one", evt.Payload)
	}
}

func TestEmitOnNilBus(t *testing.T) {
	var b *Bus
	b.Emit(KindChatOpened, nil)
}
