package status

import (
	"testing"

	"github.com/matheus3301/hirechat/internal/bus"
)

func TestInitialState(t *testing.T) {
	m := NewMachine("support", nil)
	if m.Current() != Idle {
		t.Errorf("initial state = %s, want IDLE", m.Current())
	}
}

func TestValidTransitions(t *testing.T) {
	tests := []struct {
		from State
		to   State
	}{
		{Idle, Loading},
		{Idle, Cancelled},
		{Loading, Rendered},
		{Loading, Cancelled},
		{Rendered, Polling},
		{Polling, Rendered},
		{Polling, Cancelled},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			m := NewMachine("application:42", nil)
			walkTo(t, m, tt.from)
			if err := m.Transition(tt.to); err != nil {
				t.Errorf("Transition(%s -> %s) error = %v", tt.from, tt.to, err)
			}
			if m.Current() != tt.to {
				t.Errorf("state = %s, want %s", m.Current(), tt.to)
			}
		})
	}
}

func TestInvalidTransition(t *testing.T) {
	m := NewMachine("support", nil)
	if err := m.Transition(Polling); err == nil {
		t.Error("Transition(IDLE -> POLLING) should fail")
	}
	if m.Current() != Idle {
		t.Errorf("state = %s, want IDLE (unchanged)", m.Current())
	}
}

func TestCancelledIsTerminal(t *testing.T) {
	m := NewMachine("support", nil)
	walkTo(t, m, Polling)
	if err := m.Transition(Cancelled); err != nil {
		t.Fatal(err)
	}
	if !m.Done() {
		t.Error("Done() = false after Cancelled")
	}
	for _, s := range []State{Idle, Loading, Rendered, Polling} {
		if err := m.Transition(s); err == nil {
			t.Errorf("Transition(CANCELLED -> %s) should fail", s)
		}
	}
}

func TestTransitionEmitsEvent(t *testing.T) {
	b := bus.New()
	ch, unsub := b.Subscribe("chat.", 10)
	defer unsub()

	m := NewMachine("direct-user:7", b)
	if err := m.Transition(Loading); err != nil {
		t.Fatal(err)
	}

	evt := <-ch
	if evt.Kind != bus.KindChatState {
		t.Errorf("event kind = %q, want %s", evt.Kind, bus.KindChatState)
	}
	change, ok := evt.Payload.(StatusChange)
	if !ok {
		t.Fatalf("payload type = %T, want StatusChange", evt.Payload)
	}
	if change.Subject != "direct-user:7" || change.From != Idle || change.To != Loading {
		t.Errorf("change = %+v, want direct-user:7 IDLE -> LOADING", change)
	}
}

// TestPollCycleLoop walks the steady state: every tick re-enters Polling and
// returns to Rendered once the response is applied.
func TestPollCycleLoop(t *testing.T) {
	m := NewMachine("support", nil)
	walkTo(t, m, Rendered)

	for i := 0; i < 3; i++ {
		if err := m.Transition(Polling); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		if err := m.Transition(Rendered); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
}

// walkTo is a helper that transitions the machine to a target state.
func walkTo(t *testing.T, m *Machine, target State) {
	t.Helper()
	paths := map[State][]State{
		Idle:      {},
		Loading:   {Loading},
		Rendered:  {Loading, Rendered},
		Polling:   {Loading, Rendered, Polling},
		Cancelled: {Cancelled},
	}
	for _, s := range paths[target] {
		if err := m.Transition(s); err != nil {
			t.Fatalf("walkTo(%s): %v", target, err)
		}
	}
}
