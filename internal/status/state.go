package status

import (
	"fmt"
	"slices"
	"sync"

	"github.com/matheus3301/hirechat/internal/bus"
)

// State represents the lifecycle of one open conversation.
type State string

const (
	Idle      State = "IDLE"
	Loading   State = "LOADING"
	Rendered  State = "RENDERED"
	Polling   State = "POLLING"
	Cancelled State = "CANCELLED"
)

// validTransitions defines allowed state transitions. Cancelled is terminal:
// switching conversations abandons the machine and starts a new one.
var validTransitions = map[State][]State{
	Idle:      {Loading, Cancelled},
	Loading:   {Rendered, Cancelled},
	Rendered:  {Polling, Cancelled},
	Polling:   {Rendered, Cancelled},
	Cancelled: {},
}

// Machine tracks and enforces conversation state transitions.
type Machine struct {
	mu      sync.RWMutex
	current State
	subject string
	bus     *bus.Bus
}

// NewMachine creates a new state machine in the Idle state. subject names the
// conversation in published events.
func NewMachine(subject string, b *bus.Bus) *Machine {
	return &Machine{
		current: Idle,
		subject: subject,
		bus:     b,
	}
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Transition attempts to move to a new state. Returns error if transition is invalid.
func (m *Machine) Transition(to State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !slices.Contains(validTransitions[m.current], to) {
		return fmt.Errorf("invalid transition from %s to %s", m.current, to)
	}
	from := m.current
	m.current = to
	m.bus.Emit(bus.KindChatState, StatusChange{Subject: m.subject, From: from, To: to})
	return nil
}

// Done reports whether the machine reached its terminal state.
func (m *Machine) Done() bool {
	return m.Current() == Cancelled
}

// StatusChange is the payload for state change events.
type StatusChange struct {
	Subject string
	From    State
	To      State
}
