package chat

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// CycleFunc is one fetch-and-render pass. ctx is the owning handle's
// cancellation token; a cycle must check it before mutating anything.
type CycleFunc func(ctx context.Context)

// Poller owns the single active poll of a client session. Starting a new
// poll releases the previous one first, so at most one handle is live at a
// time. The zero value is not usable; call NewPoller.
type Poller struct {
	mu      sync.Mutex
	active  *PollHandle
	nextID  uint64
	running atomic.Int64
}

// NewPoller creates a poller with no active handle.
func NewPoller() *Poller {
	return &Poller{}
}

// PollHandle is one running poll loop.
type PollHandle struct {
	id     uint64
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// Start releases the active handle, then runs cycle once immediately and
// again every interval on a new goroutine until the handle is released or
// parent is cancelled.
func (p *Poller) Start(parent context.Context, interval time.Duration, cycle CycleFunc) *PollHandle {
	ctx, cancel := context.WithCancel(parent)

	p.mu.Lock()
	if p.active != nil {
		p.active.cancel()
	}
	p.nextID++
	h := &PollHandle{
		id:     p.nextID,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	p.active = h
	p.mu.Unlock()

	p.running.Add(1)
	go p.loop(h, interval, cycle)
	return h
}

func (p *Poller) loop(h *PollHandle, interval time.Duration, cycle CycleFunc) {
	defer close(h.done)
	defer p.running.Add(-1)
	defer p.forget(h)

	cycle(h.ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if h.ctx.Err() != nil {
				return
			}
			cycle(h.ctx)
		case <-h.ctx.Done():
			return
		}
	}
}

// forget clears the active slot if it still holds h, e.g. when the parent
// context ended the loop rather than Release.
func (p *Poller) forget(h *PollHandle) {
	p.mu.Lock()
	if p.active == h {
		p.active = nil
	}
	p.mu.Unlock()
	h.cancel()
}

// Release cancels the active handle, if any. In-flight fetches of the
// released handle are aborted through its context.
func (p *Poller) Release() {
	p.mu.Lock()
	h := p.active
	p.active = nil
	p.mu.Unlock()
	if h != nil {
		h.cancel()
	}
}

// Active returns the live handle, or nil.
func (p *Poller) Active() *PollHandle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Running reports how many poll goroutines have not exited yet. A released
// loop keeps counting until its in-flight cycle returns.
func (p *Poller) Running() int {
	return int(p.running.Load())
}

// ID is a per-poller sequence number, useful in logs.
func (h *PollHandle) ID() uint64 { return h.id }

// Context returns the handle's cancellation token.
func (h *PollHandle) Context() context.Context { return h.ctx }

// Cancelled reports whether the handle was released.
func (h *PollHandle) Cancelled() bool { return h.ctx.Err() != nil }

// Done is closed once the poll goroutine has exited.
func (h *PollHandle) Done() <-chan struct{} { return h.done }
