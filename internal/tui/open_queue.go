package tui

import (
	"sync"

	"github.com/matheus3301/hirechat/internal/chat"
)

type openRequest struct {
	conv  chat.Conversation
	title string
	gen   uint64
}

// openQueue hands conversation opens from the UI goroutine to the open
// loop. Each push or navigation starts a new generation and requests from
// an older one are dropped, so a queued open never lands behind a view the
// user already left.
type openQueue struct {
	ch chan openRequest

	mu  sync.Mutex
	gen uint64
}

func newOpenQueue(size int) *openQueue {
	return &openQueue{ch: make(chan openRequest, size)}
}

// push queues conv, superseding anything queued before. It reports false
// when the queue is full.
func (q *openQueue) push(conv chat.Conversation, title string) bool {
	q.mu.Lock()
	q.gen++
	req := openRequest{conv: conv, title: title, gen: q.gen}
	q.mu.Unlock()

	select {
	case q.ch <- req:
		return true
	default:
		return false
	}
}

// invalidate drops queued requests. It waits for an open in progress, so
// once it returns any poll that open started can be released.
func (q *openQueue) invalidate() {
	q.mu.Lock()
	q.gen++
	q.mu.Unlock()
}

// run calls open for req unless it was superseded. open must not block.
func (q *openQueue) run(req openRequest, open func() error) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if req.gen != q.gen {
		return false, nil
	}
	return true, open()
}
