package chat

import (
	"context"
	"sync"

	"github.com/matheus3301/hirechat/internal/api"
)

// fakeTransport serves a mutable transcript and records requests.
type fakeTransport struct {
	mu       sync.Mutex
	msgs     []api.Message
	fetchErr error
	postErr  error
	fetches  int
	posts    []string
	role     string

	// gate, when set, holds every fetch until it receives a value. The
	// fetch then returns its data whether or not ctx was cancelled, like a
	// response that was already on the wire.
	gate chan struct{}
}

func (f *fakeTransport) FetchMessages(ctx context.Context, path string) ([]api.Message, error) {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return append([]api.Message(nil), f.msgs...), nil
}

func (f *fakeTransport) PostMessage(ctx context.Context, path, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = append(f.posts, text)
	if f.postErr != nil {
		return f.postErr
	}
	f.msgs = append(f.msgs, api.Message{SenderRole: f.role, Message: text, CreatedAt: "2024-05-03"})
	return nil
}

func (f *fakeTransport) set(msgs []api.Message, err error) {
	f.mu.Lock()
	f.msgs, f.fetchErr = msgs, err
	f.mu.Unlock()
}

func (f *fakeTransport) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

func (f *fakeTransport) postCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.posts)
}

// fakePane records every call in order.
type fakePane struct {
	mu          sync.Mutex
	loading     []Conversation
	transcripts []Transcript
	errors      []string
	scrolls     int
	bottom      bool
}

func (p *fakePane) ShowLoading(conv Conversation, title string) {
	p.mu.Lock()
	p.loading = append(p.loading, conv)
	p.mu.Unlock()
}

func (p *fakePane) ShowTranscript(t Transcript) {
	p.mu.Lock()
	p.transcripts = append(p.transcripts, t)
	p.mu.Unlock()
}

func (p *fakePane) ShowError(text string) {
	p.mu.Lock()
	p.errors = append(p.errors, text)
	p.mu.Unlock()
}

func (p *fakePane) AtBottom() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bottom
}

func (p *fakePane) ScrollToEnd() {
	p.mu.Lock()
	p.scrolls++
	p.mu.Unlock()
}

func (p *fakePane) renders() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.transcripts)
}

func (p *fakePane) last() Transcript {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.transcripts) == 0 {
		return Transcript{}
	}
	return p.transcripts[len(p.transcripts)-1]
}

func (p *fakePane) errorCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.errors)
}

func (p *fakePane) scrollCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scrolls
}

type fakeComposer struct {
	mu     sync.Mutex
	bound  Conversation
	clears int
}

func (c *fakeComposer) Bind(conv Conversation) {
	c.mu.Lock()
	c.bound = conv
	c.mu.Unlock()
}

func (c *fakeComposer) Clear() {
	c.mu.Lock()
	c.clears++
	c.mu.Unlock()
}

func (c *fakeComposer) clearCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clears
}

// memSendLog keeps send attempts in memory.
type memSendLog struct {
	mu     sync.Mutex
	status map[string]string
}

func newMemSendLog() *memSendLog {
	return &memSendLog{status: make(map[string]string)}
}

func (l *memSendLog) Queued(a Attempt) error {
	l.mu.Lock()
	l.status[a.ClientID] = "queued"
	l.mu.Unlock()
	return nil
}

func (l *memSendLog) Sent(id string) error {
	l.mu.Lock()
	l.status[id] = "sent"
	l.mu.Unlock()
	return nil
}

func (l *memSendLog) Failed(id string, _ error) error {
	l.mu.Lock()
	l.status[id] = "failed"
	l.mu.Unlock()
	return nil
}

func (l *memSendLog) statuses() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, s := range l.status {
		out = append(out, s)
	}
	return out
}
