package chat

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/matheus3301/hirechat/internal/api"
	"github.com/matheus3301/hirechat/internal/bus"
	"github.com/matheus3301/hirechat/internal/status"
	"go.uber.org/zap"
)

// DefaultInterval is the time between poll cycles.
const DefaultInterval = 5 * time.Second

var (
	// ErrEmptyMessage is returned by Send for blank input. No request is made.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrNoConversation is returned by Send when nothing is open.
	ErrNoConversation = errors.New("no conversation open")
)

// Transport is the subset of the API client the controller needs.
type Transport interface {
	FetchMessages(ctx context.Context, path string) ([]api.Message, error)
	PostMessage(ctx context.Context, path, text string) error
}

// Pane displays a transcript. Calls come from poll goroutines and from Send;
// implementations marshal onto their UI thread themselves.
type Pane interface {
	ShowLoading(conv Conversation, title string)
	ShowTranscript(t Transcript)
	ShowError(text string)
	// AtBottom reports whether the viewer is scrolled to the end.
	AtBottom() bool
	ScrollToEnd()
}

// Composer is the input field bound to the open conversation.
type Composer interface {
	Bind(conv Conversation)
	Clear()
}

// Options configures a Controller. Client, Poller and Pane are required.
type Options struct {
	Surface  Surface
	Interval time.Duration
	Client   Transport
	Poller   *Poller
	Pane     Pane
	Composer Composer
	SendLog  SendLog
	Bus      *bus.Bus
	Metrics  *Metrics
	Logger   *zap.Logger
}

// Controller runs the open conversation of one client session: it polls the
// transcript into the pane and sends messages optimistically.
type Controller struct {
	surface  Surface
	interval time.Duration
	client   Transport
	poller   *Poller
	pane     Pane
	composer Composer
	sendLog  SendLog
	bus      *bus.Bus
	metrics  *Metrics
	logger   *zap.Logger

	mu      sync.Mutex
	session *session
}

// session is the state of one opened conversation. Everything below machine
// is guarded by Controller.mu.
type session struct {
	route   Route
	title   string
	machine *status.Machine

	handle   *PollHandle
	renderer *Renderer
	known    Transcript // last transcript confirmed by the server
	pending  []Bubble   // optimistic sends awaiting a response
	seq      uint64     // cycles started
	applied  uint64     // newest cycle whose result was applied
}

// NewController creates a controller for one surface.
func NewController(opts Options) *Controller {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	composer := opts.Composer
	if composer == nil {
		composer = nopComposer{}
	}
	return &Controller{
		surface:  opts.Surface,
		interval: interval,
		client:   opts.Client,
		poller:   opts.Poller,
		pane:     opts.Pane,
		composer: composer,
		sendLog:  opts.SendLog,
		bus:      opts.Bus,
		metrics:  opts.Metrics,
		logger:   logger.Named("chat"),
	}
}

// Surface returns the dashboard this controller serves.
func (c *Controller) Surface() Surface { return c.surface }

// Open releases the active poll, shows a loading placeholder, binds the
// composer to conv, and starts polling: one cycle now, then one every
// interval until the poll is released or ctx ends.
func (c *Controller) Open(ctx context.Context, conv Conversation, title string) error {
	route, err := RouteFor(c.surface, conv)
	if err != nil {
		return err
	}
	if title == "" {
		title = conv.String()
	}

	c.poller.Release()

	s := &session{
		route:    route,
		title:    title,
		machine:  status.NewMachine(conv.String(), c.bus),
		renderer: NewRenderer(route),
		known:    Placeholder(LoadingText),
	}

	c.mu.Lock()
	c.session = s
	c.pane.ShowLoading(conv, title)
	c.composer.Bind(conv)
	c.mu.Unlock()

	_ = s.machine.Transition(status.Loading)
	c.bus.Emit(bus.KindChatOpened, Opened{Surface: c.surface, Conversation: conv, Title: title})
	c.logger.Info("conversation opened", zap.Stringer("conversation", conv), zap.String("fetch", route.FetchPath))

	c.metrics.pollStarted()
	h := c.poller.Start(ctx, c.interval, func(ctx context.Context) {
		c.cycle(ctx, s)
	})
	c.mu.Lock()
	s.handle = h
	c.mu.Unlock()
	go c.watch(s, h)
	return nil
}

// watch marks the session cancelled once its poll loop exits.
func (c *Controller) watch(s *session, h *PollHandle) {
	<-h.Done()
	c.metrics.pollStopped()
	_ = s.machine.Transition(status.Cancelled)
	c.bus.Emit(bus.KindChatReleased, Released{Surface: c.surface, Conversation: s.route.Conversation})
	c.logger.Debug("poll released", zap.Stringer("conversation", s.route.Conversation), zap.Uint64("handle", h.ID()))
}

// Close releases the active poll.
func (c *Controller) Close() {
	c.poller.Release()
}

// Current returns the open conversation.
func (c *Controller) Current() (Conversation, string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return Conversation{}, "", false
	}
	return c.session.route.Conversation, c.session.title, true
}

// State returns the lifecycle state of the open conversation.
func (c *Controller) State() status.State {
	c.mu.Lock()
	s := c.session
	c.mu.Unlock()
	if s == nil {
		return status.Idle
	}
	return s.machine.Current()
}

// cycle fetches the transcript and applies it unless ctx was cancelled or a
// newer cycle already landed.
func (c *Controller) cycle(ctx context.Context, s *session) {
	c.mu.Lock()
	s.seq++
	seq := s.seq
	c.mu.Unlock()
	if s.machine.Current() == status.Rendered {
		_ = s.machine.Transition(status.Polling)
	}

	msgs, err := c.client.FetchMessages(ctx, s.route.FetchPath)

	c.mu.Lock()
	defer c.mu.Unlock()
	if ctx.Err() != nil || c.session != s || seq < s.applied {
		c.metrics.poll(s.route, pollDropped)
		return
	}
	s.applied = seq
	defer func() { _ = s.machine.Transition(status.Rendered) }()

	if err != nil {
		c.logger.Warn("fetch messages failed",
			zap.Stringer("conversation", s.route.Conversation),
			zap.String("path", s.route.FetchPath),
			zap.Error(err),
		)
		s.renderer.Reset()
		s.known = Placeholder(ErrorText)
		c.pane.ShowError(ErrorText)
		c.metrics.poll(s.route, pollFailed)
		c.bus.Emit(bus.KindChatFailed, FetchFailed{Surface: c.surface, Conversation: s.route.Conversation, Err: err})
		return
	}

	t, changed := s.renderer.Render(msgs)
	if !changed {
		c.metrics.poll(s.route, pollUnchanged)
		return
	}
	s.known = t
	c.show(s, false)
	c.metrics.poll(s.route, pollRendered)
	c.bus.Emit(bus.KindChatRendered, Rendered{
		Surface:      c.surface,
		Conversation: s.route.Conversation,
		Messages:     msgs,
		At:           time.Now(),
	})
}

// show redraws the known transcript plus pending bubbles. The pane is
// scrolled to the end if it was there before, or when forced.
func (c *Controller) show(s *session, forceEnd bool) {
	atBottom := c.pane.AtBottom()
	c.pane.ShowTranscript(s.known.withPending(s.pending))
	if atBottom || forceEnd {
		c.pane.ScrollToEnd()
	}
}

// Send posts text to the open conversation. A pending bubble is shown until
// the server answers. On success the composer is cleared and the transcript
// re-fetched; on failure the bubble is rolled back, the composer keeps its
// text, and the error is returned for the caller to alert on.
func (c *Controller) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}

	c.mu.Lock()
	s := c.session
	if s == nil {
		c.mu.Unlock()
		return ErrNoConversation
	}
	attempt := Attempt{
		ClientID:     uuid.NewString(),
		Surface:      c.surface,
		Conversation: s.route.Conversation,
		Text:         text,
		At:           time.Now(),
	}
	s.pending = append(s.pending, Bubble{
		Sent:    true,
		Text:    cleanText(text),
		Time:    SendingTime,
		Pending: true,
		LocalID: attempt.ClientID,
	})
	c.show(s, true)
	c.mu.Unlock()

	c.record(func(l SendLog) error { return l.Queued(attempt) })
	c.bus.Emit(bus.KindSendQueued, attempt)

	err := c.client.PostMessage(ctx, s.route.PostPath, text)
	c.metrics.send(s.route, err)

	c.mu.Lock()
	s.pending = slices.DeleteFunc(s.pending, func(b Bubble) bool { return b.LocalID == attempt.ClientID })
	current := c.session == s
	if err != nil {
		if current {
			c.show(s, false)
		}
		c.mu.Unlock()

		c.logger.Warn("send failed",
			zap.String("client_msg_id", attempt.ClientID),
			zap.Stringer("conversation", attempt.Conversation),
			zap.Error(err),
		)
		c.record(func(l SendLog) error { return l.Failed(attempt.ClientID, err) })
		attempt.Err = err
		c.bus.Emit(bus.KindSendFailed, attempt)
		return fmt.Errorf("send message: %w", err)
	}
	h := s.handle
	if current {
		s.renderer.Reset()
		c.composer.Clear()
	}
	c.mu.Unlock()

	c.logger.Info("message sent", zap.String("client_msg_id", attempt.ClientID), zap.Stringer("conversation", attempt.Conversation))
	c.record(func(l SendLog) error { return l.Sent(attempt.ClientID) })
	c.bus.Emit(bus.KindSendAck, attempt)

	if current && h != nil && !h.Cancelled() {
		c.cycle(h.Context(), s)
	}
	return nil
}

// Refresh forces an immediate re-fetch of the open conversation.
func (c *Controller) Refresh() {
	c.mu.Lock()
	s := c.session
	var h *PollHandle
	if s != nil {
		s.renderer.Reset()
		h = s.handle
	}
	c.mu.Unlock()
	if h != nil && !h.Cancelled() {
		c.cycle(h.Context(), s)
	}
}

func (c *Controller) record(fn func(SendLog) error) {
	if c.sendLog == nil {
		return
	}
	if err := fn(c.sendLog); err != nil {
		c.logger.Error("failed to record send attempt", zap.Error(err))
	}
}

type nopComposer struct{}

func (nopComposer) Bind(Conversation) {}
func (nopComposer) Clear()            {}
