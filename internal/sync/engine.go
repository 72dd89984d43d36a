package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/matheus3301/hirechat/internal/api"
	"github.com/matheus3301/hirechat/internal/bus"
	"github.com/matheus3301/hirechat/internal/chat"
	"github.com/matheus3301/hirechat/internal/store"
	"go.uber.org/zap"
)

// Engine mirrors what the chat core shows into the local cache. It
// subscribes to "chat." events on the bus: opened conversations are
// remembered, rendered transcripts are snapshotted.
type Engine struct {
	db     *store.DB
	bus    *bus.Bus
	logger *zap.Logger
	cancel context.CancelFunc
	done   chan struct{}
}

// CacheUpdated is the payload of a cache.updated event. Messages is the
// length of the stored transcript, 0 when only the conversation entry changed.
type CacheUpdated struct {
	Ref      store.Ref
	Messages int
}

// NewEngine creates a new sync engine.
func NewEngine(db *store.DB, b *bus.Bus, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		db:     db,
		bus:    b,
		logger: logger.Named("sync"),
	}
}

// Start subscribes to chat events on the bus.
func (e *Engine) Start(ctx context.Context) {
	ctx, e.cancel = context.WithCancel(ctx)
	e.done = make(chan struct{})
	ch, unsub := e.bus.Subscribe("chat.", 256)

	go func() {
		defer close(e.done)
		defer unsub()
		for {
			select {
			case evt := <-ch:
				e.handleEvent(evt)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the engine and waits for the event loop to exit.
func (e *Engine) Stop() {
	if e.cancel != nil {
		e.cancel()
		<-e.done
	}
}

// Running reports whether the event loop is live.
func (e *Engine) Running() bool {
	if e.done == nil {
		return false
	}
	select {
	case <-e.done:
		return false
	default:
		return true
	}
}

func (e *Engine) handleEvent(evt bus.Event) {
	switch p := evt.Payload.(type) {
	case chat.Opened:
		if err := e.RememberConversation(p.Surface, p.Conversation, p.Title, evt.Timestamp); err != nil {
			e.logger.Error("failed to remember conversation", zap.Error(err), zap.Stringer("conversation", p.Conversation))
		}
	case chat.Rendered:
		if err := e.StoreTranscript(p.Surface, p.Conversation, p.Messages); err != nil {
			e.logger.Error("failed to cache transcript", zap.Error(err), zap.Stringer("conversation", p.Conversation))
		}
	}
}

// RememberConversation records that a conversation was opened.
func (e *Engine) RememberConversation(s chat.Surface, conv chat.Conversation, title string, at time.Time) error {
	if at.IsZero() {
		at = time.Now()
	}
	// The controller falls back to the conversation id as title; don't let
	// that overwrite a configured one.
	if title == conv.String() {
		title = ""
	}
	ref := RefOf(s, conv)
	if err := e.db.UpsertConversation(&store.Conversation{
		Ref:      ref,
		Title:    title,
		OpenedAt: at.UnixMilli(),
	}); err != nil {
		return fmt.Errorf("upsert conversation: %w", err)
	}
	e.bus.Emit(bus.KindCacheUpdated, CacheUpdated{Ref: ref})
	return nil
}

// StoreTranscript replaces the cached snapshot of a conversation.
func (e *Engine) StoreTranscript(s chat.Surface, conv chat.Conversation, msgs []api.Message) error {
	ref := RefOf(s, conv)
	rows := make([]store.Message, len(msgs))
	for i, m := range msgs {
		rows[i] = store.Message{
			SenderID:   m.SenderID,
			SenderRole: m.SenderRole,
			SenderName: m.DisplayName(),
			Body:       m.Message,
			CreatedAt:  m.CreatedAt,
		}
	}
	if err := e.db.ReplaceTranscript(ref, rows); err != nil {
		return fmt.Errorf("replace transcript: %w", err)
	}

	e.logger.Debug("transcript cached", zap.Stringer("conversation", conv), zap.Int("messages", len(msgs)))
	e.bus.Emit(bus.KindCacheUpdated, CacheUpdated{Ref: ref, Messages: len(msgs)})
	return nil
}

// RefOf maps a conversation to its cache key.
func RefOf(s chat.Surface, conv chat.Conversation) store.Ref {
	return store.Ref{Surface: string(s), Channel: string(conv.Channel), Key: conv.Key}
}

// MessagesOf converts a cached transcript back into API records, e.g. to
// render it offline.
func MessagesOf(rows []store.Message) []api.Message {
	msgs := make([]api.Message, len(rows))
	for i, r := range rows {
		msgs[i] = api.Message{
			SenderID:        r.SenderID,
			SenderRole:      r.SenderRole,
			SenderFirstName: r.SenderName,
			Message:         r.Body,
			CreatedAt:       r.CreatedAt,
		}
	}
	return msgs
}
