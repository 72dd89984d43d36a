package outbox

import (
	"fmt"

	"github.com/matheus3301/hirechat/internal/chat"
	"github.com/matheus3301/hirechat/internal/store"
	"go.uber.org/zap"
)

// Log records every send attempt in the local cache so failures can be
// listed later. Sends are never retried automatically.
type Log struct {
	db     *store.DB
	logger *zap.Logger
}

var _ chat.SendLog = (*Log)(nil)

// NewLog creates a send log backed by the store.
func NewLog(db *store.DB, logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{db: db, logger: logger.Named("outbox")}
}

// Queued records a new attempt.
func (l *Log) Queued(a chat.Attempt) error {
	if err := l.db.QueueOutbox(&store.OutboxEntry{
		ClientMsgID: a.ClientID,
		Ref: store.Ref{
			Surface: string(a.Surface),
			Channel: string(a.Conversation.Channel),
			Key:     a.Conversation.Key,
		},
		Body: a.Text,
	}); err != nil {
		return fmt.Errorf("queue %s: %w", a.ClientID, err)
	}
	return nil
}

// Sent marks an attempt acknowledged by the server.
func (l *Log) Sent(clientID string) error {
	if err := l.db.MarkOutboxSent(clientID); err != nil {
		return fmt.Errorf("mark %s sent: %w", clientID, err)
	}
	return nil
}

// Failed marks an attempt rejected or undelivered.
func (l *Log) Failed(clientID string, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	if err := l.db.MarkOutboxFailed(clientID, msg); err != nil {
		return fmt.Errorf("mark %s failed: %w", clientID, err)
	}
	l.logger.Info("send recorded as failed", zap.String("client_msg_id", clientID), zap.String("error", msg))
	return nil
}

// Failures lists failed attempts, newest first.
func (l *Log) Failures(limit int) ([]store.OutboxEntry, error) {
	return l.db.ListOutbox(store.OutboxFailed, limit)
}

// All lists every attempt, newest first.
func (l *Log) All(limit int) ([]store.OutboxEntry, error) {
	return l.db.ListOutbox("", limit)
}
