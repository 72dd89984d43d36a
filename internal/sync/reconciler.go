package sync

import (
	"fmt"

	"github.com/matheus3301/hirechat/internal/chat"
	"github.com/matheus3301/hirechat/internal/config"
	"github.com/matheus3301/hirechat/internal/store"
	"go.uber.org/zap"
)

// Reconciler brings the cached conversation list in line with the profile's
// configured conversations. The server renders its conversation lists into
// HTML pages, so configured entries are the only list the client can trust
// before anything was opened.
type Reconciler struct {
	db     *store.DB
	logger *zap.Logger
}

// NewReconciler creates a new reconciler.
func NewReconciler(db *store.DB, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{db: db, logger: logger}
}

// Seed upserts configured conversations for a surface. Entries the surface
// cannot open are skipped with a warning. Returns how many were stored.
func (r *Reconciler) Seed(s chat.Surface, convs []config.Conversation) (int, error) {
	n := 0
	for _, c := range convs {
		conv, err := chat.ParseConversation(c.Channel, c.Key)
		if err == nil {
			_, err = chat.RouteFor(s, conv)
		}
		if err != nil {
			r.logger.Warn("skipping configured conversation", zap.String("channel", c.Channel), zap.String("key", c.Key), zap.Error(err))
			continue
		}
		if err := r.db.UpsertConversation(&store.Conversation{Ref: RefOf(s, conv), Title: c.Title}); err != nil {
			return n, fmt.Errorf("seed %s: %w", conv, err)
		}
		n++
	}
	return n, nil
}

// Known lists the cached conversations of a surface as chat conversations,
// paired with their stored summary.
func (r *Reconciler) Known(s chat.Surface, limit int) ([]Known, error) {
	rows, err := r.db.ListConversations(string(s), limit)
	if err != nil {
		return nil, err
	}
	out := make([]Known, 0, len(rows))
	for _, row := range rows {
		conv, err := chat.ParseConversation(row.Channel, row.Key)
		if err != nil {
			r.logger.Warn("ignoring malformed cached conversation", zap.String("channel", row.Channel), zap.String("key", row.Key), zap.Error(err))
			continue
		}
		out = append(out, Known{Conversation: conv, Summary: row})
	}
	return out, nil
}

// Known is a cached conversation.
type Known struct {
	Conversation chat.Conversation
	Summary      store.Conversation
}

// Title returns the configured or remembered title, or the conversation id.
func (k Known) Title() string {
	if k.Summary.Title != "" {
		return k.Summary.Title
	}
	return k.Conversation.String()
}
