package store

import (
	"database/sql"
	"time"
)

// UpsertConversation inserts or updates a conversation. An empty title keeps
// the stored one; a zero OpenedAt keeps the stored open time.
func (db *DB) UpsertConversation(c *Conversation) error {
	now := time.Now().UnixMilli()
	_, err := db.Exec(`
		INSERT INTO conversations (surface, channel, key, title, opened_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(surface, channel, key) DO UPDATE SET
			title = COALESCE(NULLIF(excluded.title, ''), conversations.title),
			opened_at = MAX(excluded.opened_at, conversations.opened_at),
			updated_at = excluded.updated_at`,
		c.Surface, c.Channel, c.Key, c.Title, c.OpenedAt, now)
	return err
}

// ListConversations returns a surface's conversations, most recently opened
// first, then by title.
func (db *DB) ListConversations(surface string, limit int) ([]Conversation, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Query(`
		SELECT surface, channel, key, title, message_count, last_message_at,
			last_message_preview, opened_at, updated_at
		FROM conversations
		WHERE surface = ?
		ORDER BY opened_at DESC, title ASC, key ASC
		LIMIT ?`, surface, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var convs []Conversation
	for rows.Next() {
		var c Conversation
		if err := rows.Scan(&c.Surface, &c.Channel, &c.Key, &c.Title, &c.MessageCount,
			&c.LastMessageAt, &c.LastMessagePreview, &c.OpenedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		convs = append(convs, c)
	}
	return convs, rows.Err()
}

// GetConversation returns a single conversation, or nil if it is unknown.
func (db *DB) GetConversation(ref Ref) (*Conversation, error) {
	c := Conversation{Ref: ref}
	err := db.QueryRow(`
		SELECT title, message_count, last_message_at, last_message_preview, opened_at, updated_at
		FROM conversations
		WHERE surface = ? AND channel = ? AND key = ?`, ref.Surface, ref.Channel, ref.Key).
		Scan(&c.Title, &c.MessageCount, &c.LastMessageAt, &c.LastMessagePreview, &c.OpenedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
