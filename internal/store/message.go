package store

import (
	"fmt"
	"time"
)

const previewLen = 80

// ReplaceTranscript stores msgs as the conversation's cached transcript,
// replacing the previous snapshot, and refreshes the conversation summary.
// The server only ever returns whole transcripts, so the cache does too.
func (db *DB) ReplaceTranscript(ref Ref, msgs []Message) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM messages WHERE surface = ? AND channel = ? AND key = ?`,
		ref.Surface, ref.Channel, ref.Key); err != nil {
		return fmt.Errorf("clear transcript: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO messages (surface, channel, key, seq, sender_id, sender_role, sender_name, body, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, m := range msgs {
		if _, err := stmt.Exec(ref.Surface, ref.Channel, ref.Key, i,
			m.SenderID, m.SenderRole, m.SenderName, m.Body, m.CreatedAt); err != nil {
			return fmt.Errorf("insert message %d: %w", i, err)
		}
	}

	var lastAt, preview string
	if n := len(msgs); n > 0 {
		lastAt = msgs[n-1].CreatedAt
		preview = truncate(msgs[n-1].Body, previewLen)
	}
	now := time.Now().UnixMilli()
	if _, err := tx.Exec(`
		INSERT INTO conversations (surface, channel, key, message_count, last_message_at, last_message_preview, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(surface, channel, key) DO UPDATE SET
			message_count = excluded.message_count,
			last_message_at = excluded.last_message_at,
			last_message_preview = excluded.last_message_preview,
			updated_at = excluded.updated_at`,
		ref.Surface, ref.Channel, ref.Key, len(msgs), lastAt, preview, now); err != nil {
		return fmt.Errorf("update summary: %w", err)
	}

	return tx.Commit()
}

// ListMessages returns the last limit messages of a cached transcript in
// server order.
func (db *DB) ListMessages(ref Ref, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := db.Query(`
		SELECT id, seq, sender_id, sender_role, sender_name, body, created_at
		FROM (
			SELECT * FROM messages
			WHERE surface = ? AND channel = ? AND key = ?
			ORDER BY seq DESC
			LIMIT ?
		)
		ORDER BY seq ASC`, ref.Surface, ref.Channel, ref.Key, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var msgs []Message
	for rows.Next() {
		m := Message{Ref: ref}
		if err := rows.Scan(&m.ID, &m.Seq, &m.SenderID, &m.SenderRole, &m.SenderName, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
