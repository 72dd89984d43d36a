package store

import "strings"

const snippetRadius = 32

// SearchMessages finds cached messages of a surface whose body contains
// query, case-insensitively for ASCII. Newest conversations' hits come first.
func (db *DB) SearchMessages(surface, query string, limit int) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.Query(`
		SELECT m.id, m.surface, m.channel, m.key, m.seq, m.sender_id, m.sender_role,
		       m.sender_name, m.body, m.created_at
		FROM messages m
		JOIN conversations c ON c.surface = m.surface AND c.channel = m.channel AND c.key = m.key
		WHERE m.surface = ? AND m.body LIKE ? ESCAPE '\'
		ORDER BY c.opened_at DESC, m.seq DESC
		LIMIT ?`, surface, "%"+escapeLike(query)+"%", limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		m := &r.Message
		if err := rows.Scan(&m.ID, &m.Surface, &m.Channel, &m.Key, &m.Seq, &m.SenderID,
			&m.SenderRole, &m.SenderName, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		r.Snippet = snippet(m.Body, query)
		results = append(results, r)
	}
	return results, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// snippet marks the first match of query in body with << >> and trims the
// surrounding text.
func snippet(body, query string) string {
	i := -1
	if lower := strings.ToLower(body); len(lower) == len(body) {
		i = strings.Index(lower, strings.ToLower(query))
	} else {
		i = strings.Index(body, query)
	}
	if i < 0 {
		return truncate(body, 2*snippetRadius)
	}
	start, end := i-snippetRadius, i+len(query)+snippetRadius
	prefix, suffix := "...", "..."
	if start <= 0 {
		start, prefix = 0, ""
	}
	if end >= len(body) {
		end, suffix = len(body), ""
	}
	// Keep cuts on rune boundaries.
	for start > 0 && !isRuneStart(body[start]) {
		start--
	}
	for end < len(body) && !isRuneStart(body[end]) {
		end++
	}
	return prefix + body[start:i] + "<<" + body[i:i+len(query)] + ">>" + body[i+len(query):end] + suffix
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }
