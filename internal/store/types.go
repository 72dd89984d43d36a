package store

// Ref identifies a conversation in the cache. Key is empty for support
// threads.
type Ref struct {
	Surface string
	Channel string
	Key     string
}

// Conversation is a conversation the client has been configured with or has
// opened, with a summary of its last cached transcript.
type Conversation struct {
	Ref
	Title              string
	MessageCount       int
	LastMessageAt      string
	LastMessagePreview string
	OpenedAt           int64
	UpdatedAt          int64
}

// Message is one message of a cached transcript. Seq is its position in the
// server's ordering, starting at 0.
type Message struct {
	Ref
	ID         int64
	Seq        int
	SenderID   int64
	SenderRole string
	SenderName string
	Body       string
	CreatedAt  string
}

// Outbox statuses.
const (
	OutboxQueued = "queued"
	OutboxSent   = "sent"
	OutboxFailed = "failed"
)

// OutboxEntry records one send attempt.
type OutboxEntry struct {
	Ref
	ID           int64
	ClientMsgID  string
	Body         string
	Status       string
	ErrorMessage string
	CreatedAt    int64
	UpdatedAt    int64
}

// SearchResult holds a message with a search snippet.
type SearchResult struct {
	Message Message
	Snippet string
}
