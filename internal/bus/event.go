package bus

import "time"

// Event kinds. Subscribers filter by prefix,
// e.g. "chat." or "send.".
const (
	KindChatOpened   = "chat.opened"
	KindChatRendered = "chat.rendered"
	KindChatFailed   = "chat.fetch_failed"
	KindChatReleased = "chat.released"
	KindChatState    = "chat.state_changed"
	KindSendQueued   = "send.queued"
	KindSendAck      = "send.ack"
	KindSendFailed   = "send.failed"
	KindViewSwitched = "view.switched"
	KindCacheUpdated = "cache.updated"
)

// Event represents a domain event published on the bus.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}
