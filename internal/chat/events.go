package chat

import (
	"time"

	"github.com/matheus3301/hirechat/internal/api"
)

// Bus payloads published by the controller.

// Opened is published when a conversation is opened.
type Opened struct {
	Surface      Surface
	Conversation Conversation
	Title        string
}

// Rendered is published when a poll cycle rendered a changed transcript.
type Rendered struct {
	Surface      Surface
	Conversation Conversation
	Messages     []api.Message
	At           time.Time
}

// FetchFailed is published when a poll cycle could not load the transcript.
type FetchFailed struct {
	Surface      Surface
	Conversation Conversation
	Err          error
}

// Released is published when a conversation's poll loop has exited.
type Released struct {
	Surface      Surface
	Conversation Conversation
}

// Attempt is one message send, as queued in the send log and published on
// the bus. Err is set on send.failed events.
type Attempt struct {
	ClientID     string
	Surface      Surface
	Conversation Conversation
	Text         string
	At           time.Time
	Err          error
}

// SendLog records send attempts. Implementations must be safe for concurrent
// use.
type SendLog interface {
	Queued(a Attempt) error
	Sent(clientID string) error
	Failed(clientID string, cause error) error
}
