package api

import "strings"

// Viewer and sender roles as the server spells them.
const (
	RoleAdmin    = "ADMIN"
	RoleEmployer = "EMPLOYER"
	RoleSeeker   = "JOB_SEEKER"
)

// Message is one chat record as returned by the dashboard message endpoints.
// Records are immutable once fetched and arrive oldest first.
type Message struct {
	SenderID        int64  `json:"senderId,omitempty"`
	SenderRole      string `json:"senderRole"`
	SenderFirstName string `json:"senderFirstName,omitempty"`
	SenderLastName  string `json:"senderLastName,omitempty"`
	Message         string `json:"message"`
	CreatedAt       string `json:"createdAt"`
}

// DisplayName joins the sender's first and last name. Empty when the server
// sent neither.
func (m Message) DisplayName() string {
	return strings.TrimSpace(m.SenderFirstName + " " + m.SenderLastName)
}

// sendRequest is the body of every POST to a message endpoint.
type sendRequest struct {
	Message string `json:"message"`
}
