package chat

import "github.com/matheus3301/hirechat/internal/api"

// Fingerprint is a cheap change detector for a transcript: the message count
// and the last message's timestamp.
//
// It is a heuristic, not a content hash. Two transcripts with the same length
// and the same final createdAt compare equal even if earlier messages differ,
// and since the server reports createdAt at day granularity, an edit that
// keeps the count the same on the same day goes unnoticed until the next
// append. That gap is accepted: the server only ever appends.
type Fingerprint struct {
	Count         int
	LastCreatedAt string
}

// FingerprintOf computes the fingerprint of a transcript.
func FingerprintOf(msgs []api.Message) Fingerprint {
	fp := Fingerprint{Count: len(msgs)}
	if len(msgs) > 0 {
		fp.LastCreatedAt = msgs[len(msgs)-1].CreatedAt
	}
	return fp
}
