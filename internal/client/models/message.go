package models

import "time"

// MessageKind distinguishes the two entry types of a Q&A transcript.
type MessageKind string

const (
	KindQuestion MessageKind = "question"
	KindAnswer   MessageKind = "answer"
)

// Message is one entry of the Q&A transcript. The transcript is an
// append-only ordered sequence: every Ask produces exactly one question
// entry followed by exactly one answer (or fallback) entry.
type Message struct {
	ID        string      `json:"id"`
	Kind      MessageKind `json:"kind"`
	Text      string      `json:"text"`
	Sources   []string    `json:"sources,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}
