package entity

import "time"

// Message is one exchange in an assistant conversation: the user's text and
// the assistant's reply (which may be an inline error message).
type Message struct {
	ID        string
	UserID    int64
	Username  string
	Text      string
	Response  string
	Timestamp time.Time
}

// ChatContext is the retained conversation window for one user.
type ChatContext struct {
	UserID   int64
	Messages []Message
	LastUsed time.Time
}
