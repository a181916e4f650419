package models

import "time"

// Message is a single chat log entry. Seq is the server-assigned position in
// the log and defines ordering.
type Message struct {
	Seq       int64     `json:"-"`
	MessageID string    `json:"message_id"`
	Username  string    `json:"username"`
	Content   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
