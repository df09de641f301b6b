package model

import "time"

// ChatMessage is one entry of the assistant transcript.
type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Message senders.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)
