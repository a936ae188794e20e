package models

import "time"

type QuickAction struct {
	Label  string `json:"label"`
	Action string `json:"action"`
}

// ChatMessage is append-only; history can only be cleared as a whole.
type ChatMessage struct {
	ID           string        `json:"id"`
	Text         string        `json:"text"`
	IsUser       bool          `json:"isUser"`
	Timestamp    time.Time     `json:"timestamp"`
	QuickActions []QuickAction `json:"quickActions,omitempty"`
	Emotion      string        `json:"emotion,omitempty"`
	Emoji        string        `json:"emoji,omitempty"`
	Color        string        `json:"color,omitempty"`
}
