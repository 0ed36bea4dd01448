package core

import "time"

const (
	AppName          = "PastCast"
	AppUserAgent     = "PastCast-Bot/0.1 (+https://github.com/sandevgo/pastcast)"
	AppRepositoryURL = "https://github.com/sandevgo/pastcast"
	AppVersion       = "0.1.0"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Fixed replies shared by the chat paths.
const (
	EmptyMessageReply = "Please enter a message."
	ApologyReply      = "I'm sorry, I couldn't generate a response just now."
	HistoryClearedMsg = "Chat memory cleared."
)

// Turn is one persisted message of a conversation. Turns are append-only.
type Turn struct {
	ID        int64     `json:"id,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"timestamp"`
}
