package model

import "time"

// Chat roles as they appear on the completion API wire.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of a conversation. Assistant turns that propose a
// category for a transaction additionally carry a suggestion payload the UI
// renders as Apply/Skip actions.
type ChatMessage struct {
	Timestamp          time.Time
	ID                 string
	ConversationID     string
	Role               string
	Content            string
	SuggestedCategory  string
	TransactionID      string
	CategoryConfidence float64
}

// HasSuggestion reports whether the message carries a categorization suggestion payload.
func (m *ChatMessage) HasSuggestion() bool {
	return m.SuggestedCategory != ""
}

// IsUser reports whether the message was authored by the user.
func (m *ChatMessage) IsUser() bool {
	return m.Role == RoleUser
}
