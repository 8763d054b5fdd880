// Package ai implements the AI orchestration core: prompt construction,
// chat-completion transport, and response decoding for the assistant tasks.
package ai

import (
	"context"
)

// Message is one turn of a chat-completion conversation as it appears on the wire.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest describes a single chat-completion call.
type CompletionRequest struct {
	// System is the system prompt, always sent as the first message.
	System string
	// Messages is the user/assistant history, in send order. At least one
	// user message is required.
	Messages []Message
	// Temperature for the completion. Structured-extraction tasks run cooler
	// than generative ones.
	Temperature float64
	// MaxTokens caps the completion length. Zero means the client default.
	MaxTokens int
	// StructuredOutput asks the backend to constrain output to a single JSON
	// object. The expected shape is specified informally via the prompt; the
	// backend does not enforce a schema.
	StructuredOutput bool
}

// CompletionClient performs exactly one chat-completion round trip per call
// and returns the raw assistant message text. No retries, no caching, no
// streaming; the caller decides whether to retry or fall back.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
