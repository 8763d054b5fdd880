package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/futureself/internal/model"
)

// SaveMessage appends a chat message to a conversation's history.
// Transient turns (categorization suggestion cards) are never persisted;
// the router only saves user and plain assistant turns.
func (s *SQLiteStorage) SaveMessage(ctx context.Context, msg *model.ChatMessage) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if msg == nil {
		return fmt.Errorf("message must not be nil")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_messages (id, conversation_id, role, content, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, msg.ID, msg.ConversationID, msg.Role, msg.Content, msg.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}

	return nil
}

// GetMessages returns a conversation's messages in send order.
func (s *SQLiteStorage) GetMessages(ctx context.Context, conversationID string) ([]model.ChatMessage, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, conversation_id, role, content, timestamp
		FROM chat_messages
		WHERE conversation_id = ?
		ORDER BY timestamp ASC
	`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var messages []model.ChatMessage
	for rows.Next() {
		var m model.ChatMessage
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}
