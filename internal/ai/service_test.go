package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/futureself/internal/model"
)

func TestServiceParseTransaction(t *testing.T) {
	mock := NewMockClient()
	svc := NewService(mock, nil)

	parsed, err := svc.ParseTransaction(context.Background(), "spent $12.50 on coffee")
	require.NoError(t, err)
	assert.Equal(t, "Coffee", parsed.Description)
	assert.InDelta(t, 12.50, parsed.Amount, 0.001)

	call := mock.LastCall()
	require.NotNil(t, call)
	assert.True(t, call.StructuredOutput)
	require.Len(t, call.Messages, 1)
	assert.Contains(t, call.Messages[0].Content, `"spent $12.50 on coffee"`)
}

func TestServiceParseTransactionDecodeFailure(t *testing.T) {
	mock := NewMockClient()
	mock.Enqueue("definitely not json")
	svc := NewService(mock, nil)

	_, err := svc.ParseTransaction(context.Background(), "spent $5")
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrKindDecode))
}

func TestServiceCategorize(t *testing.T) {
	mock := NewMockClient()
	svc := NewService(mock, nil)

	suggestion, err := svc.Categorize(context.Background(), "Whole Foods", 82.40)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", suggestion.Category)
	assert.InDelta(t, 0.95, suggestion.Confidence, 0.001)

	call := mock.LastCall()
	require.NotNil(t, call)
	assert.Contains(t, call.Messages[0].Content, "Categorize: 'Whole Foods' for $82.40")
}

func TestServiceChatSendsHistory(t *testing.T) {
	mock := NewMockClient()
	svc := NewService(mock, nil)

	history := []model.ChatMessage{
		{Role: model.RoleUser, Content: "how am I doing?"},
		{Role: model.RoleAssistant, Content: "Pretty well!"},
		{Role: model.RoleUser, Content: "anything to improve?"},
	}

	reply, err := svc.Chat(context.Background(), history, model.FinancialContext{
		BudgetStatus: model.BudgetStatusUnknown,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, reply)

	call := mock.LastCall()
	require.NotNil(t, call)
	require.Len(t, call.Messages, 3, "full history goes on the wire")
	assert.Equal(t, "how am I doing?", call.Messages[0].Content)
	assert.Equal(t, model.RoleAssistant, call.Messages[1].Role)
	assert.False(t, call.StructuredOutput)
}

func TestServicePropagatesClientErrors(t *testing.T) {
	mock := NewMockClient()
	mock.Fail(errors.New("boom"))
	svc := NewService(mock, nil)

	_, err := svc.Chat(context.Background(), nil, model.FinancialContext{})
	require.Error(t, err)

	_, err = svc.Categorize(context.Background(), "x", 1)
	require.Error(t, err)
}
