package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want TaskKind
	}{
		{
			name: "spent with amount",
			text: "I spent $20 on coffee",
			want: TaskTransaction,
		},
		{
			name: "paid someone",
			text: "paid the plumber 150 bucks",
			want: TaskTransaction,
		},
		{
			name: "bought something",
			text: "bought groceries yesterday",
			want: TaskTransaction,
		},
		{
			name: "dollar sign alone",
			text: "lunch was $12",
			want: TaskTransaction,
		},
		{
			name: "add transaction phrasing",
			text: "add a transaction for my gym membership",
			want: TaskTransaction,
		},
		{
			name: "categorize request",
			text: "can you categorize my transactions?",
			want: TaskCategorization,
		},
		{
			name: "organize request",
			text: "help me organize my spending",
			want: TaskCategorization,
		},
		{
			name: "category question",
			text: "what category is Netflix?",
			want: TaskCategorization,
		},
		{
			name: "both transaction and categorization keywords",
			text: "I spent $30, can you categorize it?",
			want: TaskCategorization,
		},
		{
			name: "plain chat",
			text: "how am I doing this month?",
			want: TaskChat,
		},
		{
			name: "greeting",
			text: "hello",
			want: TaskChat,
		},
		{
			name: "case insensitive",
			text: "I SPENT $5",
			want: TaskTransaction,
		},
		{
			name: "add without transaction is chat",
			text: "add more detail please",
			want: TaskChat,
		},
		{
			name: "empty message",
			text: "",
			want: TaskChat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestTaskKindString(t *testing.T) {
	assert.Equal(t, "transaction", TaskTransaction.String())
	assert.Equal(t, "categorization", TaskCategorization.String())
	assert.Equal(t, "chat", TaskChat.String())
}
