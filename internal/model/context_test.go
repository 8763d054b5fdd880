package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveBudgetStatus(t *testing.T) {
	income := func(v float64) *float64 { return &v }

	tests := []struct {
		income   *float64
		name     string
		want     string
		spending float64
	}{
		{
			name:     "saving more than 20 percent",
			income:   income(5000),
			spending: 3500,
			want:     BudgetStatusSavingWell,
		},
		{
			name:     "saving a little",
			income:   income(5000),
			spending: 4900,
			want:     BudgetStatusOnTrack,
		},
		{
			name:     "spending exceeds income",
			income:   income(3000),
			spending: 3200,
			want:     BudgetStatusOverspending,
		},
		{
			name:     "exactly break even",
			income:   income(3000),
			spending: 3000,
			want:     BudgetStatusOverspending,
		},
		{
			name:     "exactly 20 percent saved is only on track",
			income:   income(5000),
			spending: 4000,
			want:     BudgetStatusOnTrack,
		},
		{
			name:     "no income recorded",
			income:   nil,
			spending: 500,
			want:     BudgetStatusUnknown,
		},
		{
			name:     "zero income",
			income:   income(0),
			spending: 0,
			want:     BudgetStatusUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveBudgetStatus(tt.income, tt.spending))
		})
	}
}

func TestTransactionGenerateHash(t *testing.T) {
	tx := Transaction{
		Description: "Coffee",
		Amount:      4.50,
	}
	h1 := tx.GenerateHash()
	h2 := tx.GenerateHash()
	assert.Equal(t, h1, h2, "hash should be deterministic")

	tx.Amount = 4.51
	assert.NotEqual(t, h1, tx.GenerateHash(), "hash should change with amount")
}

func TestBudgetPercentUsed(t *testing.T) {
	b := Budget{Limit: 400, Spent: 100}
	assert.InDelta(t, 0.25, b.PercentUsed(), 0.001)
	assert.InDelta(t, 300, b.Remaining(), 0.001)

	zero := Budget{Limit: 0, Spent: 50}
	assert.Zero(t, zero.PercentUsed())
}

func TestGoalProgress(t *testing.T) {
	g := Goal{TargetAmount: 1000, CurrentAmount: 250}
	assert.InDelta(t, 0.25, g.Progress(), 0.001)

	over := Goal{TargetAmount: 1000, CurrentAmount: 1500}
	assert.InDelta(t, 1.0, over.Progress(), 0.001, "progress is capped at 1")

	empty := Goal{TargetAmount: 0, CurrentAmount: 100}
	assert.Zero(t, empty.Progress())
}

func TestChatMessageHelpers(t *testing.T) {
	suggestion := ChatMessage{
		Role:              RoleAssistant,
		SuggestedCategory: "Groceries",
	}
	assert.True(t, suggestion.HasSuggestion())
	assert.False(t, suggestion.IsUser())

	plain := ChatMessage{Role: RoleUser, Content: "hi"}
	assert.False(t, plain.HasSuggestion())
	assert.True(t, plain.IsUser())
}
