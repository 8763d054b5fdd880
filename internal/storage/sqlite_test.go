package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/futureself/internal/common"
	"github.com/Veraticus/futureself/internal/model"
	"github.com/Veraticus/futureself/internal/service"
)

func setupTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testTransaction(category string, date time.Time, amount float64) *model.Transaction {
	now := time.Now()
	tx := &model.Transaction{
		ID:          uuid.NewString(),
		Description: "Test transaction",
		Category:    category,
		Amount:      amount,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	tx.Hash = tx.GenerateHash()
	return tx
}

func TestSaveAndGetTransactions(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	older := testTransaction("Groceries", day.AddDate(0, 0, -5), 82.40)
	newer := testTransaction("Dining Out", day, 24.00)

	require.NoError(t, store.SaveTransaction(ctx, older))
	require.NoError(t, store.SaveTransaction(ctx, newer))

	transactions, err := store.GetTransactions(ctx, service.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, newer.ID, transactions[0].ID, "most recent first")

	t.Run("filter by category", func(t *testing.T) {
		got, err := store.GetTransactions(ctx, service.TransactionFilter{Category: "Groceries"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, older.ID, got[0].ID)
	})

	t.Run("filter by start date", func(t *testing.T) {
		start := day.AddDate(0, 0, -1)
		got, err := store.GetTransactions(ctx, service.TransactionFilter{StartDate: &start})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, newer.ID, got[0].ID)
	})

	t.Run("limit", func(t *testing.T) {
		got, err := store.GetTransactions(ctx, service.TransactionFilter{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestSaveTransactionUpsert(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	tx := testTransaction("Groceries", time.Now(), 50)
	require.NoError(t, store.SaveTransaction(ctx, tx))

	tx.Amount = 75
	tx.Category = "Shopping"
	require.NoError(t, store.SaveTransaction(ctx, tx))

	got, err := store.GetTransactionByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.InDelta(t, 75, got.Amount, 0.001)
	assert.Equal(t, "Shopping", got.Category)
}

func TestSaveTransactionDefaultsCategory(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	tx := testTransaction("", time.Now(), 10)
	require.NoError(t, store.SaveTransaction(ctx, tx))

	got, err := store.GetTransactionByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, model.UncategorizedCategory, got.Category)
}

func TestGetTransactionByIDNotFound(t *testing.T) {
	store := setupTestStorage(t)

	_, err := store.GetTransactionByID(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUncategorizedQueries(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	t.Run("none exist", func(t *testing.T) {
		_, err := store.GetLatestUncategorized(ctx)
		assert.ErrorIs(t, err, common.ErrNoUncategorized)

		count, err := store.CountUncategorized(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	first := testTransaction(model.UncategorizedCategory, day.AddDate(0, 0, -2), 10)
	latest := testTransaction(model.UncategorizedCategory, day, 20)
	categorized := testTransaction("Groceries", day.AddDate(0, 0, 1), 30)

	require.NoError(t, store.SaveTransaction(ctx, first))
	require.NoError(t, store.SaveTransaction(ctx, latest))
	require.NoError(t, store.SaveTransaction(ctx, categorized))

	t.Run("latest by date", func(t *testing.T) {
		got, err := store.GetLatestUncategorized(ctx)
		require.NoError(t, err)
		assert.Equal(t, latest.ID, got.ID)
	})

	t.Run("count", func(t *testing.T) {
		count, err := store.CountUncategorized(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}

func TestUpdateTransactionCategory(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	tx := testTransaction(model.UncategorizedCategory, time.Now(), 48.20)
	require.NoError(t, store.SaveTransaction(ctx, tx))

	require.NoError(t, store.UpdateTransactionCategory(ctx, tx.ID, "Transportation", 0.88))

	got, err := store.GetTransactionByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "Transportation", got.Category)
	assert.InDelta(t, 0.88, got.CategoryConfidence, 0.001)
	assert.True(t, got.AIProcessed)

	t.Run("missing transaction", func(t *testing.T) {
		err := store.UpdateTransactionCategory(ctx, "missing", "Other", 0.5)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestBudgets(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	budget := &model.Budget{
		ID:       uuid.NewString(),
		Category: "Groceries",
		Limit:    400,
	}
	require.NoError(t, store.SaveBudget(ctx, budget))

	t.Run("defaults to monthly", func(t *testing.T) {
		budgets, err := store.GetBudgets(ctx)
		require.NoError(t, err)
		require.Len(t, budgets, 1)
		assert.Equal(t, "monthly", budgets[0].Period)
	})

	t.Run("upsert by category", func(t *testing.T) {
		budget.Limit = 450
		require.NoError(t, store.SaveBudget(ctx, budget))

		budgets, err := store.GetBudgets(ctx)
		require.NoError(t, err)
		require.Len(t, budgets, 1)
		assert.InDelta(t, 450, budgets[0].Limit, 0.001)
	})

	t.Run("add spending", func(t *testing.T) {
		require.NoError(t, store.AddBudgetSpending(ctx, "Groceries", 82.40))
		require.NoError(t, store.AddBudgetSpending(ctx, "Groceries", 17.60))

		budgets, err := store.GetBudgets(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 100, budgets[0].Spent, 0.001)
	})

	t.Run("add spending to unknown category", func(t *testing.T) {
		err := store.AddBudgetSpending(ctx, "Nonexistent", 5)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestGoals(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	goal := &model.Goal{
		ID:              uuid.NewString(),
		Name:            "Emergency Fund",
		TargetAmount:    3000,
		TimeframeMonths: 6,
		Priority:        "high",
		IsActive:        true,
		CreatedAt:       time.Now(),
	}
	require.NoError(t, store.SaveGoal(ctx, goal))

	goals, err := store.GetGoals(ctx)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "Emergency Fund", goals[0].Name)

	t.Run("update progress", func(t *testing.T) {
		require.NoError(t, store.UpdateGoalProgress(ctx, goal.ID, 500))

		goals, err := store.GetGoals(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 500, goals[0].CurrentAmount, 0.001)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.DeleteGoal(ctx, goal.ID))

		goals, err := store.GetGoals(ctx)
		require.NoError(t, err)
		assert.Empty(t, goals)

		assert.ErrorIs(t, store.DeleteGoal(ctx, goal.ID), common.ErrNotFound)
	})
}

func TestMessages(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	conversationID := uuid.NewString()
	base := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	for i, content := range []string{"hello", "hi there", "how am I doing?"} {
		role := model.RoleUser
		if i%2 == 1 {
			role = model.RoleAssistant
		}
		msg := &model.ChatMessage{
			ID:             uuid.NewString(),
			ConversationID: conversationID,
			Role:           role,
			Content:        content,
			Timestamp:      base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, store.SaveMessage(ctx, msg))
	}

	messages, err := store.GetMessages(ctx, conversationID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "hello", messages[0].Content, "send order preserved")
	assert.Equal(t, model.RoleAssistant, messages[1].Role)

	t.Run("other conversations excluded", func(t *testing.T) {
		other, err := store.GetMessages(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Empty(t, other)
	})
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := setupTestStorage(t)
	assert.NoError(t, store.Migrate(context.Background()))
}
