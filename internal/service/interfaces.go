// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/futureself/internal/ai"
	"github.com/Veraticus/futureself/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
// Results are always ordered most recent first.
type TransactionFilter struct {
	StartDate *time.Time
	Category  string
	Limit     int
}

// Storage defines the contract for the persistence layer. Writes are
// last-write-wins; no optimistic concurrency (single-user, single-device).
type Storage interface {
	// Transaction operations
	SaveTransaction(ctx context.Context, tx *model.Transaction) error
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error)
	GetLatestUncategorized(ctx context.Context) (*model.Transaction, error)
	CountUncategorized(ctx context.Context) (int, error)
	UpdateTransactionCategory(ctx context.Context, id, category string, confidence float64) error

	// Budget (envelope) operations
	SaveBudget(ctx context.Context, budget *model.Budget) error
	GetBudgets(ctx context.Context) ([]model.Budget, error)
	AddBudgetSpending(ctx context.Context, category string, amount float64) error

	// Goal operations
	SaveGoal(ctx context.Context, goal *model.Goal) error
	GetGoals(ctx context.Context) ([]model.Goal, error)
	UpdateGoalProgress(ctx context.Context, id string, currentAmount float64) error
	DeleteGoal(ctx context.Context, id string) error

	// Chat history
	SaveMessage(ctx context.Context, msg *model.ChatMessage) error
	GetMessages(ctx context.Context, conversationID string) ([]model.ChatMessage, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// AIService defines the assistant operations the router and CLI depend on,
// so tests can substitute a deterministic fake that returns canned results.
type AIService interface {
	ParseTransaction(ctx context.Context, input string) (*ai.ParsedTransaction, error)
	Categorize(ctx context.Context, description string, amount float64) (*ai.CategorySuggestion, error)
	GenerateInsights(ctx context.Context, transactions []model.Transaction, budgets []model.Budget) ([]ai.Insight, error)
	SuggestGoals(ctx context.Context, income *float64, spending float64, breakdown []model.CategorySpending) ([]ai.GoalSuggestion, error)
	Chat(ctx context.Context, history []model.ChatMessage, fc model.FinancialContext) (string, error)
}
