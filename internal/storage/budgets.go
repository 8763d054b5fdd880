package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/futureself/internal/common"
	"github.com/Veraticus/futureself/internal/model"
)

// SaveBudget inserts or updates an envelope, keyed by category.
func (s *SQLiteStorage) SaveBudget(ctx context.Context, budget *model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if budget == nil {
		return fmt.Errorf("budget must not be nil")
	}

	period := budget.Period
	if period == "" {
		period = "monthly"
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (id, category, spend_limit, spent, period, is_essential)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(category) DO UPDATE SET
			spend_limit = excluded.spend_limit,
			spent = excluded.spent,
			period = excluded.period,
			is_essential = excluded.is_essential
	`, budget.ID, budget.Category, budget.Limit, budget.Spent, period, budget.IsEssential)
	if err != nil {
		return fmt.Errorf("failed to save budget: %w", err)
	}

	return nil
}

// GetBudgets returns all envelopes ordered by category.
func (s *SQLiteStorage) GetBudgets(ctx context.Context) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category, spend_limit, spent, period, is_essential
		FROM budgets ORDER BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var budgets []model.Budget
	for rows.Next() {
		var b model.Budget
		if err := rows.Scan(&b.ID, &b.Category, &b.Limit, &b.Spent, &b.Period, &b.IsEssential); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}

	return budgets, rows.Err()
}

// AddBudgetSpending adds spending against a category's envelope.
func (s *SQLiteStorage) AddBudgetSpending(ctx context.Context, category string, amount float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE budgets SET spent = spent + ? WHERE category = ?", amount, category)
	if err != nil {
		return fmt.Errorf("failed to add budget spending: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("budget %s: %w", category, common.ErrNotFound)
	}

	return nil
}
