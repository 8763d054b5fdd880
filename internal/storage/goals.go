package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/futureself/internal/common"
	"github.com/Veraticus/futureself/internal/model"
)

// SaveGoal inserts or replaces a savings goal.
func (s *SQLiteStorage) SaveGoal(ctx context.Context, goal *model.Goal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if goal == nil {
		return fmt.Errorf("goal must not be nil")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO goals (
			id, name, target_amount, current_amount, timeframe_months,
			priority, strategy, rationale, is_active, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			target_amount = excluded.target_amount,
			current_amount = excluded.current_amount,
			timeframe_months = excluded.timeframe_months,
			priority = excluded.priority,
			strategy = excluded.strategy,
			rationale = excluded.rationale,
			is_active = excluded.is_active
	`, goal.ID, goal.Name, goal.TargetAmount, goal.CurrentAmount, goal.TimeframeMonths,
		goal.Priority, goal.Strategy, goal.Rationale, goal.IsActive, goal.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save goal: %w", err)
	}

	return nil
}

// GetGoals returns all goals, newest first.
func (s *SQLiteStorage) GetGoals(ctx context.Context) ([]model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, target_amount, current_amount, timeframe_months,
			priority, strategy, rationale, is_active, created_at
		FROM goals ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []model.Goal
	for rows.Next() {
		var g model.Goal
		if err := rows.Scan(&g.ID, &g.Name, &g.TargetAmount, &g.CurrentAmount,
			&g.TimeframeMonths, &g.Priority, &g.Strategy, &g.Rationale,
			&g.IsActive, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}

	return goals, rows.Err()
}

// UpdateGoalProgress sets a goal's current amount.
func (s *SQLiteStorage) UpdateGoalProgress(ctx context.Context, id string, currentAmount float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE goals SET current_amount = ? WHERE id = ?", currentAmount, id)
	if err != nil {
		return fmt.Errorf("failed to update goal progress: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("goal %s: %w", id, common.ErrNotFound)
	}

	return nil
}

// DeleteGoal removes a goal.
func (s *SQLiteStorage) DeleteGoal(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM goals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("goal %s: %w", id, common.ErrNotFound)
	}

	return nil
}
