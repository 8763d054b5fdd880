package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/futureself/internal/common"
	"github.com/Veraticus/futureself/internal/model"
	"github.com/Veraticus/futureself/internal/service"
)

// SaveTransaction inserts or replaces a transaction. Last write wins.
func (s *SQLiteStorage) SaveTransaction(ctx context.Context, tx *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if tx == nil {
		return fmt.Errorf("transaction must not be nil")
	}
	if tx.ID == "" {
		return fmt.Errorf("transaction ID must not be empty")
	}

	if tx.Hash == "" {
		tx.Hash = tx.GenerateHash()
	}
	category := tx.Category
	if category == "" {
		category = model.UncategorizedCategory
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (
			id, hash, date, description, category, amount,
			raw_input, category_confidence, ai_processed, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			description = excluded.description,
			category = excluded.category,
			amount = excluded.amount,
			category_confidence = excluded.category_confidence,
			updated_at = excluded.updated_at
	`, tx.ID, tx.Hash, tx.Date, tx.Description, category, tx.Amount,
		tx.RawInput, tx.CategoryConfidence, tx.AIProcessed, tx.CreatedAt, tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	return nil
}

// GetTransactions returns transactions matching the filter, most recent first.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, hash, date, description, category, amount,
		raw_input, category_confidence, ai_processed, created_at, updated_at
		FROM transactions`
	var conditions []string
	var args []any

	if filter.StartDate != nil {
		conditions = append(conditions, "date >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, filter.Category)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

// GetTransactionByID returns a single transaction or common.ErrNotFound.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, hash, date, description, category, amount,
			raw_input, category_confidence, ai_processed, created_at, updated_at
		FROM transactions WHERE id = ?
	`, id)

	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetLatestUncategorized returns the most recent uncategorized transaction,
// or common.ErrNoUncategorized when none exist.
func (s *SQLiteStorage) GetLatestUncategorized(ctx context.Context) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, hash, date, description, category, amount,
			raw_input, category_confidence, ai_processed, created_at, updated_at
		FROM transactions WHERE category = ?
		ORDER BY date DESC LIMIT 1
	`, model.UncategorizedCategory)

	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNoUncategorized
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// CountUncategorized returns how many transactions still carry the sentinel category.
func (s *SQLiteStorage) CountUncategorized(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM transactions WHERE category = ?",
		model.UncategorizedCategory).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count uncategorized transactions: %w", err)
	}
	return count, nil
}

// UpdateTransactionCategory writes a category and confidence back to a transaction.
func (s *SQLiteStorage) UpdateTransactionCategory(ctx context.Context, id, category string, confidence float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET category = ?, category_confidence = ?, ai_processed = 1, updated_at = ?
		WHERE id = ?
	`, category, confidence, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update transaction category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var tx model.Transaction
	var rawInput sql.NullString
	err := row.Scan(&tx.ID, &tx.Hash, &tx.Date, &tx.Description, &tx.Category,
		&tx.Amount, &rawInput, &tx.CategoryConfidence, &tx.AIProcessed,
		&tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tx, err
		}
		return tx, fmt.Errorf("failed to scan transaction: %w", err)
	}
	tx.RawInput = rawInput.String
	return tx, nil
}
