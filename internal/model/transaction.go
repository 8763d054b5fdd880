package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// UncategorizedCategory is the sentinel category for transactions that have
// not been categorized yet. Transactions carrying it are eligible for AI
// categorization suggestions.
const UncategorizedCategory = "Uncategorized"

// IncomeCategory marks inflows. Transactions in this category count toward
// income totals instead of spending.
const IncomeCategory = "Income"

// Transaction represents a single logged financial transaction.
type Transaction struct {
	Date               time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
	ID                 string
	Description        string
	Category           string
	RawInput           string // original free-text utterance, set when AI-parsed
	Hash               string
	Amount             float64
	CategoryConfidence float64
	AIProcessed        bool
}

// GenerateHash creates a unique hash for duplicate detection.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Description)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// IsUncategorized reports whether the transaction still carries the sentinel category.
func (t *Transaction) IsUncategorized() bool {
	return t.Category == UncategorizedCategory
}

// IsIncome reports whether the transaction is an inflow.
func (t *Transaction) IsIncome() bool {
	return t.Category == IncomeCategory
}
