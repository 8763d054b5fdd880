// Package model defines the plain data records shared across the application.
package model

// Budget status labels derived from the trailing-30-day savings rate.
const (
	BudgetStatusSavingWell   = "Saving well"
	BudgetStatusOnTrack      = "On track"
	BudgetStatusOverspending = "Overspending"
	BudgetStatusUnknown      = "Unknown"
)

// TransactionSummary is the compact transaction shape embedded in prompts.
type TransactionSummary struct {
	Description string
	Category    string
	Date        string // ISO-8601
	Amount      float64
}

// CategorySpending is a per-category spending total over some window.
type CategorySpending struct {
	Category string
	Amount   float64
}

// FinancialContext is a snapshot of the user's finances over the trailing
// 30-day window, computed from stored transactions and passed into chat
// prompt construction. TotalIncome is nil when no income was recorded.
type FinancialContext struct {
	TotalIncome               *float64
	TopCategory               string // empty when no categorized spending exists
	BudgetStatus              string
	RecentTransactions        []TransactionSummary
	UncategorizedTransactions []TransactionSummary
	TotalSpending             float64
	HasVariableIncome         bool
}

// DeriveBudgetStatus classifies the savings rate (income-spending)/income.
// Above 20% is "Saving well", above 0% "On track", otherwise "Overspending".
// Absent or non-positive income yields "Unknown".
func DeriveBudgetStatus(income *float64, spending float64) string {
	if income == nil || *income <= 0 {
		return BudgetStatusUnknown
	}
	rate := (*income - spending) / *income * 100
	switch {
	case rate > 20:
		return BudgetStatusSavingWell
	case rate > 0:
		return BudgetStatusOnTrack
	default:
		return BudgetStatusOverspending
	}
}
