package router

import (
	"context"
	"sort"
	"time"

	"github.com/Veraticus/futureself/internal/model"
	"github.com/Veraticus/futureself/internal/service"
)

const (
	contextWindowDays = 30
	contextFetchLimit = 50
	recentSurfaced    = 10
)

// BuildFinancialContext computes a FinancialContext snapshot from stored
// transactions over the trailing 30-day window, capped at the 50 most recent.
// The top 10 are surfaced as "recent"; all uncategorized ones are surfaced
// separately.
func BuildFinancialContext(ctx context.Context, store service.Storage, now time.Time) (model.FinancialContext, error) {
	start := now.AddDate(0, 0, -contextWindowDays)
	transactions, err := store.GetTransactions(ctx, service.TransactionFilter{
		StartDate: &start,
		Limit:     contextFetchLimit,
	})
	if err != nil {
		return model.FinancialContext{}, err
	}

	var totalIncome *float64
	var totalSpending float64
	categoryTotals := make(map[string]float64)

	for _, tx := range transactions {
		if tx.IsIncome() {
			if totalIncome == nil {
				totalIncome = new(float64)
			}
			*totalIncome += tx.Amount
			continue
		}
		totalSpending += tx.Amount
		categoryTotals[tx.Category] += tx.Amount
	}

	var topCategory string
	var topAmount float64
	for category, amount := range categoryTotals {
		if amount > topAmount || (amount == topAmount && topCategory == "") {
			topCategory = category
			topAmount = amount
		}
	}

	recent := make([]model.TransactionSummary, 0, recentSurfaced)
	var uncategorized []model.TransactionSummary
	for i, tx := range transactions {
		summary := model.TransactionSummary{
			Amount:      tx.Amount,
			Description: tx.Description,
			Category:    tx.Category,
			Date:        tx.Date.Format(time.RFC3339),
		}
		if i < recentSurfaced {
			recent = append(recent, summary)
		}
		if tx.IsUncategorized() {
			uncategorized = append(uncategorized, summary)
		}
	}

	return model.FinancialContext{
		TotalIncome:               totalIncome,
		TotalSpending:             totalSpending,
		TopCategory:               topCategory,
		BudgetStatus:              model.DeriveBudgetStatus(totalIncome, totalSpending),
		RecentTransactions:        recent,
		UncategorizedTransactions: uncategorized,
		// Variable-income detection needs a user-preferences store; until one
		// exists this stays false.
		HasVariableIncome: false,
	}, nil
}

// SpendingBreakdown aggregates categorized spending by category over the same
// trailing window the financial context uses, sorted by amount descending.
// Uncategorized transactions are excluded from both the total and the
// breakdown; the chat context counts them, the goals pipeline does not.
func SpendingBreakdown(ctx context.Context, store service.Storage, now time.Time) (*float64, float64, []model.CategorySpending, error) {
	fc, err := BuildFinancialContext(ctx, store, now)
	if err != nil {
		return nil, 0, nil, err
	}

	start := now.AddDate(0, 0, -contextWindowDays)
	transactions, err := store.GetTransactions(ctx, service.TransactionFilter{StartDate: &start, Limit: contextFetchLimit})
	if err != nil {
		return nil, 0, nil, err
	}

	var spending float64
	totals := make(map[string]float64)
	for _, tx := range transactions {
		if tx.IsIncome() || tx.IsUncategorized() {
			continue
		}
		spending += tx.Amount
		totals[tx.Category] += tx.Amount
	}

	breakdown := make([]model.CategorySpending, 0, len(totals))
	for category, amount := range totals {
		breakdown = append(breakdown, model.CategorySpending{Category: category, Amount: amount})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Amount != breakdown[j].Amount {
			return breakdown[i].Amount > breakdown[j].Amount
		}
		return breakdown[i].Category < breakdown[j].Category
	})

	return fc.TotalIncome, spending, breakdown, nil
}
