package ai

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/futureself/internal/model"
)

func fixedClockBuilder() *PromptBuilder {
	return &PromptBuilder{now: func() time.Time {
		return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	}}
}

func TestParseTransactionPrompt(t *testing.T) {
	b := fixedClockBuilder()

	p := b.ParseTransaction(`spent $45.30 at Trader Joe's`)

	assert.Contains(t, p.System, "Current date: Mar 14, 2025")
	assert.Contains(t, p.User, `"spent $45.30 at Trader Joe's"`, "raw input is embedded quoted")
	assert.InDelta(t, 0.3, p.Temperature, 0.001)
	assert.True(t, p.Structured)
}

func TestCategorizePrompt(t *testing.T) {
	b := fixedClockBuilder()

	p := b.Categorize("AutoZone", 89.99)

	assert.Contains(t, p.User, "Categorize: 'AutoZone' for $89.99")
	assert.Contains(t, p.System, "Auto parts stores")
	assert.Contains(t, p.System, "Coffee shops = Dining Out")
	assert.InDelta(t, 0.3, p.Temperature, 0.001)
	assert.True(t, p.Structured)
}

func TestInsightsPrompt(t *testing.T) {
	b := fixedClockBuilder()

	transactions := []model.Transaction{
		{
			Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			Description: "Whole Foods",
			Category:    "Groceries",
			Amount:      82.40,
		},
	}
	budgets := []model.Budget{
		{Category: "Groceries", Limit: 400, Spent: 200},
	}

	p := b.Insights(transactions, budgets)

	assert.Contains(t, p.User, "2025-03-10: Whole Foods - Groceries - $82.40")
	assert.Contains(t, p.User, "Groceries: $200.00/$400.00 (50%)")
	assert.Contains(t, p.User, "RECENT TRANSACTIONS (1 total)")
	assert.InDelta(t, 0.6, p.Temperature, 0.001)
	assert.True(t, p.Structured)
}

func TestGoalsPrompt(t *testing.T) {
	b := fixedClockBuilder()
	breakdown := []model.CategorySpending{
		{Category: "Dining Out", Amount: 320},
		{Category: "Groceries", Amount: 250},
	}

	t.Run("with known income", func(t *testing.T) {
		income := 5000.0
		p := b.Goals(&income, 3500, breakdown)

		assert.Contains(t, p.User, "Monthly Income: $5000.00")
		assert.Contains(t, p.User, "Monthly Spending: $3500.00")
		assert.Contains(t, p.User, "Potential Monthly Savings: $1500.00")
		assert.Contains(t, p.User, "Dining Out: $320.00")
		assert.InDelta(t, 0.6, p.Temperature, 0.001)
	})

	t.Run("unknown income", func(t *testing.T) {
		p := b.Goals(nil, 3500, breakdown)

		assert.Contains(t, p.User, "Monthly Income: Unknown")
		assert.Contains(t, p.User, "Potential Monthly Savings: $0.00")
	})
}

func TestChatPrompt(t *testing.T) {
	b := fixedClockBuilder()

	t.Run("embeds financial context", func(t *testing.T) {
		income := 5000.0
		fc := model.FinancialContext{
			TotalIncome:   &income,
			TotalSpending: 3500,
			TopCategory:   "Groceries",
			BudgetStatus:  model.BudgetStatusSavingWell,
			RecentTransactions: []model.TransactionSummary{
				{Category: "Groceries", Amount: 82.40},
				{Category: "Dining Out", Amount: 24.00},
			},
		}

		p := b.Chat(fc)

		assert.Contains(t, p.System, "Total Spending: $3500.00")
		assert.Contains(t, p.System, "Total Income: $5000.00")
		assert.Contains(t, p.System, "Top Spending Category: Groceries")
		assert.Contains(t, p.System, "Budget Status: Saving well")
		assert.Contains(t, p.System, "Groceries: $82.40, Dining Out: $24.00")
		assert.Contains(t, p.System, "RESPONSE STYLE")
		assert.NotContains(t, p.System, "IMPORTANT: The user has")
		assert.InDelta(t, 0.7, p.Temperature, 0.001)
		assert.False(t, p.Structured, "chat uses free-form output")
		assert.Empty(t, p.User, "history is supplied separately")
	})

	t.Run("empty context placeholders", func(t *testing.T) {
		p := b.Chat(model.FinancialContext{BudgetStatus: model.BudgetStatusUnknown})

		assert.Contains(t, p.System, "Total Income: Unknown")
		assert.Contains(t, p.System, "Top Spending Category: N/A")
		assert.Contains(t, p.System, "Has Variable Income: No")
	})

	t.Run("uncategorized block appears with preview", func(t *testing.T) {
		fc := model.FinancialContext{
			BudgetStatus: model.BudgetStatusUnknown,
			UncategorizedTransactions: []model.TransactionSummary{
				{Description: "AMZN Marketplace", Amount: 31.99},
				{Description: "Shell", Amount: 48.20},
				{Description: "Target", Amount: 112.05},
				{Description: "CVS", Amount: 9.49},
			},
		}

		p := b.Chat(fc)

		assert.Contains(t, p.System, "The user has 4 uncategorized transactions:")
		assert.Contains(t, p.System, "- AMZN Marketplace: $31.99")
		assert.Contains(t, p.System, "- Target: $112.05")
		assert.NotContains(t, p.System, "CVS", "preview caps at three transactions")
	})

	t.Run("singular wording for one uncategorized", func(t *testing.T) {
		fc := model.FinancialContext{
			BudgetStatus: model.BudgetStatusUnknown,
			UncategorizedTransactions: []model.TransactionSummary{
				{Description: "Shell", Amount: 48.20},
			},
		}

		p := b.Chat(fc)

		require.Contains(t, p.System, "The user has 1 uncategorized transaction:")
		assert.False(t, strings.Contains(p.System, "1 uncategorized transactions"))
	})

	t.Run("recent list caps at five", func(t *testing.T) {
		fc := model.FinancialContext{BudgetStatus: model.BudgetStatusUnknown}
		for i := 0; i < 8; i++ {
			fc.RecentTransactions = append(fc.RecentTransactions, model.TransactionSummary{
				Category: "Other", Amount: float64(i + 1),
			})
		}

		p := b.Chat(fc)

		assert.Equal(t, 5, strings.Count(p.System, "Other: $"), "only the five most recent appear")
	})
}
