package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/futureself/internal/ai"
	"github.com/Veraticus/futureself/internal/cli"
	"github.com/Veraticus/futureself/internal/service"
)

func insightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Generate spending insights from recent activity",
		RunE:  runInsights,
	}
}

func runInsights(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	aiSvc, err := createAIService()
	if err != nil {
		return err
	}

	start := time.Now().AddDate(0, 0, -30)
	transactions, err := store.GetTransactions(ctx, service.TransactionFilter{
		StartDate: &start,
		Limit:     50,
	})
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	if len(transactions) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No recent transactions to analyze. Log some first."))
		return nil
	}

	budgets, err := store.GetBudgets(ctx)
	if err != nil {
		return fmt.Errorf("failed to load budgets: %w", err)
	}

	insights, err := aiSvc.GenerateInsights(ctx, transactions, budgets)
	if err != nil {
		return fmt.Errorf("failed to generate insights: %w", err)
	}

	sortInsightsByPriority(insights)

	fmt.Println(cli.TitleStyle.Render("💡 Insights"))
	for _, insight := range insights {
		style := cli.PriorityStyle(insight.Priority)
		fmt.Printf("%s %s\n", style.Render("●"), cli.UserStyle.Render(insight.Title))
		fmt.Println("  " + insight.Message)
		if insight.Actionable {
			fmt.Println(cli.SubtleStyle.Render("  (actionable)"))
		}
		fmt.Println()
	}

	return nil
}

// sortInsightsByPriority orders insights high, medium, then low, keeping the
// generated order within each priority.
func sortInsightsByPriority(insights []ai.Insight) {
	rank := func(priority string) int {
		switch priority {
		case ai.PriorityHigh:
			return 0
		case ai.PriorityMedium:
			return 1
		default:
			return 2
		}
	}
	sort.SliceStable(insights, func(i, j int) bool {
		return rank(insights[i].Priority) < rank(insights[j].Priority)
	})
}
