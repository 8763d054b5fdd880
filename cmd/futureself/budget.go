package main

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Veraticus/futureself/internal/cli"
	"github.com/Veraticus/futureself/internal/model"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage budget envelopes",
	}

	cmd.AddCommand(budgetSetCmd())
	cmd.AddCommand(budgetListCmd())

	return cmd
}

func budgetSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <category> <limit>",
		Short: "Set the monthly limit for a category envelope",
		Args:  cobra.ExactArgs(2),
		RunE:  runBudgetSet,
	}

	cmd.Flags().Bool("essential", false, "mark the category as essential spending")

	return cmd
}

func runBudgetSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	limit, err := strconv.ParseFloat(args[1], 64)
	if err != nil || limit < 0 {
		return fmt.Errorf("invalid limit %q: expected a non-negative amount", args[1])
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	essential, _ := cmd.Flags().GetBool("essential")

	budget := &model.Budget{
		ID:          uuid.NewString(),
		Category:    args[0],
		Period:      "monthly",
		Limit:       limit,
		IsEssential: essential,
	}
	if err := store.SaveBudget(ctx, budget); err != nil {
		return fmt.Errorf("failed to save budget: %w", err)
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ %s budget set to %s/month",
		budget.Category, cli.FormatAmount(limit))))

	return nil
}

func budgetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show budget envelopes and usage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			budgets, err := store.GetBudgets(ctx)
			if err != nil {
				return fmt.Errorf("failed to load budgets: %w", err)
			}

			if len(budgets) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No budgets yet. Try 'futureself budget set \"Food & Dining\" 400'."))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render("💵 Budgets"))
			for _, b := range budgets {
				used := b.PercentUsed() * 100
				style := cli.SuccessStyle
				switch {
				case used >= 100:
					style = cli.ErrorStyle
				case used >= 80:
					style = cli.WarningStyle
				}

				marker := ""
				if b.IsEssential {
					marker = cli.SubtleStyle.Render(" (essential)")
				}
				fmt.Printf("%-24s %s / %s  %s%s\n",
					b.Category,
					cli.FormatAmount(b.Spent),
					cli.FormatAmount(b.Limit),
					style.Render(fmt.Sprintf("%.0f%%", used)),
					marker)
			}

			return nil
		},
	}
}
