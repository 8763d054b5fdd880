package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Veraticus/futureself/internal/cli"
	"github.com/Veraticus/futureself/internal/model"
	"github.com/Veraticus/futureself/internal/router"
)

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage savings goals",
	}

	cmd.AddCommand(goalsSuggestCmd())
	cmd.AddCommand(goalsAddCmd())
	cmd.AddCommand(goalsListCmd())

	return cmd
}

func goalsSuggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest savings goals from your spending",
		Long: `Ask the assistant for savings goal suggestions based on your income and
per-category spending over the last 30 days. Use --save to persist all
suggestions as active goals.`,
		RunE: runGoalsSuggest,
	}

	cmd.Flags().Bool("save", false, "save the suggested goals")

	return cmd
}

func runGoalsSuggest(cmd *cobra.Command, _ []string) error {
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

	income, spending, breakdown, err := router.SpendingBreakdown(ctx, store, time.Now())
	if err != nil {
		return fmt.Errorf("failed to compute spending breakdown: %w", err)
	}

	suggestions, err := aiSvc.SuggestGoals(ctx, income, spending, breakdown)
	if err != nil {
		return fmt.Errorf("failed to get AI suggestions: %w", err)
	}

	save, _ := cmd.Flags().GetBool("save")

	fmt.Println(cli.TitleStyle.Render("🎯 Suggested goals"))
	for _, s := range suggestions {
		style := cli.PriorityStyle(s.Priority)
		fmt.Printf("%s %s: %s over %d months\n",
			style.Render("●"),
			cli.UserStyle.Render(s.Name),
			cli.FormatAmount(s.TargetAmount),
			s.TimeframeMonths)
		if s.Strategy != "" {
			fmt.Println(cli.SubtleStyle.Render("  " + s.Strategy))
		}
		if s.Rationale != "" {
			fmt.Println(cli.SubtleStyle.Render("  " + s.Rationale))
		}

		if save {
			goal := &model.Goal{
				ID:              uuid.NewString(),
				Name:            s.Name,
				Priority:        s.Priority,
				Strategy:        s.Strategy,
				Rationale:       s.Rationale,
				TargetAmount:    s.TargetAmount,
				TimeframeMonths: s.TimeframeMonths,
				IsActive:        true,
				CreatedAt:       time.Now(),
			}
			if err := store.SaveGoal(ctx, goal); err != nil {
				return fmt.Errorf("failed to save goal %q: %w", s.Name, err)
			}
			fmt.Println(cli.SuccessStyle.Render("  ✓ Saved"))
		}
	}

	return nil
}

func goalsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name> <target>",
		Short: "Add a savings goal manually",
		Args:  cobra.ExactArgs(2),
		RunE:  runGoalsAdd,
	}

	cmd.Flags().Int("months", 12, "months to achieve the goal")
	cmd.Flags().String("priority", "medium", "priority (high, medium, low)")

	return cmd
}

func runGoalsAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	target, err := strconv.ParseFloat(args[1], 64)
	if err != nil || target <= 0 {
		return fmt.Errorf("invalid target %q: expected a positive amount", args[1])
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	months, _ := cmd.Flags().GetInt("months")
	priority, _ := cmd.Flags().GetString("priority")

	goal := &model.Goal{
		ID:              uuid.NewString(),
		Name:            args[0],
		Priority:        priority,
		TargetAmount:    target,
		TimeframeMonths: months,
		IsActive:        true,
		CreatedAt:       time.Now(),
	}
	if err := store.SaveGoal(ctx, goal); err != nil {
		return fmt.Errorf("failed to save goal: %w", err)
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Added goal: %s (%s over %d months)",
		goal.Name, cli.FormatAmount(target), months)))

	return nil
}

func goalsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved goals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			goals, err := store.GetGoals(ctx)
			if err != nil {
				return fmt.Errorf("failed to load goals: %w", err)
			}

			if len(goals) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No goals yet. Try 'futureself goals suggest'."))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render("🎯 Goals"))
			for _, g := range goals {
				style := cli.PriorityStyle(g.Priority)
				fmt.Printf("%s %s  %s / %s (%.0f%%)\n",
					style.Render("●"),
					cli.UserStyle.Render(g.Name),
					cli.FormatAmount(g.CurrentAmount),
					cli.FormatAmount(g.TargetAmount),
					g.Progress()*100)
			}

			return nil
		},
	}
}
