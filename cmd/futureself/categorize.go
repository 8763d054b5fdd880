package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/futureself/internal/cli"
	"github.com/Veraticus/futureself/internal/model"
	"github.com/Veraticus/futureself/internal/service"
)

func categorizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categorize",
		Short: "Categorize uncategorized transactions with AI suggestions",
		Long: `Walk through uncategorized transactions one at a time, reviewing the
AI's suggested category for each. With --all, suggestions above the
confidence threshold are applied without prompting.`,
		RunE: runCategorize,
	}

	cmd.Flags().Bool("all", false, "apply all suggestions without prompting")
	cmd.Flags().Float64("min-confidence", 0.7, "minimum confidence to auto-apply (with --all)")

	return cmd
}

func runCategorize(cmd *cobra.Command, _ []string) error {
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

	all, _ := cmd.Flags().GetBool("all")
	minConfidence, _ := cmd.Flags().GetFloat64("min-confidence")

	transactions, err := store.GetTransactions(ctx, service.TransactionFilter{
		Category: model.UncategorizedCategory,
	})
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	if len(transactions) == 0 {
		fmt.Println(cli.SuccessStyle.Render("✓ Nothing to categorize."))
		return nil
	}

	if all {
		return categorizeAuto(cmd, store, aiSvc, transactions, minConfidence)
	}
	return categorizeInteractive(cmd, store, aiSvc, transactions)
}

func categorizeInteractive(cmd *cobra.Command, store service.Storage, aiSvc service.AIService, transactions []model.Transaction) error {
	ctx := cmd.Context()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Categorizing %d transactions", len(transactions))))

	for _, tx := range transactions {
		suggestion, err := aiSvc.Categorize(ctx, tx.Description, tx.Amount)
		if err != nil {
			return fmt.Errorf("failed to categorize %q: %w", tx.Description, err)
		}

		fmt.Printf("\n%s (%s)\n", tx.Description, cli.FormatAmount(tx.Amount))
		fmt.Printf("  %s %s\n",
			cli.SuccessStyle.Render(suggestion.Category),
			cli.SubtleStyle.Render(fmt.Sprintf("(%.0f%% confident)", suggestion.Confidence*100)))
		if suggestion.Reasoning != "" {
			fmt.Println(cli.SubtleStyle.Render("  " + suggestion.Reasoning))
		}
		fmt.Print(cli.SubtleStyle.Render("  [a]pply / [s]kip / [q]uit: "))

		if !scanner.Scan() {
			break
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "a", "apply":
			if err := store.UpdateTransactionCategory(ctx, tx.ID, suggestion.Category, suggestion.Confidence); err != nil {
				return fmt.Errorf("failed to apply category: %w", err)
			}
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("  ✓ Applied %s to %s", suggestion.Category, tx.Description)))
		case "q", "quit":
			return nil
		default:
			fmt.Println(cli.SubtleStyle.Render("  Skipped"))
		}
	}

	return scanner.Err()
}

func categorizeAuto(cmd *cobra.Command, store service.Storage, aiSvc service.AIService, transactions []model.Transaction, minConfidence float64) error {
	ctx := cmd.Context()

	bar := progressbar.NewOptions(len(transactions),
		progressbar.OptionSetDescription("Categorizing"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	var applied, skipped int
	for _, tx := range transactions {
		suggestion, err := aiSvc.Categorize(ctx, tx.Description, tx.Amount)
		if err != nil {
			return fmt.Errorf("failed to categorize %q: %w", tx.Description, err)
		}

		if suggestion.Confidence >= minConfidence {
			if err := store.UpdateTransactionCategory(ctx, tx.ID, suggestion.Category, suggestion.Confidence); err != nil {
				return fmt.Errorf("failed to apply category: %w", err)
			}
			applied++
		} else {
			skipped++
		}
		_ = bar.Add(1)
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Applied %d suggestions", applied)))
	if skipped > 0 {
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%d below %.0f%% confidence, left uncategorized", skipped, minConfidence*100)))
	}

	return nil
}
