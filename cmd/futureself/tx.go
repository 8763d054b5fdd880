package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Veraticus/futureself/internal/cli"
	"github.com/Veraticus/futureself/internal/model"
	"github.com/Veraticus/futureself/internal/service"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage transactions",
	}

	cmd.AddCommand(txAddCmd())
	cmd.AddCommand(txListCmd())

	return cmd
}

func txAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [description of the transaction]",
		Short: "Log a transaction from plain English",
		Long: `Parse a natural-language description into a transaction and save it.

Examples:
  futureself tx add "spent $45.30 at Trader Joe's yesterday"
  futureself tx add --amount 12.50 --description "Lunch" --category "Food & Dining"`,
		RunE: runTxAdd,
	}

	cmd.Flags().Float64("amount", 0, "transaction amount (skips AI parsing)")
	cmd.Flags().String("description", "", "transaction description (with --amount)")
	cmd.Flags().String("category", "", "category (default: Uncategorized)")
	cmd.Flags().String("date", "", "transaction date, YYYY-MM-DD (default: today)")

	return cmd
}

func runTxAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	amount, _ := cmd.Flags().GetFloat64("amount")
	description, _ := cmd.Flags().GetString("description")
	category, _ := cmd.Flags().GetString("category")
	dateStr, _ := cmd.Flags().GetString("date")

	now := time.Now()
	tx := &model.Transaction{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Date:      now,
	}

	if amount != 0 {
		// Manual entry, no AI round trip.
		if description == "" {
			return fmt.Errorf("--description is required with --amount")
		}
		tx.Amount = amount
		tx.Description = description
	} else {
		input := strings.TrimSpace(strings.Join(args, " "))
		if input == "" {
			return fmt.Errorf("provide a description to parse, or use --amount and --description")
		}

		aiSvc, err := createAIService()
		if err != nil {
			return err
		}

		parsed, err := aiSvc.ParseTransaction(ctx, input)
		if err != nil {
			return fmt.Errorf("failed to parse transaction: %w", err)
		}

		tx.Amount = parsed.Amount
		tx.Description = parsed.Description
		tx.RawInput = input
		tx.CategoryConfidence = parsed.Confidence
		tx.AIProcessed = true
		if category == "" {
			category = parsed.Category
		}
		if t, err := time.Parse("2006-01-02", parsed.Date); err == nil {
			tx.Date = t
		} else if t, err := time.Parse(time.RFC3339, parsed.Date); err == nil {
			tx.Date = t
		}
	}

	if dateStr != "" {
		t, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", dateStr)
		}
		tx.Date = t
	}

	if category == "" {
		category = model.UncategorizedCategory
	}
	tx.Category = category
	tx.Hash = tx.GenerateHash()

	if err := store.SaveTransaction(ctx, tx); err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Added transaction: %s - %s",
		tx.Description, cli.FormatAmount(tx.Amount))))
	fmt.Println(cli.SubtleStyle.Render("Category: " + tx.Category))

	return nil
}

func txListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent transactions",
		RunE:  runTxList,
	}

	cmd.Flags().String("category", "", "only show this category")
	cmd.Flags().Int("days", 30, "how many days back to look")
	cmd.Flags().Int("limit", 50, "maximum number of transactions")

	return cmd
}

func runTxList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	category, _ := cmd.Flags().GetString("category")
	days, _ := cmd.Flags().GetInt("days")
	limit, _ := cmd.Flags().GetInt("limit")

	start := time.Now().AddDate(0, 0, -days)
	transactions, err := store.GetTransactions(ctx, service.TransactionFilter{
		StartDate: &start,
		Category:  category,
		Limit:     limit,
	})
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	if len(transactions) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No transactions found."))
		return nil
	}

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Transactions (last %d days)", days)))
	for _, tx := range transactions {
		marker := " "
		if tx.IsUncategorized() {
			marker = cli.WarningStyle.Render("?")
		}
		fmt.Printf("%s %s  %-32s %10s  %s\n",
			marker,
			tx.Date.Format("2006-01-02"),
			truncate(tx.Description, 32),
			cli.FormatAmount(tx.Amount),
			cli.SubtleStyle.Render(tx.Category))
	}

	return nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
