package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/futureself/internal/cli"
)

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <text>",
		Short: "Parse a transaction description without saving it",
		Long: `Run the natural-language transaction parser and show the structured
result. Nothing is written to the database; use 'tx add' to save.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runParse,
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	aiSvc, err := createAIService()
	if err != nil {
		return err
	}

	input := strings.Join(args, " ")
	parsed, err := aiSvc.ParseTransaction(cmd.Context(), input)
	if err != nil {
		return fmt.Errorf("failed to parse transaction: %w", err)
	}

	fmt.Println(cli.TitleStyle.Render("Parsed transaction"))
	fmt.Printf("  Description: %s\n", parsed.Description)
	fmt.Printf("  Amount:      %s\n", cli.FormatAmount(parsed.Amount))
	fmt.Printf("  Date:        %s\n", parsed.Date)
	category := parsed.Category
	if category == "" {
		category = cli.SubtleStyle.Render("(none suggested)")
	}
	fmt.Printf("  Category:    %s\n", category)
	fmt.Printf("  Confidence:  %.0f%%\n", parsed.Confidence*100)

	return nil
}
