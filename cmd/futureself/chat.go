package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Veraticus/futureself/internal/cli"
	"github.com/Veraticus/futureself/internal/router"
	"github.com/Veraticus/futureself/internal/service"
)

func chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to your financial assistant",
		Long: `Start an interactive conversation with the assistant.

Messages that look like transactions ("I spent $20 on coffee") are parsed
and logged automatically. Asking to categorize walks you through your
uncategorized transactions one at a time. Everything else is coaching chat
grounded in your last 30 days of activity.`,
		RunE: runChat,
	}

	cmd.Flags().String("conversation", "", "conversation ID to resume (default: new conversation)")

	return cmd
}

func runChat(cmd *cobra.Command, _ []string) error {
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

	conversationID, _ := cmd.Flags().GetString("conversation")
	resumed := conversationID != ""
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	r := router.New(store, aiSvc, slog.Default())

	fmt.Println(cli.TitleStyle.Render("💬 futureself"))
	fmt.Println(cli.SubtleStyle.Render("Type a message, or 'exit' to quit."))
	if resumed {
		if err := replayHistory(ctx, store, conversationID); err != nil {
			return err
		}
	}
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(cli.UserStyle.Render("you> "))
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "exit" || text == "quit" {
			break
		}

		res, err := r.HandleMessage(ctx, conversationID, text)
		if res != nil {
			renderTurns(ctx, r, conversationID, res, scanner)
		}
		if err != nil {
			slog.Error("message handling failed", "error", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("input error: %w", err)
	}

	fmt.Println(cli.SubtleStyle.Render("Goodbye!"))
	return nil
}

// renderTurns prints the assistant turns from a result. Suggestion turns
// block on an apply/skip decision, whose own result is rendered recursively
// so a run of categorizations flows as one exchange.
func renderTurns(ctx context.Context, r *router.Router, conversationID string, res *router.Result, scanner *bufio.Scanner) {
	for _, turn := range res.Turns {
		if turn.IsUser() {
			continue // already echoed at the prompt
		}

		fmt.Println(cli.AssistantStyle.Render(turn.Content))

		if !turn.HasSuggestion() {
			continue
		}

		fmt.Printf("  %s %s\n",
			cli.SuccessStyle.Render(turn.SuggestedCategory),
			cli.SubtleStyle.Render(fmt.Sprintf("(%.0f%% confident)", turn.CategoryConfidence*100)))
		fmt.Print(cli.SubtleStyle.Render("  [a]pply / [s]kip: "))

		if !scanner.Scan() {
			return
		}
		choice := strings.ToLower(strings.TrimSpace(scanner.Text()))

		var next *router.Result
		var err error
		if choice == "a" || choice == "apply" {
			next, err = r.ApplySuggestion(ctx, conversationID, turn.TransactionID, turn.SuggestedCategory, turn.CategoryConfidence)
		} else {
			next, err = r.SkipSuggestion(ctx, conversationID)
		}
		if next != nil {
			renderTurns(ctx, r, conversationID, next, scanner)
		}
		if err != nil {
			slog.Error("suggestion handling failed", "error", err)
		}
	}
}

func replayHistory(ctx context.Context, store service.Storage, conversationID string) error {
	history, err := store.GetMessages(ctx, conversationID)
	if err != nil {
		return fmt.Errorf("failed to load conversation: %w", err)
	}
	for _, msg := range history {
		if msg.IsUser() {
			fmt.Println(cli.UserStyle.Render("you> ") + msg.Content)
		} else {
			fmt.Println(cli.AssistantStyle.Render(msg.Content))
		}
	}
	return nil
}
