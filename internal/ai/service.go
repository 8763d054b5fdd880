package ai

import (
	"context"
	"log/slog"

	"github.com/Veraticus/futureself/internal/model"
)

// Service wires the prompt builder, completion client, and response parser
// into the five assistant operations. It holds no mutable state between
// calls; each operation is one prompt render, one completion round trip, and
// one decode.
type Service struct {
	client  CompletionClient
	logger  *slog.Logger
	prompts *PromptBuilder
	parser  ResponseParser
}

// NewService creates an AI service backed by the given completion client.
func NewService(client CompletionClient, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:  client,
		logger:  logger,
		prompts: NewPromptBuilder(),
	}
}

func (s *Service) complete(ctx context.Context, prompt Prompt, history []Message) (string, error) {
	messages := history
	if prompt.User != "" {
		messages = append(messages, Message{Role: model.RoleUser, Content: prompt.User})
	}
	return s.client.Complete(ctx, CompletionRequest{
		System:           prompt.System,
		Messages:         messages,
		Temperature:      prompt.Temperature,
		StructuredOutput: prompt.Structured,
	})
}

// ParseTransaction extracts a structured transaction from free text.
func (s *Service) ParseTransaction(ctx context.Context, input string) (*ParsedTransaction, error) {
	content, err := s.complete(ctx, s.prompts.ParseTransaction(input), nil)
	if err != nil {
		return nil, err
	}
	parsed, err := s.parser.ParseTransaction(content)
	if err != nil {
		s.logger.Debug("transaction parse failed", "response", content, "error", err)
		return nil, err
	}
	return parsed, nil
}

// Categorize suggests a category for a transaction description and amount.
func (s *Service) Categorize(ctx context.Context, description string, amount float64) (*CategorySuggestion, error) {
	content, err := s.complete(ctx, s.prompts.Categorize(description, amount), nil)
	if err != nil {
		return nil, err
	}
	return s.parser.ParseCategorySuggestion(content)
}

// GenerateInsights produces 3-5 insights from recent transactions and budgets.
func (s *Service) GenerateInsights(ctx context.Context, transactions []model.Transaction, budgets []model.Budget) ([]Insight, error) {
	content, err := s.complete(ctx, s.prompts.Insights(transactions, budgets), nil)
	if err != nil {
		return nil, err
	}
	return s.parser.ParseInsights(content)
}

// SuggestGoals produces 3-5 savings goal suggestions. Income may be nil when unknown.
func (s *Service) SuggestGoals(ctx context.Context, income *float64, spending float64, breakdown []model.CategorySpending) ([]GoalSuggestion, error) {
	content, err := s.complete(ctx, s.prompts.Goals(income, spending, breakdown), nil)
	if err != nil {
		return nil, err
	}
	return s.parser.ParseGoals(content)
}

// Chat sends the conversation history with the financial-context system
// prompt and returns the assistant's reply verbatim.
func (s *Service) Chat(ctx context.Context, history []model.ChatMessage, fc model.FinancialContext) (string, error) {
	messages := make([]Message, 0, len(history))
	for _, msg := range history {
		messages = append(messages, Message{Role: msg.Role, Content: msg.Content})
	}

	content, err := s.complete(ctx, s.prompts.Chat(fc), messages)
	if err != nil {
		return "", err
	}
	return s.parser.ParseChat(content), nil
}
