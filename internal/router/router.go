// Package router classifies free-text user messages and drives the right
// prompt/parse pipeline, folding results back into conversation state and
// persisted records.
package router

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/futureself/internal/model"
	"github.com/Veraticus/futureself/internal/service"
)

// SyntheticFollowUp is the internal message used to re-invoke the
// categorization branch after an Apply/Skip. It routes exactly like a
// user-authored message but is never appended to visible history.
const SyntheticFollowUp = "categorize next transaction"

// ChatFallbackMessage is appended as an assistant turn when the chat
// pipeline fails, so the conversation stays coherent.
const ChatFallbackMessage = "Sorry, I'm having trouble responding right now. Please try again."

// EventKind identifies a persisted-record change dependent views should react to.
type EventKind int

// Router events.
const (
	// EventTransactionCreated fires when the transaction branch persists a
	// newly parsed transaction.
	EventTransactionCreated EventKind = iota + 1
	// EventTransactionCategorized fires when an Apply writes a category back
	// to a transaction record.
	EventTransactionCategorized
)

// Event is a discrete record-change notification emitted by the router.
type Event struct {
	TransactionID string
	Category      string
	Kind          EventKind
}

// Result carries the conversation turns and record events produced by one
// routed message. Turns are in append order; the UI layer subscribes to
// these values instead of observing shared mutable state.
type Result struct {
	Turns  []model.ChatMessage
	Events []Event
}

// Router dispatches user messages to the transaction, categorization, or
// general-chat pipeline. One outstanding request at a time per conversation;
// it holds no state between calls beyond what the store persists.
type Router struct {
	store  service.Storage
	ai     service.AIService
	logger *slog.Logger
	now    func() time.Time
}

// New creates a router. The dependency graph is constructed once at process
// start and passed in explicitly.
func New(store service.Storage, aiService service.AIService, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		store:  store,
		ai:     aiService,
		logger: logger,
		now:    time.Now,
	}
}

// HandleMessage routes one user message. Transaction-parse failures fall
// through to general chat rather than surfacing; chat failures return the
// error alongside a Result whose last turn is the static fallback message,
// so the caller can keep the conversation coherent while resetting its
// processing state.
func (r *Router) HandleMessage(ctx context.Context, conversationID, text string) (*Result, error) {
	res := &Result{}

	synthetic := strings.Contains(strings.ToLower(text), SyntheticFollowUp)
	if !synthetic {
		if err := r.appendTurn(ctx, res, conversationID, model.RoleUser, text); err != nil {
			return nil, err
		}
	}

	switch Classify(text) {
	case TaskTransaction:
		handled, err := r.handleTransaction(ctx, res, conversationID, text)
		if err != nil {
			return res, err
		}
		if handled {
			return res, nil
		}
		// Parse failed; fall through to general chat.

	case TaskCategorization:
		count, err := r.store.CountUncategorized(ctx)
		if err != nil {
			return res, err
		}
		if count > 0 {
			return res, r.handleCategorization(ctx, res)
		}
		// Nothing to categorize; fall through to general chat.
	}

	return res, r.handleChat(ctx, res, conversationID)
}

// handleTransaction runs the parse pipeline. Returns handled=false when the
// parse failed and the message should be treated as general chat.
func (r *Router) handleTransaction(ctx context.Context, res *Result, conversationID, text string) (bool, error) {
	parsed, err := r.ai.ParseTransaction(ctx, text)
	if err != nil {
		r.logger.Warn("transaction parse failed, falling back to chat",
			"conversation_id", conversationID,
			"error", err)
		return false, nil
	}

	category := parsed.Category
	if category == "" {
		category = model.UncategorizedCategory
	}

	now := r.now()
	tx := &model.Transaction{
		ID:                 uuid.NewString(),
		Amount:             parsed.Amount,
		Description:        parsed.Description,
		Category:           category,
		Date:               parseTransactionDate(parsed.Date, now),
		RawInput:           text,
		CategoryConfidence: parsed.Confidence,
		AIProcessed:        true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	tx.Hash = tx.GenerateHash()

	if err := r.store.SaveTransaction(ctx, tx); err != nil {
		return false, err
	}

	confirmation := fmt.Sprintf("✓ Added transaction: %s - $%.2f\nCategory: %s",
		parsed.Description, parsed.Amount, category)
	if err := r.appendTurn(ctx, res, conversationID, model.RoleAssistant, confirmation); err != nil {
		return false, err
	}

	res.Events = append(res.Events, Event{
		Kind:          EventTransactionCreated,
		TransactionID: tx.ID,
		Category:      category,
	})

	return true, nil
}

// handleCategorization fetches the most recent uncategorized transaction and
// produces a suggestion turn the UI renders as Apply/Skip actions. The
// suggestion turn is transient and not persisted.
func (r *Router) handleCategorization(ctx context.Context, res *Result) error {
	tx, err := r.store.GetLatestUncategorized(ctx)
	if err != nil {
		return err
	}

	suggestion, err := r.ai.Categorize(ctx, tx.Description, tx.Amount)
	if err != nil {
		return err
	}

	res.Turns = append(res.Turns, model.ChatMessage{
		ID:                 uuid.NewString(),
		Role:               model.RoleAssistant,
		Content:            fmt.Sprintf("I suggest categorizing '%s' ($%.2f) as:", tx.Description, tx.Amount),
		Timestamp:          r.now(),
		SuggestedCategory:  suggestion.Category,
		CategoryConfidence: suggestion.Confidence,
		TransactionID:      tx.ID,
	})

	return nil
}

func (r *Router) handleChat(ctx context.Context, res *Result, conversationID string) error {
	fc, err := BuildFinancialContext(ctx, r.store, r.now())
	if err != nil {
		return err
	}

	history, err := r.store.GetMessages(ctx, conversationID)
	if err != nil {
		return err
	}

	reply, err := r.ai.Chat(ctx, history, fc)
	if err != nil {
		res.Turns = append(res.Turns, model.ChatMessage{
			ID:             uuid.NewString(),
			ConversationID: conversationID,
			Role:           model.RoleAssistant,
			Content:        ChatFallbackMessage,
			Timestamp:      r.now(),
		})
		return err
	}

	return r.appendTurn(ctx, res, conversationID, model.RoleAssistant, reply)
}

// ApplySuggestion writes the suggested category back to the transaction,
// emits a categorized event, and, when more uncategorized transactions
// remain, re-invokes the router with the synthetic follow-up once the apply
// has been fully processed.
func (r *Router) ApplySuggestion(ctx context.Context, conversationID, transactionID, category string, confidence float64) (*Result, error) {
	tx, err := r.store.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if err := r.store.UpdateTransactionCategory(ctx, transactionID, category, confidence); err != nil {
		return nil, err
	}

	res := &Result{
		Turns: []model.ChatMessage{{
			ID:        uuid.NewString(),
			Role:      model.RoleAssistant,
			Content:   fmt.Sprintf("✓ Applied %s to %s", category, tx.Description),
			Timestamp: r.now(),
		}},
		Events: []Event{{
			Kind:          EventTransactionCategorized,
			TransactionID: transactionID,
			Category:      category,
		}},
	}

	return r.continueCategorization(ctx, res, conversationID)
}

// SkipSuggestion advances conversation state without touching the
// transaction, then continues with the next uncategorized transaction when
// one remains.
func (r *Router) SkipSuggestion(ctx context.Context, conversationID string) (*Result, error) {
	res := &Result{
		Turns: []model.ChatMessage{{
			ID:        uuid.NewString(),
			Role:      model.RoleAssistant,
			Content:   "Skipped",
			Timestamp: r.now(),
		}},
	}

	return r.continueCategorization(ctx, res, conversationID)
}

func (r *Router) continueCategorization(ctx context.Context, res *Result, conversationID string) (*Result, error) {
	count, err := r.store.CountUncategorized(ctx)
	if err != nil {
		return res, err
	}
	if count == 0 {
		return res, nil
	}

	next, err := r.HandleMessage(ctx, conversationID, SyntheticFollowUp)
	if next != nil {
		res.Turns = append(res.Turns, next.Turns...)
		res.Events = append(res.Events, next.Events...)
	}
	return res, err
}

// appendTurn persists a message and appends it to the result's turns.
func (r *Router) appendTurn(ctx context.Context, res *Result, conversationID, role, content string) error {
	msg := model.ChatMessage{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		Timestamp:      r.now(),
	}
	if err := r.store.SaveMessage(ctx, &msg); err != nil {
		return err
	}
	res.Turns = append(res.Turns, msg)
	return nil
}

// parseTransactionDate accepts full ISO-8601 timestamps or bare dates,
// falling back to now when the model returns something unparseable.
func parseTransactionDate(value string, now time.Time) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return now
}
