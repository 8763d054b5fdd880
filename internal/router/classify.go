package router

import "strings"

// TaskKind identifies which pipeline handles an incoming message.
type TaskKind int

// Task kinds, in classification priority order.
const (
	// TaskChat is the general conversation fallback.
	TaskChat TaskKind = iota
	// TaskTransaction is a natural-language transaction creation request.
	TaskTransaction
	// TaskCategorization is a request for categorization help.
	TaskCategorization
)

func (k TaskKind) String() string {
	switch k {
	case TaskTransaction:
		return "transaction"
	case TaskCategorization:
		return "categorization"
	default:
		return "chat"
	}
}

// Keyword lists the classifier matches against the lower-cased message.
// These are deliberately simplistic and order-dependent; keep them stable
// for behavioral compatibility and swap the whole function if a real
// classifier ever replaces the heuristic.
var (
	transactionKeywords    = []string{"spent", "paid", "bought", "cost", "$"}
	categorizationKeywords = []string{"categorize", "category", "organize"}
)

// Classify applies the keyword heuristics to a free-text user message.
// A message matching transaction keywords but not categorization keywords is
// a transaction request; any categorization match takes the categorization
// path; everything else is general chat. Whether a categorization request
// can actually be served (uncategorized transactions exist) is the router's
// call, not the classifier's.
func Classify(text string) TaskKind {
	lower := strings.ToLower(text)

	isTransaction := containsAny(lower, transactionKeywords) ||
		(strings.Contains(lower, "add") && strings.Contains(lower, "transaction"))
	isCategorization := containsAny(lower, categorizationKeywords)

	switch {
	case isTransaction && !isCategorization:
		return TaskTransaction
	case isCategorization:
		return TaskCategorization
	default:
		return TaskChat
	}
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
