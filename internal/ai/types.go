package ai

// ParsedTransaction is the structured result of natural-language transaction
// parsing. Category is empty when the model could not pick one.
type ParsedTransaction struct {
	Description string  `json:"description"`
	Date        string  `json:"date"` // ISO-8601
	Category    string  `json:"category,omitempty"`
	Amount      float64 `json:"amount"`
	Confidence  float64 `json:"confidence"`
}

// CategorySuggestion is the result of the categorization task.
type CategorySuggestion struct {
	Category   string  `json:"category"`
	Reasoning  string  `json:"reasoning"`
	Confidence float64 `json:"confidence"`
}

// Insight types returned by the insights task.
const (
	InsightTypePattern        = "pattern"
	InsightTypeBudgetAlert    = "budget_alert"
	InsightTypeProgress       = "progress"
	InsightTypeIncomeSpending = "income_spending"
)

// Insight priorities, shared with goal suggestions.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Insight is one generated financial insight.
type Insight struct {
	Type       string `json:"type"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	Priority   string `json:"priority"`
	Actionable bool   `json:"actionable"`
}

// GoalSuggestion is one suggested savings goal.
type GoalSuggestion struct {
	Name            string  `json:"name"`
	Priority        string  `json:"priority"`
	Strategy        string  `json:"strategy"`
	Rationale       string  `json:"rationale"`
	TargetAmount    float64 `json:"targetAmount"`
	TimeframeMonths int     `json:"timeframeMonths"`
}

// Response envelopes the model wraps list results in.
type insightsEnvelope struct {
	Insights []Insight `json:"insights"`
}

type goalsEnvelope struct {
	Goals []GoalSuggestion `json:"goals"`
}
