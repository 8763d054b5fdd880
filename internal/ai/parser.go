package ai

import (
	"encoding/json"
)

// ResponseParser decodes raw completion text into typed results. Malformed
// JSON or a shape mismatch is a decode error; it never guesses or fills
// defaults, and never repairs the payload.
type ResponseParser struct{}

// ParseTransaction decodes a parsed-transaction payload.
func (ResponseParser) ParseTransaction(content string) (*ParsedTransaction, error) {
	var parsed ParsedTransaction
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, newError(ErrKindDecode, "invalid parsed transaction payload", err)
	}
	parsed.Confidence = clampConfidence(parsed.Confidence)
	return &parsed, nil
}

// ParseCategorySuggestion decodes a categorization payload.
func (ResponseParser) ParseCategorySuggestion(content string) (*CategorySuggestion, error) {
	var suggestion CategorySuggestion
	if err := json.Unmarshal([]byte(content), &suggestion); err != nil {
		return nil, newError(ErrKindDecode, "invalid category suggestion payload", err)
	}
	suggestion.Confidence = clampConfidence(suggestion.Confidence)
	return &suggestion, nil
}

// ParseInsights decodes an {"insights": [...]} envelope. Callers must
// tolerate an empty list.
func (ResponseParser) ParseInsights(content string) ([]Insight, error) {
	var envelope insightsEnvelope
	if err := json.Unmarshal([]byte(content), &envelope); err != nil {
		return nil, newError(ErrKindDecode, "invalid insights payload", err)
	}
	return envelope.Insights, nil
}

// ParseGoals decodes a {"goals": [...]} envelope.
func (ResponseParser) ParseGoals(content string) ([]GoalSuggestion, error) {
	var envelope goalsEnvelope
	if err := json.Unmarshal([]byte(content), &envelope); err != nil {
		return nil, newError(ErrKindDecode, "invalid goal suggestions payload", err)
	}
	return envelope.Goals, nil
}

// ParseChat returns conversational replies unmodified. No JSON unwrapping.
func (ResponseParser) ParseChat(content string) string {
	return content
}

// clampConfidence clamps model-reported confidence to [0,1]. The model is
// supposed to stay in range; this is defensive only.
func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
