package main

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/futureself/internal/ai"
)

func TestSortInsightsByPriority(t *testing.T) {
	insights := []ai.Insight{
		{Title: "low one", Priority: ai.PriorityLow},
		{Title: "medium one", Priority: ai.PriorityMedium},
		{Title: "high one", Priority: ai.PriorityHigh},
		{Title: "medium two", Priority: ai.PriorityMedium},
		{Title: "high two", Priority: ai.PriorityHigh},
	}

	sortInsightsByPriority(insights)

	require.Len(t, insights, 5)
	assert.Equal(t, "high one", insights[0].Title)
	assert.Equal(t, "high two", insights[1].Title, "stable within a priority")
	assert.Equal(t, "medium one", insights[2].Title)
	assert.Equal(t, "medium two", insights[3].Title)
	assert.Equal(t, "low one", insights[4].Title)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{
			name:  "short string unchanged",
			input: "Coffee",
			n:     10,
			want:  "Coffee",
		},
		{
			name:  "exact length unchanged",
			input: "Coffee",
			n:     6,
			want:  "Coffee",
		},
		{
			name:  "long string gets ellipsis",
			input: "Trader Joe's downtown",
			n:     10,
			want:  "Trader Jo…",
		},
		{
			name:  "multi-byte runes are not split",
			input: "Café Crème déjeuner",
			n:     10,
			want:  "Café Crèm…",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
