package model

import "time"

// Goal is a savings goal, either user-created or accepted from an AI suggestion.
type Goal struct {
	CreatedAt       time.Time
	ID              string
	Name            string
	Priority        string // "high", "medium", "low"
	Strategy        string
	Rationale       string
	TargetAmount    float64
	CurrentAmount   float64
	TimeframeMonths int
	IsActive        bool
}

// Progress returns completion as a fraction in [0,1].
func (g *Goal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	p := g.CurrentAmount / g.TargetAmount
	if p > 1 {
		return 1
	}
	return p
}
