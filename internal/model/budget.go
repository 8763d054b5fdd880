package model

// Budget is an envelope: a spending category with an allocated limit and the
// amount spent against it so far in the current period.
type Budget struct {
	ID          string
	Category    string
	Period      string // "monthly" is the only period the apps use today
	Limit       float64
	Spent       float64
	IsEssential bool
}

// Remaining returns the unspent portion of the envelope.
func (b *Budget) Remaining() float64 {
	return b.Limit - b.Spent
}

// PercentUsed returns spent/limit as a 0-based fraction. Returns 0 when the
// limit is not positive.
func (b *Budget) PercentUsed() float64 {
	if b.Limit <= 0 {
		return 0
	}
	return b.Spent / b.Limit
}
