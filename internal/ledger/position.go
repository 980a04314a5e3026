package ledger

import "sente/internal/money"

// Position classifies a running total against a budget ceiling.
type Position int

const (
	// Under means the total is strictly below the budget.
	Under Position = iota
	// Exact means the total equals the budget to the cent.
	Exact
	// Over means the total strictly exceeds the budget (a breach).
	Over
)

// Classify compares a total against a budget. The comparison is exact
// integer-cent arithmetic, so Exact is a reachable state.
func Classify(total, budget money.Amount) Position {
	switch {
	case total > budget:
		return Over
	case total == budget:
		return Exact
	default:
		return Under
	}
}

func (p Position) String() string {
	switch p {
	case Under:
		return "under budget"
	case Exact:
		return "on budget"
	case Over:
		return "over budget"
	default:
		return "unknown"
	}
}
