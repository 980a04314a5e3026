// Package ledger holds the session data model: a budget ceiling and an
// append-only record of transactions with running totals.
package ledger

import (
	"errors"
	"strings"
	"time"

	"sente/internal/money"

	"github.com/google/uuid"
)

var (
	// ErrNegativeBudget rejects a budget below zero.
	ErrNegativeBudget = errors.New("budget cannot be negative")
	// ErrEmptyDescription rejects a blank transaction description.
	ErrEmptyDescription = errors.New("description is empty")
	// ErrNonPositiveAmount rejects a transaction value of zero or less.
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
)

// Transaction is one recorded spend. CumulativeSpent is the session's
// running total immediately after this entry was appended. Transactions
// are never mutated or removed once recorded.
type Transaction struct {
	ID              uuid.UUID
	Description     string
	Value           money.Amount
	CumulativeSpent money.Amount
	At              time.Time
}

// Session owns one budget ceiling and its ledger. The ledger is
// append-only and insertion-ordered; total always equals the sum of all
// recorded values.
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time

	budget  money.Amount
	entries []Transaction
	total   money.Amount
}

// NewSession starts a session against the given budget ceiling.
// The budget is immutable for the session lifetime.
func NewSession(budget money.Amount) (*Session, error) {
	if budget.IsNegative() {
		return nil, ErrNegativeBudget
	}
	return &Session{
		ID:        uuid.New(),
		StartedAt: time.Now(),
		budget:    budget,
	}, nil
}

// Restore rebuilds a session from archived entries. The running total is
// recomputed from the entries so a stored session carries the same
// invariants as a live one.
func Restore(id uuid.UUID, budget money.Amount, startedAt time.Time, entries []Transaction) *Session {
	s := &Session{
		ID:        id,
		StartedAt: startedAt,
		budget:    budget,
		entries:   make([]Transaction, len(entries)),
	}
	copy(s.entries, entries)
	for _, e := range s.entries {
		s.total = s.total.Add(e.Value)
	}
	return s
}

// Record validates and appends one transaction, returning the entry as
// recorded. The description is trimmed; a blank description or a
// non-positive value leaves the session untouched.
func (s *Session) Record(description string, value money.Amount) (Transaction, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Transaction{}, ErrEmptyDescription
	}
	if !value.IsPositive() {
		return Transaction{}, ErrNonPositiveAmount
	}

	s.total = s.total.Add(value)
	txn := Transaction{
		ID:              uuid.New(),
		Description:     description,
		Value:           value,
		CumulativeSpent: s.total,
		At:              time.Now(),
	}
	s.entries = append(s.entries, txn)
	return txn, nil
}

// Budget returns the session's budget ceiling.
func (s *Session) Budget() money.Amount { return s.budget }

// Total returns the running total of all recorded values.
func (s *Session) Total() money.Amount { return s.total }

// Remaining returns budget minus total. Negative when over budget.
func (s *Session) Remaining() money.Amount { return s.budget.Sub(s.total) }

// Len returns the number of recorded transactions.
func (s *Session) Len() int { return len(s.entries) }

// Entries returns a copy of the ledger in insertion order.
func (s *Session) Entries() []Transaction {
	out := make([]Transaction, len(s.entries))
	copy(out, s.entries)
	return out
}

// Position classifies the current total against the budget.
func (s *Session) Position() Position { return Classify(s.total, s.budget) }
