// Package store archives finished budget sessions in SQLite.
//
// The archive is strictly off the hot path: a live session never depends
// on it, and callers treat open or save failures as warnings.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sente/internal/ledger"
	"sente/internal/money"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when no archived session matches an ID.
var ErrNotFound = errors.New("session not found")

// Store provides SQLite-backed session history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the history database.
func (st *Store) Close() error {
	return st.db.Close()
}

// SessionSummary is one archived session's header row.
type SessionSummary struct {
	ID        uuid.UUID
	StartedAt time.Time
	EndedAt   time.Time
	Budget    money.Amount
	Total     money.Amount
	Currency  string
	TxnCount  int
}

// SaveSession archives a finished session and its ledger.
func (st *Store) SaveSession(ctx context.Context, s *ledger.Session, endedAt time.Time, currency string) error {
	tx, err := st.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO sessions
		(id, started_at, ended_at, budget_cents, total_cents, currency, txn_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID.String(),
		s.StartedAt.UTC().Format(time.RFC3339),
		endedAt.UTC().Format(time.RFC3339),
		int64(s.Budget()), int64(s.Total()), currency, s.Len(),
	)
	if err != nil {
		return err
	}

	// Re-saving a session replaces its ledger wholesale.
	_, err = tx.ExecContext(ctx, "DELETE FROM transactions WHERE session_id = ?", s.ID.String())
	if err != nil {
		return err
	}

	for i, e := range s.Entries() {
		_, err = tx.ExecContext(ctx, `INSERT INTO transactions
			(id, session_id, seq, description, value_cents, cumulative_cents, at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.ID.String(), s.ID.String(), i, e.Description,
			int64(e.Value), int64(e.CumulativeSpent),
			e.At.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListSessions returns archived sessions, most recent first.
// A limit of 0 or less returns everything.
func (st *Store) ListSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	q := `SELECT id, started_at, ended_at, budget_cents, total_cents, currency, txn_count
		FROM sessions ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := st.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []SessionSummary
	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// GetSession loads one archived session by ID. A unique ID prefix is
// accepted, so `history show 3f2a` works without the full UUID.
func (st *Store) GetSession(ctx context.Context, id string) (*ledger.Session, SessionSummary, error) {
	rows, err := st.db.QueryContext(ctx, `SELECT id, started_at, ended_at, budget_cents, total_cents, currency, txn_count
		FROM sessions WHERE id LIKE ? || '%'`, id)
	if err != nil {
		return nil, SessionSummary{}, err
	}
	defer func() { _ = rows.Close() }()

	var matches []SessionSummary
	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, SessionSummary{}, err
		}
		matches = append(matches, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, SessionSummary{}, err
	}
	if len(matches) == 0 {
		return nil, SessionSummary{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if len(matches) > 1 {
		return nil, SessionSummary{}, fmt.Errorf("ambiguous session id %q (%d matches)", id, len(matches))
	}
	sum := matches[0]

	entries, err := st.loadEntries(ctx, sum.ID)
	if err != nil {
		return nil, SessionSummary{}, err
	}

	return ledger.Restore(sum.ID, sum.Budget, sum.StartedAt, entries), sum, nil
}

func (st *Store) loadEntries(ctx context.Context, sessionID uuid.UUID) ([]ledger.Transaction, error) {
	rows, err := st.db.QueryContext(ctx, `SELECT id, description, value_cents, cumulative_cents, at
		FROM transactions WHERE session_id = ? ORDER BY seq`, sessionID.String())
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []ledger.Transaction
	for rows.Next() {
		var (
			idStr, atStr  string
			value, cumul  int64
			e             ledger.Transaction
		)
		if err := rows.Scan(&idStr, &e.Description, &value, &cumul, &atStr); err != nil {
			return nil, err
		}
		e.ID, err = uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("parsing transaction id: %w", err)
		}
		e.Value = money.Amount(value)
		e.CumulativeSpent = money.Amount(cumul)
		e.At, _ = time.Parse(time.RFC3339, atStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteSession removes one archived session and its ledger.
func (st *Store) DeleteSession(ctx context.Context, id uuid.UUID) error {
	_, err := st.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id.String())
	return err
}

// PruneOlderThan removes sessions that started before the cutoff,
// returning how many were deleted.
func (st *Store) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := st.db.ExecContext(ctx, "DELETE FROM sessions WHERE started_at < ?",
		cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// SessionCount returns the number of archived sessions.
func (st *Store) SessionCount(ctx context.Context) (int, error) {
	var count int
	err := st.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sessions").Scan(&count)
	return count, err
}

func scanSummary(rows *sql.Rows) (SessionSummary, error) {
	var (
		sum                 SessionSummary
		idStr, start, end   string
		budget, total       int64
	)
	if err := rows.Scan(&idStr, &start, &end, &budget, &total, &sum.Currency, &sum.TxnCount); err != nil {
		return sum, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return sum, fmt.Errorf("parsing session id: %w", err)
	}
	sum.ID = id
	sum.Budget = money.Amount(budget)
	sum.Total = money.Amount(total)
	sum.StartedAt, _ = time.Parse(time.RFC3339, start)
	sum.EndedAt, _ = time.Parse(time.RFC3339, end)
	return sum, nil
}
