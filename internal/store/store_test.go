package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"sente/internal/ledger"
	"sente/internal/money"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func buildSession(t *testing.T, budget string, values ...string) *ledger.Session {
	t.Helper()
	b, err := money.Parse(budget)
	if err != nil {
		t.Fatalf("parse budget %q: %v", budget, err)
	}
	s, err := ledger.NewSession(b)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	for i, v := range values {
		amt, err := money.Parse(v)
		if err != nil {
			t.Fatalf("parse value %q: %v", v, err)
		}
		if _, err := s.Record(itemName(i), amt); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	return s
}

func itemName(i int) string {
	return "item " + string(rune('a'+i))
}

func TestSaveAndGetSession(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	s := buildSession(t, "100000", "40000", "2500.50")
	ended := time.Now()

	if err := st.SaveSession(ctx, s, ended, "UGX"); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	got, sum, err := st.GetSession(ctx, s.ID.String())
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if sum.TxnCount != 2 {
		t.Fatalf("TxnCount = %d, want 2", sum.TxnCount)
	}
	if sum.Currency != "UGX" {
		t.Fatalf("Currency = %q, want UGX", sum.Currency)
	}
	if got.Budget() != s.Budget() {
		t.Fatalf("restored Budget = %v, want %v", got.Budget(), s.Budget())
	}
	if got.Total() != s.Total() {
		t.Fatalf("restored Total = %v, want %v", got.Total(), s.Total())
	}

	wantEntries := s.Entries()
	gotEntries := got.Entries()
	if len(gotEntries) != len(wantEntries) {
		t.Fatalf("restored %d entries, want %d", len(gotEntries), len(wantEntries))
	}
	for i := range wantEntries {
		if gotEntries[i].Description != wantEntries[i].Description {
			t.Fatalf("entry %d Description = %q, want %q", i, gotEntries[i].Description, wantEntries[i].Description)
		}
		if gotEntries[i].Value != wantEntries[i].Value {
			t.Fatalf("entry %d Value = %v, want %v", i, gotEntries[i].Value, wantEntries[i].Value)
		}
		if gotEntries[i].CumulativeSpent != wantEntries[i].CumulativeSpent {
			t.Fatalf("entry %d CumulativeSpent = %v, want %v", i, gotEntries[i].CumulativeSpent, wantEntries[i].CumulativeSpent)
		}
	}
}

func TestGetSessionByPrefix(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	s := buildSession(t, "50000", "20000")
	if err := st.SaveSession(ctx, s, time.Now(), "UGX"); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	_, sum, err := st.GetSession(ctx, s.ID.String()[:8])
	if err != nil {
		t.Fatalf("GetSession by prefix: %v", err)
	}
	if sum.ID != s.ID {
		t.Fatalf("prefix lookup returned %s, want %s", sum.ID, s.ID)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	st := openTestStore(t)

	_, _, err := st.GetSession(context.Background(), "deadbeef")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetSession error = %v, want ErrNotFound", err)
	}
}

func TestListSessionsOrderAndLimit(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	first := buildSession(t, "1000", "100")
	second := buildSession(t, "2000", "200")
	// Force distinct started_at ordering.
	first.StartedAt = time.Now().Add(-time.Hour)
	second.StartedAt = time.Now()

	if err := st.SaveSession(ctx, first, first.StartedAt.Add(time.Minute), "UGX"); err != nil {
		t.Fatalf("SaveSession(first): %v", err)
	}
	if err := st.SaveSession(ctx, second, second.StartedAt.Add(time.Minute), "UGX"); err != nil {
		t.Fatalf("SaveSession(second): %v", err)
	}

	all, err := st.ListSessions(ctx, 0)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("ListSessions returned %d, want 2", len(all))
	}
	if all[0].ID != second.ID {
		t.Fatal("ListSessions not ordered most recent first")
	}

	limited, err := st.ListSessions(ctx, 1)
	if err != nil {
		t.Fatalf("ListSessions(limit=1): %v", err)
	}
	if len(limited) != 1 || limited[0].ID != second.ID {
		t.Fatalf("limited list = %v", limited)
	}
}

func TestSaveSessionIsIdempotent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	s := buildSession(t, "5000", "100", "200")
	if err := st.SaveSession(ctx, s, time.Now(), "UGX"); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := st.SaveSession(ctx, s, time.Now(), "UGX"); err != nil {
		t.Fatalf("second save: %v", err)
	}

	count, err := st.SessionCount(ctx)
	if err != nil {
		t.Fatalf("SessionCount: %v", err)
	}
	if count != 1 {
		t.Fatalf("SessionCount = %d, want 1", count)
	}

	got, _, err := st.GetSession(ctx, s.ID.String())
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("entries after re-save = %d, want 2", got.Len())
	}
}

func TestDeleteSessionCascades(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	s := buildSession(t, "5000", "100")
	if err := st.SaveSession(ctx, s, time.Now(), "UGX"); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	if err := st.DeleteSession(ctx, s.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, _, err := st.GetSession(ctx, s.ID.String()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetSession after delete = %v, want ErrNotFound", err)
	}

	var orphans int
	err := st.db.QueryRow("SELECT COUNT(*) FROM transactions WHERE session_id = ?", s.ID.String()).Scan(&orphans)
	if err != nil {
		t.Fatalf("count orphans: %v", err)
	}
	if orphans != 0 {
		t.Fatalf("orphaned transactions = %d, want 0", orphans)
	}
}

func TestPruneOlderThan(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	old := buildSession(t, "1000", "50")
	old.StartedAt = time.Now().AddDate(0, -2, 0)
	recent := buildSession(t, "1000", "50")

	if err := st.SaveSession(ctx, old, old.StartedAt, "UGX"); err != nil {
		t.Fatalf("save old: %v", err)
	}
	if err := st.SaveSession(ctx, recent, time.Now(), "UGX"); err != nil {
		t.Fatalf("save recent: %v", err)
	}

	n, err := st.PruneOlderThan(ctx, time.Now().AddDate(0, -1, 0))
	if err != nil {
		t.Fatalf("PruneOlderThan: %v", err)
	}
	if n != 1 {
		t.Fatalf("pruned %d sessions, want 1", n)
	}

	count, _ := st.SessionCount(ctx)
	if count != 1 {
		t.Fatalf("SessionCount after prune = %d, want 1", count)
	}
}
