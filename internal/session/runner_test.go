package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"sente/internal/ledger"
	"sente/internal/money"
)

func newTestRunner(t *testing.T, input string) (*Runner, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	r := NewRunner(strings.NewReader(input), &out)
	t.Cleanup(r.Close)
	return r, &out
}

func newTestSession(t *testing.T, budget string) *ledger.Session {
	t.Helper()
	b, err := money.Parse(budget)
	if err != nil {
		t.Fatalf("parse budget %q: %v", budget, err)
	}
	s, err := ledger.NewSession(b)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestPromptBudgetAcceptsValidInput(t *testing.T) {
	r, _ := newTestRunner(t, "100000\n")

	got, err := r.PromptBudget(context.Background())
	if err != nil {
		t.Fatalf("PromptBudget: %v", err)
	}
	if got != money.FromShillings(100000) {
		t.Fatalf("budget = %v, want 100,000.00", got)
	}
}

func TestPromptBudgetRetriesUntilValid(t *testing.T) {
	r, out := newTestRunner(t, "a lot\n-5\n50000\n")

	got, err := r.PromptBudget(context.Background())
	if err != nil {
		t.Fatalf("PromptBudget: %v", err)
	}
	if got != money.FromShillings(50000) {
		t.Fatalf("budget = %v, want 50,000.00", got)
	}
	if !strings.Contains(out.String(), "doesn't look like an amount") {
		t.Fatalf("missing non-numeric warning:\n%s", out)
	}
	if !strings.Contains(out.String(), "can't be negative") {
		t.Fatalf("missing negative warning:\n%s", out)
	}
}

func TestPromptBudgetAcceptsZero(t *testing.T) {
	r, _ := newTestRunner(t, "0\n")

	got, err := r.PromptBudget(context.Background())
	if err != nil {
		t.Fatalf("PromptBudget: %v", err)
	}
	if !got.IsZero() {
		t.Fatalf("budget = %v, want 0.00", got)
	}
}

func TestLogTransactionRecords(t *testing.T) {
	r, out := newTestRunner(t, "Rolex\n40000\n")
	s := newTestSession(t, "100000")

	outcome, err := r.LogTransaction(context.Background(), s)
	if err != nil {
		t.Fatalf("LogTransaction: %v", err)
	}
	if outcome != ledger.OutcomeRecorded {
		t.Fatalf("outcome = %v, want recorded", outcome)
	}
	if s.Len() != 1 || s.Total() != money.FromShillings(40000) {
		t.Fatalf("session state: len=%d total=%v", s.Len(), s.Total())
	}
	if !strings.Contains(out.String(), "Remaining balance: UGX 60,000.00") {
		t.Fatalf("missing remaining-balance report:\n%s", out)
	}
}

func TestLogTransactionSkipsBlankDescription(t *testing.T) {
	r, out := newTestRunner(t, "\n")
	s := newTestSession(t, "100000")

	outcome, err := r.LogTransaction(context.Background(), s)
	if err != nil {
		t.Fatalf("LogTransaction: %v", err)
	}
	if outcome != ledger.OutcomeSkipped {
		t.Fatalf("outcome = %v, want skipped", outcome)
	}
	if s.Len() != 0 {
		t.Fatalf("blank description created an entry: len=%d", s.Len())
	}
	if !strings.Contains(out.String(), "Skipped") {
		t.Fatalf("missing skip notice:\n%s", out)
	}
}

func TestLogTransactionRejectsThenAccepts(t *testing.T) {
	// -5 is rejected with a warning, then 20000 is accepted against a
	// 50,000 budget leaving 30,000.
	r, out := newTestRunner(t, "groceries\n-5\n20000\n")
	s := newTestSession(t, "50000")

	outcome, err := r.LogTransaction(context.Background(), s)
	if err != nil {
		t.Fatalf("LogTransaction: %v", err)
	}
	if outcome != ledger.OutcomeRecorded {
		t.Fatalf("outcome = %v, want recorded", outcome)
	}
	if s.Total() != money.FromShillings(20000) {
		t.Fatalf("total = %v, want 20,000.00", s.Total())
	}
	if !strings.Contains(out.String(), "greater than zero") {
		t.Fatalf("missing non-positive warning:\n%s", out)
	}
	if !strings.Contains(out.String(), "Remaining balance: UGX 30,000.00") {
		t.Fatalf("missing remaining balance:\n%s", out)
	}
}

func TestLogTransactionLoopsOnGarbage(t *testing.T) {
	r, out := newTestRunner(t, "airtime\nfive\n0\n-3\n2500\n")
	s := newTestSession(t, "10000")

	outcome, err := r.LogTransaction(context.Background(), s)
	if err != nil {
		t.Fatalf("LogTransaction: %v", err)
	}
	if outcome != ledger.OutcomeRecorded {
		t.Fatalf("outcome = %v, want recorded", outcome)
	}
	if s.Len() != 1 {
		t.Fatalf("invalid attempts created entries: len=%d", s.Len())
	}
	warnings := strings.Count(out.String(), "Try again.") + strings.Count(out.String(), "Enter a number")
	if warnings < 3 {
		t.Fatalf("expected a warning per bad input, got %d:\n%s", warnings, out)
	}
}

func TestLogTransactionEndSignals(t *testing.T) {
	for _, signal := range []string{"q", "Q", "quit", "QUIT", "done", "DoNe", " done "} {
		r, _ := newTestRunner(t, "whatever\n"+signal+"\n")
		s := newTestSession(t, "1000")

		outcome, err := r.LogTransaction(context.Background(), s)
		if err != nil {
			t.Fatalf("LogTransaction(%q): %v", signal, err)
		}
		if outcome != ledger.OutcomeEnded {
			t.Fatalf("outcome for %q = %v, want ended", signal, outcome)
		}
		if s.Len() != 0 {
			t.Fatalf("end signal %q recorded an entry", signal)
		}
	}
}

func TestNonSignalTextIsInvalidNotEnd(t *testing.T) {
	// "exit" is not an end signal; it warns and the loop continues.
	r, out := newTestRunner(t, "airtime\nexit\n500\n")
	s := newTestSession(t, "1000")

	outcome, err := r.LogTransaction(context.Background(), s)
	if err != nil {
		t.Fatalf("LogTransaction: %v", err)
	}
	if outcome != ledger.OutcomeRecorded {
		t.Fatalf("outcome = %v, want recorded", outcome)
	}
	if !strings.Contains(out.String(), "Enter a number") {
		t.Fatalf("missing warning for %q:\n%s", "exit", out)
	}
}

func TestRunScenarioRolex(t *testing.T) {
	// Budget 100,000, one 40,000 entry, then done. One ledger entry,
	// total 40,000, surplus 60,000.
	r, out := newTestRunner(t, "Rolex\n40000\nmisc\ndone\n")
	s := newTestSession(t, "100000")

	if err := r.Run(context.Background(), s); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if s.Len() != 1 {
		t.Fatalf("ledger entries = %d, want 1", s.Len())
	}
	if s.Total() != money.FromShillings(40000) {
		t.Fatalf("total = %v, want 40,000.00", s.Total())
	}
	text := out.String()
	if !strings.Contains(text, "SESSION REPORT") {
		t.Fatalf("missing report title:\n%s", text)
	}
	if !strings.Contains(text, "Surplus: UGX 60,000.00") {
		t.Fatalf("missing surplus:\n%s", text)
	}
	if !strings.Contains(text, "Rolex") {
		t.Fatalf("ledger table missing item:\n%s", text)
	}
}

func TestRunBreachByOneCent(t *testing.T) {
	// Zero budget, a 0.01 entry breaches by 0.01.
	r, out := newTestRunner(t, "sweets\n0.01\nx\nq\n")
	s := newTestSession(t, "0")

	if err := r.Run(context.Background(), s); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if s.Position() != ledger.Over {
		t.Fatalf("position = %v, want Over", s.Position())
	}
	text := out.String()
	if !strings.Contains(text, "Over budget by UGX 0.01") {
		t.Fatalf("missing breach delta:\n%s", text)
	}
	if !strings.Contains(text, "Deficit: UGX 0.01") {
		t.Fatalf("missing deficit in report:\n%s", text)
	}
}

func TestRunExactBudget(t *testing.T) {
	r, out := newTestRunner(t, "rent\n50000\nx\ndone\n")
	s := newTestSession(t, "50000")

	if err := r.Run(context.Background(), s); err != nil {
		t.Fatalf("Run: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "Exactly on budget.") {
		t.Fatalf("missing exact-budget line:\n%s", text)
	}
	if !strings.Contains(text, "Surplus: UGX 0.00") {
		t.Fatalf("missing zero surplus:\n%s", text)
	}
}

func TestRunEndsGracefullyOnEOF(t *testing.T) {
	// Input dries up at the amount prompt; the report still prints.
	r, out := newTestRunner(t, "lunch\n")
	s := newTestSession(t, "10000")

	if err := r.Run(context.Background(), s); err != nil {
		t.Fatalf("Run after EOF: %v", err)
	}
	if !strings.Contains(out.String(), "No transactions were recorded") {
		t.Fatalf("missing empty-ledger notice:\n%s", out)
	}
}

func TestRunInterrupted(t *testing.T) {
	// A reader that never delivers simulates a user sitting at the
	// prompt; cancelling the context must end the session cleanly.
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	var out bytes.Buffer
	r := NewRunner(pr, &out)
	t.Cleanup(r.Close)
	s := newTestSession(t, "10000")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := r.Run(ctx, s); err != nil {
		t.Fatalf("Run after interrupt: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "Interrupted") {
		t.Fatalf("missing interrupt notice:\n%s", text)
	}
	if !strings.Contains(text, "SESSION REPORT") {
		t.Fatalf("interrupt skipped the report:\n%s", text)
	}
}

func TestPromptBudgetAfterClose(t *testing.T) {
	// A reader that never delivers keeps the pump parked in its read, so
	// only the closed runner can release the prompt.
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	var out bytes.Buffer
	r := NewRunner(pr, &out)
	r.Close()
	r.Close() // idempotent

	if _, err := r.PromptBudget(context.Background()); !errors.Is(err, io.EOF) {
		t.Fatalf("PromptBudget after Close = %v, want io.EOF", err)
	}
}

func TestRunningTotalAccumulatesAcrossAttempts(t *testing.T) {
	input := strings.Join([]string{
		"matooke", "12000",
		"", // skipped attempt
		"charcoal", "8000.50",
		"x", "done",
	}, "\n") + "\n"
	r, _ := newTestRunner(t, input)
	s := newTestSession(t, "100000")

	if err := r.Run(context.Background(), s); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if s.Len() != 2 {
		t.Fatalf("entries = %d, want 2", s.Len())
	}
	want := money.FromShillings(12000).Add(money.FromShillings(8000.50))
	if s.Total() != want {
		t.Fatalf("total = %v, want %v", s.Total(), want)
	}

	entries := s.Entries()
	if entries[0].CumulativeSpent != money.FromShillings(12000) {
		t.Fatalf("first running total = %v", entries[0].CumulativeSpent)
	}
	if entries[1].CumulativeSpent != want {
		t.Fatalf("second running total = %v", entries[1].CumulativeSpent)
	}
}

func TestWriteReportTip(t *testing.T) {
	r, out := newTestRunner(t, "")
	s := newTestSession(t, "100000")
	if _, err := s.Record("solo item", money.FromShillings(1000)); err != nil {
		t.Fatalf("Record: %v", err)
	}

	r.WriteReport(s)
	if !strings.Contains(out.String(), "Tip: logging at least 3 transactions") {
		t.Fatalf("missing low-count tip:\n%s", out)
	}

	// The tip is informational only and disabled when the threshold is 0.
	r2, out2 := newTestRunner(t, "")
	r2.MinRecommended = 0
	r2.WriteReport(s)
	if strings.Contains(out2.String(), "Tip:") {
		t.Fatalf("tip printed with threshold disabled:\n%s", out2)
	}
}
