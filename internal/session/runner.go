// Package session drives the interactive budget session: prompt for a
// budget, log transactions until an end signal, then report.
//
// The runner reads lines from any io.Reader and writes to any io.Writer,
// so the whole conversation is testable without a terminal. Input flows
// through a pump goroutine so a blocked prompt can still be abandoned
// when the context is cancelled by an interrupt.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"sente/internal/cli"
	"sente/internal/ledger"
	"sente/internal/money"
)

const warnNotANumber = "  That doesn't look like an amount. Enter a number like 40000 or 499.99."

type lineResult struct {
	text string
	err  error
}

// Runner owns one interactive session conversation.
type Runner struct {
	out       io.Writer
	lines     chan lineResult
	done      chan struct{}
	closeOnce sync.Once

	// MinRecommended is the informational transaction-count threshold
	// mentioned in the final report. Zero disables the hint.
	MinRecommended int
}

// NewRunner wires a runner to the given input and output streams.
func NewRunner(in io.Reader, out io.Writer) *Runner {
	r := &Runner{
		out:            out,
		lines:          make(chan lineResult),
		done:           make(chan struct{}),
		MinRecommended: 3,
	}
	go pump(bufio.NewReader(in), r.lines, r.done)
	return r
}

// Close stops the input pump so an abandoned runner does not hold a
// goroutine. Reads after Close report end of input. Safe to call twice.
func (r *Runner) Close() {
	r.closeOnce.Do(func() { close(r.done) })
}

// pump feeds trimmed input lines to the channel until done closes. Once
// the reader fails (typically io.EOF) the same error is reported to
// every later read.
func pump(br *bufio.Reader, lines chan<- lineResult, done <-chan struct{}) {
	send := func(res lineResult) bool {
		select {
		case lines <- res:
			return true
		case <-done:
			return false
		}
	}

	for {
		line, err := br.ReadString('\n')
		text := strings.TrimSpace(line)
		if err != nil {
			if text != "" && !send(lineResult{text: text}) {
				return
			}
			for send(lineResult{err: err}) {
			}
			return
		}
		if !send(lineResult{text: text}) {
			return
		}
	}
}

func (r *Runner) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-r.done:
		return "", io.EOF
	case res := <-r.lines:
		return res.text, res.err
	}
}

// PromptBudget asks until a numeric, non-negative budget is supplied.
// Non-numeric and negative input each warn and re-prompt. The only
// non-recoverable outcomes are context cancellation and end of input.
func (r *Runner) PromptBudget(ctx context.Context) (money.Amount, error) {
	fmt.Fprintf(r.out, "\n  Budget for this session, in %s\n", cli.Currency())
	for {
		fmt.Fprint(r.out, "  > ")
		line, err := r.readLine(ctx)
		if err != nil {
			return 0, err
		}

		amt, perr := money.Parse(line)
		if perr != nil {
			fmt.Fprintln(r.out, warnNotANumber)
			continue
		}
		if amt.IsNegative() {
			fmt.Fprintln(r.out, "  A budget can't be negative. Try again.")
			continue
		}
		return amt, nil
	}
}

// LogTransaction runs one logging attempt against the session.
//
// A blank description skips the attempt without touching state. The
// amount prompt loops until a valid positive value or an end signal
// ("q", "quit" or "done", case-insensitive); non-numeric or non-positive
// amounts warn and re-prompt. Read failures surface as OutcomeEnded plus
// the error so the caller can wind the session down.
func (r *Runner) LogTransaction(ctx context.Context, s *ledger.Session) (ledger.Outcome, error) {
	fmt.Fprint(r.out, "\n  Item description (blank to skip)\n  > ")
	desc, err := r.readLine(ctx)
	if err != nil {
		return ledger.OutcomeEnded, err
	}
	if strings.TrimSpace(desc) == "" {
		fmt.Fprintln(r.out, "  Skipped. Nothing was recorded.")
		return ledger.OutcomeSkipped, nil
	}

	fmt.Fprintf(r.out, "  Amount in %s ('done' to finish)\n", cli.Currency())
	for {
		fmt.Fprint(r.out, "  > ")
		line, err := r.readLine(ctx)
		if err != nil {
			return ledger.OutcomeEnded, err
		}
		if ledger.IsEndSignal(line) {
			return ledger.OutcomeEnded, nil
		}

		amt, perr := money.Parse(line)
		if perr != nil {
			fmt.Fprintln(r.out, warnNotANumber)
			continue
		}
		if !amt.IsPositive() {
			fmt.Fprintln(r.out, "  Amounts must be greater than zero. Try again.")
			continue
		}

		txn, rerr := s.Record(desc, amt)
		if rerr != nil {
			fmt.Fprintf(r.out, "  Couldn't record that: %v.\n", rerr)
			return ledger.OutcomeSkipped, nil
		}
		r.reportPosition(s, txn)
		return ledger.OutcomeRecorded, nil
	}
}

// Run loops logging attempts until the user ends the session, input
// runs out, or the context is cancelled, then writes the final report.
// Every exit path is graceful.
func (r *Runner) Run(ctx context.Context, s *ledger.Session) error {
	for {
		outcome, err := r.LogTransaction(ctx, s)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				fmt.Fprintln(r.out, "\n  Interrupted. Wrapping up.")
			}
			break
		}
		if outcome == ledger.OutcomeEnded {
			break
		}
	}
	r.WriteReport(s)
	return nil
}

// reportPosition prints the running total and its standing against the
// budget after a successful record.
func (r *Runner) reportPosition(s *ledger.Session, txn ledger.Transaction) {
	fmt.Fprintf(r.out, "  Spent so far: %s of %s.\n",
		cli.FormatMoney(txn.CumulativeSpent), cli.FormatMoney(s.Budget()))

	switch s.Position() {
	case ledger.Over:
		fmt.Fprintf(r.out, "  Over budget by %s.\n", cli.FormatMoney(s.Remaining().Abs()))
	case ledger.Exact:
		fmt.Fprintln(r.out, "  Exactly on budget.")
	default:
		fmt.Fprintf(r.out, "  Remaining balance: %s.\n", cli.FormatMoney(s.Remaining()))
	}
}
