package session

import (
	"fmt"
	"io"
	"strconv"

	"sente/internal/cli"
	"sente/internal/ledger"
)

// minItemWidth keeps the item column readable for short descriptions.
const minItemWidth = 12

// WriteReport prints the final session summary: budget, spend, surplus
// or deficit, and the itemized ledger (or a notice when it is empty).
// minRecommended > 0 enables the low-sample tip for short sessions.
func WriteReport(w io.Writer, s *ledger.Session, minRecommended int) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.RenderTitle("SESSION REPORT"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Budget: %s\n", cli.FormatMoney(s.Budget()))
	fmt.Fprintf(w, "  Spent:  %s\n", cli.FormatMoney(s.Total()))
	fmt.Fprintf(w, "  %s\n", cli.RenderBudgetBar(s.Total(), s.Budget(), 30))

	final := s.Remaining()
	if final.IsNegative() {
		fmt.Fprintf(w, "  Deficit: %s\n", cli.FormatMoney(final.Abs()))
	} else {
		fmt.Fprintf(w, "  Surplus: %s\n", cli.FormatMoney(final))
	}
	fmt.Fprintln(w)

	if s.Len() == 0 {
		fmt.Fprintln(w, "  No transactions were recorded this session.")
		return
	}

	entries := s.Entries()
	rows := make([][]string, 0, len(entries)+2)
	for i, e := range entries {
		rows = append(rows, []string{
			e.Description,
			strconv.Itoa(i + 1),
			cli.FormatMoney(e.Value),
			cli.FormatMoney(e.CumulativeSpent),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Total", "", cli.FormatMoney(s.Total()), ""})

	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Headers: []string{"Item", "#", "Amount", "Running total"},
		Rows:    rows,
		Widths:  []int{minItemWidth, 0, 0, 0},
	}))

	if minRecommended > 0 && s.Len() < minRecommended {
		fmt.Fprintf(w, "\n  Tip: logging at least %d transactions gives a clearer picture of a session.\n",
			minRecommended)
	}
}

// WriteReport renders the summary to the runner's output.
func (r *Runner) WriteReport(s *ledger.Session) {
	WriteReport(r.out, s, r.MinRecommended)
}
