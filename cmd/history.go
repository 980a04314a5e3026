package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"sente/internal/cli"
	"sente/internal/config"
	"sente/internal/money"
	"sente/internal/store"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse archived sessions",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Entries of one archived session",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete archived sessions",
	RunE:  runHistoryClear,
}

var (
	flagHistoryLimit int
	flagKeepDays     int
)

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "l", 20, "Number of sessions to show")
	historyClearCmd.Flags().IntVar(&flagKeepDays, "keep-days", 0, "Keep sessions newer than this many days (0 clears everything)")
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

// openHistory opens the archive for the read commands. Unlike the live
// session path, a broken archive is a real error here.
func openHistory() (*store.Store, error) {
	cfg := loadConfig()
	return store.Open(config.HistoryPath(cfg))
}

func runHistoryList(_ *cobra.Command, _ []string) error {
	st, err := openHistory()
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sums, err := st.ListSessions(ctx, flagHistoryLimit)
	if err != nil {
		return err
	}
	if len(sums) == 0 {
		fmt.Println("\n  No archived sessions yet. Finish a session and it lands here.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SESSION HISTORY  showing %d", len(sums))))
	fmt.Println()

	rows := make([][]string, 0, len(sums))
	for _, sum := range sums {
		rows = append(rows, []string{
			shortID(sum.ID),
			sum.StartedAt.Local().Format("Jan 02 15:04"),
			strconv.Itoa(sum.TxnCount),
			archivedMoney(sum.Currency, sum.Budget),
			archivedMoney(sum.Currency, sum.Total),
			resultCell(sum),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Started", "Items", "Budget", "Spent", "Result"},
		Rows:    rows,
	}))
	return nil
}

func runHistoryShow(_ *cobra.Command, args []string) error {
	st, err := openHistory()
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s, sum, err := st.GetSession(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("ARCHIVED SESSION  " + shortID(sum.ID)))
	fmt.Println()
	fmt.Printf("  Started: %s\n", sum.StartedAt.Local().Format("Jan 02 2006 15:04"))
	if !sum.EndedAt.IsZero() {
		fmt.Printf("  Ended:   %s\n", sum.EndedAt.Local().Format("Jan 02 2006 15:04"))
	}
	fmt.Printf("  Budget:  %s\n", archivedMoney(sum.Currency, sum.Budget))
	fmt.Printf("  Spent:   %s\n", archivedMoney(sum.Currency, sum.Total))
	fmt.Println()

	rows := make([][]string, 0, s.Len())
	for i, e := range s.Entries() {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			e.Description,
			archivedMoney(sum.Currency, e.Value),
			archivedMoney(sum.Currency, e.CumulativeSpent),
			e.At.Local().Format("15:04:05"),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"#", "Item", "Amount", "Running total", "At"},
		Rows:    rows,
	}))
	return nil
}

func runHistoryClear(_ *cobra.Command, _ []string) error {
	st, err := openHistory()
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cutoff := time.Now()
	if flagKeepDays > 0 {
		cutoff = cutoff.AddDate(0, 0, -flagKeepDays)
	}

	n, err := st.PruneOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Println("  Nothing to clear.")
		return nil
	}
	fmt.Printf("  Removed %d archived sessions.\n", n)
	return nil
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

// archivedMoney renders an amount with the currency the session was
// archived under, not the current config's label.
func archivedMoney(currency string, a money.Amount) string {
	if currency == "" {
		return cli.FormatMoney(a)
	}
	return currency + " " + a.String()
}

func resultCell(sum store.SessionSummary) string {
	rem := sum.Budget.Sub(sum.Total)
	switch {
	case rem.IsNegative():
		return "over by " + archivedMoney(sum.Currency, rem.Abs())
	case rem.IsZero():
		return "on budget"
	default:
		return "under by " + archivedMoney(sum.Currency, rem)
	}
}
