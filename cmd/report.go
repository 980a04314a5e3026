package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"sente/internal/cli"
	"sente/internal/session"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report <id>",
	Short: "Re-render an archived session's final report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, args []string) error {
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

	// Render with the currency the session was archived under.
	if sum.Currency != "" {
		cli.SetCurrency(sum.Currency)
	}

	fmt.Printf("\n  Session of %s\n", sum.StartedAt.Local().Format("Jan 02 2006 15:04"))
	session.WriteReport(os.Stdout, s, 0)
	return nil
}
