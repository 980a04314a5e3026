package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sente/internal/cli"
	"sente/internal/config"
	"sente/internal/ledger"
	"sente/internal/money"
	"sente/internal/session"
	"sente/internal/store"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Run an interactive budget session",
	Long:  "Prompt for a budget, then log transactions one by one until 'done'. Finishes with an itemized report.",
	RunE:  runSession,
}

var flagBudget string

func init() {
	sessionCmd.Flags().StringVarP(&flagBudget, "budget", "b", "", "Session budget (skips the budget prompt)")
	rootCmd.AddCommand(sessionCmd)
}

func runSession(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	r := session.NewRunner(os.Stdin, os.Stdout)
	defer r.Close()
	r.MinRecommended = cfg.General.MinRecommendedTxns

	var budget money.Amount
	if flagBudget != "" {
		b, err := money.Parse(flagBudget)
		if err != nil {
			return fmt.Errorf("invalid --budget %q: %w", flagBudget, err)
		}
		budget = b
	} else {
		b, err := r.PromptBudget(ctx)
		if err != nil {
			// Interrupt or EOF before a budget exists: nothing to report.
			fmt.Println("\n  Session ended.")
			return nil
		}
		budget = b
	}

	s, err := ledger.NewSession(budget)
	if err != nil {
		return err
	}

	if err := r.Run(ctx, s); err != nil {
		return err
	}

	archiveSession(cfg, s)
	return nil
}

// archiveSession stores a finished session unless history is switched
// off or nothing was logged. Archive failures warn and never fail the
// session itself.
func archiveSession(cfg config.Config, s *ledger.Session) {
	if flagNoHistory || !config.HistoryEnabled(cfg) || s.Len() == 0 {
		return
	}

	st, err := store.Open(config.HistoryPath(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "  History unavailable: %v\n", err)
		return
	}
	defer st.Close()

	// Fresh context: the session context is already cancelled after an
	// interrupt, and archiving should still go through.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := st.SaveSession(ctx, s, time.Now(), cli.Currency()); err != nil {
		fmt.Fprintf(os.Stderr, "  Couldn't archive session: %v\n", err)
		return
	}
	fmt.Printf("\n  Archived as %s. Run `sente history` to browse past sessions.\n", shortID(s.ID))
}
