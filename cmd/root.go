package cmd

import (
	"fmt"
	"os"

	"sente/internal/cli"
	"sente/internal/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var (
	flagConfig    string
	flagPlain     bool
	flagNoHistory bool
)

var rootCmd = &cobra.Command{
	Use:   "sente",
	Short: "Budget session tracker",
	Long:  "Track a spending session against a budget, keep an itemized ledger, and settle the household math (power bills, savings goals) from one terminal.",
	RunE:  runSession,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (overrides the default location)")
	rootCmd.PersistentFlags().BoolVar(&flagPlain, "plain", false, "Plain output, no colors")
	rootCmd.PersistentFlags().BoolVar(&flagNoHistory, "no-history", false, "Don't archive this session")

	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if flagConfig != "" {
			os.Setenv("SENTE_CONFIG", flagConfig)
		}
		if flagPlain {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	}
}

// loadConfig is the shared config loading path used by all commands.
// A broken config file warns and falls back to defaults so an
// interactive session can always start.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Config unavailable (%v), using defaults\n", err)
	}
	cli.SetCurrency(cfg.General.Currency)
	return cfg
}
