// Package cmd implements the sente CLI commands.
package cmd

import (
	"fmt"

	"sente/internal/cli"
	"sente/internal/config"
	"sente/internal/money"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Currency:             %s\n", cfg.General.Currency)
	fmt.Printf("    Min recommended txns: %d\n", cfg.General.MinRecommendedTxns)
	fmt.Println()

	fmt.Println("  [History]")
	fmt.Printf("    Enabled: %v\n", config.HistoryEnabled(cfg))
	fmt.Printf("    Archive: %s\n", config.HistoryPath(cfg))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	rates := ratesFromConfig(cfg)
	fmt.Println("  [Tariff]")
	fmt.Printf("    First tier: %s at %s per kWh\n",
		cli.FormatUnits(rates.FirstTierUnits), cli.FormatMoney(money.FromShillings(rates.FirstTierRate)))
	fmt.Printf("    Overflow:   %s per kWh\n", cli.FormatMoney(money.FromShillings(rates.OverflowRate)))
	fmt.Printf("    Surcharge:  %s past %s\n",
		cli.FormatPercent(rates.SurchargeRate), cli.FormatUnits(rates.SurchargeThreshold))
	fmt.Println()

	fmt.Println("  [Savings]")
	fmt.Printf("    Default rate: %g%% a year\n", cfg.Savings.DefaultRatePct)
	fmt.Println()

	fmt.Println("  Run `sente setup` to reconfigure.")
	return nil
}
