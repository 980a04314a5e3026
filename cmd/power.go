package cmd

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"

	"sente/internal/cli"
	"sente/internal/config"
	"sente/internal/tariff"

	"github.com/spf13/cobra"
)

var powerCmd = &cobra.Command{
	Use:   "power [units]",
	Short: "Electricity bill for a month's meter units",
	Long:  "Price a month of electricity: a cheap first tier, a steeper overflow rate, and a surcharge on heavy use. Rates come from the config file.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPower,
}

func init() {
	rootCmd.AddCommand(powerCmd)
}

func runPower(_ *cobra.Command, args []string) error {
	cfg := loadConfig()

	var units float64
	if len(args) == 1 {
		u, err := parseUnitsArg(args[0])
		if err != nil {
			return err
		}
		units = u
	} else {
		u, err := promptFloat(bufio.NewReader(os.Stdin), "Units used this month (kWh)")
		if err != nil {
			fmt.Println("\n  Nothing to bill.")
			return nil
		}
		units = u
	}

	rates := ratesFromConfig(cfg)
	b, err := rates.Bill(units)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("ELECTRICITY BILL  " + cli.FormatUnits(b.Units)))
	fmt.Println()

	rows := [][]string{
		{"First " + cli.FormatUnits(b.FirstTierUnits), cli.FormatMoney(b.FirstTierCost)},
	}
	if b.OverflowUnits > 0 {
		rows = append(rows, []string{"Next " + cli.FormatUnits(b.OverflowUnits), cli.FormatMoney(b.OverflowCost)})
	}
	if b.Surcharged {
		rows = append(rows, []string{
			fmt.Sprintf("Surcharge (%s over %s)", cli.FormatPercent(rates.SurchargeRate), cli.FormatUnits(rates.SurchargeThreshold)),
			cli.FormatMoney(b.Surcharge),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Total", cli.FormatMoney(b.Total)})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Charge", "Amount"},
		Rows:    rows,
	}))
	return nil
}

// parseUnitsArg validates a kWh argument. Finite, plain numbers only;
// ParseFloat would happily take "NaN" or "Inf".
func parseUnitsArg(arg string) (float64, error) {
	u, err := strconv.ParseFloat(arg, 64)
	if err != nil || math.IsNaN(u) || math.IsInf(u, 0) {
		return 0, fmt.Errorf("invalid units %q", arg)
	}
	return u, nil
}

// ratesFromConfig maps the config tariff section onto billing rates,
// falling back to the defaults when a hand-edited file zeroes them out
// or fills them with junk (TOML accepts nan and inf literals).
func ratesFromConfig(cfg config.Config) tariff.Rates {
	r := tariff.Rates{
		FirstTierUnits:     cfg.Tariff.FirstTierUnits,
		FirstTierRate:      cfg.Tariff.FirstTierRate,
		OverflowRate:       cfg.Tariff.OverflowRate,
		SurchargeThreshold: cfg.Tariff.SurchargeThreshold,
		SurchargeRate:      cfg.Tariff.SurchargeRate,
	}
	if !usableRate(r.FirstTierUnits) || !usableRate(r.FirstTierRate) || !usableRate(r.OverflowRate) {
		return tariff.DefaultRates
	}
	return r
}

func usableRate(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
