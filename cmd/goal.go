package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"sente/internal/cli"
	"sente/internal/money"
	"sente/internal/savings"

	"github.com/spf13/cobra"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Simple-interest savings projection",
	Long:  "Project simple interest on a principal. Give a target and it also reports whether the goal is reached and how many whole years it would take.",
	RunE:  runGoal,
}

var (
	flagGoalPrincipal string
	flagGoalRate      float64
	flagGoalYears     float64
	flagGoalTarget    string
)

func init() {
	goalCmd.Flags().StringVarP(&flagGoalPrincipal, "principal", "P", "", "Starting amount")
	goalCmd.Flags().Float64VarP(&flagGoalRate, "rate", "r", 0, "Annual interest rate in percent")
	goalCmd.Flags().Float64VarP(&flagGoalYears, "years", "y", 0, "Years to keep saving")
	goalCmd.Flags().StringVarP(&flagGoalTarget, "target", "t", "", "Goal amount to check against")
	rootCmd.AddCommand(goalCmd)
}

func runGoal(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	reader := bufio.NewReader(os.Stdin)

	var principal money.Amount
	if flagGoalPrincipal != "" {
		p, err := money.Parse(flagGoalPrincipal)
		if err != nil {
			return fmt.Errorf("invalid --principal %q: %w", flagGoalPrincipal, err)
		}
		principal = p
	} else {
		p, _, err := promptAmount(reader, "Principal amount", false)
		if err != nil {
			fmt.Println("\n  Nothing to project.")
			return nil
		}
		principal = p
	}

	rate := flagGoalRate
	if !cmd.Flags().Changed("rate") {
		label := fmt.Sprintf("Annual interest rate in percent (blank for %s)",
			strconv.FormatFloat(cfg.Savings.DefaultRatePct, 'f', -1, 64))
		r, err := promptFloatDefault(reader, label, cfg.Savings.DefaultRatePct)
		if err != nil {
			fmt.Println("\n  Nothing to project.")
			return nil
		}
		rate = r
	}

	years := flagGoalYears
	if !cmd.Flags().Changed("years") {
		y, err := promptFloat(reader, "Years to keep saving")
		if err != nil {
			fmt.Println("\n  Nothing to project.")
			return nil
		}
		years = y
	}

	var target money.Amount
	haveTarget := false
	if flagGoalTarget != "" {
		t, err := money.Parse(flagGoalTarget)
		if err != nil {
			return fmt.Errorf("invalid --target %q: %w", flagGoalTarget, err)
		}
		target = t
		haveTarget = true
	} else {
		t, ok, err := promptAmount(reader, "Goal amount (blank to skip the goal check)", true)
		if err == nil && ok {
			target = t
			haveTarget = true
		}
	}

	if !haveTarget {
		p, err := savings.Project(principal, rate, years)
		if err != nil {
			return err
		}
		printProjection(p)
		return nil
	}

	g, err := savings.Goal(principal, target, rate, years)
	if err != nil {
		return err
	}
	printProjection(g.Projection)

	fmt.Println()
	if g.Reached {
		fmt.Printf("  Goal of %s reached with %s to spare.\n",
			cli.FormatMoney(g.Target), cli.FormatMoney(g.Surplus))
		return nil
	}
	fmt.Printf("  Short of the %s goal by %s.\n",
		cli.FormatMoney(g.Target), cli.FormatMoney(g.Shortfall))
	if g.Achievable {
		noun := "years"
		if g.YearsToGoal == 1 {
			noun = "year"
		}
		fmt.Printf("  At this rate the goal takes %d %s.\n", g.YearsToGoal, noun)
	} else {
		fmt.Println("  At this rate the goal is out of reach.")
	}
	return nil
}

func printProjection(p savings.Projection) {
	fmt.Println()
	fmt.Println(cli.RenderTitle("SAVINGS PROJECTION"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Figure", "Value"},
		Rows: [][]string{
			{"Principal", cli.FormatMoney(p.Principal)},
			{"Rate", strconv.FormatFloat(p.RatePct, 'f', -1, 64) + "% a year"},
			{"Term", strconv.FormatFloat(p.Years, 'f', -1, 64) + " years"},
			{"---"},
			{"Interest earned", cli.FormatMoney(p.Interest)},
			{"Maturity value", cli.FormatMoney(p.Maturity)},
		},
	}))
}
