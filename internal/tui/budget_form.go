package tui

import (
	"errors"
	"strings"

	"sente/internal/cli"
	"sente/internal/money"

	"github.com/charmbracelet/huh"
)

// budgetKey is the form key the accepted budget is read back from.
const budgetKey = "budget"

// newBudgetForm builds the opening budget prompt. Validation enforces a
// parseable, non-negative amount; zero is allowed.
func newBudgetForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key(budgetKey).
				Title("Budget for this session").
				Description("In "+cli.Currency()+". Zero is fine; spending then counts straight against you.").
				Placeholder("100000").
				Validate(func(s string) error {
					amt, err := money.Parse(strings.TrimSpace(s))
					if err != nil {
						return errors.New("enter a number like 40000 or 499.99")
					}
					if amt.IsNegative() {
						return errors.New("a budget can't be negative")
					}
					return nil
				}),
		),
	)
}
