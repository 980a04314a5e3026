// Package savings projects simple-interest growth and goal progress.
package savings

import (
	"errors"
	"math"

	"sente/internal/money"
)

var (
	// ErrNegativePrincipal rejects a principal below zero.
	ErrNegativePrincipal = errors.New("principal cannot be negative")
	// ErrNegativeRate rejects an interest rate below zero.
	ErrNegativeRate = errors.New("rate cannot be negative")
	// ErrNegativeYears rejects a negative term.
	ErrNegativeYears = errors.New("years cannot be negative")
	// ErrNegativeTarget rejects a goal target below zero.
	ErrNegativeTarget = errors.New("target cannot be negative")
	// ErrNotFinite rejects NaN or infinite rates and terms, which pass
	// a plain negativity check.
	ErrNotFinite = errors.New("rate and years must be finite")
)

// maxGoalYears bounds the years-to-goal search. A goal further out than
// this is reported as unreachable rather than as an absurd horizon.
const maxGoalYears = 200

// Projection is the result of growing a principal at simple interest.
type Projection struct {
	Principal money.Amount
	RatePct   float64
	Years     float64
	Interest  money.Amount
	Maturity  money.Amount
}

// Project computes simple interest: I = P * r * t, with r an annual
// percentage and t in (possibly fractional) years.
func Project(principal money.Amount, ratePct, years float64) (Projection, error) {
	if principal.IsNegative() {
		return Projection{}, ErrNegativePrincipal
	}
	if !finite(ratePct) || !finite(years) {
		return Projection{}, ErrNotFinite
	}
	if ratePct < 0 {
		return Projection{}, ErrNegativeRate
	}
	if years < 0 {
		return Projection{}, ErrNegativeYears
	}

	interest := money.FromShillings(principal.Shillings() * ratePct / 100 * years)
	return Projection{
		Principal: principal,
		RatePct:   ratePct,
		Years:     years,
		Interest:  interest,
		Maturity:  principal.Add(interest),
	}, nil
}

// GoalReport compares a projection against a savings target.
type GoalReport struct {
	Projection
	Target    money.Amount
	Reached   bool
	Surplus   money.Amount
	Shortfall money.Amount

	// YearsToGoal is the smallest whole number of years at which the
	// maturity value reaches the target, independent of the projected
	// term. Valid only when Achievable is true.
	YearsToGoal int
	Achievable  bool
}

// Goal projects the principal over the given term and reports standing
// against the target.
func Goal(principal, target money.Amount, ratePct, years float64) (GoalReport, error) {
	if target.IsNegative() {
		return GoalReport{}, ErrNegativeTarget
	}
	p, err := Project(principal, ratePct, years)
	if err != nil {
		return GoalReport{}, err
	}

	r := GoalReport{Projection: p, Target: target}
	if p.Maturity >= target {
		r.Reached = true
		r.Surplus = p.Maturity.Sub(target)
	} else {
		r.Shortfall = target.Sub(p.Maturity)
	}
	r.YearsToGoal, r.Achievable = yearsToGoal(principal, target, ratePct)
	return r, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// yearsToGoal solves P*(1 + r*t/100) >= target for the smallest whole t.
func yearsToGoal(principal, target money.Amount, ratePct float64) (int, bool) {
	if principal >= target {
		return 0, true
	}
	// No growth: an unmet target stays unmet.
	if ratePct == 0 || principal.IsZero() {
		return 0, false
	}

	needed := target.Sub(principal).Shillings()
	perYear := principal.Shillings() * ratePct / 100
	t := int(math.Ceil(needed / perYear))
	if t > maxGoalYears {
		return 0, false
	}
	// Ceil on floats can land one year short of clearing the target in
	// exact cents. Verify and bump once if needed.
	if m, err := Project(principal, ratePct, float64(t)); err == nil && m.Maturity < target {
		t++
		if t > maxGoalYears {
			return 0, false
		}
	}
	return t, true
}
