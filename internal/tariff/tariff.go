// Package tariff computes a domestic electricity bill on a two-tier
// rate with a heavy-consumption surcharge.
package tariff

import (
	"errors"

	"sente/internal/money"
)

// ErrNegativeUnits rejects a negative meter reading.
var ErrNegativeUnits = errors.New("units cannot be negative")

// Rates holds the billing parameters. Rates are UGX per kWh; the
// surcharge applies to the whole bill once usage passes the threshold.
type Rates struct {
	FirstTierUnits     float64
	FirstTierRate      float64
	OverflowRate       float64
	SurchargeThreshold float64
	SurchargeRate      float64
}

// DefaultRates is the standard domestic tariff.
var DefaultRates = Rates{
	FirstTierUnits:     15,
	FirstTierRate:      250,
	OverflowRate:       775,
	SurchargeThreshold: 150,
	SurchargeRate:      0.05,
}

// Breakdown itemizes one bill. Total always equals
// FirstTierCost + OverflowCost + Surcharge.
type Breakdown struct {
	Units          float64
	FirstTierUnits float64
	FirstTierCost  money.Amount
	OverflowUnits  float64
	OverflowCost   money.Amount
	Surcharged     bool
	Surcharge      money.Amount
	Total          money.Amount
}

// Bill computes a bill for the given usage at the receiver's rates.
func (r Rates) Bill(units float64) (Breakdown, error) {
	if units < 0 {
		return Breakdown{}, ErrNegativeUnits
	}

	b := Breakdown{Units: units}

	b.FirstTierUnits = units
	if b.FirstTierUnits > r.FirstTierUnits {
		b.FirstTierUnits = r.FirstTierUnits
		b.OverflowUnits = units - r.FirstTierUnits
	}
	b.FirstTierCost = money.FromShillings(b.FirstTierUnits * r.FirstTierRate)
	b.OverflowCost = money.FromShillings(b.OverflowUnits * r.OverflowRate)

	subtotal := b.FirstTierCost.Add(b.OverflowCost)
	if units > r.SurchargeThreshold {
		b.Surcharged = true
		b.Surcharge = money.FromShillings(subtotal.Shillings() * r.SurchargeRate)
	}
	b.Total = subtotal.Add(b.Surcharge)

	return b, nil
}

// Bill computes a bill at DefaultRates.
func Bill(units float64) (Breakdown, error) {
	return DefaultRates.Bill(units)
}
