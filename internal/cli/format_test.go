package cli

import (
	"strings"
	"testing"

	"sente/internal/money"
)

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(money.FromShillings(40000)); got != "UGX 40,000.00" {
		t.Fatalf("FormatMoney = %q, want %q", got, "UGX 40,000.00")
	}
	if got := FormatMoney(money.Amount(1)); got != "UGX 0.01" {
		t.Fatalf("FormatMoney = %q, want %q", got, "UGX 0.01")
	}
}

func TestSetCurrency(t *testing.T) {
	defer SetCurrency("UGX")

	SetCurrency("KES")
	if got := FormatMoney(money.FromShillings(100)); got != "KES 100.00" {
		t.Fatalf("FormatMoney after SetCurrency = %q, want %q", got, "KES 100.00")
	}

	// Blank labels are ignored.
	SetCurrency("   ")
	if Currency() != "KES" {
		t.Fatalf("Currency = %q, want %q", Currency(), "KES")
	}
}

func TestFormatUnits(t *testing.T) {
	if got := FormatUnits(185); got != "185 kWh" {
		t.Fatalf("FormatUnits(185) = %q, want %q", got, "185 kWh")
	}
	if got := FormatUnits(12.5); got != "12.5 kWh" {
		t.Fatalf("FormatUnits(12.5) = %q, want %q", got, "12.5 kWh")
	}
}

func TestRenderTableIncludesCells(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Item", "Amount"},
		Rows: [][]string{
			{"Rolex", "UGX 40,000.00"},
			{"---"},
			{"Total", "UGX 40,000.00"},
		},
	})

	for _, want := range []string{"Item", "Rolex", "UGX 40,000.00", "Total"} {
		if !strings.Contains(out, want) {
			t.Fatalf("RenderTable output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTableMinimumWidths(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Item", "Amount"},
		Rows:    [][]string{{"a", "1"}},
		Widths:  []int{20, 0},
	})

	// The description column is padded to at least the requested width.
	if !strings.Contains(out, "a                    ") {
		t.Fatalf("RenderTable did not honor the minimum width:\n%s", out)
	}
}

func TestRenderBudgetBar(t *testing.T) {
	out := RenderBudgetBar(money.FromShillings(40000), money.FromShillings(100000), 10)
	if !strings.Contains(out, "UGX 40,000.00") || !strings.Contains(out, "/ UGX 100,000.00") {
		t.Fatalf("RenderBudgetBar missing amounts: %q", out)
	}
	if !strings.Contains(out, "█") || !strings.Contains(out, "░") {
		t.Fatalf("RenderBudgetBar missing bar glyphs: %q", out)
	}

	// Zero budget with zero spend renders an empty bar rather than
	// dividing by zero.
	empty := RenderBudgetBar(0, 0, 10)
	if strings.Contains(empty, "█") {
		t.Fatalf("zero-on-zero bar should be empty: %q", empty)
	}
}
