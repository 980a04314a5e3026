package components

import (
	"fmt"

	"sente/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForPct returns green/yellow/orange/red by budget utilization.
func ColorForPct(pct float64) string {
	t := theme.Active
	switch {
	case pct >= 1:
		return string(t.Red)
	case pct >= 0.8:
		return string(t.Orange)
	case pct >= 0.5:
		return string(t.Yellow)
	default:
		return string(t.Green)
	}
}

// BudgetGauge renders a labeled utilization bar with a percentage. The
// bar clamps at full; the percentage keeps counting past 100.
func BudgetGauge(label string, pct float64, labelW, barWidth int) string {
	t := theme.Active

	display := pct
	if display < 0 {
		display = 0
	}
	if display > 1 {
		display = 1
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForPct(pct)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForPct(pct))).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(display) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100))
}
