package components

import (
	"fmt"

	"chestnut/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForPct returns green/yellow/orange/red based on budget utilization.
func ColorForPct(pct float64) string {
	t := theme.Active
	switch {
	case pct >= 1.0:
		return string(t.Red)
	case pct >= 0.85:
		return string(t.Orange)
	case pct >= 0.6:
		return string(t.Yellow)
	default:
		return string(t.Green)
	}
}

// BudgetBar renders a labeled spend-vs-budget bar with percentage.
func BudgetBar(spent, budget, barWidth int) string {
	t := theme.Active

	pct := 0.0
	if budget > 0 {
		pct = float64(spent) / float64(budget)
	}
	shown := pct
	if shown > 1 {
		shown = 1
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForPct(pct)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorForPct(pct))).
		Bold(true)

	return bar.ViewAs(shown) + " " + pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100))
}
