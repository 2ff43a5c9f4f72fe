package tui

import (
	"fmt"
	"strings"

	"chestnut/internal/aggregate"
	"chestnut/internal/cli"
	"chestnut/internal/dateutil"
	"chestnut/internal/model"
	"chestnut/internal/money"
	"chestnut/internal/tui/components"
	"chestnut/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// histState tracks the history tab scroll position.
type histState struct {
	scroll int
}

func (a App) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		a.hist.scroll++
	case "k", "up":
		if a.hist.scroll > 0 {
			a.hist.scroll--
		}
	case "g":
		a.hist.scroll = 0
	case "G":
		a.hist.scroll = 1 << 16 // clamped against content height in render
	case "enter":
		// Opens the most recent week in the week tab
		summaries := aggregate.AllSummaries(a.data)
		if len(summaries) > 0 {
			a.gotoWeek(summaries[0].StartDate)
			a.activeTab = 0
		}
	}
	return a, nil
}

func (a App) renderHistoryTab(cw, contentH int) string {
	summaries := aggregate.AllSummaries(a.data)

	var b strings.Builder

	// Metric cards: average, week count, weeks over budget
	over := 0
	for _, s := range summaries {
		if s.IsOverBudget {
			over++
		}
	}
	widths := components.LayoutRow(cw, 3)
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		components.MetricCard("Weekly average",
			money.FormatDollars(aggregate.WeeklyAverage(summaries)),
			"across all weeks", widths[0]),
		components.MetricCard("Weeks tracked",
			fmt.Sprintf("%d", len(summaries)), "", widths[1]),
		components.MetricCard("Over budget",
			fmt.Sprintf("%d", over),
			cli.FormatCount(len(summaries), "week"), widths[2]),
	)
	b.WriteString(cards)
	b.WriteString("\n")

	// Spending sparkline, oldest week on the left
	if len(summaries) > 1 {
		values := make([]float64, len(summaries))
		for i, s := range summaries {
			values[len(summaries)-1-i] = float64(s.TotalSpent)
		}
		b.WriteString(components.ContentCard("Spending trend",
			cli.RenderSparkline(values), cw))
		b.WriteString("\n")
	}

	b.WriteString(a.renderSummaryList(summaries, cw))

	// Clamp scroll so the last page stays on screen
	content := b.String()
	lines := strings.Split(content, "\n")
	maxScroll := len(lines) - contentH
	if maxScroll < 0 {
		maxScroll = 0
	}
	scroll := a.hist.scroll
	if scroll > maxScroll {
		scroll = maxScroll
	}
	return strings.Join(lines[scroll:], "\n")
}

// renderSummaryList renders one row per week, most recent first.
func (a App) renderSummaryList(summaries []model.WeekSummary, cw int) string {
	t := theme.Active

	if len(summaries) == 0 {
		return cli.Muted("  No weeks yet. Add a purchase to get started.")
	}

	rangeStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	currentStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	overStyle := lipgloss.NewStyle().Foreground(t.Red)
	underStyle := lipgloss.NewStyle().Foreground(t.Green)

	thisWeek := dateutil.WeekStartOf(dateutil.Today())

	var b strings.Builder
	for _, s := range summaries {
		label := dateutil.FormatWeekRange(s.StartDate)
		if s.StartDate == thisWeek {
			label = currentStyle.Render(label + "  (this week)")
		} else {
			label = rangeStyle.Render(label)
		}

		spent := cli.FormatSpentOfBudget(s.TotalSpent, s.Budget)
		status := cli.FormatBudgetStatus(s.TotalSpent, s.Budget)
		styled := underStyle.Render(status)
		if s.IsOverBudget {
			styled = overStyle.Render(status)
		}

		line := "  " + label
		value := mutedStyle.Render(spent) + "  " + styled
		pad := cw - 2 - lipgloss.Width(line) - lipgloss.Width(value)
		if pad < 1 {
			pad = 1
		}
		b.WriteString(line + strings.Repeat(" ", pad) + value + "\n")
	}
	return b.String()
}
