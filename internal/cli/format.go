// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"

	"chestnut/internal/money"
)

// FormatBudgetStatus renders remaining-vs-budget, e.g. "$55 left" or
// "$20 over".
func FormatBudgetStatus(spent, budget int) string {
	remaining := budget - spent
	if remaining < 0 {
		return money.FormatDollars(-remaining) + " over"
	}
	return money.FormatDollars(remaining) + " left"
}

// FormatSpentOfBudget renders "spent / budget", e.g. "$120 / $400".
func FormatSpentOfBudget(spent, budget int) string {
	return money.FormatDollars(spent) + " / " + money.FormatDollars(budget)
}

// FormatOverUnder renders an over/under marker for history rows.
func FormatOverUnder(isOver bool) string {
	if isOver {
		return "over"
	}
	return "under"
}

// FormatCount pluralizes a simple count, e.g. "3 purchases".
func FormatCount(n int, singular string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%d %ss", n, singular)
}
