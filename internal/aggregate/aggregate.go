// Package aggregate derives read-side views from AppData snapshots.
// Everything here is pure: totals, summaries, and groupings are recomputed
// on demand and nothing is cached inside the entities.
package aggregate

import (
	"math"
	"sort"

	"chestnut/internal/dateutil"
	"chestnut/internal/model"
)

// WeekTotal sums the purchase amounts of a week.
func WeekTotal(w model.Week) int {
	total := 0
	for _, p := range w.Purchases {
		total += p.Amount
	}
	return total
}

// Summarize projects a week into its summary.
func Summarize(w model.Week) model.WeekSummary {
	total := WeekTotal(w)
	return model.WeekSummary{
		StartDate:    w.StartDate,
		EndDate:      dateutil.WeekEnd(w.StartDate),
		TotalSpent:   total,
		Budget:       w.Budget,
		IsOverBudget: total > w.Budget,
	}
}

// AllSummaries summarizes every week, most recent first. The descending
// order is a presentation contract the history view depends on.
func AllSummaries(data model.AppData) []model.WeekSummary {
	summaries := make([]model.WeekSummary, 0, len(data.Weeks))
	for _, w := range data.Weeks {
		summaries = append(summaries, Summarize(w))
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].StartDate > summaries[j].StartDate
	})
	return summaries
}

// WeeklyAverage is the mean of TotalSpent across summaries, rounded to
// the nearest dollar. Zero when there are no summaries.
func WeeklyAverage(summaries []model.WeekSummary) int {
	if len(summaries) == 0 {
		return 0
	}
	total := 0
	for _, s := range summaries {
		total += s.TotalSpent
	}
	return int(math.Round(float64(total) / float64(len(summaries))))
}

// GroupByDate partitions purchases by their date key, preserving each
// purchase's relative insertion order within its date group.
func GroupByDate(purchases []model.Purchase) map[string][]model.Purchase {
	groups := make(map[string][]model.Purchase)
	for _, p := range purchases {
		groups[p.Date] = append(groups[p.Date], p)
	}
	return groups
}
