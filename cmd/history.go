package cmd

import (
	"context"
	"fmt"

	"chestnut/internal/aggregate"
	"chestnut/internal/cli"
	"chestnut/internal/dateutil"
	"chestnut/internal/money"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show all tracked weeks",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	store, err := loadStore(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	summaries := aggregate.AllSummaries(store.Data())
	if len(summaries) == 0 {
		fmt.Println("\n  No weeks yet. Add a purchase to get started.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SPENDING HISTORY"))
	fmt.Println()
	fmt.Printf("  Weekly average: %s across %s\n",
		money.FormatDollars(aggregate.WeeklyAverage(summaries)),
		cli.FormatCount(len(summaries), "week"))
	fmt.Println()

	// Sparkline runs oldest to newest, matching reading order
	if len(summaries) > 1 {
		values := make([]float64, len(summaries))
		for i, s := range summaries {
			values[len(summaries)-1-i] = float64(s.TotalSpent)
		}
		fmt.Println("  " + cli.RenderSparkline(values))
		fmt.Println()
	}

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			dateutil.FormatWeekRange(s.StartDate),
			money.FormatDollars(s.TotalSpent),
			money.FormatDollars(s.Budget),
			cli.OverUnderStyled(s.IsOverBudget),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Week", "Spent", "Budget", "Status"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
