package cmd

import (
	"context"
	"fmt"

	"chestnut/internal/aggregate"
	"chestnut/internal/cli"
	"chestnut/internal/dateutil"
	"chestnut/internal/money"
	"chestnut/internal/state"

	"github.com/spf13/cobra"
)

var weekCmd = &cobra.Command{
	Use:   "week [date]",
	Short: "Show one week of spending",
	Long:  "Show spending for the week containing the given date (YYYY-MM-DD). Defaults to the current week.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWeek,
}

func init() {
	rootCmd.AddCommand(weekCmd)
}

// resolveWeekArg maps an optional date argument to a canonical week key.
func resolveWeekArg(args []string) (string, error) {
	day := dateutil.Today()
	if len(args) == 1 {
		if _, err := dateutil.ParseKey(args[0]); err != nil {
			return "", fmt.Errorf("invalid date %q: want YYYY-MM-DD", args[0])
		}
		day = args[0]
	}
	return dateutil.WeekStartOf(day), nil
}

func runWeek(_ *cobra.Command, args []string) error {
	weekKey, err := resolveWeekArg(args)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	store, err := loadStore(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Dispatch(state.EnsureWeekExists(weekKey)); err != nil {
		return err
	}

	data := store.Data()
	wk := data.Weeks[weekKey]
	summary := aggregate.Summarize(wk)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("WEEK  %s", dateutil.FormatWeekRange(weekKey))))
	fmt.Println()
	fmt.Printf("  %s  %s\n",
		cli.FormatSpentOfBudget(summary.TotalSpent, summary.Budget),
		cli.FormatBudgetStatus(summary.TotalSpent, summary.Budget))
	fmt.Println()

	if len(wk.Purchases) == 0 {
		fmt.Println("  " + cli.Muted("No purchases this week."))
		fmt.Println()
		return nil
	}

	byDate := aggregate.GroupByDate(wk.Purchases)
	rows := make([][]string, 0, len(wk.Purchases))
	for _, day := range dateutil.WeekDates(weekKey) {
		for _, p := range byDate[day] {
			rows = append(rows, []string{
				dateutil.DayName(day),
				dateutil.FormatShortDate(day),
				p.Name,
				money.FormatDollars(p.Amount),
			})
		}
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Day", "Date", "Purchase", "Amount"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
