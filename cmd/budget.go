package cmd

import (
	"context"
	"fmt"

	"chestnut/internal/dateutil"
	"chestnut/internal/money"
	"chestnut/internal/state"

	"github.com/spf13/cobra"
)

var flagBudgetWeek string

var budgetCmd = &cobra.Command{
	Use:   "budget AMOUNT",
	Short: "Set the weekly budget",
	Long:  "Set the budget for a week (default: the current week). New weeks start with the most recently set budget.",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudget,
}

func init() {
	budgetCmd.Flags().StringVar(&flagBudgetWeek, "week", "", "Week to change (any date in it, YYYY-MM-DD)")
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(_ *cobra.Command, args []string) error {
	amount := money.ParseDollarInput(args[0])
	if amount <= 0 {
		return fmt.Errorf("invalid amount %q: want a positive whole number of dollars", args[0])
	}

	day := dateutil.Today()
	if flagBudgetWeek != "" {
		if _, err := dateutil.ParseKey(flagBudgetWeek); err != nil {
			return fmt.Errorf("invalid date %q: want YYYY-MM-DD", flagBudgetWeek)
		}
		day = flagBudgetWeek
	}
	weekKey := dateutil.WeekStartOf(day)

	cfg := loadConfig()
	store, err := loadStore(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Dispatch(state.EnsureWeekExists(weekKey)); err != nil {
		return err
	}
	if err := store.Dispatch(state.SetBudget(weekKey, amount)); err != nil {
		return err
	}

	fmt.Printf("  Budget for %s set to %s\n",
		dateutil.FormatWeekRange(weekKey), money.FormatDollars(amount))
	return nil
}
