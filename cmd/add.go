package cmd

import (
	"context"
	"fmt"
	"strings"

	"chestnut/internal/cli"
	"chestnut/internal/dateutil"
	"chestnut/internal/model"
	"chestnut/internal/money"
	"chestnut/internal/state"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var flagAddDate string

var addCmd = &cobra.Command{
	Use:   "add NAME AMOUNT",
	Short: "Record a purchase",
	Long:  "Record a purchase against this week's budget. Amount is whole dollars.",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&flagAddDate, "date", "", "Purchase date (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("purchase name must not be empty")
	}

	amount := money.ParseDollarInput(args[1])
	if amount <= 0 {
		return fmt.Errorf("invalid amount %q: want a positive whole number of dollars", args[1])
	}

	day := dateutil.Today()
	if flagAddDate != "" {
		if _, err := dateutil.ParseKey(flagAddDate); err != nil {
			return fmt.Errorf("invalid date %q: want YYYY-MM-DD", flagAddDate)
		}
		day = flagAddDate
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

	p := model.Purchase{
		ID:     uuid.NewString(),
		Name:   name,
		Amount: amount,
		Date:   day,
	}
	if err := store.Dispatch(state.AddPurchase(weekKey, p)); err != nil {
		return err
	}

	wk := store.Data().Weeks[weekKey]
	total := 0
	for _, pp := range wk.Purchases {
		total += pp.Amount
	}

	fmt.Printf("  Added %s (%s) on %s\n", name, money.FormatDollars(amount), p.Date)
	fmt.Printf("  This week: %s, %s\n",
		cli.FormatSpentOfBudget(total, wk.Budget),
		cli.FormatBudgetStatus(total, wk.Budget))
	return nil
}
