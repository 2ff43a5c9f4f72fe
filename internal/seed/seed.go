// Package seed generates synthetic AppData for demos and development.
package seed

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"chestnut/internal/dateutil"
	"chestnut/internal/model"

	"github.com/google/uuid"
)

type poolItem struct {
	name     string
	min, max int
}

var purchasePool = []poolItem{
	{"Groceries", 35, 120},
	{"Amazon", 12, 85},
	{"Coffee", 5, 8},
	{"Dinner out", 25, 75},
	{"Uber", 10, 35},
	{"Drinks", 15, 60},
	{"Gas", 30, 55},
	{"Haircut", 25, 40},
	{"Target", 20, 90},
	{"Lunch", 12, 22},
	{"Gym smoothie", 8, 14},
	{"Parking", 5, 15},
	{"Movie tickets", 15, 30},
	{"Golf", 30, 65},
	{"Dog food", 25, 45},
	{"Pharmacy", 8, 30},
	{"Dry cleaning", 15, 35},
	{"Spotify", 11, 11},
}

// Generate builds the current week plus five past weeks of synthetic
// purchases. The current week is sparser (it is still in progress) and
// only uses days up to today; older weeks step down in budget.
func Generate() model.AppData {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	thisWeek := dateutil.WeekStart(time.Now())
	today := dateutil.Today()

	data := model.DefaultAppData()

	for weekIdx := 0; weekIdx < 6; weekIdx++ {
		weekStart := dateutil.ShiftWeek(thisWeek, -weekIdx)
		dates := dateutil.WeekDates(weekStart)
		isCurrent := weekIdx == 0

		numPurchases := randBetween(rng, 6, 12)
		if isCurrent {
			numPurchases = randBetween(rng, 3, 6)
		}

		budget := 300
		switch {
		case weekIdx <= 1:
			budget = 400
		case weekIdx <= 3:
			budget = 350
		}

		available := dates
		if isCurrent {
			available = nil
			for _, d := range dates {
				if d <= today {
					available = append(available, d)
				}
			}
			if len(available) == 0 {
				available = dates[:1]
			}
		}

		used := map[string]bool{}
		purchases := make([]model.Purchase, 0, numPurchases)
		for i := 0; i < numPurchases; i++ {
			item := purchasePool[rng.Intn(len(purchasePool))]
			for attempts := 0; used[item.name] && attempts < 5; attempts++ {
				item = purchasePool[rng.Intn(len(purchasePool))]
			}
			used[item.name] = true

			purchases = append(purchases, model.Purchase{
				ID:     uuid.NewString(),
				Name:   item.name,
				Amount: randBetween(rng, item.min, item.max),
				Date:   available[rng.Intn(len(available))],
			})
		}

		sort.SliceStable(purchases, func(i, j int) bool {
			return purchases[i].Date < purchases[j].Date
		})

		data.Weeks[weekStart] = model.Week{
			StartDate: weekStart,
			Budget:    budget,
			Purchases: purchases,
		}
	}

	return data
}

func randBetween(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}

// Store adapts the generator to the persistence contract: Load produces a
// fresh seed and Save discards, so demo runs never touch real data.
type Store struct{}

// Load returns freshly generated seed data.
func (Store) Load(context.Context) (model.AppData, error) {
	return Generate(), nil
}

// Save is a no-op in seed mode.
func (Store) Save(context.Context, model.AppData) error {
	return nil
}
