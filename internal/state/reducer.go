package state

import "chestnut/internal/model"

// BudgetPolicy names the coupling between a week's budget and the
// process-wide default. The original app rewrites the default whenever any
// week's budget is edited; the policy keeps that behavior swappable.
type BudgetPolicy int

const (
	// BudgetPolicySyncDefault: SetBudget also rewrites DefaultBudget, so
	// the most recently edited budget seeds future weeks. The observed
	// behavior, and the default.
	BudgetPolicySyncDefault BudgetPolicy = iota

	// BudgetPolicyWeekOnly: SetBudget touches only the named week.
	BudgetPolicyWeekOnly
)

// Reduce applies one action to a snapshot and returns the next snapshot.
// It is total: any well-formed action yields exactly one result, with
// referential misses and invalid inputs treated as no-ops. The input
// snapshot is never mutated; weeks that change are rebuilt with fresh
// purchase slices.
func Reduce(s model.AppData, a Action, policy BudgetPolicy) model.AppData {
	switch a.Type {
	case ActionLoadData:
		next := a.Data
		if next.Weeks == nil {
			next.Weeks = map[string]model.Week{}
		}
		if next.DefaultBudget <= 0 {
			next.DefaultBudget = model.DefaultWeeklyBudget
		}
		return next

	case ActionEnsureWeekExists:
		if _, ok := s.Weeks[a.WeekStart]; ok {
			return s
		}
		return withWeek(s, model.Week{
			StartDate: a.WeekStart,
			Budget:    s.DefaultBudget,
			Purchases: []model.Purchase{},
		})

	case ActionAddPurchase:
		week, ok := s.Weeks[a.WeekStart]
		if !ok || !a.Purchase.Valid() {
			return s
		}
		next := week.Clone()
		next.Purchases = append(next.Purchases, a.Purchase)
		return withWeek(s, next)

	case ActionEditPurchase:
		week, ok := s.Weeks[a.WeekStart]
		if !ok || !a.Purchase.Valid() {
			return s
		}
		idx := indexOfPurchase(week.Purchases, a.Purchase.ID)
		if idx < 0 {
			return s
		}
		next := week.Clone()
		next.Purchases[idx] = a.Purchase
		return withWeek(s, next)

	case ActionDeletePurchase:
		week, ok := s.Weeks[a.WeekStart]
		if !ok {
			return s
		}
		idx := indexOfPurchase(week.Purchases, a.PurchaseID)
		if idx < 0 {
			return s
		}
		next := week.Clone()
		next.Purchases = append(next.Purchases[:idx], next.Purchases[idx+1:]...)
		return withWeek(s, next)

	case ActionSetBudget:
		week, ok := s.Weeks[a.WeekStart]
		if !ok || a.Budget <= 0 {
			return s
		}
		next := week.Clone()
		next.Budget = a.Budget
		out := withWeek(s, next)
		if policy == BudgetPolicySyncDefault {
			out.DefaultBudget = a.Budget
		}
		return out
	}

	return s
}

// withWeek returns a copy of s with one week replaced. The weeks map is
// rebuilt shallowly; untouched weeks still share purchase slices with the
// input, so callers must not mutate them in place.
func withWeek(s model.AppData, w model.Week) model.AppData {
	weeks := make(map[string]model.Week, len(s.Weeks)+1)
	for k, v := range s.Weeks {
		weeks[k] = v
	}
	weeks[w.StartDate] = w
	return model.AppData{Weeks: weeks, DefaultBudget: s.DefaultBudget}
}

func indexOfPurchase(purchases []model.Purchase, id string) int {
	for i, p := range purchases {
		if p.ID == id {
			return i
		}
	}
	return -1
}
