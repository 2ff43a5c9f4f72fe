// Package state owns the canonical AppData and mediates every mutation.
// Mutations are expressed as a closed set of actions applied by a single
// reducer, mirroring the one-at-a-time intent model of the app.
package state

import "chestnut/internal/model"

// ActionType discriminates the action union.
type ActionType int

const (
	// ActionLoadData replaces the entire state. Used by the store's
	// initial load, never dispatched by consumers.
	ActionLoadData ActionType = iota
	ActionEnsureWeekExists
	ActionAddPurchase
	ActionEditPurchase
	ActionDeletePurchase
	ActionSetBudget
)

// Action is a parameterized intent to mutate AppData. Only the fields
// relevant to the Type are set; use the constructors below.
type Action struct {
	Type       ActionType
	WeekStart  string
	Purchase   model.Purchase
	PurchaseID string
	Budget     int
	Data       model.AppData
}

// LoadData builds the initial-load action.
func LoadData(data model.AppData) Action {
	return Action{Type: ActionLoadData, Data: data}
}

// EnsureWeekExists creates the week lazily if absent. Idempotent.
func EnsureWeekExists(weekStart string) Action {
	return Action{Type: ActionEnsureWeekExists, WeekStart: weekStart}
}

// AddPurchase appends a purchase to an existing week.
func AddPurchase(weekStart string, p model.Purchase) Action {
	return Action{Type: ActionAddPurchase, WeekStart: weekStart, Purchase: p}
}

// EditPurchase replaces the purchase with a matching id in place,
// preserving its position in insertion order.
func EditPurchase(weekStart string, p model.Purchase) Action {
	return Action{Type: ActionEditPurchase, WeekStart: weekStart, Purchase: p}
}

// DeletePurchase removes the purchase with the given id if present.
func DeletePurchase(weekStart, purchaseID string) Action {
	return Action{Type: ActionDeletePurchase, WeekStart: weekStart, PurchaseID: purchaseID}
}

// SetBudget sets a week's budget. Under BudgetPolicySyncDefault it also
// becomes the default for weeks created afterwards.
func SetBudget(weekStart string, budget int) Action {
	return Action{Type: ActionSetBudget, WeekStart: weekStart, Budget: budget}
}
