// Package model defines the chestnut domain types: purchases, weeks, and
// the single AppData root that persistence and the state store exchange.
package model

// DefaultWeeklyBudget seeds DefaultBudget when no prior data exists.
const DefaultWeeklyBudget = 400

// Purchase is a single logged expense. Amount is whole dollars.
type Purchase struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount int    `json:"amount"`
	Date   string `json:"date"` // YYYY-MM-DD, within the owning week
}

// Valid reports whether a purchase may be committed: a non-empty name and
// a positive amount. The id and date are the caller's responsibility.
func (p Purchase) Valid() bool {
	return p.ID != "" && p.Name != "" && p.Amount > 0
}

// Week holds one budget period. StartDate is the Sunday identifying the
// week and doubles as the AppData map key. Purchases keep insertion order.
type Week struct {
	StartDate string     `json:"startDate"`
	Budget    int        `json:"budget"`
	Purchases []Purchase `json:"purchases"`
}

// AppData is the single root of truth. Every key in Weeks equals the
// StartDate of its value.
type AppData struct {
	Weeks         map[string]Week `json:"weeks"`
	DefaultBudget int             `json:"defaultBudget"`
}

// WeekSummary is a derived projection of a week, never stored.
type WeekSummary struct {
	StartDate    string
	EndDate      string
	TotalSpent   int
	Budget       int
	IsOverBudget bool
}

// DefaultAppData returns the empty starting state used when nothing has
// been persisted yet.
func DefaultAppData() AppData {
	return AppData{
		Weeks:         map[string]Week{},
		DefaultBudget: DefaultWeeklyBudget,
	}
}

// Clone deep-copies the AppData so snapshots handed out by the store are
// isolated from later mutations.
func (d AppData) Clone() AppData {
	out := AppData{
		Weeks:         make(map[string]Week, len(d.Weeks)),
		DefaultBudget: d.DefaultBudget,
	}
	for key, w := range d.Weeks {
		out.Weeks[key] = w.Clone()
	}
	return out
}

// Clone deep-copies a week, including its purchase slice.
func (w Week) Clone() Week {
	cp := w
	if w.Purchases != nil {
		cp.Purchases = make([]Purchase, len(w.Purchases))
		copy(cp.Purchases, w.Purchases)
	}
	return cp
}
