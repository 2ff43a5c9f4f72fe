package aggregate

import (
	"reflect"
	"testing"

	"chestnut/internal/model"
)

func week(start string, budget int, purchases ...model.Purchase) model.Week {
	return model.Week{StartDate: start, Budget: budget, Purchases: purchases}
}

func purchase(id string, amount int, date string) model.Purchase {
	return model.Purchase{ID: id, Name: id, Amount: amount, Date: date}
}

func TestWeekTotal(t *testing.T) {
	w := week("2024-01-07", 400,
		purchase("p1", 5, "2024-01-07"),
		purchase("p2", 14, "2024-01-08"),
		purchase("p3", 40, "2024-01-09"),
	)
	if got := WeekTotal(w); got != 59 {
		t.Errorf("WeekTotal = %d, want 59", got)
	}
	if got := WeekTotal(week("2024-01-07", 400)); got != 0 {
		t.Errorf("WeekTotal of empty week = %d, want 0", got)
	}
}

func TestSummarizeUnderBudget(t *testing.T) {
	w := week("2024-01-07", 400, purchase("p1", 5, "2024-01-07"))
	s := Summarize(w)

	if s.StartDate != "2024-01-07" || s.EndDate != "2024-01-13" {
		t.Errorf("range = %s..%s, want 2024-01-07..2024-01-13", s.StartDate, s.EndDate)
	}
	if s.TotalSpent != 5 || s.Budget != 400 {
		t.Errorf("totals = %d/%d, want 5/400", s.TotalSpent, s.Budget)
	}
	if s.IsOverBudget {
		t.Error("$5 of $400 should not be over budget")
	}
}

func TestSummarizeOverBudget(t *testing.T) {
	w := week("2024-01-07", 100,
		purchase("p1", 75, "2024-01-07"),
		purchase("p2", 75, "2024-01-08"),
	)
	if s := Summarize(w); !s.IsOverBudget {
		t.Error("$150 of $100 should be over budget")
	}

	// Exactly at budget is not over.
	atLimit := week("2024-01-07", 100, purchase("p1", 100, "2024-01-07"))
	if s := Summarize(atLimit); s.IsOverBudget {
		t.Error("spending exactly the budget is not over")
	}
}

func TestAllSummariesDescending(t *testing.T) {
	data := model.AppData{
		Weeks: map[string]model.Week{
			"2024-01-07": week("2024-01-07", 400),
			"2024-01-14": week("2024-01-14", 400),
			"2023-12-31": week("2023-12-31", 400),
		},
		DefaultBudget: 400,
	}

	var got []string
	for _, s := range AllSummaries(data) {
		got = append(got, s.StartDate)
	}
	want := []string{"2024-01-14", "2024-01-07", "2023-12-31"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestWeeklyAverage(t *testing.T) {
	if got := WeeklyAverage(nil); got != 0 {
		t.Errorf("average of no summaries = %d, want 0", got)
	}

	summaries := []model.WeekSummary{
		{TotalSpent: 100},
		{TotalSpent: 200},
		{TotalSpent: 250},
	}
	// 550/3 = 183.33, rounds to 183
	if got := WeeklyAverage(summaries); got != 183 {
		t.Errorf("average = %d, want 183", got)
	}

	if got := WeeklyAverage(summaries[:1]); got != 100 {
		t.Errorf("single summary average = %d, want 100", got)
	}
	// 100+201 = 301/2 = 150.5, rounds to 151
	if got := WeeklyAverage([]model.WeekSummary{{TotalSpent: 100}, {TotalSpent: 201}}); got != 151 {
		t.Errorf("average = %d, want 151 (round half up)", got)
	}
}

func TestGroupByDate(t *testing.T) {
	purchases := []model.Purchase{
		purchase("p1", 5, "2024-01-08"),
		purchase("p2", 14, "2024-01-07"),
		purchase("p3", 40, "2024-01-08"),
		purchase("p4", 9, "2024-01-08"),
	}

	groups := GroupByDate(purchases)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}

	monday := groups["2024-01-08"]
	if len(monday) != 3 {
		t.Fatalf("2024-01-08 has %d purchases, want 3", len(monday))
	}
	if monday[0].ID != "p1" || monday[1].ID != "p3" || monday[2].ID != "p4" {
		t.Errorf("insertion order not preserved within date group: %v %v %v",
			monday[0].ID, monday[1].ID, monday[2].ID)
	}
	if len(groups["2024-01-07"]) != 1 {
		t.Errorf("2024-01-07 has %d purchases, want 1", len(groups["2024-01-07"]))
	}
}

func TestCoreScenario(t *testing.T) {
	// Empty data, ensure week, add a $5 coffee: total 5, under budget.
	w := week("2024-01-07", 400)
	w.Purchases = append(w.Purchases, model.Purchase{ID: "p1", Name: "Coffee", Amount: 5, Date: "2024-01-07"})

	if got := WeekTotal(w); got != 5 {
		t.Errorf("WeekTotal = %d, want 5", got)
	}
	if Summarize(w).IsOverBudget {
		t.Error("IsOverBudget = true, want false")
	}
}
