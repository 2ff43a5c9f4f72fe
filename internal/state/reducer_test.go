package state

import (
	"reflect"
	"testing"

	"chestnut/internal/model"
)

func emptyData() model.AppData {
	return model.AppData{Weeks: map[string]model.Week{}, DefaultBudget: 400}
}

func purchase(id, name string, amount int, date string) model.Purchase {
	return model.Purchase{ID: id, Name: name, Amount: amount, Date: date}
}

func TestEnsureWeekExists(t *testing.T) {
	s := Reduce(emptyData(), EnsureWeekExists("2024-01-07"), BudgetPolicySyncDefault)

	week, ok := s.Weeks["2024-01-07"]
	if !ok {
		t.Fatal("week was not created")
	}
	if week.StartDate != "2024-01-07" {
		t.Errorf("StartDate = %q, want the map key", week.StartDate)
	}
	if week.Budget != 400 {
		t.Errorf("Budget = %d, want the default 400", week.Budget)
	}
	if len(week.Purchases) != 0 {
		t.Errorf("new week has %d purchases, want 0", len(week.Purchases))
	}
}

func TestEnsureWeekExistsIdempotent(t *testing.T) {
	once := Reduce(emptyData(), EnsureWeekExists("2024-01-07"), BudgetPolicySyncDefault)
	once = Reduce(once, AddPurchase("2024-01-07", purchase("p1", "Coffee", 5, "2024-01-07")), BudgetPolicySyncDefault)

	twice := Reduce(once, EnsureWeekExists("2024-01-07"), BudgetPolicySyncDefault)
	if !reflect.DeepEqual(once, twice) {
		t.Error("repeated EnsureWeekExists changed the state")
	}
}

func TestAddPurchase(t *testing.T) {
	s := Reduce(emptyData(), EnsureWeekExists("2024-01-07"), BudgetPolicySyncDefault)
	s = Reduce(s, AddPurchase("2024-01-07", purchase("p1", "Coffee", 5, "2024-01-07")), BudgetPolicySyncDefault)

	got := s.Weeks["2024-01-07"].Purchases
	if len(got) != 1 || got[0].ID != "p1" || got[0].Amount != 5 {
		t.Fatalf("purchases = %+v, want one purchase p1 of $5", got)
	}
}

func TestAddPurchaseRequiresWeek(t *testing.T) {
	before := emptyData()
	after := Reduce(before, AddPurchase("2024-01-07", purchase("p1", "Coffee", 5, "2024-01-07")), BudgetPolicySyncDefault)
	if !reflect.DeepEqual(before, after) {
		t.Error("AddPurchase to a missing week should be a no-op")
	}
}

func TestAddPurchaseRejectsInvalid(t *testing.T) {
	base := Reduce(emptyData(), EnsureWeekExists("2024-01-07"), BudgetPolicySyncDefault)

	for _, p := range []model.Purchase{
		purchase("p1", "", 5, "2024-01-07"),      // empty name
		purchase("p1", "Coffee", 0, "2024-01-07"), // zero amount
		purchase("p1", "Coffee", -5, "2024-01-07"),
		purchase("", "Coffee", 5, "2024-01-07"), // missing id
	} {
		after := Reduce(base, AddPurchase("2024-01-07", p), BudgetPolicySyncDefault)
		if len(after.Weeks["2024-01-07"].Purchases) != 0 {
			t.Errorf("invalid purchase %+v was committed", p)
		}
	}
}

func TestAddThenDeleteRoundTrip(t *testing.T) {
	base := Reduce(emptyData(), EnsureWeekExists("2024-01-07"), BudgetPolicySyncDefault)
	base = Reduce(base, AddPurchase("2024-01-07", purchase("p1", "Coffee", 5, "2024-01-07")), BudgetPolicySyncDefault)

	added := Reduce(base, AddPurchase("2024-01-07", purchase("p2", "Lunch", 14, "2024-01-08")), BudgetPolicySyncDefault)
	deleted := Reduce(added, DeletePurchase("2024-01-07", "p2"), BudgetPolicySyncDefault)

	if !reflect.DeepEqual(base.Weeks["2024-01-07"].Purchases, deleted.Weeks["2024-01-07"].Purchases) {
		t.Errorf("add+delete did not restore the purchase list: %+v", deleted.Weeks["2024-01-07"].Purchases)
	}
}

func TestEditPurchasePreservesOrder(t *testing.T) {
	s := Reduce(emptyData(), EnsureWeekExists("2024-01-07"), BudgetPolicySyncDefault)
	for _, p := range []model.Purchase{
		purchase("p1", "Coffee", 5, "2024-01-07"),
		purchase("p2", "Lunch", 14, "2024-01-08"),
		purchase("p3", "Gas", 40, "2024-01-09"),
	} {
		s = Reduce(s, AddPurchase("2024-01-07", p), BudgetPolicySyncDefault)
	}

	s = Reduce(s, EditPurchase("2024-01-07", purchase("p2", "Dinner out", 35, "2024-01-08")), BudgetPolicySyncDefault)

	got := s.Weeks["2024-01-07"].Purchases
	if len(got) != 3 {
		t.Fatalf("purchase count changed: %d", len(got))
	}
	if got[0].ID != "p1" || got[1].ID != "p2" || got[2].ID != "p3" {
		t.Errorf("insertion order not preserved: %v %v %v", got[0].ID, got[1].ID, got[2].ID)
	}
	if got[1].Name != "Dinner out" || got[1].Amount != 35 {
		t.Errorf("edit not applied: %+v", got[1])
	}
}

func TestEditPurchaseMissingIDIsNoop(t *testing.T) {
	base := Reduce(emptyData(), EnsureWeekExists("2024-01-07"), BudgetPolicySyncDefault)
	base = Reduce(base, AddPurchase("2024-01-07", purchase("p1", "Coffee", 5, "2024-01-07")), BudgetPolicySyncDefault)

	after := Reduce(base, EditPurchase("2024-01-07", purchase("ghost", "Nope", 9, "2024-01-07")), BudgetPolicySyncDefault)
	if !reflect.DeepEqual(base, after) {
		t.Error("edit of unknown id should be a no-op")
	}
}

func TestDeleteMissingPurchaseIsNoop(t *testing.T) {
	base := Reduce(emptyData(), EnsureWeekExists("2024-01-07"), BudgetPolicySyncDefault)
	after := Reduce(base, DeletePurchase("2024-01-07", "ghost"), BudgetPolicySyncDefault)
	if !reflect.DeepEqual(base, after) {
		t.Error("delete of unknown id should be a no-op")
	}
}

func TestSetBudgetSyncsDefault(t *testing.T) {
	s := Reduce(emptyData(), EnsureWeekExists("2024-01-07"), BudgetPolicySyncDefault)
	s = Reduce(s, SetBudget("2024-01-07", 350), BudgetPolicySyncDefault)

	if got := s.Weeks["2024-01-07"].Budget; got != 350 {
		t.Errorf("week budget = %d, want 350", got)
	}
	if s.DefaultBudget != 350 {
		t.Errorf("DefaultBudget = %d, want 350 under the sync policy", s.DefaultBudget)
	}

	// A week created afterwards picks up the new default.
	s = Reduce(s, EnsureWeekExists("2024-01-14"), BudgetPolicySyncDefault)
	if got := s.Weeks["2024-01-14"].Budget; got != 350 {
		t.Errorf("new week budget = %d, want 350", got)
	}
}

func TestSetBudgetWeekOnlyPolicy(t *testing.T) {
	s := Reduce(emptyData(), EnsureWeekExists("2024-01-07"), BudgetPolicyWeekOnly)
	s = Reduce(s, SetBudget("2024-01-07", 350), BudgetPolicyWeekOnly)

	if got := s.Weeks["2024-01-07"].Budget; got != 350 {
		t.Errorf("week budget = %d, want 350", got)
	}
	if s.DefaultBudget != 400 {
		t.Errorf("DefaultBudget = %d, want untouched 400", s.DefaultBudget)
	}
}

func TestSetBudgetRejectsNonPositive(t *testing.T) {
	base := Reduce(emptyData(), EnsureWeekExists("2024-01-07"), BudgetPolicySyncDefault)
	for _, b := range []int{0, -10} {
		after := Reduce(base, SetBudget("2024-01-07", b), BudgetPolicySyncDefault)
		if !reflect.DeepEqual(base, after) {
			t.Errorf("non-positive budget %d was committed", b)
		}
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	base := Reduce(emptyData(), EnsureWeekExists("2024-01-07"), BudgetPolicySyncDefault)
	base = Reduce(base, AddPurchase("2024-01-07", purchase("p1", "Coffee", 5, "2024-01-07")), BudgetPolicySyncDefault)
	before := base.Clone()

	_ = Reduce(base, AddPurchase("2024-01-07", purchase("p2", "Lunch", 14, "2024-01-08")), BudgetPolicySyncDefault)
	_ = Reduce(base, EditPurchase("2024-01-07", purchase("p1", "Tea", 4, "2024-01-07")), BudgetPolicySyncDefault)
	_ = Reduce(base, DeletePurchase("2024-01-07", "p1"), BudgetPolicySyncDefault)
	_ = Reduce(base, SetBudget("2024-01-07", 100), BudgetPolicySyncDefault)

	if !reflect.DeepEqual(before, base) {
		t.Error("Reduce mutated its input snapshot")
	}
}

func TestLoadDataNormalizes(t *testing.T) {
	s := Reduce(emptyData(), LoadData(model.AppData{}), BudgetPolicySyncDefault)
	if s.Weeks == nil {
		t.Error("LoadData should initialize the weeks map")
	}
	if s.DefaultBudget != model.DefaultWeeklyBudget {
		t.Errorf("DefaultBudget = %d, want fallback %d", s.DefaultBudget, model.DefaultWeeklyBudget)
	}
}
