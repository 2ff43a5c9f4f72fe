package state

import (
	"context"
	"errors"
	"sync"
	"testing"

	"chestnut/internal/model"
)

// memBackend is an in-memory persistence collaborator for tests.
type memBackend struct {
	mu       sync.Mutex
	data     model.AppData
	hasData  bool
	loadErr  error
	saveErr  error
	saves    int
}

func (m *memBackend) Load(context.Context) (model.AppData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return model.DefaultAppData(), m.loadErr
	}
	if !m.hasData {
		return model.DefaultAppData(), nil
	}
	return m.data.Clone(), nil
}

func (m *memBackend) Save(_ context.Context, data model.AppData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data = data.Clone()
	m.hasData = true
	m.saves++
	return nil
}

func (m *memBackend) saved() model.AppData {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.Clone()
}

func TestDispatchBeforeLoadIsRejected(t *testing.T) {
	s := New(&memBackend{}, BudgetPolicySyncDefault)
	defer s.Close()

	if err := s.Dispatch(EnsureWeekExists("2024-01-07")); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Dispatch before Load = %v, want ErrNotLoaded", err)
	}
	if !s.Loading() {
		t.Error("Loading() should be true before Load")
	}
}

func TestLoadThenDispatch(t *testing.T) {
	backend := &memBackend{}
	s := New(backend, BudgetPolicySyncDefault)
	defer s.Close()

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Loading() {
		t.Error("Loading() should be false after Load")
	}

	if err := s.Dispatch(EnsureWeekExists("2024-01-07")); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if err := s.Dispatch(AddPurchase("2024-01-07", purchase("p1", "Coffee", 5, "2024-01-07"))); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	data := s.Data()
	got := data.Weeks["2024-01-07"].Purchases
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("purchases = %+v, want [p1]", got)
	}
}

func TestLoadErrorDegradesToDefault(t *testing.T) {
	backend := &memBackend{loadErr: errors.New("corrupt blob")}
	s := New(backend, BudgetPolicySyncDefault)
	defer s.Close()

	err := s.Load(context.Background())
	if err == nil {
		t.Fatal("Load should surface the backend error")
	}
	if s.Loading() {
		t.Error("store should be usable after a degraded load")
	}

	data := s.Data()
	if len(data.Weeks) != 0 || data.DefaultBudget != 400 {
		t.Errorf("degraded state = %+v, want default AppData", data)
	}
}

func TestDataSnapshotsAreIsolated(t *testing.T) {
	s := New(&memBackend{}, BudgetPolicySyncDefault)
	defer s.Close()
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Dispatch(EnsureWeekExists("2024-01-07")); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if err := s.Dispatch(AddPurchase("2024-01-07", purchase("p1", "Coffee", 5, "2024-01-07"))); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	snap := s.Data()
	snap.Weeks["2024-01-07"].Purchases[0] = purchase("hax", "Tampered", 1, "2024-01-07")
	delete(snap.Weeks, "2024-01-07")

	got := s.Data().Weeks["2024-01-07"].Purchases
	if len(got) != 1 || got[0].ID != "p1" {
		t.Errorf("store state leaked through a snapshot: %+v", got)
	}
}

func TestCloseFlushesFinalSnapshot(t *testing.T) {
	backend := &memBackend{}
	s := New(backend, BudgetPolicySyncDefault)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	actions := []Action{
		EnsureWeekExists("2024-01-07"),
		AddPurchase("2024-01-07", purchase("p1", "Coffee", 5, "2024-01-07")),
		AddPurchase("2024-01-07", purchase("p2", "Lunch", 14, "2024-01-08")),
		SetBudget("2024-01-07", 350),
	}
	for _, a := range actions {
		if err := s.Dispatch(a); err != nil {
			t.Fatalf("Dispatch: %v", err)
		}
	}

	want := s.Data()
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	saved := backend.saved()
	if len(saved.Weeks["2024-01-07"].Purchases) != len(want.Weeks["2024-01-07"].Purchases) {
		t.Errorf("persisted %d purchases, want %d",
			len(saved.Weeks["2024-01-07"].Purchases), len(want.Weeks["2024-01-07"].Purchases))
	}
	if saved.DefaultBudget != 350 {
		t.Errorf("persisted DefaultBudget = %d, want 350", saved.DefaultBudget)
	}

	if err := s.Dispatch(EnsureWeekExists("2024-01-14")); !errors.Is(err, ErrClosed) {
		t.Errorf("Dispatch after Close = %v, want ErrClosed", err)
	}
}

func TestSaveFailureDoesNotBlockMutation(t *testing.T) {
	backend := &memBackend{saveErr: errors.New("disk full")}
	s := New(backend, BudgetPolicySyncDefault)
	s.SetErrorLog(nil)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	for i := 0; i < 20; i++ {
		if err := s.Dispatch(EnsureWeekExists("2024-01-07")); err != nil {
			t.Fatalf("Dispatch %d: %v", i, err)
		}
	}

	// The in-memory state is intact even though every save failed.
	if _, ok := s.Data().Weeks["2024-01-07"]; !ok {
		t.Error("mutation lost after save failures")
	}
	if err := s.Close(); err == nil {
		t.Error("Close should surface the final save failure")
	}
}
