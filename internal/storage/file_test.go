package storage

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"chestnut/internal/model"
)

func testData() model.AppData {
	return model.AppData{
		Weeks: map[string]model.Week{
			"2024-01-07": {
				StartDate: "2024-01-07",
				Budget:    350,
				Purchases: []model.Purchase{
					{ID: "p1", Name: "Coffee", Amount: 5, Date: "2024-01-07"},
					{ID: "p2", Name: "Lunch", Amount: 14, Date: "2024-01-09"},
				},
			},
		},
		DefaultBudget: 350,
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app-data.json")
	fs := NewFileStore(path)
	ctx := context.Background()

	want := testData()
	if err := fs.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := fs.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestFileStoreMissingFileIsDefault(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	got, err := fs.Load(context.Background())
	if err != nil {
		t.Fatalf("missing file should load silently, got %v", err)
	}
	if len(got.Weeks) != 0 || got.DefaultBudget != 400 {
		t.Errorf("got %+v, want default AppData", got)
	}
}

func TestFileStoreCorruptBlobDegrades(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app-data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := NewFileStore(path).Load(context.Background())
	if err == nil {
		t.Error("corrupt blob should surface the parse error")
	}
	if len(got.Weeks) != 0 || got.DefaultBudget != 400 {
		t.Errorf("degraded result = %+v, want default AppData", got)
	}
}

func TestFileStoreSaveReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app-data.json")
	fs := NewFileStore(path)
	ctx := context.Background()

	if err := fs.Save(ctx, testData()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	next := model.DefaultAppData()
	next.DefaultBudget = 500
	if err := fs.Save(ctx, next); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, err := fs.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.DefaultBudget != 500 || len(got.Weeks) != 0 {
		t.Errorf("got %+v, want the second snapshot", got)
	}

	// No temp file left behind.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file was not cleaned up")
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	dir := t.TempDir()

	s, err := Open("", filepath.Join(dir, "d.json"))
	if err != nil {
		t.Fatalf("Open(json): %v", err)
	}
	if _, ok := s.(*FileStore); !ok {
		t.Errorf("empty backend = %T, want *FileStore", s)
	}

	if _, err := Open("carrier-pigeon", "x"); err == nil {
		t.Error("unknown backend should error")
	}
}
