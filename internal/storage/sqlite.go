package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"chestnut/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// SQLiteStore persists AppData in a SQLite database. Each save replaces
// the full snapshot in one transaction, matching the blob semantics of
// the file store.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at the given path.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const defaultBudgetKey = "default_budget"

// Load reads the full snapshot. An empty database is "no data yet".
func (s *SQLiteStore) Load(ctx context.Context) (model.AppData, error) {
	data := model.DefaultAppData()

	var budgetStr string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM meta WHERE key = ?", defaultBudgetKey).Scan(&budgetStr)
	switch {
	case err == sql.ErrNoRows:
		return data, nil
	case err != nil:
		return model.DefaultAppData(), fmt.Errorf("reading meta: %w", err)
	}
	if n, err := strconv.Atoi(budgetStr); err == nil && n > 0 {
		data.DefaultBudget = n
	}

	rows, err := s.db.QueryContext(ctx, "SELECT start_date, budget FROM weeks")
	if err != nil {
		return model.DefaultAppData(), fmt.Errorf("reading weeks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var w model.Week
		if err := rows.Scan(&w.StartDate, &w.Budget); err != nil {
			return model.DefaultAppData(), fmt.Errorf("scanning week: %w", err)
		}
		w.Purchases = []model.Purchase{}
		data.Weeks[w.StartDate] = w
	}
	if err := rows.Err(); err != nil {
		return model.DefaultAppData(), fmt.Errorf("reading weeks: %w", err)
	}

	prows, err := s.db.QueryContext(ctx,
		"SELECT id, week_start, name, amount, purchase_date FROM purchases ORDER BY week_start, position")
	if err != nil {
		return model.DefaultAppData(), fmt.Errorf("reading purchases: %w", err)
	}
	defer func() { _ = prows.Close() }()

	for prows.Next() {
		var p model.Purchase
		var weekStart string
		if err := prows.Scan(&p.ID, &weekStart, &p.Name, &p.Amount, &p.Date); err != nil {
			return model.DefaultAppData(), fmt.Errorf("scanning purchase: %w", err)
		}
		week, ok := data.Weeks[weekStart]
		if !ok {
			continue // orphan row, ignore
		}
		week.Purchases = append(week.Purchases, p)
		data.Weeks[weekStart] = week
	}
	if err := prows.Err(); err != nil {
		return model.DefaultAppData(), fmt.Errorf("reading purchases: %w", err)
	}

	return data, nil
}

// Save replaces the stored snapshot with data.
func (s *SQLiteStore) Save(ctx context.Context, data model.AppData) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM purchases"); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM weeks"); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		defaultBudgetKey, strconv.Itoa(data.DefaultBudget)); err != nil {
		return err
	}

	for _, week := range data.Weeks {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO weeks (start_date, budget) VALUES (?, ?)",
			week.StartDate, week.Budget); err != nil {
			return err
		}
		for pos, p := range week.Purchases {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO purchases (id, week_start, name, amount, purchase_date, position)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				p.ID, week.StartDate, p.Name, p.Amount, p.Date, pos); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}
