// Package storage persists the AppData blob. Two backends share one
// contract: a JSON file (the default) and SQLite.
package storage

import (
	"context"
	"fmt"

	"chestnut/internal/model"
)

// Store loads and saves the full AppData value. Load returns the default
// empty AppData when nothing has been persisted yet; a corrupt blob also
// degrades to the default, with the parse error reported so the caller
// can log it instead of silently masking possible data loss.
type Store interface {
	Load(ctx context.Context) (model.AppData, error)
	Save(ctx context.Context, data model.AppData) error
}

// Backend names for Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Open selects a backend by name. An empty backend means JSON.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", BackendJSON:
		return NewFileStore(path), nil
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
