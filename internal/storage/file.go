package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"chestnut/internal/model"
)

// FileStore keeps the whole AppData as one JSON blob on disk.
type FileStore struct {
	path string
}

// NewFileStore returns a file store writing to path. The file and its
// directory are created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the blob. A missing file is "no data yet" and loads the
// default silently; an unreadable or unparseable file degrades to the
// default and returns the underlying error alongside it.
func (f *FileStore) Load(_ context.Context) (model.AppData, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppData(), nil
		}
		return model.DefaultAppData(), fmt.Errorf("reading %s: %w", f.path, err)
	}

	var data model.AppData
	if err := json.Unmarshal(raw, &data); err != nil {
		return model.DefaultAppData(), fmt.Errorf("parsing %s: %w", f.path, err)
	}
	if data.Weeks == nil {
		data.Weeks = map[string]model.Week{}
	}
	return data, nil
}

// Save writes the blob via a temp file and rename, so a crash mid-write
// never leaves a truncated file behind.
func (f *FileStore) Save(_ context.Context, data model.AppData) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o750); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding app data: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", f.path, err)
	}
	return nil
}
