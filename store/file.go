package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"mealcart/domain"
)

// FileStore is a JSON file-backed domain.CartStore. The file holds one
// object mapping storage keys to snapshots, like a browser's local storage.
// It is re-read on every Load so separate processes see each other's writes.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// compile-time assertion
var _ domain.CartStore = (*FileStore)(nil)

// NewFileStore constructs a FileStore at the given path. The file need not exist
// yet, but if it does it must hold valid JSON.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	if _, err := s.readAll(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) readAll() (map[string]domain.Snapshot, error) {
	all := make(map[string]domain.Snapshot)
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// no file yet; that's fine
			return all, nil
		}
		return nil, err
	}
	if len(b) == 0 {
		return all, nil
	}
	if err := json.Unmarshal(b, &all); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return all, nil
}

func (s *FileStore) writeAll(all map[string]domain.Snapshot) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	// map keys marshal sorted, so files are deterministic
	b, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Load(ctx context.Context, key string) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	all, err := s.readAll()
	if err != nil {
		return domain.Snapshot{}, err
	}
	snap, ok := all[key]
	if !ok || snap.Lines == nil {
		return domain.EmptySnapshot(), nil
	}
	return snap, nil
}

func (s *FileStore) Save(ctx context.Context, key string, snap domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		// a corrupt file is replaced rather than blocking every write
		all = make(map[string]domain.Snapshot)
	}
	if snap.Lines == nil {
		snap = domain.EmptySnapshot()
	}
	all[key] = snap
	return s.writeAll(all)
}
