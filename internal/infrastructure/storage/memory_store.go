package storage

import (
	"context"
	"errors"
	"sort"
	"sync"

	backupapp "github.com/mls/backend/internal/application/backup"
)

// Ensure MemorySnapshotStore implements SnapshotStore
var _ backupapp.SnapshotStore = (*MemorySnapshotStore)(nil)

// MemorySnapshotStore keeps snapshots in memory. Use it for development
// and tests when no object storage backend is configured.
type MemorySnapshotStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemorySnapshotStore creates a new MemorySnapshotStore
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{
		objects: make(map[string][]byte),
	}
}

// Upload stores a snapshot under the given key and returns its size in bytes
func (s *MemorySnapshotStore) Upload(ctx context.Context, key string, data []byte) (int64, error) {
	if key == "" {
		return 0, errors.New("snapshot key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[key] = buf
	return int64(len(data)), nil
}

// Download retrieves a snapshot by key
func (s *MemorySnapshotStore) Download(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.New("snapshot key is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, backupapp.ErrSnapshotNotFound
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}

// List returns the keys of stored snapshots, newest first
func (s *MemorySnapshotStore) List(ctx context.Context, limit int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.objects))
	for key := range s.objects {
		keys = append(keys, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	return keys, nil
}

// Delete removes a snapshot by key
func (s *MemorySnapshotStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("snapshot key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Exists checks whether a snapshot with the given key is stored
func (s *MemorySnapshotStore) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("snapshot key is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}
