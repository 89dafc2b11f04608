package storage

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore is an in-process ObjectStore for tests and local development
// without an S3 endpoint. Presigned URLs are fabricated but stable.
type MemoryStore struct {
	mu      sync.Mutex
	deleted []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.test/%s?expires=%d", key, int(expiry.Seconds())), nil
}

func (m *MemoryStore) PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.test/upload/%s?expires=%d", key, int(expiry.Seconds())), nil
}

func (m *MemoryStore) DeleteMany(ctx context.Context, keys []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, keys...)
	return nil
}

// Deleted returns every key removed so far. Test helper.
func (m *MemoryStore) Deleted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.deleted))
	copy(out, m.deleted)
	return out
}
