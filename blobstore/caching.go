package blobstore

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// CachingStore wraps a Store and caches whole blobs in memory on first
// read. Model blobs are immutable once written and read sequentially in
// one pass, so whole-blob granularity beats a block cache here. Concurrent
// opens of the same blob are deduplicated to a single remote fetch.
type CachingStore struct {
	inner Store

	mu    sync.RWMutex
	cache map[string][]byte
	group singleflight.Group
}

// NewCachingStore creates a read-through caching wrapper around inner.
// Writes pass through and invalidate the cached copy.
func NewCachingStore(inner Store) *CachingStore {
	return &CachingStore{
		inner: inner,
		cache: make(map[string][]byte),
	}
}

func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	s.mu.RLock()
	data, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return &memoryBlob{data: data}, nil
	}

	v, err, _ := s.group.Do(name, func() (any, error) {
		b, err := s.inner.Open(ctx, name)
		if err != nil {
			return nil, err
		}
		defer b.Close()

		data, err := ReadAll(ctx, b)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.cache[name] = data
		s.mu.Unlock()
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return &memoryBlob{data: v.([]byte)}, nil
}

func (s *CachingStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	s.invalidate(name)
	w, err := s.inner.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return &invalidatingBlob{WritableBlob: w, store: s, name: name}, nil
}

func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.invalidate(name)
	return s.inner.Put(ctx, name, data)
}

func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.invalidate(name)
	return s.inner.Delete(ctx, name)
}

func (s *CachingStore) Rename(ctx context.Context, oldName, newName string) error {
	s.invalidate(oldName)
	s.invalidate(newName)
	return s.inner.Rename(ctx, oldName, newName)
}

func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

func (s *CachingStore) invalidate(name string) {
	s.mu.Lock()
	delete(s.cache, name)
	s.mu.Unlock()
}

// invalidatingBlob drops the cached copy again when the write completes,
// in case a reader repopulated it mid-write.
type invalidatingBlob struct {
	WritableBlob
	store *CachingStore
	name  string
}

func (w *invalidatingBlob) Close() error {
	err := w.WritableBlob.Close()
	w.store.invalidate(w.name)
	return err
}
