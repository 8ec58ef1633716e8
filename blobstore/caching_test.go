package blobstore

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore counts Open calls on the wrapped store.
type countingStore struct {
	Store
	opens atomic.Int32
}

func (c *countingStore) Open(ctx context.Context, name string) (Blob, error) {
	c.opens.Add(1)
	return c.Store.Open(ctx, name)
}

func TestCachingStoreReadThrough(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Store: NewMemoryStore()}
	require.NoError(t, inner.Put(ctx, "model.bin", []byte("payload")))

	s := NewCachingStore(inner)

	for i := 0; i < 3; i++ {
		b, err := s.Open(ctx, "model.bin")
		require.NoError(t, err)
		data, err := ReadAll(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), data)
		require.NoError(t, b.Close())
	}

	assert.Equal(t, int32(1), inner.opens.Load(), "repeated opens served from cache")
}

func TestCachingStoreInvalidateOnWrite(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Store: NewMemoryStore()}
	require.NoError(t, inner.Put(ctx, "model.bin", []byte("v1")))

	s := NewCachingStore(inner)

	b, err := s.Open(ctx, "model.bin")
	require.NoError(t, err)
	require.NoError(t, b.Close())

	require.NoError(t, s.Put(ctx, "model.bin", []byte("v2")))

	b, err = s.Open(ctx, "model.bin")
	require.NoError(t, err)
	data, err := ReadAll(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)
}

func TestCachingStoreMissPropagates(t *testing.T) {
	s := NewCachingStore(NewMemoryStore())
	_, err := s.Open(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCachingStoreConcurrentOpens(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Store: NewMemoryStore()}
	require.NoError(t, inner.Put(ctx, "model.bin", []byte("payload")))

	s := NewCachingStore(inner)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := s.Open(ctx, "model.bin")
			assert.NoError(t, err)
			if b != nil {
				_ = b.Close()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), inner.opens.Load(), "concurrent opens deduplicated")
}
