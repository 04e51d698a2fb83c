package blobstore

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vocabgo/internal/cache"
)

func TestCachingStore_ReadAt(t *testing.T) {
	ctx := context.Background()

	inner := NewMemoryStore()
	data := make([]byte, 1000)
	for i := range data {
		data[i] = byte(i % 251)
	}
	require.NoError(t, inner.Put(ctx, "m.vocab", data))

	blockCache := cache.NewLRUBlockCache(1<<20, nil)
	store := NewCachingStore(inner, blockCache, 64)

	blob, err := store.Open(ctx, "m.vocab")
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(1000), blob.Size())

	// Spans multiple blocks and a partial final block.
	buf := make([]byte, 300)
	n, err := blob.ReadAt(ctx, buf, 700)
	require.NoError(t, err)
	require.Equal(t, 300, n)
	require.Equal(t, data[700:1000], buf)

	// Unaligned read in the middle.
	buf = make([]byte, 130)
	n, err = blob.ReadAt(ctx, buf, 37)
	require.NoError(t, err)
	require.Equal(t, 130, n)
	require.Equal(t, data[37:167], buf)

	// Same range again must be served from cache.
	hitsBefore, _ := blockCache.Stats()
	_, err = blob.ReadAt(ctx, buf, 37)
	require.NoError(t, err)
	hitsAfter, _ := blockCache.Stats()
	require.Greater(t, hitsAfter, hitsBefore)
}

func TestCachingStore_ReadRange(t *testing.T) {
	ctx := context.Background()

	inner := NewMemoryStore()
	data := bytes.Repeat([]byte("0123456789"), 100)
	require.NoError(t, inner.Put(ctx, "m.vocab", data))

	store := NewCachingStore(inner, cache.NewLRUBlockCache(1<<20, nil), 128)

	blob, err := store.Open(ctx, "m.vocab")
	require.NoError(t, err)
	defer blob.Close()

	rc, err := blob.ReadRange(ctx, 250, 500)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, data[250:750], got)
}

func TestCachingStore_InvalidateOnPut(t *testing.T) {
	ctx := context.Background()

	inner := NewMemoryStore()
	require.NoError(t, inner.Put(ctx, "m.vocab", bytes.Repeat([]byte("a"), 256)))

	blockCache := cache.NewLRUBlockCache(1<<20, nil)
	store := NewCachingStore(inner, blockCache, 64)

	blob, err := store.Open(ctx, "m.vocab")
	require.NoError(t, err)
	buf := make([]byte, 256)
	_, err = blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	require.NoError(t, blob.Close())
	require.Greater(t, blockCache.Size(), int64(0))

	require.NoError(t, store.Put(ctx, "m.vocab", bytes.Repeat([]byte("b"), 256)))
	require.Equal(t, int64(0), blockCache.Size())

	blob, err = store.Open(ctx, "m.vocab")
	require.NoError(t, err)
	defer blob.Close()
	_, err = blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	require.Equal(t, bytes.Repeat([]byte("b"), 256), buf)
}
