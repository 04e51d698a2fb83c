package minio

import (
	"context"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vocabgo/blobstore"
)

// TestStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestStore_Integration(t *testing.T) {
	endpoint := "localhost:9000"
	accessKey := "minioadmin"
	secretKey := "minioadmin"
	bucket := "test-vocabgo"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	// Check if MinIO is reachable
	if _, err := client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	// Ensure bucket exists
	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	// Missing blobs map to the shared sentinel.
	_, err = store.Open(ctx, "missing.vocab")
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	// Put and Open
	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "test.vocab", data))

	blob, err := store.Open(ctx, "test.vocab")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, len(data))
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, data, buf)

	// A read past the end reports EOF without touching the network range.
	_, err = blob.ReadAt(ctx, buf, blob.Size())
	require.ErrorIs(t, err, io.EOF)

	// A buffer overlapping the tail returns the short count plus EOF.
	tail := make([]byte, 10)
	n, err = blob.ReadAt(ctx, tail, blob.Size()-5)
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, 5, n)
	require.Equal(t, data[len(data)-5:], tail[:5])
	require.NoError(t, blob.Close())

	// ReadRange
	blob2, err := store.Open(ctx, "test.vocab")
	require.NoError(t, err)
	rc, err := blob2.ReadRange(ctx, 6, 5)
	require.NoError(t, err)
	part, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "minio", string(part))
	require.NoError(t, rc.Close())
	require.NoError(t, blob2.Close())

	// List
	names, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Contains(t, names, "test.vocab")

	// Delete, including the tolerated double delete
	require.NoError(t, store.Delete(ctx, "test.vocab"))
	require.NoError(t, store.Delete(ctx, "test.vocab"))
	_, err = store.Open(ctx, "test.vocab")
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	// Create (streaming)
	wb, err := store.Create(ctx, "stream.vocab")
	require.NoError(t, err)
	_, err = wb.Write([]byte("streamed "))
	require.NoError(t, err)
	_, err = wb.Write([]byte("model"))
	require.NoError(t, err)
	require.NoError(t, wb.Close())

	blob3, err := store.Open(ctx, "stream.vocab")
	require.NoError(t, err)
	require.Equal(t, int64(14), blob3.Size())
	require.NoError(t, blob3.Close())

	// Cleanup
	_ = store.Delete(ctx, "stream.vocab")
}
