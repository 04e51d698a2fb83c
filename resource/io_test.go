package resource

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRateLimitedWriter_WriteLargerThanBurst(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})

	var buf bytes.Buffer
	w := NewRateLimitedWriter(context.Background(), &buf, c)

	data := make([]byte, (1<<20)+512)
	n, err := w.Write(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, len(data), buf.Len())
}

func TestRateLimitedReader_ReadAll(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})

	data := make([]byte, 64*1024)
	for i := range data {
		data[i] = byte(i)
	}

	r := NewRateLimitedReader(context.Background(), bytes.NewReader(data), c)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestRateLimited_NilController(t *testing.T) {
	var buf bytes.Buffer
	w := NewRateLimitedWriter(context.Background(), &buf, nil)
	_, err := w.Write([]byte("unlimited"))
	require.NoError(t, err)

	r := NewRateLimitedReader(context.Background(), bytes.NewReader([]byte("unlimited")), nil)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "unlimited", string(got))
}
