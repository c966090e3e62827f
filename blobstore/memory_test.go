package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("hello memory")
	require.NoError(t, store.Put(ctx, "dir/one", data))
	require.NoError(t, store.Put(ctx, "dir/two", []byte("second")))
	require.NoError(t, store.Put(ctx, "other", []byte("x")))

	// Put copies its input.
	data[0] = 'J'

	blob, err := store.Open(ctx, "dir/one")
	require.NoError(t, err)
	assert.Equal(t, int64(12), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", string(buf))

	n, err = blob.ReadAt(ctx, buf, 10)
	assert.Equal(t, 2, n)
	assert.Equal(t, io.EOF, err)

	names, err := store.List(ctx, "dir/")
	require.NoError(t, err)
	assert.Equal(t, []string{"dir/one", "dir/two"}, names)

	require.NoError(t, store.Delete(ctx, "dir/one"))
	_, err = store.Open(ctx, "dir/one")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_NewReader(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "blob", []byte("streamed")))
	require.NoError(t, store.Put(ctx, "empty", nil))

	blob, err := store.Open(ctx, "blob")
	require.NoError(t, err)
	r, err := NewReader(ctx, blob)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "streamed", string(got))

	rc, err := blob.ReadRange(ctx, 3, 100)
	require.NoError(t, err)
	got, err = io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "eamed", string(got))

	empty, err := store.Open(ctx, "empty")
	require.NoError(t, err)
	r, err = NewReader(ctx, empty)
	require.NoError(t, err)
	got, err = io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStore_InvalidRange(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	require.NoError(t, m.Put(ctx, "a", []byte("0123456789")))

	blob, err := m.Open(ctx, "a")
	require.NoError(t, err)

	_, err = blob.ReadRange(ctx, -1, 4)
	assert.ErrorIs(t, err, ErrInvalidOffset)

	_, err = blob.ReadAt(ctx, make([]byte, 2), -3)
	assert.ErrorIs(t, err, ErrInvalidOffset)
}
