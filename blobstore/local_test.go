package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, name string, data []byte) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o600))
}

func TestLocalStore_OpenRead(t *testing.T) {
	tmpDir := t.TempDir()
	data := []byte("hello world, this is a test blob for txlsh")
	writeFile(t, tmpDir, "data-001.bin", data)

	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	blob, err := store.Open(ctx, "data-001.bin")
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(ctx, buf, 6)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	assert.Equal(t, "world", string(buf))

	rc, err := blob.ReadRange(ctx, 6, 5)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "world", string(got))

	m, ok := blob.(Mappable)
	require.True(t, ok)
	mapped, err := m.Bytes()
	require.NoError(t, err)
	assert.Equal(t, data, mapped)
}

func TestLocalStore_NotFound(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	_, err := store.Open(context.Background(), "missing.bin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_List(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "b.txt", []byte("b"))
	writeFile(t, tmpDir, "a.txt", []byte("a"))
	writeFile(t, tmpDir, "logs/2024/app.log", []byte("log"))
	writeFile(t, tmpDir, "logs/sys.log", []byte("log"))

	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt", "logs/2024/app.log", "logs/sys.log"}, all)

	logs, err := store.List(ctx, "logs/")
	require.NoError(t, err)
	assert.Equal(t, []string{"logs/2024/app.log", "logs/sys.log"}, logs)
}

func TestLocalStore_ListMissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "nope"))

	_, err := store.List(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewReader(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "f", []byte("mapped content"))
	writeFile(t, tmpDir, "empty", nil)

	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	for name, expected := range map[string]string{"f": "mapped content", "empty": ""} {
		blob, err := store.Open(ctx, name)
		require.NoError(t, err)

		r, err := NewReader(ctx, blob)
		require.NoError(t, err)
		got, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, expected, string(got))

		require.NoError(t, r.Close())
		require.NoError(t, blob.Close())
	}
}

func TestLocalStore_InvalidRange(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "a.bin", []byte("0123456789"))

	ctx := context.Background()
	blob, err := NewLocalStore(tmpDir).Open(ctx, "a.bin")
	require.NoError(t, err)
	defer blob.Close()

	_, err = blob.ReadRange(ctx, -1, 4)
	assert.ErrorIs(t, err, ErrInvalidOffset)

	_, err = blob.ReadRange(ctx, 2, -1)
	assert.ErrorIs(t, err, ErrInvalidOffset)

	rc, err := blob.ReadRange(ctx, 8, 1<<62)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "89", string(got))
}
