package scan

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/txlsh"
	"github.com/hupe1980/txlsh/blobstore"
	"github.com/hupe1980/txlsh/testutil"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loremDefault = "T1DCF0DC36520C1B007FD32079B226559FD998A0200725E75AFCEAC99F5881184A4B1AA2"

func gzipped(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func newStore(t *testing.T) *blobstore.MemoryStore {
	t.Helper()
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "a.txt", []byte(testutil.Lorem)))
	require.NoError(t, store.Put(ctx, "b.txt", []byte("tiny")))
	require.NoError(t, store.Put(ctx, "c.gz", gzipped(t, []byte(testutil.Lorem))))
	require.NoError(t, store.Put(ctx, "other/x", []byte(testutil.Lorem)))
	return store
}

func TestScanner_Scan(t *testing.T) {
	metrics := &txlsh.BasicMetricsCollector{}
	var logs bytes.Buffer
	logger := txlsh.NewLogger(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := New(newStore(t), txlsh.DefaultConfig, Config{Workers: 2, Decompress: true},
		WithMetricsCollector(metrics), WithLogger(logger))
	require.NoError(t, err)

	results, err := s.Scan(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, "a.txt", results[0].Name)
	require.NoError(t, results[0].Err)
	assert.Equal(t, loremDefault, results[0].Digest.String())
	assert.Equal(t, uint64(445), results[0].Bytes)
	assert.Equal(t, "none", results[0].Compression)

	assert.Equal(t, "b.txt", results[1].Name)
	assert.ErrorIs(t, results[1].Err, txlsh.ErrMinSizeNotReached)
	assert.Nil(t, results[1].Digest)

	assert.Equal(t, "c.gz", results[2].Name)
	require.NoError(t, results[2].Err)
	assert.Equal(t, loremDefault, results[2].Digest.String())
	assert.Equal(t, "gzip", results[2].Compression)

	assert.Equal(t, "other/x", results[3].Name)
	assert.Equal(t, loremDefault, results[3].Digest.String())

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.ScanCount)
	assert.Equal(t, int64(4), stats.ScanBlobs)
	assert.Equal(t, int64(1), stats.ScanFailed)
	assert.Equal(t, int64(4), stats.BuildCount)
	assert.Equal(t, int64(1), stats.BuildErrors)

	assert.Contains(t, logs.String(), "scan completed with failures")
	assert.Contains(t, logs.String(), "config=128/1/T1")
}

func TestScanner_Prefix(t *testing.T) {
	s, err := New(newStore(t), txlsh.DefaultConfig, Config{})
	require.NoError(t, err)

	results, err := s.Scan(context.Background(), "other/")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "other/x", results[0].Name)
}

func TestScanner_NoDecompress(t *testing.T) {
	s, err := New(newStore(t), txlsh.DefaultConfig, Config{Workers: 1})
	require.NoError(t, err)

	results, err := s.Scan(context.Background(), "c.gz")
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "none", results[0].Compression)
	assert.NotEqual(t, uint64(445), results[0].Bytes)
}

func TestScanner_RateLimit(t *testing.T) {
	s, err := New(newStore(t), txlsh.DefaultConfig, Config{Workers: 4, RateLimit: 1 << 20})
	require.NoError(t, err)

	results, err := s.Scan(context.Background(), "a.txt")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, loremDefault, results[0].Digest.String())
}

func TestScanner_Digest(t *testing.T) {
	s, err := New(newStore(t), txlsh.FullConfig, Config{})
	require.NoError(t, err)
	ctx := context.Background()

	d, err := s.Digest(ctx, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, txlsh.FullConfig, d.Config())

	_, err = s.Digest(ctx, "missing")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

type failingStore struct {
	blobstore.BlobStore
}

func (failingStore) List(context.Context, string) ([]string, error) {
	return nil, errors.New("list failed")
}

func TestScanner_ListError(t *testing.T) {
	s, err := New(failingStore{}, txlsh.DefaultConfig, Config{})
	require.NoError(t, err)

	_, err = s.Scan(context.Background(), "")
	assert.ErrorContains(t, err, "list failed")
}

func TestScanner_Canceled(t *testing.T) {
	s, err := New(newStore(t), txlsh.DefaultConfig, Config{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Scan(ctx, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(blobstore.NewMemoryStore(), txlsh.Config{Buckets: 5}, Config{})
	var cfgErr *txlsh.ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	_, err = New(blobstore.NewMemoryStore(), txlsh.DefaultConfig, Config{RateLimit: -1})
	assert.Error(t, err)
}

func TestScanner_LocalStore(t *testing.T) {
	dir := t.TempDir()
	rng := testutil.NewRNG(4711)
	text := rng.Text(8192)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "orig.txt"), text, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "edit.txt"), rng.Mutate(text, 5), 0o600))

	s, err := New(blobstore.NewLocalStore(dir), txlsh.TxLshConfig, Config{})
	require.NoError(t, err)

	results, err := s.Scan(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.NoError(t, results[0].Err)
	require.NoError(t, results[1].Err)

	assert.Equal(t, "edit.txt", results[0].Name)
	assert.Less(t, results[0].Digest.Distance(results[1].Digest, true), 100)
}
