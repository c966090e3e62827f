package txlsh_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/hupe1980/txlsh"
	"github.com/hupe1980/txlsh/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	loremDefault = "T1DCF0DC36520C1B007FD32079B226559FD998A0200725E75AFCEAC99F5881184A4B1AA2"
	loremFull    = "T1DC33D4F0DCA405C02AF1D4860CA5894A05301D60E9915198060A7044C608A1E89A11BD2B2836520C1B007FD32079B226559FD998A0200725E75AFCEAC99F5881184A4B1AA2"
	loremTxLsh   = "X18B6AADF05C1C6293150EE83C25635D4C68650291D7C57D492757E52174B7800D6577546B39F325196422CA6DA78F6553446016F5B138B8F8B97410A0D3930ACD3FBCB99991"
)

func TestBuilder_RegressionVectors(t *testing.T) {
	tests := []struct {
		name     string
		cfg      txlsh.Config
		expected string
	}{
		{"128/1/T1", txlsh.DefaultConfig, loremDefault},
		{"256/3/T1", txlsh.FullConfig, loremFull},
		{"256/3/X1", txlsh.TxLshConfig, loremTxLsh},
		{"128/1/Original", txlsh.Config{Buckets: txlsh.Bucket128, Checksum: txlsh.ChecksumOneByte, Version: txlsh.VersionOriginal},
			"DCF0DC36520C1B007FD32079B226559FD998A0200725E75AFCEAC99F5881184A4B1AA2"},
		{"128/1/X1", txlsh.Config{Buckets: txlsh.Bucket128, Checksum: txlsh.ChecksumOneByte, Version: txlsh.VersionTxLshV1},
			"X18BF05CF325196422CA6DA78F6553446016F5B138B8F8B97410A0D3930ACD3FBCB99991"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := txlsh.New(tt.cfg)
			require.NoError(t, err)

			b.Update([]byte(testutil.Lorem))
			d, err := b.Build()
			require.NoError(t, err)

			assert.Equal(t, tt.expected, d.String())
			assert.Len(t, d.String(), tt.cfg.EncodedLen())
		})
	}
}

func TestBuilder_Fields(t *testing.T) {
	d, err := txlsh.Sum(txlsh.DefaultConfig, []byte(testutil.Lorem))
	require.NoError(t, err)

	assert.Equal(t, []byte{0xCD}, d.Checksum())
	assert.Equal(t, uint8(15), d.LengthCode())
	assert.Equal(t, uint8(13), d.Q1Ratio())
	assert.Equal(t, uint8(12), d.Q2Ratio())

	codes := d.Codes()
	require.Len(t, codes, 32)
	assert.Equal(t, byte(0xA2), codes[0])
	assert.Equal(t, byte(0x36), codes[31])
	assert.Equal(t, txlsh.DefaultConfig, d.Config())
}

func TestBuilder_ChunkingIndependence(t *testing.T) {
	rng := testutil.NewRNG(4711)
	data := rng.Text(8192)

	for _, cfg := range txlsh.Configs() {
		t.Run(cfg.String(), func(t *testing.T) {
			whole, err := txlsh.Sum(cfg, data)
			require.NoError(t, err)

			b := txlsh.MustNew(cfg)
			for _, chunk := range rng.Chunks(data, 97) {
				b.Update(chunk)
			}
			chunked, err := b.Build()
			require.NoError(t, err)

			assert.Equal(t, whole.String(), chunked.String())
			assert.Equal(t, uint64(len(data)), b.Len())
		})
	}
}

func TestBuilder_UpdateFrom(t *testing.T) {
	padded := append([]byte("xxxx"), testutil.Lorem...)
	padded = append(padded, "yyyy"...)

	b := txlsh.NewDefault()
	b.UpdateFrom(padded, 4, len(testutil.Lorem))
	d, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, loremDefault, d.String())
}

func TestBuilder_MinSize(t *testing.T) {
	data := testutil.NewRNG(1).Bytes(txlsh.MinDataLen)

	b := txlsh.NewDefault()
	for i := 0; i < txlsh.MinDataLen-1; i++ {
		b.Update(data[i : i+1])
	}

	_, err := b.Build()
	assert.ErrorIs(t, err, txlsh.ErrMinSizeNotReached)

	b.Update(data[txlsh.MinDataLen-1:])
	_, err = b.Build()
	assert.NoError(t, err)
}

func TestBuilder_NoValidHash(t *testing.T) {
	for _, cfg := range txlsh.Configs() {
		b := txlsh.MustNew(cfg)
		b.Update(bytes.Repeat([]byte{'A'}, 1000))

		_, err := b.Build()
		assert.ErrorIs(t, err, txlsh.ErrNoValidHash, cfg.String())
	}
}

func TestBuilder_BuildIsRepeatable(t *testing.T) {
	b := txlsh.NewFull()
	b.Update([]byte(testutil.Lorem[:200]))

	first, err := b.Build()
	require.NoError(t, err)
	again, err := b.Build()
	require.NoError(t, err)
	assert.True(t, first.Equal(again))

	b.Update([]byte(testutil.Lorem[200:]))
	full, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, loremFull, full.String())
}

func TestBuilder_Reset(t *testing.T) {
	b := txlsh.NewTxLsh()
	b.Update(testutil.NewRNG(3).Bytes(4096))
	b.Reset()

	assert.Equal(t, uint64(0), b.Len())
	_, err := b.Build()
	assert.ErrorIs(t, err, txlsh.ErrMinSizeNotReached)

	b.Update([]byte(testutil.Lorem))
	d, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, loremTxLsh, d.String())
}

func TestBuilder_WriteAndReadFrom(t *testing.T) {
	b := txlsh.NewDefault()
	n, err := b.Write([]byte(testutil.Lorem))
	require.NoError(t, err)
	assert.Equal(t, len(testutil.Lorem), n)

	d, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, loremDefault, d.String())

	b = txlsh.NewDefault()
	m, err := b.ReadFrom(iotest.OneByteReader(strings.NewReader(testutil.Lorem)))
	require.NoError(t, err)
	assert.Equal(t, int64(len(testutil.Lorem)), m)

	d, err = b.Build()
	require.NoError(t, err)
	assert.Equal(t, loremDefault, d.String())
}

func TestBuilder_ReadFromError(t *testing.T) {
	b := txlsh.NewDefault()
	_, err := b.ReadFrom(iotest.ErrReader(assert.AnError))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := txlsh.New(txlsh.Config{Buckets: 7})

	var cfgErr *txlsh.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "Buckets", cfgErr.Field)

	assert.Panics(t, func() { txlsh.MustNew(txlsh.Config{Version: 9}) })
}

func TestSumReader(t *testing.T) {
	ctx := context.Background()

	d, err := txlsh.SumReader(ctx, txlsh.FullConfig, strings.NewReader(testutil.Lorem))
	require.NoError(t, err)
	assert.Equal(t, loremFull, d.String())

	_, err = txlsh.SumReader(ctx, txlsh.FullConfig, iotest.ErrReader(assert.AnError))
	assert.ErrorIs(t, err, assert.AnError)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = txlsh.SumReader(canceled, txlsh.FullConfig, strings.NewReader(testutil.Lorem))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuilder_Metrics(t *testing.T) {
	metrics := &txlsh.BasicMetricsCollector{}
	b := txlsh.NewDefault(txlsh.WithMetricsCollector(metrics))

	_, err := b.Build()
	require.ErrorIs(t, err, txlsh.ErrMinSizeNotReached)

	b.Update([]byte(testutil.Lorem))
	_, err = b.Build()
	require.NoError(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.BuildCount)
	assert.Equal(t, int64(1), stats.BuildErrors)
	assert.Equal(t, int64(len(testutil.Lorem)), stats.BuildBytes)
}

func TestWithMetricsCollector_Nil(t *testing.T) {
	b := txlsh.NewDefault(txlsh.WithMetricsCollector(nil))
	b.Update([]byte(testutil.Lorem))

	_, err := b.Build()
	assert.NoError(t, err)
}

func BenchmarkBuilder_Update(b *testing.B) {
	data := testutil.NewRNG(4711).Bytes(1 << 20)
	builder := txlsh.NewDefault()

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		builder.Reset()
		builder.Update(data)
		if _, err := builder.Build(); err != nil {
			b.Fatal(err)
		}
	}
}
