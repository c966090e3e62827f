// Package decompress detects and unwraps compressed input streams so that
// digests are computed over the original content.
package decompress

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Format identifies a compression container.
type Format uint8

const (
	// FormatNone indicates uncompressed input.
	FormatNone Format = iota
	// FormatGzip indicates a gzip member (RFC 1952).
	FormatGzip
	// FormatZstd indicates a Zstandard frame.
	FormatZstd
	// FormatLZ4 indicates an LZ4 frame.
	FormatLZ4
)

func (f Format) String() string {
	switch f {
	case FormatNone:
		return "none"
	case FormatGzip:
		return "gzip"
	case FormatZstd:
		return "zstd"
	case FormatLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Unknown(%d)", f)
	}
}

var (
	magicGzip = []byte{0x1F, 0x8B}
	magicZstd = []byte{0x28, 0xB5, 0x2F, 0xFD}
	magicLZ4  = []byte{0x04, 0x22, 0x4D, 0x18}
)

// Detect returns the format indicated by the leading bytes of data.
func Detect(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, magicZstd):
		return FormatZstd
	case bytes.HasPrefix(data, magicLZ4):
		return FormatLZ4
	case bytes.HasPrefix(data, magicGzip):
		return FormatGzip
	default:
		return FormatNone
	}
}

var zstdDecoderPool sync.Pool

func getZstdDecoder(r io.Reader) (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		dec := v.(*zstd.Decoder)
		if err := dec.Reset(r); err != nil {
			return nil, err
		}
		return dec, nil
	}
	// A single goroutine per stream; scans already run streams in parallel.
	return zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
}

func putZstdDecoder(dec *zstd.Decoder) {
	// Drop the reference to the source stream before pooling.
	if err := dec.Reset(nil); err == nil {
		zstdDecoderPool.Put(dec)
	}
}

type zstdReader struct {
	dec  *zstd.Decoder
	once sync.Once
}

func (z *zstdReader) Read(p []byte) (int, error) {
	return z.dec.Read(p)
}

func (z *zstdReader) Close() error {
	z.once.Do(func() { putZstdDecoder(z.dec) })
	return nil
}

// NewReader sniffs the leading bytes of r and returns a reader producing the
// decompressed stream together with the detected format. Input that matches
// no known magic is passed through unchanged.
//
// Closing the returned reader does not close r.
func NewReader(r io.Reader) (io.ReadCloser, Format, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(len(magicZstd))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, FormatNone, err
	}

	format := Detect(head)
	switch format {
	case FormatGzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, format, fmt.Errorf("decompress: gzip: %w", err)
		}
		return zr, format, nil
	case FormatZstd:
		dec, err := getZstdDecoder(br)
		if err != nil {
			return nil, format, fmt.Errorf("decompress: zstd: %w", err)
		}
		return &zstdReader{dec: dec}, format, nil
	case FormatLZ4:
		return io.NopCloser(lz4.NewReader(br)), format, nil
	default:
		return io.NopCloser(br), FormatNone, nil
	}
}
