package blobstore

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/hupe1980/txlsh/internal/mmap"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// ErrInvalidOffset is returned for reads at a negative offset or with a
// negative length.
var ErrInvalidOffset = mmap.ErrInvalidOffset

// sliceRange returns data[off:off+length] clamped to the end of data.
func sliceRange(data []byte, off, length int64) ([]byte, error) {
	if off < 0 || length < 0 {
		return nil, ErrInvalidOffset
	}
	if off >= int64(len(data)) {
		return nil, nil
	}
	end := int64(len(data))
	if length < end-off {
		end = off + length
	}
	return data[off:end], nil
}

// BlobStore is a read-only source of named blobs to be digested.
// Implementations must be safe for concurrent use.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// List returns the sorted names of all blobs with the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a data blob.
type Blob interface {
	// ReadAt reads len(p) bytes starting at off.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// ReadRange returns a reader for up to length bytes starting at off.
	ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error)
	// Size returns the size of the blob in bytes.
	Size() int64
	io.Closer
}

// Mappable is an optional interface for Blobs that support memory mapping.
type Mappable interface {
	// Bytes returns the underlying byte slice.
	// The slice is valid until the Blob is closed.
	// This is a zero-copy operation if supported.
	Bytes() ([]byte, error)
}

// NewReader returns a sequential reader over the whole blob.
// Mappable blobs are read without copying.
func NewReader(ctx context.Context, b Blob) (io.ReadCloser, error) {
	if m, ok := b.(Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	if b.Size() == 0 {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}
	return b.ReadRange(ctx, 0, b.Size())
}
