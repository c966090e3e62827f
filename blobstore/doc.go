// Package blobstore provides read-only sources of blobs to be digested.
//
// BlobStore is the interface the scan package walks: it lists blob names
// under a prefix and opens blobs for reading. Implementations must be safe
// for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-memory map, mainly for tests
//   - LocalStore: local filesystem with mmap support
//   - minio.Store: MinIO and other S3-compatible services
//   - s3.Store: Amazon S3 with range reads
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Blobs that expose their contents as a byte slice may implement Mappable;
// NewReader then reads them without copying.
package blobstore
