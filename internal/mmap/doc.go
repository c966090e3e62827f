// Package mmap provides read-only memory-mapped file access.
//
// Local blobs are mapped instead of read so that digesting a large file
// streams pages straight from the page cache into the accumulator.
//
// # Usage
//
//	m, err := mmap.Open("input.bin")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with madvise(2) for access hints
//   - Windows: CreateFileMapping/MapViewOfFile (Advise is a no-op)
//
// Mapping is safe for concurrent read access. Close is idempotent; callers
// must not touch the slice returned by Bytes after Close returns.
package mmap
