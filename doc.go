// Package txlsh computes locality-sensitive fuzzy digests of byte streams.
//
// A digest summarizes the distribution of byte trigrams in its input. Similar
// inputs yield digests with a small distance, unrelated inputs yield a large
// one. Digests have a fixed size and a canonical upper-case hex text form.
//
// # Quick Start
//
//	b := txlsh.NewDefault()
//	b.Update(data)
//	d, err := b.Build()
//	if err != nil {
//	    // ErrMinSizeNotReached, ErrNoValidHash or ErrDataLenOverflow
//	}
//	fmt.Println(d)                  // "T1..." hex text
//	other, _ := txlsh.Parse(text)
//	fmt.Println(d.Distance(other, true))
//
// # Configurations
//
// A Config selects the number of buckets (128 or 256), the number of
// checksum bytes (1 or 3) and the version prefix:
//
//   - VersionOriginal: no prefix, Pearson hashing
//   - Version4:        "T1" prefix, Pearson hashing
//   - VersionTxLshV1:  "X1" prefix, XXH3 hashing
//
// DefaultConfig, FullConfig and TxLshConfig cover the common cases.
//
// # Streaming
//
// A Builder is an io.Writer and io.ReaderFrom. Feeding the same bytes in any
// chunking produces the same digest. Build does not consume the builder, so
// more data may follow.
//
// # Related packages
//
//   - distance:    bit-pair distance table
//   - index:       in-memory near-neighbor index over digests
//   - scan:        concurrent digesting of blob stores
//   - blobstore:   memory, local, MinIO and S3 sources
//   - promcollector: Prometheus MetricsCollector
package txlsh
