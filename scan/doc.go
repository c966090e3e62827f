// Package scan digests the blobs of a blobstore.BlobStore concurrently.
//
//	store := blobstore.NewLocalStore("/var/uploads")
//	s, err := scan.New(store, txlsh.DefaultConfig, scan.Config{
//	    Workers:    8,
//	    RateLimit:  64 << 20, // 64MB/s
//	    Decompress: true,
//	})
//	results, err := s.Scan(ctx, "")
//	for _, r := range results {
//	    if r.Err != nil {
//	        continue // e.g. txlsh.ErrMinSizeNotReached
//	    }
//	    fmt.Println(r.Digest, r.Name)
//	}
package scan
