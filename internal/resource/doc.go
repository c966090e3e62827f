// Package resource bounds the work a scan may put on the system.
//
// A Controller manages two resource types:
//
//   - Concurrency: the number of blobs digested at the same time
//   - IO: a token bucket on the bytes read from blob stores
//
// # Worker Limits
//
//	rc := resource.NewController(resource.Config{MaxWorkers: 4})
//
//	if err := rc.AcquireWorker(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseWorker()
//
// # IO Rate Limiting
//
//	rc := resource.NewController(resource.Config{
//	    IOLimitBytesPerSec: 100 * 1024 * 1024, // 100MB/s
//	})
//
//	reader := resource.NewRateLimitedReader(ctx, blobReader, rc)
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully; they become no-ops.
package resource
