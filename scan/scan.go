package scan

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sort"
	"time"

	"github.com/hupe1980/txlsh"
	"github.com/hupe1980/txlsh/blobstore"
	"github.com/hupe1980/txlsh/internal/decompress"
	"github.com/hupe1980/txlsh/internal/resource"
	"golang.org/x/sync/errgroup"
)

// Config holds scan limits and behavior.
type Config struct {
	// Workers is the number of blobs digested concurrently.
	// If 0, defaults to runtime.GOMAXPROCS(0).
	Workers int `yaml:"workers"`

	// RateLimit caps the bytes per second read from the store.
	// If 0, unlimited.
	RateLimit int64 `yaml:"rate_limit"`

	// Decompress digests the decoded content of gzip, zstd and LZ4 blobs.
	Decompress bool `yaml:"decompress"`
}

// Result is the outcome of digesting one blob.
type Result struct {
	Name string
	// Bytes is the number of bytes fed to the builder.
	Bytes uint64
	// Compression names the detected container ("none" without Decompress).
	Compression string
	Digest      *txlsh.Digest
	// Err is set when the blob could not be read or digested.
	Err error
}

// Scanner digests the blobs of a store.
type Scanner struct {
	store   blobstore.BlobStore
	cfg     txlsh.Config
	scanCfg Config
	rc      *resource.Controller
	logger  *txlsh.Logger
	metrics txlsh.MetricsCollector
}

// New creates a scanner producing digests of the given configuration.
func New(store blobstore.BlobStore, cfg txlsh.Config, scanCfg Config, optFns ...Option) (*Scanner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if scanCfg.Workers <= 0 {
		scanCfg.Workers = runtime.GOMAXPROCS(0)
	}
	if scanCfg.RateLimit < 0 {
		return nil, fmt.Errorf("scan: negative rate limit %d", scanCfg.RateLimit)
	}

	opts := options{
		logger:           txlsh.NoopLogger(),
		metricsCollector: txlsh.NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Scanner{
		store:   store,
		cfg:     cfg,
		scanCfg: scanCfg,
		rc: resource.NewController(resource.Config{
			MaxWorkers:         int64(scanCfg.Workers),
			IOLimitBytesPerSec: scanCfg.RateLimit,
		}),
		logger:  opts.logger.WithConfig(cfg),
		metrics: opts.metricsCollector,
	}, nil
}

// Scan digests every blob whose name has the given prefix. Results are
// sorted by name. Per-blob failures are reported in Result.Err; the returned
// error is only set when listing fails or ctx is canceled.
func (s *Scanner) Scan(ctx context.Context, prefix string) ([]Result, error) {
	start := time.Now()

	names, err := s.store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("scan: list %q: %w", prefix, err)
	}

	results := make([]Result, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		if err := s.rc.AcquireWorker(gctx); err != nil {
			break
		}
		g.Go(func() error {
			defer s.rc.ReleaseWorker()
			results[i] = s.digest(gctx, name)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(a, b int) bool { return results[a].Name < results[b].Name })

	failed := 0
	var total int64
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
		total += int64(r.Bytes)
	}

	s.metrics.RecordScan(len(results), failed, total, time.Since(start))
	s.logger.LogScan(ctx, prefix, len(results), failed)

	return results, nil
}

// Digest digests a single blob.
func (s *Scanner) Digest(ctx context.Context, name string) (*txlsh.Digest, error) {
	r := s.digest(ctx, name)
	return r.Digest, r.Err
}

func (s *Scanner) digest(ctx context.Context, name string) Result {
	res := Result{Name: name, Compression: decompress.FormatNone.String()}

	d, n, err := s.sum(ctx, name, &res)
	res.Digest, res.Bytes, res.Err = d, n, err

	s.logger.LogBuild(ctx, name, n, err)
	return res
}

func (s *Scanner) sum(ctx context.Context, name string, res *Result) (*txlsh.Digest, uint64, error) {
	blob, err := s.store.Open(ctx, name)
	if err != nil {
		return nil, 0, fmt.Errorf("scan: open %q: %w", name, err)
	}
	defer blob.Close()

	rc, err := blobstore.NewReader(ctx, blob)
	if err != nil {
		return nil, 0, fmt.Errorf("scan: read %q: %w", name, err)
	}
	defer rc.Close()

	var r io.Reader = resource.NewRateLimitedReader(ctx, rc, s.rc)

	if s.scanCfg.Decompress {
		dr, format, err := decompress.NewReader(r)
		res.Compression = format.String()
		if err != nil {
			return nil, 0, fmt.Errorf("scan: %q: %w", name, err)
		}
		defer dr.Close()
		r = dr
	}

	b, err := txlsh.New(s.cfg, txlsh.WithMetricsCollector(s.metrics))
	if err != nil {
		return nil, 0, err
	}
	if _, err := b.ReadFrom(r); err != nil {
		return nil, b.Len(), fmt.Errorf("scan: read %q: %w", name, err)
	}

	d, err := b.Build()
	if err != nil {
		return nil, b.Len(), fmt.Errorf("scan: %q: %w", name, err)
	}
	return d, b.Len(), nil
}
