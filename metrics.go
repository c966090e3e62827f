package txlsh

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// promcollector package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordBuild is called after each Builder.Build.
	// bytes is the consumed input length, err is nil if a digest was built.
	RecordBuild(bytes uint64, duration time.Duration, err error)

	// RecordScan is called after each blob store scan.
	// blobs is the number of blobs visited, failed the number without digest.
	RecordScan(blobs, failed int, bytes int64, duration time.Duration)

	// RecordSearch is called after each index search.
	// candidates is the number of digests compared, matches the number returned.
	RecordSearch(candidates, matches int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(uint64, time.Duration, error)    {}
func (NoopMetricsCollector) RecordScan(int, int, int64, time.Duration)   {}
func (NoopMetricsCollector) RecordSearch(int, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount       atomic.Int64
	BuildErrors      atomic.Int64
	BuildBytes       atomic.Int64
	BuildTotalNanos  atomic.Int64
	ScanCount        atomic.Int64
	ScanBlobs        atomic.Int64
	ScanFailed       atomic.Int64
	ScanBytes        atomic.Int64
	SearchCount      atomic.Int64
	SearchErrors     atomic.Int64
	SearchCandidates atomic.Int64
	SearchMatches    atomic.Int64
	SearchTotalNanos atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(bytes uint64, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildBytes.Add(int64(bytes))
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

// RecordScan implements MetricsCollector.
func (b *BasicMetricsCollector) RecordScan(blobs, failed int, bytes int64, duration time.Duration) {
	b.ScanCount.Add(1)
	b.ScanBlobs.Add(int64(blobs))
	b.ScanFailed.Add(int64(failed))
	b.ScanBytes.Add(bytes)
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(candidates, matches int, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchCandidates.Add(int64(candidates))
	b.SearchMatches.Add(int64(matches))
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:       b.BuildCount.Load(),
		BuildErrors:      b.BuildErrors.Load(),
		BuildBytes:       b.BuildBytes.Load(),
		BuildAvgNanos:    avg(b.BuildTotalNanos.Load(), b.BuildCount.Load()),
		ScanCount:        b.ScanCount.Load(),
		ScanBlobs:        b.ScanBlobs.Load(),
		ScanFailed:       b.ScanFailed.Load(),
		ScanBytes:        b.ScanBytes.Load(),
		SearchCount:      b.SearchCount.Load(),
		SearchErrors:     b.SearchErrors.Load(),
		SearchCandidates: b.SearchCandidates.Load(),
		SearchMatches:    b.SearchMatches.Load(),
		SearchAvgNanos:   avg(b.SearchTotalNanos.Load(), b.SearchCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount       int64
	BuildErrors      int64
	BuildBytes       int64
	BuildAvgNanos    int64
	ScanCount        int64
	ScanBlobs        int64
	ScanFailed       int64
	ScanBytes        int64
	SearchCount      int64
	SearchErrors     int64
	SearchCandidates int64
	SearchMatches    int64
	SearchAvgNanos   int64
}
