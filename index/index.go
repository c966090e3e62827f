package index

import (
	"context"
	"errors"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/txlsh"
	"github.com/hupe1980/txlsh/distance"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidQuery is returned for a query with a negative MaxDistance or Limit.
var ErrInvalidQuery = errors.New("index: invalid query")

// Query configures a search.
type Query struct {
	// MaxDistance is the largest distance a match may have.
	MaxDistance int
	// IncludeLength adds the input length difference to the distance.
	IncludeLength bool
	// Limit caps the number of matches. If 0, all matches are returned.
	Limit int
}

// Match is a stored digest within the query distance.
type Match struct {
	ID       uint32
	Distance int
}

// Index is an in-memory near-neighbor index over compatible digests.
type Index struct {
	mu       sync.RWMutex
	cfg      txlsh.Config
	digests  map[uint32]*txlsh.Digest
	byLength [256]*roaring.Bitmap
	all      *roaring.Bitmap

	logger  *txlsh.Logger
	metrics txlsh.MetricsCollector
}

// New creates an empty index for digests compatible with cfg.
func New(cfg txlsh.Config, optFns ...Option) (*Index, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := options{
		logger:           txlsh.NoopLogger(),
		metricsCollector: txlsh.NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Index{
		cfg:     cfg,
		digests: make(map[uint32]*txlsh.Digest),
		all:     roaring.New(),
		logger:  opts.logger.WithConfig(cfg),
		metrics: opts.metricsCollector,
	}, nil
}

// Config returns the index configuration.
func (idx *Index) Config() txlsh.Config { return idx.cfg }

func (idx *Index) compatible(d *txlsh.Digest) bool {
	c := d.Config()
	return c.Buckets == idx.cfg.Buckets && c.Checksum == idx.cfg.Checksum
}

// Add stores d under id, replacing any digest already stored under id.
func (idx *Index) Add(id uint32, d *txlsh.Digest) error {
	if !idx.compatible(d) {
		idx.logger.LogAdd(context.Background(), id, txlsh.ErrIncompatibleDigest)
		return txlsh.ErrIncompatibleDigest
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.removeLocked(id)

	code := d.LengthCode()
	if idx.byLength[code] == nil {
		idx.byLength[code] = roaring.New()
	}
	idx.byLength[code].Add(id)
	idx.all.Add(id)
	idx.digests[id] = d

	idx.logger.LogAdd(context.Background(), id, nil)
	return nil
}

// Remove deletes the digest stored under id and reports whether it existed.
func (idx *Index) Remove(id uint32) bool {
	idx.mu.Lock()
	removed := idx.removeLocked(id)
	idx.mu.Unlock()

	idx.logger.LogRemove(context.Background(), id, removed)
	return removed
}

func (idx *Index) removeLocked(id uint32) bool {
	old, ok := idx.digests[id]
	if !ok {
		return false
	}
	idx.byLength[old.LengthCode()].Remove(id)
	idx.all.Remove(id)
	delete(idx.digests, id)
	return true
}

// Get returns the digest stored under id.
func (idx *Index) Get(id uint32) (*txlsh.Digest, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	d, ok := idx.digests[id]
	return d, ok
}

// Len returns the number of stored digests.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.digests)
}

// Search returns the stored digests within query.MaxDistance of q, sorted
// by distance and then by ID.
func (idx *Index) Search(q *txlsh.Digest, query Query) ([]Match, error) {
	start := time.Now()
	matches, candidates, err := idx.search(q, query)

	idx.metrics.RecordSearch(candidates, len(matches), time.Since(start), err)
	idx.logger.LogSearch(context.Background(), query.MaxDistance, candidates, len(matches), err)

	return matches, err
}

func (idx *Index) search(q *txlsh.Digest, query Query) ([]Match, int, error) {
	if query.MaxDistance < 0 || query.Limit < 0 {
		return nil, 0, ErrInvalidQuery
	}
	if !idx.compatible(q) {
		return nil, 0, txlsh.ErrIncompatibleDigest
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	candidates := idx.candidates(q, query)

	var matches []Match
	it := candidates.Iterator()
	for it.HasNext() {
		id := it.Next()
		if dist := q.Distance(idx.digests[id], query.IncludeLength); dist <= query.MaxDistance {
			matches = append(matches, Match{ID: id, Distance: dist})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].ID < matches[j].ID
	})

	if query.Limit > 0 && len(matches) > query.Limit {
		matches = matches[:query.Limit]
	}

	return matches, int(candidates.GetCardinality()), nil
}

// candidates returns the IDs whose length code alone does not rule them out.
func (idx *Index) candidates(q *txlsh.Digest, query Query) *roaring.Bitmap {
	if !query.IncludeLength {
		return idx.all
	}

	var postings []*roaring.Bitmap
	for code, bm := range idx.byLength {
		if bm == nil || bm.IsEmpty() {
			continue
		}
		if admissible(distance.ModDiff(int(q.LengthCode()), code, 256), query.MaxDistance) {
			postings = append(postings, bm)
		}
	}
	return roaring.FastOr(postings...)
}

// admissible reports whether a length code difference of d still allows a
// distance of at most maxDistance.
func admissible(d, maxDistance int) bool {
	if d <= 1 {
		return d <= maxDistance
	}
	return d*12 <= maxDistance
}

// SearchBatch runs Search for every query digest in parallel. The result
// slice is parallel to qs.
func (idx *Index) SearchBatch(ctx context.Context, qs []*txlsh.Digest, query Query) ([][]Match, error) {
	results := make([][]Match, len(qs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, q := range qs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, err := idx.Search(q, query)
			if err != nil {
				return err
			}
			results[i] = m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
