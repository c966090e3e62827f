// Package index provides an in-memory near-neighbor index over digests.
//
// Digests are stored under caller-chosen uint32 IDs. A search returns every
// stored digest within a maximum distance of the query, closest first.
//
// # Length Pruning
//
// When the input length contributes to the distance, a length code that is
// d steps away from the query's adds at least d (d ≤ 1) or 12·d to the
// distance. Digests are kept in one roaring bitmap per length code, so a
// search only visits the codes that can still fall within MaxDistance.
//
//	idx, _ := index.New(txlsh.DefaultConfig)
//	_ = idx.Add(1, d1)
//	_ = idx.Add(2, d2)
//
//	matches, _ := idx.Search(q, index.Query{MaxDistance: 50, IncludeLength: true})
//	for _, m := range matches {
//	    fmt.Println(m.ID, m.Distance)
//	}
//
// # Thread Safety
//
// Index is safe for concurrent use. Searches share a read lock; Add and
// Remove take the write lock.
package index
