package testutil

import (
	"math/rand"
	"sync"
)

// Lorem is a 445 byte ASCII paragraph used as a fixed test input.
const Lorem = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat. Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur. Excepteur sint occaecat cupidatat non proident, sunt in culpa qui officia deserunt mollit anim id est laborum."

var words = []string{
	"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel",
	"india", "juliet", "kilo", "lima", "mike", "november", "oscar", "papa",
	"quebec", "romeo", "sierra", "tango", "uniform", "victor", "whiskey",
	"xray", "yankee", "zulu", "the", "a", "of", "and", "to", "in",
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Bytes returns n uniformly distributed random bytes.
func (r *RNG) Bytes(n int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := make([]byte, n)
	_, _ = r.rand.Read(b)
	return b
}

// Text returns n bytes of space separated words.
func (r *RNG) Text(n int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := make([]byte, 0, n+16)
	for len(b) < n {
		if len(b) > 0 {
			b = append(b, ' ')
		}
		b = append(b, words[r.rand.Intn(len(words))]...)
	}
	return b[:n]
}

// Mutate returns a copy of data with edits random bytes replaced by
// different printable ASCII characters.
func (r *RNG) Mutate(data []byte, edits int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]byte, len(data))
	copy(out, data)
	if len(out) == 0 {
		return out
	}
	for i := 0; i < edits; i++ {
		pos := r.rand.Intn(len(out))
		c := byte(' ' + r.rand.Intn(95))
		if c == out[pos] {
			c = '~' - (c - ' ')
			if c == out[pos] {
				c = '#'
				if out[pos] == '#' {
					c = '$'
				}
			}
		}
		out[pos] = c
	}
	return out
}

// Chunks splits data into consecutive pieces of random length in [1,max].
func (r *RNG) Chunks(data []byte, max int) [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	var chunks [][]byte
	for len(data) > 0 {
		n := 1 + r.rand.Intn(max)
		if n > len(data) {
			n = len(data)
		}
		chunks = append(chunks, data[:n])
		data = data[n:]
	}
	return chunks
}
