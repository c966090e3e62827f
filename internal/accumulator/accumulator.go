// Package accumulator implements the streaming stage of the digest: a five
// byte sliding window feeding a bucket histogram and a chained checksum.
package accumulator

import (
	"fmt"

	"github.com/hupe1980/txlsh/internal/hash"
)

const (
	// WindowSize is the number of bytes the window looks back over.
	WindowSize = 5
	// NumBuckets is the histogram size; narrower digests use a prefix of it.
	NumBuckets = 256
	// MaxChecksumLen is the longest supported checksum chain.
	MaxChecksumLen = 3
)

// Accumulator consumes a byte stream and keeps the bucket histogram, the
// checksum chain and the total length. The zero value is not usable; call New.
//
// An Accumulator is not safe for concurrent use.
type Accumulator struct {
	buckets     [NumBuckets]uint32
	window      [WindowSize]byte
	checksum    [MaxChecksumLen]byte
	checksumLen int
	length      uint64
	primitive   hash.Primitive
	sum         func(salt, a, b, c byte) byte
}

// New creates an accumulator using primitive p and a checksum of
// checksumLen bytes (1 to MaxChecksumLen).
func New(p hash.Primitive, checksumLen int) *Accumulator {
	if checksumLen < 1 || checksumLen > MaxChecksumLen {
		panic(fmt.Sprintf("accumulator: invalid checksum length %d", checksumLen))
	}
	return &Accumulator{
		checksumLen: checksumLen,
		primitive:   p,
		sum:         p.Func(),
	}
}

// Update appends data to the stream. Splitting a stream into chunks never
// changes the result: the window carries over between calls.
func (a *Accumulator) Update(data []byte) {
	sum := a.sum
	w := &a.window

	j0 := int(a.length % WindowSize)
	j1 := (j0 + WindowSize - 1) % WindowSize
	j2 := (j0 + WindowSize - 2) % WindowSize
	j3 := (j0 + WindowSize - 3) % WindowSize
	j4 := (j0 + WindowSize - 4) % WindowSize

	fed := a.length
	for _, b := range data {
		w[j0] = b

		if fed >= WindowSize-1 {
			a.checksum[0] = sum(0, w[j0], w[j1], a.checksum[0])
			for k := 1; k < a.checksumLen; k++ {
				a.checksum[k] = sum(a.checksum[k-1], w[j0], w[j1], a.checksum[k])
			}

			// Six of the ten triplets of the window; the others are
			// covered as the window slides.
			a.buckets[sum(2, w[j0], w[j1], w[j2])]++
			a.buckets[sum(3, w[j0], w[j1], w[j3])]++
			a.buckets[sum(5, w[j0], w[j2], w[j3])]++
			a.buckets[sum(7, w[j0], w[j2], w[j4])]++
			a.buckets[sum(11, w[j0], w[j1], w[j4])]++
			a.buckets[sum(13, w[j0], w[j3], w[j4])]++
		}

		fed++
		j0, j1, j2, j3, j4 = j4, j0, j1, j2, j3
	}

	a.length = fed
}

// UpdateFrom appends data[offset:offset+n] to the stream.
func (a *Accumulator) UpdateFrom(data []byte, offset, n int) {
	a.Update(data[offset : offset+n])
}

// Reset clears the histogram, window, checksum and length.
func (a *Accumulator) Reset() {
	a.buckets = [NumBuckets]uint32{}
	a.window = [WindowSize]byte{}
	a.checksum = [MaxChecksumLen]byte{}
	a.length = 0
}

// Len returns the number of bytes consumed since creation or the last Reset.
func (a *Accumulator) Len() uint64 {
	return a.length
}

// Buckets returns the first n histogram counters. The slice aliases the
// accumulator's state and must not be modified or retained across updates.
func (a *Accumulator) Buckets(n int) []uint32 {
	return a.buckets[:n]
}

// Checksum returns a copy of the checksum chain.
func (a *Accumulator) Checksum() []byte {
	out := make([]byte, a.checksumLen)
	copy(out, a.checksum[:a.checksumLen])
	return out
}

// Primitive returns the hash primitive in use.
func (a *Accumulator) Primitive() hash.Primitive {
	return a.primitive
}
