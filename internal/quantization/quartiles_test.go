package quantization

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceQuartiles(buckets []uint32) (uint32, uint32, uint32) {
	sorted := slices.Clone(buckets)
	slices.Sort(sorted)
	q := len(sorted) / 4
	return sorted[q-1], sorted[2*q-1], sorted[3*q-1]
}

func TestQuartiles(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	shapes := map[string]func(n int) []uint32{
		"Random": func(n int) []uint32 {
			b := make([]uint32, n)
			for i := range b {
				b[i] = uint32(rng.Intn(50))
			}
			return b
		},
		"Sorted": func(n int) []uint32 {
			b := make([]uint32, n)
			for i := range b {
				b[i] = uint32(i)
			}
			return b
		},
		"Reverse": func(n int) []uint32 {
			b := make([]uint32, n)
			for i := range b {
				b[i] = uint32(n - i)
			}
			return b
		},
		"Constant": func(n int) []uint32 {
			b := make([]uint32, n)
			for i := range b {
				b[i] = 7
			}
			return b
		},
		"Sparse": func(n int) []uint32 {
			b := make([]uint32, n)
			for i := 0; i < n; i += 9 {
				b[i] = uint32(1 + rng.Intn(3))
			}
			return b
		},
		"OrganPipe": func(n int) []uint32 {
			b := make([]uint32, n)
			for i := range b {
				b[i] = uint32(min(i, n-1-i))
			}
			return b
		},
		"Sawtooth": func(n int) []uint32 {
			b := make([]uint32, n)
			for i := range b {
				b[i] = uint32(i % 5)
			}
			return b
		},
	}

	for name, shape := range shapes {
		t.Run(name, func(t *testing.T) {
			for _, n := range []int{4, 8, 128, 256} {
				buckets := shape(n)
				orig := slices.Clone(buckets)

				q1, q2, q3 := Quartiles(buckets)
				e1, e2, e3 := referenceQuartiles(buckets)

				assert.Equal(t, e1, q1, "q1 n=%d", n)
				assert.Equal(t, e2, q2, "q2 n=%d", n)
				assert.Equal(t, e3, q3, "q3 n=%d", n)
				assert.Equal(t, orig, buckets, "input must not be modified")
			}
		})
	}
}

func TestQuartilesFuzz(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 2000; iter++ {
		n := 128
		if iter%2 == 1 {
			n = 256
		}
		buckets := make([]uint32, n)
		spread := 1 + rng.Intn(1000)
		for i := range buckets {
			buckets[i] = uint32(rng.Intn(spread))
		}
		if iter%7 == 0 {
			slices.Sort(buckets)
		}
		if iter%11 == 0 {
			slices.Reverse(buckets)
		}

		q1, q2, q3 := Quartiles(buckets)
		e1, e2, e3 := referenceQuartiles(buckets)
		require.Equal(t, [3]uint32{e1, e2, e3}, [3]uint32{q1, q2, q3}, "iteration %d", iter)
		require.LessOrEqual(t, q1, q2)
		require.LessOrEqual(t, q2, q3)
	}
}

// Sorted distinct counts put the middle pivot on the median in the first
// partition, so no cuts are recorded and Q1/Q3 are found through the
// closing p2-1/p2+1 entries alone.
func TestQuartilesMedianOnFirstPartition(t *testing.T) {
	for _, n := range []int{128, 256} {
		buckets := make([]uint32, n)
		for i := range buckets {
			buckets[i] = uint32(i + 1)
		}

		q1, q2, q3 := Quartiles(buckets)
		assert.Equal(t, [3]uint32{uint32(n / 4), uint32(n / 2), uint32(3 * n / 4)}, [3]uint32{q1, q2, q3}, "n=%d", n)
	}
}

func TestQuartilesInvalidCount(t *testing.T) {
	assert.Panics(t, func() { Quartiles(nil) })
	assert.Panics(t, func() { Quartiles(make([]uint32, 6)) })
	assert.Panics(t, func() { Quartiles(make([]uint32, 512)) })
}

func TestPartition(t *testing.T) {
	t.Run("TwoElements", func(t *testing.T) {
		buf := []uint32{9, 3}
		assert.Equal(t, 0, partition(buf, 0, 1))
		assert.Equal(t, []uint32{3, 9}, buf)
	})

	t.Run("PivotInFinalPosition", func(t *testing.T) {
		buf := []uint32{5, 1, 8, 3, 9, 2, 7}
		p := partition(buf, 0, len(buf)-1)
		for i := 0; i < p; i++ {
			assert.Less(t, buf[i], buf[p])
		}
		for i := p + 1; i < len(buf); i++ {
			assert.GreaterOrEqual(t, buf[i], buf[p])
		}
	})
}

func BenchmarkQuartiles(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	buckets := make([]uint32, 256)
	for i := range buckets {
		buckets[i] = uint32(rng.Intn(100))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = Quartiles(buckets)
	}
}
