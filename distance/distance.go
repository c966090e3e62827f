package distance

import "sync"

var (
	bitPairsOnce sync.Once
	bitPairs     [256][256]uint8
)

func buildBitPairs() {
	for row := 0; row < 256; row++ {
		for col := 0; col < 256; col++ {
			x, y, diff := row, col, 0
			for i := 0; i < 4; i++ {
				d := x%4 - y%4
				if d < 0 {
					d = -d
				}
				if d == 3 {
					d = 6
				}
				diff += d
				x /= 4
				y /= 4
			}
			bitPairs[row][col] = uint8(diff)
		}
	}
}

// BitPairs returns the distance between two packed code bytes.
func BitPairs(a, b byte) int {
	bitPairsOnce.Do(buildBitPairs)
	return int(bitPairs[a][b])
}

// Codes sums BitPairs over two code slices.
// Assumes slices are the same length; extra bytes of the longer one are ignored.
func Codes(a, b []byte) int {
	bitPairsOnce.Do(buildBitPairs)

	n := min(len(a), len(b))
	a, b = a[:n], b[:n]

	result := 0
	for i := range a {
		result += int(bitPairs[a[i]][b[i]])
	}
	return result
}

// ModDiff returns the circular distance between x and y modulo circ.
// x and y must lie in [0, circ).
func ModDiff(x, y, circ int) int {
	var dl, dr int
	if x >= y {
		dl = x - y
		dr = y + circ - x
	} else {
		dl = y - x
		dr = x + circ - y
	}
	return min(dl, dr)
}
