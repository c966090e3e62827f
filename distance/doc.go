// Package distance provides the building blocks of the digest distance score.
//
// # Bit-pair table
//
// Quantized histogram codes pack four 2-bit symbols into each byte. The
// distance between two code bytes is the sum, over the four base-4 digits,
// of the digit difference, where a difference of 3 (the symbols sit at
// opposite ends of the range) counts as 6:
//
//	d(0b00_01_10_11, 0b11_01_10_00) = 6 + 0 + 0 + 6 = 12
//
// The 256×256 table is computed once, on first use, and is read-only
// afterwards. It is safe for concurrent use.
//
// # Circular differences
//
// Length codes and quartile ratios wrap around, so they are compared with
// ModDiff:
//
//	distance.ModDiff(1, 255, 256) // 2
package distance
