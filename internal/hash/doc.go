// Package hash provides the byte-level hash primitives used by the digest
// accumulator.
//
// Every primitive maps a salt byte and a triplet of data bytes to a single
// output byte:
//
//	h := hash.PrimitivePearson.Sum(salt, a, b, c)
//
// # Pearson
//
// The Pearson primitive chains lookups through a fixed 256-entry byte
// permutation, XOR-ing in one input byte per step:
//
//	h = T[salt]
//	h = T[h ^ a]
//	h = T[h ^ b]
//	h = T[h ^ c]
//
// It backs the original and "T1" digest formats. The permutation must match
// the reference table bit for bit, otherwise digests are not interoperable.
//
// # XXH3
//
// The XXH3 primitive hashes the four bytes [salt, a, b, c] with the 64-bit
// XXH3 function (seed 0) and keeps the low 8 bits. It backs the "X1" format.
package hash
