package quantization

// Pack classifies every bucket against the quartiles and packs four symbols
// per byte, the first bucket of each group in the lowest two bits.
// len(buckets) must be a multiple of 4.
func Pack(buckets []uint32, q1, q2, q3 uint32) []byte {
	codes := make([]byte, len(buckets)/4)
	for i := range codes {
		var h byte
		for j, count := range buckets[4*i : 4*i+4] {
			h |= byte(Classify(count, q1, q2, q3)) << (2 * j)
		}
		codes[i] = h
	}
	return codes
}

// Unpack returns the symbol of bucket i from packed codes.
func Unpack(codes []byte, i int) Symbol {
	return Symbol(codes[i/4]>>(2*(i%4))) & 3
}

// Ratio returns floor(q*100/q3) mod 16. q3 must be non-zero.
func Ratio(q, q3 uint32) uint8 {
	return uint8((uint64(q) * 100 / uint64(q3)) % 16)
}
