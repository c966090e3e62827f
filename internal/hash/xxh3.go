package hash

import "github.com/zeebo/xxh3"

// XXH3 hashes [salt, a, b, c] with XXH3-64 and truncates the result to the
// low byte.
func XXH3(salt, a, b, c byte) byte {
	buf := [4]byte{salt, a, b, c}
	return byte(xxh3.Hash(buf[:]))
}
