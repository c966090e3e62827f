package hash

import "fmt"

// Primitive selects the salted triplet hash used while accumulating.
type Primitive uint8

const (
	// PrimitivePearson uses the Pearson permutation table.
	PrimitivePearson Primitive = iota
	// PrimitiveXXH3 uses the truncated XXH3-64 hash.
	PrimitiveXXH3
)

// Sum hashes a salt and three data bytes into one byte.
func (p Primitive) Sum(salt, a, b, c byte) byte {
	if p == PrimitiveXXH3 {
		return XXH3(salt, a, b, c)
	}
	return Pearson(salt, a, b, c)
}

// Func returns the hash function for the primitive.
// Hot loops call the returned function directly to avoid the branch in Sum.
func (p Primitive) Func() func(salt, a, b, c byte) byte {
	if p == PrimitiveXXH3 {
		return XXH3
	}
	return Pearson
}

func (p Primitive) String() string {
	switch p {
	case PrimitivePearson:
		return "Pearson"
	case PrimitiveXXH3:
		return "XXH3"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}
