// Package testutil provides testing utilities for txlsh.
//
// This package is intended for use in tests and benchmarks only.
// It provides deterministic input generators and mutators for checking
// that similar inputs produce close digests.
//
// # Random Input Generation
//
//	rng := testutil.NewRNG(seed)
//	data := rng.Bytes(4096)       // uniform random bytes
//	text := rng.Text(4096)        // word-like ASCII text
//
// # Mutation
//
//	edited := rng.Mutate(text, 10) // 10 single-byte substitutions
package testutil
