// Package hash maps sparse feature names into a fixed-size index space.
package hash

import "github.com/cespare/xxhash/v2"

// Hash mixes n with the salt s and reduces the result into [0, max).
func Hash(n uint32, s uint32, max uint32) uint32 {
	// mixing stage, mix input with salt using subtraction
	var m = uint32(n) - uint32(s)

	// hashing stage, use xor shift with prime coefficients
	m ^= m << 2
	m ^= m << 3
	m ^= m >> 5
	m ^= m >> 7
	m ^= m << 11
	m ^= m << 13
	m ^= m >> 17
	m ^= m << 19

	// mixing stage 2, mix input with salt using addition
	m += s

	// multiply shift range reduction (Lemire)
	// https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction/
	return uint32((uint64(m) * uint64(max)) >> 32)
}

// String folds a feature name into 32 bits.
func String(name string) uint32 {
	h := xxhash.Sum64String(name)
	return uint32(h) ^ uint32(h>>32)
}

// Index returns the bucket of a feature name under salt, within [0, max).
func Index(name string, salt, max uint32) uint32 {
	return Hash(String(name), salt, max)
}
