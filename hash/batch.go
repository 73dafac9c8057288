package hash

// Batch hashes every n[i] under the salt s into [0, max), writing out[i].
// out must be at least as long as n.
func Batch(out []uint32, n []uint32, s uint32, max uint32) {
	for i := range n {
		out[i] = Hash(n[i], s, max)
	}
}
