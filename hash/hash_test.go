package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// performance benchmark
func BenchmarkIndex(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Index("suffix=ing", uint32(i), 65537)
	}
}

// sanity check fuzz
func FuzzHash(f *testing.F) {
	f.Add(uint32(0), uint32(0), uint32(0))
	f.Add(uint32(7), uint32(3), uint32(65537))
	f.Fuzz(func(t *testing.T, n, s, max uint32) {
		out := Hash(n, s, max)
		if max == 0 && out != 0 {
			t.Errorf("Hash(%d, %d, 0) == %d (max=0 should be 0)", n, s, out)
		}
		if max > 0 && out >= max {
			t.Errorf("Hash(%d, %d, %d) == %d (output bigger or equal than max)", n, s, max, out)
		}
	})
}

func TestIndexIsStableAndSalted(t *testing.T) {
	const max = 65537
	a := Index("w=boston", 1, max)
	require.Equal(t, a, Index("w=boston", 1, max))
	require.Less(t, a, uint32(max))

	// different salts should scatter one name over several buckets
	buckets := map[uint32]struct{}{}
	for salt := uint32(0); salt < 16; salt++ {
		buckets[Index("w=boston", salt, max)] = struct{}{}
	}
	require.Greater(t, len(buckets), 8)
}

func TestStringSpreadsNames(t *testing.T) {
	seen := map[uint32]string{}
	for _, name := range []string{"w=a", "w=b", "p1=a", "s1=a", "shape=Xx", "stem=run"} {
		h := String(name)
		prev, dup := seen[h]
		require.False(t, dup, "%q collides with %q", name, prev)
		seen[h] = name
	}
}

func TestDim(t *testing.T) {
	tests := []struct {
		min  uint32
		want uint32
	}{
		{0, 2},
		{2, 2},
		{3, 3},
		{4, 5},
		{100, 101},
		{101, 101},
		{1000, 1009},
		{1 << 16, 65537},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, Dim(tc.min), "Dim(%d)", tc.min)
	}
}

func TestBatchMatchesHash(t *testing.T) {
	n := []uint32{0, 1, 2, 0xffffffff, 12345}
	out := make([]uint32, len(n))
	Batch(out, n, 99, 1009)
	for i := range n {
		require.Equal(t, Hash(n[i], 99, 1009), out[i])
	}
}
