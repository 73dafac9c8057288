package datasets

// ClassCounts counts how many labels fall into each id in [0, n).
// Ids outside that range are ignored.
func ClassCounts(labels []int, n int) []int {
	counts := make([]int, n)
	for _, l := range labels {
		if l >= 0 && l < n {
			counts[l]++
		}
	}
	return counts
}

// LeastCommon returns the smallest non-zero count, or 0 when every count is 0.
func LeastCommon(counts []int) (least int) {
	for _, c := range counts {
		if c > 0 && (least == 0 || c < least) {
			least = c
		}
	}
	return
}

// ClassWeights balances the classes in [0, n) against the least common one:
// a class seen c times gets weight least/c, so every present class carries the
// same total weight. Absent classes get weight 0.
func ClassWeights(labels []int, n int) []float64 {
	counts := ClassCounts(labels, n)
	least := float64(LeastCommon(counts))
	weights := make([]float64, n)
	for i, c := range counts {
		if c > 0 {
			weights[i] = least / float64(c)
		}
	}
	return weights
}
