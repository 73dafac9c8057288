package hash

import "github.com/jbarham/primegen"

// Dim returns the smallest prime that is at least min.
func Dim(min uint32) uint32 {
	if min <= 2 {
		return 2
	}
	p := primegen.New()
	p.SkipTo(uint64(min) - 1)
	for {
		if q := p.Next(); q >= uint64(min) {
			return uint32(q)
		}
	}
}
