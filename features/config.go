package features

// Config sizes the hashed indicator space and the token cache.
type Config struct {
	// SparseDims is the minimum number of hashed indicator slots. The
	// builder rounds it up to a prime.
	SparseDims uint32
	// CacheSize bounds the number of tokens whose indicators are memoized.
	CacheSize uint64
	// Language selects the snowball stemmer.
	Language string
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		SparseDims: 1 << 16,
		CacheSize:  1 << 16,
		Language:   "english",
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SparseDims == 0 {
		c.SparseDims = d.SparseDims
	}
	if c.CacheSize == 0 {
		c.CacheSize = d.CacheSize
	}
	if c.Language == "" {
		c.Language = d.Language
	}
	return c
}
