package byteset

// Searcher finds the first byte of a haystack that belongs to a set.
// Build one with Bytes.WithFallback; the zero value matches nothing.
type Searcher struct {
	set      Bytes
	lo, hi   uint64
	fallback func(byte) bool
}

// Bytes returns the set the searcher looks for.
func (s Searcher) Bytes() Bytes {
	return s.set
}

// Contains reports whether data contains any byte of the set.
func (s Searcher) Contains(data []byte) bool {
	return s.Index(data) >= 0
}

// ContainsString reports whether str contains any byte of the set.
func (s Searcher) ContainsString(str string) bool {
	return s.IndexString(str) >= 0
}
