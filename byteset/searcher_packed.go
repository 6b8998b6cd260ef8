//go:build amd64 && !purego

package byteset

import "github.com/mhr3/anybyte/internal/bytealg"

// Active is the search strategy compiled into this build.
const Active = Packed

// Index returns the index of the first byte of haystack in the set, or -1
// if there is none.
func (s Searcher) Index(haystack []byte) int {
	return bytealg.IndexPacked(haystack, s.lo, s.hi, int(s.set.count))
}

// IndexString is like Index but searches a string.
func (s Searcher) IndexString(haystack string) int {
	return bytealg.IndexPacked(haystack, s.lo, s.hi, int(s.set.count))
}
