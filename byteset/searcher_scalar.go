//go:build !amd64 || purego

package byteset

import "github.com/mhr3/anybyte/internal/bytealg"

// Active is the search strategy compiled into this build.
const Active = Scalar

// Index returns the index of the first byte of haystack in the set, or -1
// if there is none.
func (s Searcher) Index(haystack []byte) int {
	if s.fallback == nil {
		return -1
	}
	return bytealg.IndexFunc(haystack, s.fallback)
}

// IndexString is like Index but searches a string.
func (s Searcher) IndexString(haystack string) int {
	if s.fallback == nil {
		return -1
	}
	return bytealg.IndexFunc(haystack, s.fallback)
}
