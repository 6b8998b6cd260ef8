// Package scan splits byte streams and buffers on any byte of a
// byteset.Searcher.
package scan

import (
	"bufio"

	"github.com/mhr3/anybyte/byteset"
)

// Delimited returns a bufio.SplitFunc that yields the tokens separated by
// any byte of s. Delimiters are dropped. Adjacent delimiters produce empty
// tokens; a trailing delimiter does not, and the last token is returned at
// EOF even without one, as with bufio.ScanLines.
func Delimited(s byteset.Searcher) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (advance int, token []byte, err error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}
		if i := s.Index(data); i >= 0 {
			return i + 1, data[:i], nil
		}
		if atEOF {
			return len(data), data, nil
		}
		// Request more data.
		return 0, nil, nil
	}
}

// Cut slices data around the first byte of s, returning the text before and
// after it and the delimiter itself. If no byte of s occurs in data, Cut
// returns data, nil, 0, false.
func Cut(data []byte, s byteset.Searcher) (before, after []byte, sep byte, found bool) {
	if i := s.Index(data); i >= 0 {
		return data[:i], data[i+1:], data[i], true
	}
	return data, nil, 0, false
}
