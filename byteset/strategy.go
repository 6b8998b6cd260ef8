package byteset

import "golang.org/x/sys/cpu"

// Strategy identifies how a Searcher scans its haystack.
type Strategy uint8

const (
	// Scalar applies the fallback predicate to one byte at a time.
	Scalar Strategy = iota
	// Packed compares 16-byte windows against every needle lane at once.
	Packed
)

// String returns the string representation of a Strategy.
func (s Strategy) String() string {
	switch s {
	case Scalar:
		return "scalar"
	case Packed:
		return "packed"
	default:
		return "unknown"
	}
}

// HostSSE42 reports whether the running CPU implements SSE4.2, the
// instruction set whose PCMPESTRI "equal any" mode the packed strategy
// follows.
//
// It is diagnostic only and never consulted by Searcher: Active is chosen by
// build constraints, not by runtime CPU detection, so a build behaves the
// same on every host. Tools log it next to Active to explain performance.
var HostSSE42 = cpu.X86.HasSSE42
