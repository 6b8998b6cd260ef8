// Package bytealg holds the search kernels behind byteset.Searcher.
//
// Both kernels accept string or []byte haystacks and only read the haystack
// through bounds-checked indexing.
package bytealg

import "math/bits"

const (
	// WindowSize is the number of haystack bytes compared per packed step.
	WindowSize = 16
	// MaxNeedles is the number of needle lanes in the packed register.
	MaxNeedles = 16
)

const (
	lo8  = 0x0101010101010101
	lo7  = 0x7f7f7f7f7f7f7f7f
	ones = ^uint64(0)
)

// Saturate clamps a needle or window length to the 16 lanes a packed
// comparison can address. Negative lengths become zero.
func Saturate(n int) int {
	if n < 0 {
		return 0
	}
	if n > WindowSize {
		return WindowSize
	}
	return n
}

// Lane returns needle lane k of the 128-bit register formed by lo and hi.
// Lane 0 is the low byte of lo, lane 8 the low byte of hi.
func Lane(lo, hi uint64, k int) byte {
	if k < 8 {
		return byte(lo >> (8 * k))
	}
	return byte(hi >> (8 * (k - 8)))
}

// IndexPacked returns the index of the first byte of h equal to any of the
// first count lanes of the (lo, hi) needle register, or -1.
//
// The haystack is consumed in 16-byte windows. Every window is compared
// against all active lanes at once using SWAR arithmetic on two 64-bit
// words, which mirrors a PCMPESTRI "equal any" step: count and the window
// length saturate at 16, and the final partial window is padded on the stack
// with its unused lanes masked out.
func IndexPacked[T string | []byte](h T, lo, hi uint64, count int) int {
	n := Saturate(count)
	if n == 0 || len(h) == 0 {
		return -1
	}
	needles := broadcast(lo, hi, n)
	set := needles[:n]

	pos := 0
	for ; len(h) >= WindowSize; pos, h = pos+WindowSize, h[WindowSize:] {
		ma, mb := matchWindow(load64(h, 0), load64(h, 8), set, ones, ones)
		if i := firstSet(ma, mb); i >= 0 {
			return pos + i
		}
	}

	if len(h) == 0 {
		return -1
	}
	if i := firstSet(matchTail(h, set)); i >= 0 {
		return pos + i
	}
	return -1
}

// WindowMask reports, for a single window of at most 16 bytes, which window
// positions hold a needle byte. Bit i of the result is set when w[i] matches.
// It runs the same per-window step as IndexPacked, which only keeps the
// lowest set bit.
func WindowMask[T string | []byte](w T, lo, hi uint64, count int) uint16 {
	n := Saturate(count)
	if n == 0 || len(w) == 0 {
		return 0
	}
	needles := broadcast(lo, hi, n)
	ma, mb := matchTail(w, needles[:n])
	return compress(ma) | compress(mb)<<8
}

// broadcast replicates each of the first n lanes across a 64-bit word.
func broadcast(lo, hi uint64, n int) [MaxNeedles]uint64 {
	var needles [MaxNeedles]uint64
	for k := 0; k < n; k++ {
		needles[k] = uint64(Lane(lo, hi, k)) * lo8
	}
	return needles
}

// matchWindow is one packed comparison step. The results hold the high bit
// of every byte of a (window bytes 0-7) and b (8-15) equal to a needle,
// restricted to the lanes kept by ka and kb.
func matchWindow(a, b uint64, needles []uint64, ka, kb uint64) (ma, mb uint64) {
	for _, m := range needles {
		ma |= zeroBytes(a ^ m)
		mb |= zeroBytes(b ^ m)
	}
	return ma & ka, mb & kb
}

// matchTail runs matchWindow over at most 16 bytes of w, padded on the
// stack, with the padding lanes masked out.
func matchTail[T string | []byte](w T, needles []uint64) (ma, mb uint64) {
	var win [WindowSize]byte
	ka, kb := validLanes(copy(win[:], w))
	return matchWindow(load64(win[:], 0), load64(win[:], 8), needles, ka, kb)
}

// firstSet converts window match masks into the index of the first match.
func firstSet(ma, mb uint64) int {
	if ma != 0 {
		return bits.TrailingZeros64(ma) / 8
	}
	if mb != 0 {
		return 8 + bits.TrailingZeros64(mb)/8
	}
	return -1
}

// zeroBytes sets the high bit of every byte of x that is zero and clears
// everything else. Unlike the (x-lo8)&^x&hi8 form it has no false positives
// above a zero byte, so whole-window masks are exact.
func zeroBytes(x uint64) uint64 {
	return ^((x&lo7 + lo7) | x | lo7)
}

// validLanes returns byte masks keeping the first l bytes of a window split
// across two little-endian words.
func validLanes(l int) (uint64, uint64) {
	switch {
	case l >= WindowSize:
		return ones, ones
	case l >= 8:
		return ones, 1<<(8*(l-8)) - 1
	default:
		return 1<<(8*l) - 1, 0
	}
}

// compress gathers the high bit of each byte of m into the low 8 bits.
func compress(m uint64) uint16 {
	var r uint16
	for m != 0 {
		r |= 1 << (bits.TrailingZeros64(m) / 8)
		m &= m - 1
	}
	return r
}

func load64[T string | []byte](s T, i int) uint64 {
	_ = s[i+7]
	return uint64(s[i]) | uint64(s[i+1])<<8 | uint64(s[i+2])<<16 | uint64(s[i+3])<<24 |
		uint64(s[i+4])<<32 | uint64(s[i+5])<<40 | uint64(s[i+6])<<48 | uint64(s[i+7])<<56
}
