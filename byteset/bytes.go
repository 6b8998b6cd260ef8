// Package byteset finds the first occurrence of any byte from a small set.
//
// A set holds at most 16 bytes. It is built once with New and Push (or
// FromString, ASCII, FromWords) and then turned into a Searcher with
// WithFallback:
//
//	set := byteset.FromString(",;\t")
//	s := set.WithFallback(func(b byte) bool { return b == ',' || b == ';' || b == '\t' })
//	i := s.Index(line)
//
// On amd64 the Searcher compares the haystack 16 bytes at a time against all
// needle lanes at once. Everywhere else, or when built with the purego tag,
// it scans linearly with the fallback predicate, which therefore has to
// accept exactly the bytes of the set.
package byteset

import (
	"fmt"

	"github.com/segmentio/asm/ascii"

	"github.com/mhr3/anybyte/internal/bytealg"
)

// MaxBytes is the capacity of a Bytes set.
const MaxBytes = bytealg.MaxNeedles

// Bytes is a set of up to 16 bytes to search for.
//
// The zero value is the empty set. Bytes is a plain value; copies are
// independent and safe to share between goroutines once built.
type Bytes struct {
	lanes [MaxBytes]byte // push order, oldest first
	count uint8
}

// New returns the empty set.
func New() Bytes {
	return FromWords(0, 0, 0)
}

// FromWords creates a set from a pre-packed needle register. Lane 0, the
// low byte of lo, is the most recently pushed byte; lane 8 is the low byte
// of hi.
//
// count is stored as an 8-bit value and not validated. Searches use at most
// 16 lanes, so a count above 16 behaves like 16.
func FromWords(lo, hi uint64, count int) Bytes {
	b := Bytes{count: uint8(count)}
	n := b.Len()
	for k := 0; k < n; k++ {
		b.lanes[n-1-k] = bytealg.Lane(lo, hi, k)
	}
	return b
}

// FromString creates a set holding every byte of chars, in order.
// It panics if chars is longer than 16 bytes.
func FromString(chars string) Bytes {
	var b Bytes
	for i := 0; i < len(chars); i++ {
		b.Push(chars[i])
	}
	return b
}

// ASCII is like FromString but panics if chars contains a non-ASCII byte.
func ASCII(chars string) Bytes {
	if !ascii.ValidString(chars) {
		panic(fmt.Sprintf("byteset: %q is not ASCII", chars))
	}
	return FromString(chars)
}

// Push adds c to the set.
//
// Pushing a 17th byte is a programming error and panics; the set is never
// truncated.
func (b *Bytes) Push(c byte) {
	if b.count >= MaxBytes {
		panic(fmt.Sprintf("byteset: cannot push 0x%02x: set already holds %d bytes", c, b.count))
	}
	b.lanes[b.count] = c
	b.count++
}

// Len returns the number of bytes in the set, saturated at 16.
func (b Bytes) Len() int {
	return bytealg.Saturate(int(b.count))
}

// Contains reports whether c is in the set. It is the exact characteristic
// function of the set and can be passed to WithFallback as is.
func (b Bytes) Contains(c byte) bool {
	for _, l := range b.lanes[:b.Len()] {
		if l == c {
			return true
		}
	}
	return false
}

// Slice returns the bytes of the set in push order.
func (b Bytes) Slice() []byte {
	out := make([]byte, b.Len())
	copy(out, b.lanes[:])
	return out
}

// Words packs the set into a 128-bit needle register, newest byte in the
// low byte of lo. Lanes past Len are zero.
func (b Bytes) Words() (lo, hi uint64) {
	n := b.Len()
	for k := 0; k < n; k++ {
		v := uint64(b.lanes[n-1-k])
		if k < 8 {
			lo |= v << (8 * k)
		} else {
			hi |= v << (8 * (k - 8))
		}
	}
	return lo, hi
}

// String formats the needle register as Words re-serializes it, followed by
// the stored count. Stale lanes past Len, such as extra bits handed to
// FromWords, are dropped and print as zero.
func (b Bytes) String() string {
	lo, hi := b.Words()
	return fmt.Sprintf("Bytes{lo: 0x%016x, hi: 0x%016x, count: %d}", lo, hi, b.count)
}

// WithFallback pairs the set with a predicate used wherever the packed
// search is not compiled in. fn must report true for exactly the bytes in
// the set; this is not checked unless built with the bytesetdebug tag (see
// CheckFallback).
func (b Bytes) WithFallback(fn func(byte) bool) Searcher {
	if fn == nil {
		panic("byteset: nil fallback")
	}
	if debugChecks {
		if err := CheckFallback(b, fn); err != nil {
			panic(err)
		}
	}
	lo, hi := b.Words()
	return Searcher{set: b, lo: lo, hi: hi, fallback: fn}
}

// Searcher returns b.WithFallback(b.Contains).
func (b Bytes) Searcher() Searcher {
	return b.WithFallback(b.Contains)
}
