package bytealg

import (
	"bytes"
	"fmt"
	"math/bits"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pack builds a needle register the way byteset.Bytes.Words does: the last
// byte of chars ends up in lane 0.
func pack(chars string) (lo, hi uint64, n int) {
	n = len(chars)
	for k := 0; k < n && k < MaxNeedles; k++ {
		v := uint64(chars[n-1-k])
		if k < 8 {
			lo |= v << (8 * k)
		} else {
			hi |= v << (8 * (k - 8))
		}
	}
	return lo, hi, n
}

func naive(h []byte, chars string) int {
	for i, c := range h {
		if strings.IndexByte(chars, c) >= 0 {
			return i
		}
	}
	return -1
}

func TestSaturate(t *testing.T) {
	for in, want := range map[int]int{-5: 0, 0: 0, 1: 1, 15: 15, 16: 16, 17: 16, 255: 16, 1 << 20: 16} {
		assert.Equal(t, want, Saturate(in), "Saturate(%d)", in)
	}
}

func TestLane(t *testing.T) {
	lo, hi, _ := pack("ABCDEFGHIJKLMNOP")
	require.Equal(t, byte('P'), Lane(lo, hi, 0))
	require.Equal(t, byte('I'), Lane(lo, hi, 7))
	require.Equal(t, byte('H'), Lane(lo, hi, 8))
	require.Equal(t, byte('A'), Lane(lo, hi, 15))
}

func TestIndexPacked(t *testing.T) {
	tests := []struct {
		name  string
		chars string
		hay   string
		want  int
	}{
		{"empty haystack", "a", "", -1},
		{"empty set", "", "abc", -1},
		{"non ascii", "\x80", "\xff\x80", 1},
		{"first byte", "ab", "abc", 0},
		{"second window", "AB", strings.Repeat("\x00", 20) + "B", 20},
		{"earliest of several", ",;", "key;value,rest", 3},
		{"nul needle in short tail", "\x00", "abc", -1},
		{"nul needle present", "\x00", "abc\x00", 3},
		{"nul needle after full window", "\x00", strings.Repeat("x", 16) + "yz", -1},
		{"nul needle at tail end", "\x00", strings.Repeat("x", 17) + "\x00", 17},
		{"no match long", "xyz", strings.Repeat("abc", 100), -1},
		{"all sixteen", "0123456789abcdef", "ghijklmnopqrstuvwf", 17},
		{"duplicate needles", "aaa", "bbbbba", 5},
		{"high lanes only", "ABCDEFGHIJKLMNOP", strings.Repeat("-", 40) + "A", 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, n := pack(tt.chars)
			require.Equal(t, tt.want, IndexPacked([]byte(tt.hay), lo, hi, n))
			require.Equal(t, tt.want, IndexPacked(tt.hay, lo, hi, n))
		})
	}
}

func TestIndexPackedWindowBoundaries(t *testing.T) {
	lo, hi, n := pack("\x00|")
	for _, p := range []int{0, 7, 8, 15, 16, 31, 32, 47, 48, 63, 64} {
		for _, extra := range []int{0, 1, 15, 16, 17} {
			hay := bytes.Repeat([]byte{'.'}, p+1+extra)
			hay[p] = '|'
			t.Run(fmt.Sprintf("at=%d/len=%d", p, len(hay)), func(t *testing.T) {
				require.Equal(t, p, IndexPacked(hay, lo, hi, n))
			})
		}
	}
}

func TestIndexPackedSaturation(t *testing.T) {
	lo, hi, _ := pack("ABCDEFGHIJKLMNOP")
	hay := []byte(strings.Repeat("z", 33) + "C")
	want := IndexPacked(hay, lo, hi, 16)
	require.Equal(t, 33, want)
	for _, count := range []int{17, 32, 255, 1 << 30} {
		assert.Equal(t, want, IndexPacked(hay, lo, hi, count), "count %d", count)
	}
	assert.Equal(t, -1, IndexPacked(hay, lo, hi, -1))
}

func TestIndexPackedIgnoresLanesPastCount(t *testing.T) {
	lo, hi, _ := pack("ab")
	// Lane 1 holds 'a'; with count 1 only 'b' is a target.
	require.Equal(t, 4, IndexPacked("aaaab", lo, hi, 1))
	require.Equal(t, 0, IndexPacked("aaaab", lo, hi, 2))
}

func TestIndexPackedMatchesNaive(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	alphabet := []byte("abcdefghij\x00\x80\xff")
	for iter := 0; iter < 2000; iter++ {
		var chars []byte
		for i, m := 0, r.Intn(MaxNeedles+1); i < m; i++ {
			chars = append(chars, alphabet[r.Intn(len(alphabet))])
		}
		hay := make([]byte, r.Intn(80))
		for i := range hay {
			hay[i] = alphabet[r.Intn(len(alphabet))] + 16
		}
		if len(hay) > 0 && r.Intn(2) == 0 && len(chars) > 0 {
			hay[r.Intn(len(hay))] = chars[r.Intn(len(chars))]
		}

		lo, hi, n := pack(string(chars))
		want := naive(hay, string(chars))
		got := IndexPacked(hay, lo, hi, n)
		require.Equal(t, want, got, "chars=%q hay=%q", chars, hay)
		require.Equal(t, want, IndexFunc(hay, func(b byte) bool { return bytes.IndexByte(chars, b) >= 0 }))
	}
}

func TestWindowMask(t *testing.T) {
	lo, hi, n := pack(",;")
	require.Equal(t, uint16(0b1010), WindowMask("a,b;c", lo, hi, n))
	require.Equal(t, uint16(0), WindowMask("", lo, hi, n))
	require.Equal(t, uint16(0), WindowMask("a,b", lo, hi, 0))
	require.Equal(t, uint16(1<<15|1), WindowMask(",aaaaaaaaaaaaaa;,,,,", lo, hi, n))

	lo, hi, n = pack("\x00")
	require.Equal(t, uint16(0), WindowMask([]byte("abc"), lo, hi, n))
	require.Equal(t, uint16(1<<9), WindowMask([]byte("abcdefghi\x00"), lo, hi, n))
}

func TestIndexFunc(t *testing.T) {
	isDigit := func(b byte) bool { return b >= '0' && b <= '9' }
	require.Equal(t, -1, IndexFunc("", isDigit))
	require.Equal(t, -1, IndexFunc("abc", isDigit))
	require.Equal(t, 3, IndexFunc([]byte("abc7"), isDigit))
	// Bytes are never decoded as runes.
	require.Equal(t, 1, IndexFunc("\xe6\x97\xa5", func(b byte) bool { return b == 0x97 }))
}

func BenchmarkIndexPacked(b *testing.B) {
	lo, hi, n := pack("\t\n,;\"")
	hay := bytes.Repeat([]byte("abcdefghijklmnop"), 256)
	hay[len(hay)-1] = ';'
	b.SetBytes(int64(len(hay)))
	for i := 0; i < b.N; i++ {
		IndexPacked(hay, lo, hi, n)
	}
}

func BenchmarkIndexFunc(b *testing.B) {
	hay := bytes.Repeat([]byte("abcdefghijklmnop"), 256)
	hay[len(hay)-1] = ';'
	fn := func(c byte) bool { return c == '\t' || c == '\n' || c == ',' || c == ';' || c == '"' }
	b.SetBytes(int64(len(hay)))
	for i := 0; i < b.N; i++ {
		IndexFunc(hay, fn)
	}
}

func TestIndexPackedAgreesWithWindowMask(t *testing.T) {
	lo, hi, n := pack("\x00;|")
	r := rand.New(rand.NewSource(11))
	for iter := 0; iter < 500; iter++ {
		hay := make([]byte, r.Intn(70))
		for i := range hay {
			hay[i] = "ab;|\x00cd"[r.Intn(7)]
		}

		want := -1
		for off := 0; off < len(hay); off += WindowSize {
			if m := WindowMask(hay[off:], lo, hi, n); m != 0 {
				want = off + bits.TrailingZeros16(m)
				break
			}
		}
		require.Equal(t, want, IndexPacked(hay, lo, hi, n), "hay=%q", hay)
	}
}
