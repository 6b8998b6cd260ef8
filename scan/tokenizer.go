package scan

import "github.com/mhr3/anybyte/byteset"

// Tokenizer walks the fields of an in-memory buffer. Field boundaries follow
// Delimited.
//
//	tok := scan.NewTokenizer(line, byteset.FromString(",;").Searcher())
//	for tok.Next() {
//		fmt.Println(tok.Offset(), string(tok.Token()))
//	}
type Tokenizer struct {
	s    byteset.Searcher
	data []byte
	pos  int

	tok      []byte
	off      int
	delim    byte
	hasDelim bool
}

// NewTokenizer returns a Tokenizer over data. data is not copied.
func NewTokenizer(data []byte, s byteset.Searcher) *Tokenizer {
	return &Tokenizer{s: s, data: data}
}

// Next advances to the next field and reports whether there was one.
func (t *Tokenizer) Next() bool {
	if t.pos >= len(t.data) {
		t.tok, t.hasDelim = nil, false
		return false
	}
	rest := t.data[t.pos:]
	t.off = t.pos
	if i := t.s.Index(rest); i >= 0 {
		t.tok, t.delim, t.hasDelim = rest[:i], rest[i], true
		t.pos += i + 1
		return true
	}
	t.tok, t.delim, t.hasDelim = rest, 0, false
	t.pos = len(t.data)
	return true
}

// Token returns the current field. It aliases the buffer passed to
// NewTokenizer.
func (t *Tokenizer) Token() []byte {
	return t.tok
}

// Offset returns the position of the current field in the buffer.
func (t *Tokenizer) Offset() int {
	return t.off
}

// Delim returns the byte that ended the current field. ok is false for a
// final field that ran to the end of the buffer.
func (t *Tokenizer) Delim() (b byte, ok bool) {
	return t.delim, t.hasDelim
}

// Reset restarts the tokenizer over data.
func (t *Tokenizer) Reset(data []byte) {
	*t = Tokenizer{s: t.s, data: data}
}
