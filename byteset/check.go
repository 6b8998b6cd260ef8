package byteset

import "fmt"

// MismatchError describes a byte on which a fallback predicate and the set
// it was paired with disagree.
type MismatchError struct {
	Byte     byte
	InSet    bool
	Fallback bool
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("byteset: fallback(0x%02x) = %t but set membership is %t", e.Byte, e.Fallback, e.InSet)
}

// CheckFallback verifies that fn is the characteristic function of b by
// evaluating both on all 256 byte values. It returns a *MismatchError for the
// lowest byte on which they disagree.
func CheckFallback(b Bytes, fn func(byte) bool) error {
	var member [256]bool
	for _, c := range b.lanes[:b.Len()] {
		member[c] = true
	}
	for i := range member {
		c := byte(i)
		if got := fn(c); got != member[c] {
			return &MismatchError{Byte: c, InSet: member[c], Fallback: got}
		}
	}
	return nil
}
