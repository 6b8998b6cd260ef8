package bytealg

// IndexFunc returns the index of the first byte of h for which f reports
// true, or -1. Unlike bytes.IndexFunc it never decodes runes.
func IndexFunc[T string | []byte](h T, f func(byte) bool) int {
	for i := 0; i < len(h); i++ {
		if f(h[i]) {
			return i
		}
	}
	return -1
}
