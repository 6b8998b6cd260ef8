//go:build bytesetdebug

package byteset

// debugChecks makes WithFallback verify its predicate against the set.
const debugChecks = true
