//go:build !bytesetdebug

package byteset

const debugChecks = false
