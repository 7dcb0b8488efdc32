//go:build !debug
// +build !debug

package optics

// Empty stubs; the debug build tag swaps in the printing versions.
func DebugLog(format string, args ...interface{})     {}
func DebugLogOnce(format string, args ...interface{}) {}
