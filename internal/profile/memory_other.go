//go:build !linux

package profile

import "runtime"

// ResidentMemory approximates resident memory with the bytes the Go runtime
// has obtained from the OS.
func ResidentMemory() int64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return int64(m.Sys)
}
