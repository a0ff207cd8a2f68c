//go:build linux

package profile

import "github.com/prometheus/procfs"

// ResidentMemory returns the resident set size of the current process in
// bytes, or 0 when it cannot be read.
func ResidentMemory() int64 {
	proc, err := procfs.Self()
	if err != nil {
		return 0
	}
	stat, err := proc.Stat()
	if err != nil {
		return 0
	}
	return int64(stat.ResidentMemory())
}
