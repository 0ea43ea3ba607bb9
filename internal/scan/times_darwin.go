//go:build darwin

package scan

import (
	"os"
	"syscall"
)

// fileTimes returns the file birth time and last-access time in epoch
// milliseconds, falling back to mtime when the platform data is missing
func fileTimes(info os.FileInfo) (createdMs, accessedMs int64) {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		created := st.Birthtimespec.Sec*1000 + st.Birthtimespec.Nsec/1e6
		accessed := st.Atimespec.Sec*1000 + st.Atimespec.Nsec/1e6
		return created, accessed
	}
	m := info.ModTime().UnixMilli()
	return m, m
}
