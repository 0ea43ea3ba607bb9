//go:build linux

package scan

import (
	"os"
	"syscall"
)

// fileTimes returns the best-available creation and last-access times in
// epoch milliseconds, falling back to mtime when the platform data is missing
func fileTimes(info os.FileInfo) (createdMs, accessedMs int64) {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		created := st.Ctim.Sec*1000 + st.Ctim.Nsec/1e6
		accessed := st.Atim.Sec*1000 + st.Atim.Nsec/1e6
		return created, accessed
	}
	m := info.ModTime().UnixMilli()
	return m, m
}
