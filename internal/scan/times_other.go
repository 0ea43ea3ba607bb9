//go:build !linux && !darwin

package scan

import "os"

// fileTimes falls back to mtime on platforms without per-file creation or
// access timestamps in the stat result
func fileTimes(info os.FileInfo) (createdMs, accessedMs int64) {
	m := info.ModTime().UnixMilli()
	return m, m
}
