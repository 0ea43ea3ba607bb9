package scan

import (
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/timok/sample-librarian/internal/util"
)

// DefaultExcludedDirs are directory names never descended into, in addition
// to hidden directories
var DefaultExcludedDirs = []string{
	"node_modules",
	"__pycache__",
	"__MACOSX",
	"vendor",
	"bower_components",
}

// Walk returns a lazy depth-first sequence of absolute regular-file paths
// under root. Each directory's files are yielded first, then its
// subdirectories are descended in enumeration order. Hidden directories and
// DefaultExcludedDirs are skipped, and symlinked directories are not
// followed. A directory that cannot be read is logged and skipped; the rest
// of the walk continues.
//
// The traversal keeps an explicit stack instead of recursing, so arbitrarily
// deep trees cannot exhaust the call stack and each directory is a natural
// stopping point for a consumer that breaks out of the sequence.
func Walk(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		stack := []string{root}

		for len(stack) > 0 {
			dir := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			entries, err := os.ReadDir(dir)
			if err != nil {
				util.WarnLog("Skipping unreadable directory %s: %v", dir, err)
				continue
			}

			var subdirs []string
			for _, entry := range entries {
				full := filepath.Join(dir, entry.Name())

				if entry.IsDir() {
					if skipDir(entry.Name()) {
						continue
					}
					subdirs = append(subdirs, full)
					continue
				}

				if entry.Type().IsRegular() {
					if !yield(full) {
						return
					}
				}
			}

			// Pushed in reverse so the stack pops subtrees in enumeration order
			for i := len(subdirs) - 1; i >= 0; i-- {
				stack = append(stack, subdirs[i])
			}
		}
	}
}

func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, excluded := range DefaultExcludedDirs {
		if name == excluded {
			return true
		}
	}
	return false
}
