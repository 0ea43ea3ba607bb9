package scan

import (
	"strings"

	"github.com/timok/sample-librarian/internal/store"
)

// kindExtensions maps each file kind to its extension set. This is
// configuration data; adding a format means adding an entry here.
// Kickchain files have no dedicated extension yet and are only ever
// classified by user action.
var kindExtensions = map[store.Kind][]string{
	store.KindSample:  {".wav", ".mp3", ".flac", ".aiff", ".ogg", ".m4a"},
	store.KindProject: {".flp"},
	store.KindMIDI:    {".mid", ".midi"},
	store.KindPreset:  {".fst", ".nmsv", ".sylenth1", ".serum"},
}

var extensionIndex = buildExtensionIndex()

func buildExtensionIndex() map[string]store.Kind {
	idx := make(map[string]store.Kind)
	for kind, exts := range kindExtensions {
		for _, ext := range exts {
			idx[ext] = kind
		}
	}
	return idx
}

// Classify maps a file extension (leading dot, any case) to its kind.
// The second return is false for unsupported extensions.
func Classify(ext string) (store.Kind, bool) {
	kind, ok := extensionIndex[strings.ToLower(ext)]
	return kind, ok
}

// SupportedExtensions returns every extension the classifier recognizes
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensionIndex))
	for ext := range extensionIndex {
		exts = append(exts, ext)
	}
	return exts
}
