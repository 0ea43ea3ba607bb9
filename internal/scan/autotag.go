package scan

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Keyword tables for heuristic tagging. Genre keywords match the filename or
// the parent directory name; instrument keywords match the filename only.
var genreKeywords = []struct {
	Substr string
	Tag    string
}{
	{"hardstyle", "Hardstyle"},
	{"rawstyle", "Rawstyle"},
	{"raw", "Rawstyle"},
	{"hardcore", "Hardcore"},
	{"uptempo", "Uptempo"},
	{"euphoric", "Euphoric"},
}

var instrumentKeywords = []struct {
	Substr string
	Tag    string
}{
	{"kick", "Kick"},
	{"lead", "Lead"},
	{"screech", "Screech"},
	{"screecher", "Screech"},
	{"atmosphere", "Atmosphere"},
	{"atmo", "Atmosphere"},
	{"vocal", "Vocal"},
	{"fx", "FX"},
	{"effect", "FX"},
}

// bpmRangeTags maps inclusive BPM ranges to genre tags. Ranges overlap, so a
// single BPM can suggest more than one genre.
var bpmRangeTags = []struct {
	Lo, Hi int
	Tag    string
}{
	{140, 155, "Hardstyle"},
	{150, 160, "Rawstyle"},
	{160, 180, "Hardcore"},
	{180, 999, "Uptempo"},
}

// bpmPattern matches three consecutive digits followed by an optional space
// and a bpm marker, e.g. "150bpm" or "150 BPM"
var bpmPattern = regexp.MustCompile(`(?i)(\d{3})\s*bpm`)

// SuggestTags derives candidate tag names from a file path. The list is
// best-effort and may contain duplicates; callers deduplicate when applying.
func SuggestTags(path string) []string {
	var tags []string

	filename := normalize(filepath.Base(path))
	parentDir := normalize(filepath.Base(filepath.Dir(path)))

	for _, kw := range genreKeywords {
		if strings.Contains(filename, kw.Substr) || strings.Contains(parentDir, kw.Substr) {
			tags = append(tags, kw.Tag)
		}
	}

	for _, kw := range instrumentKeywords {
		if strings.Contains(filename, kw.Substr) {
			tags = append(tags, kw.Tag)
		}
	}

	if m := bpmPattern.FindStringSubmatch(filename); m != nil {
		bpm, err := strconv.Atoi(m[1])
		if err == nil {
			for _, r := range bpmRangeTags {
				if bpm >= r.Lo && bpm <= r.Hi {
					tags = append(tags, r.Tag)
				}
			}
		}
	}

	return tags
}

// Dedup returns the unique tag names in first-seen order
func Dedup(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := tags[:0:0]
	for _, t := range tags {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}
