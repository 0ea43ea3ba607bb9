package scan

import (
	"testing"
)

func TestSuggestTagsKeywordsAndBPM(t *testing.T) {
	tags := Dedup(SuggestTags("/lib/Kick_Hardstyle_150bpm.wav"))

	want := map[string]bool{"Kick": true, "Hardstyle": true, "Rawstyle": true}
	for _, tag := range tags {
		if !want[tag] {
			t.Errorf("unexpected tag %q", tag)
		}
		delete(want, tag)
	}
	for tag := range want {
		t.Errorf("expected tag %q", tag)
	}
}

func TestSuggestTagsOverlappingBPMRanges(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		// 150 sits in both the 140-155 and 150-160 ranges
		{"/lib/loop_150bpm.wav", []string{"Hardstyle", "Rawstyle"}},
		// 170 is hardcore territory only
		{"/lib/loop_170bpm.wav", []string{"Hardcore"}},
		// 200 and up is uptempo
		{"/lib/loop_200bpm.wav", []string{"Uptempo"}},
		// Two digits never match the pattern
		{"/lib/loop_99bpm.wav", nil},
	}

	for _, tt := range tests {
		tags := Dedup(SuggestTags(tt.path))
		if len(tags) != len(tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.path, tt.want, tags)
			continue
		}
		for i := range tt.want {
			if tags[i] != tt.want[i] {
				t.Errorf("%s: expected %v, got %v", tt.path, tt.want, tags)
				break
			}
		}
	}
}

func TestSuggestTagsParentDirGenre(t *testing.T) {
	// Genre keywords also match the parent directory name
	tags := Dedup(SuggestTags("/lib/Uptempo Kicks/punch.wav"))

	hasUptempo := false
	for _, tag := range tags {
		if tag == "Uptempo" {
			hasUptempo = true
		}
	}
	if !hasUptempo {
		t.Errorf("expected Uptempo from parent dir, got %v", tags)
	}

	// Instrument keywords do not: "punch.wav" under "Uptempo Kicks" is not a kick
	for _, tag := range tags {
		if tag == "Kick" {
			t.Errorf("instrument keyword matched parent dir: %v", tags)
		}
	}
}

func TestSuggestTagsCaseInsensitive(t *testing.T) {
	tags := Dedup(SuggestTags("/lib/SCREECH_LOOP.WAV"))
	if len(tags) != 1 || tags[0] != "Screech" {
		t.Errorf("expected [Screech], got %v", tags)
	}
}

func TestSuggestTagsNoMatch(t *testing.T) {
	if tags := SuggestTags("/lib/untitled_01.wav"); len(tags) != 0 {
		t.Errorf("expected no tags, got %v", tags)
	}
}

func TestDedupKeepsOrder(t *testing.T) {
	got := Dedup([]string{"Hardstyle", "Kick", "Hardstyle", "Rawstyle", "Kick"})
	want := []string{"Hardstyle", "Kick", "Rawstyle"}

	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
