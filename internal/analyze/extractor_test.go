package analyze

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestMapKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"F#", "F#"},
		{"F# minor", "F#"},
		{"Abm", "Ab"},
		{"C major", "C"},
		{"a minor", ""}, // lowercase pitch is not recognized
		{"11A", ""},     // Camelot notation is not recognized
		{"", ""},
	}

	for _, tt := range tests {
		if got := mapKey(tt.in); got != tt.want {
			t.Errorf("mapKey(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestMapScale(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"F# minor", "minor"},
		{"Am", "minor"},
		{"Abm", "minor"},
		{"C major", "major"},
		{"F#", ""},
		{"C", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := mapScale(tt.in); got != tt.want {
			t.Errorf("mapScale(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestExtractRejectsEmptyResult(t *testing.T) {
	// A bare ID3v2.3 header with no frames: the tag reader accepts it but
	// yields nothing, and ffprobe has no audio to report either
	path := filepath.Join(t.TempDir(), "hollow.mp3")
	header := []byte{'I', 'D', '3', 3, 0, 0, 0, 0, 0, 0}
	if err := os.WriteFile(path, header, 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	e := &FileExtractor{}
	info, err := e.Extract(context.Background(), path)
	if err == nil {
		t.Fatalf("expected error for file with no extractable metadata, got %+v", info)
	}
}

func TestAudioInfoEmpty(t *testing.T) {
	if !(&AudioInfo{}).empty() {
		t.Error("expected zero AudioInfo to be empty")
	}

	bpm := 150.0
	if (&AudioInfo{BPM: &bpm}).empty() {
		t.Error("expected AudioInfo with BPM to be non-empty")
	}
}
