package analyze

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/timok/sample-librarian/internal/report"
	"github.com/timok/sample-librarian/internal/store"
)

// fakeExtractor serves canned results per path
type fakeExtractor struct {
	results map[string]*AudioInfo
}

func (f *fakeExtractor) Extract(ctx context.Context, path string) (*AudioInfo, error) {
	info, ok := f.results[path]
	if !ok {
		return nil, errors.New("unreadable file")
	}
	return info, nil
}

func newTestAnalyzer(t *testing.T, dbName string, extractor Extractor) (*Analyzer, *store.Store) {
	t.Helper()

	db, err := store.Open(dbName)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		os.Remove(dbName)
		os.Remove(dbName + "-shm")
		os.Remove(dbName + "-wal")
	})

	analyzer := New(&Config{
		Store:     db,
		Extractor: extractor,
		Logger:    report.NullLogger(),
	})
	return analyzer, db
}

func insertTestFile(t *testing.T, db *store.Store, path string) *store.File {
	t.Helper()
	now := time.Now().UnixMilli()
	f := &store.File{
		Path:       path,
		Filename:   path[len("/lib/"):],
		Kind:       store.KindSample,
		Extension:  ".wav",
		SizeBytes:  64,
		CreatedAt:  now,
		ModifiedAt: now,
		AccessedAt: now,
		IndexedAt:  now,
		Hash:       fmt.Sprintf("hash-%x", path),
	}
	if err := db.InsertFile(f); err != nil {
		t.Fatalf("failed to insert %s: %v", path, err)
	}
	return f
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int64) *int64       { return &v }
func strPtr(v string) *string     { return &v }

func TestAnalyzeFile(t *testing.T) {
	extractor := &fakeExtractor{results: map[string]*AudioInfo{
		"/lib/kick.wav": {
			Duration:   floatPtr(2.5),
			SampleRate: intPtr(44100),
			BitDepth:   intPtr(16),
			Channels:   intPtr(2),
			BPM:        floatPtr(152),
			Key:        strPtr("F"),
			Scale:      strPtr("minor"),
		},
	}}
	analyzer, db := newTestAnalyzer(t, "test-analyze-one.db", extractor)

	f := insertTestFile(t, db, "/lib/kick.wav")

	if err := analyzer.AnalyzeFile(context.Background(), f.ID, f.Path); err != nil {
		t.Fatalf("analysis failed: %v", err)
	}

	got, err := db.GetFileByID(f.ID)
	if err != nil {
		t.Fatalf("failed to get file: %v", err)
	}

	if got.Duration == nil || *got.Duration != 2.5 {
		t.Errorf("expected duration 2.5, got %v", got.Duration)
	}
	if got.SampleRate == nil || *got.SampleRate != 44100 {
		t.Errorf("expected sample rate 44100, got %v", got.SampleRate)
	}
	if got.BPM == nil || *got.BPM != 152 {
		t.Errorf("expected bpm 152, got %v", got.BPM)
	}
	if got.Key == nil || *got.Key != "F" {
		t.Errorf("expected key F, got %v", got.Key)
	}
	if got.Scale == nil || *got.Scale != "minor" {
		t.Errorf("expected minor scale, got %v", got.Scale)
	}

	// 152 bpm falls in the 150-155 band
	if got.EnergyLevel == nil || *got.EnergyLevel != 6 {
		t.Errorf("expected energy 6 for 152 bpm, got %v", got.EnergyLevel)
	}
}

func TestAnalyzeFileWithoutBPM(t *testing.T) {
	extractor := &fakeExtractor{results: map[string]*AudioInfo{
		"/lib/pad.wav": {Duration: floatPtr(8.0)},
	}}
	analyzer, db := newTestAnalyzer(t, "test-analyze-nobpm.db", extractor)

	f := insertTestFile(t, db, "/lib/pad.wav")

	if err := analyzer.AnalyzeFile(context.Background(), f.ID, f.Path); err != nil {
		t.Fatalf("analysis failed: %v", err)
	}

	got, err := db.GetFileByID(f.ID)
	if err != nil {
		t.Fatalf("failed to get file: %v", err)
	}

	// No BPM means no derived energy level
	if got.BPM != nil || got.EnergyLevel != nil {
		t.Errorf("expected bpm and energy unset, got %v / %v", got.BPM, got.EnergyLevel)
	}
	if got.Duration == nil || *got.Duration != 8.0 {
		t.Errorf("expected duration 8, got %v", got.Duration)
	}
}

func TestBatchAnalyze(t *testing.T) {
	extractor := &fakeExtractor{results: map[string]*AudioInfo{
		"/lib/a.wav": {BPM: floatPtr(150), Duration: floatPtr(1.0)},
		"/lib/b.wav": {BPM: floatPtr(170), Duration: floatPtr(2.0)},
		// /lib/broken.wav intentionally missing
	}}
	analyzer, db := newTestAnalyzer(t, "test-analyze-batch.db", extractor)

	files := []*store.File{
		insertTestFile(t, db, "/lib/a.wav"),
		insertTestFile(t, db, "/lib/broken.wav"),
		insertTestFile(t, db, "/lib/b.wav"),
	}

	var progress []string
	result, err := analyzer.BatchAnalyze(context.Background(), files, func(current, total int, filename string) {
		progress = append(progress, fmt.Sprintf("%d/%d %s", current, total, filename))
	})
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}

	// One bad file never aborts the batch
	if result.Success != 2 {
		t.Errorf("expected 2 successes, got %d", result.Success)
	}
	if result.Failed != 1 {
		t.Errorf("expected 1 failure, got %d", result.Failed)
	}

	// One progress report per file, in order, 1-based
	want := []string{"1/3 a.wav", "2/3 broken.wav", "3/3 b.wav"}
	if len(progress) != len(want) {
		t.Fatalf("expected %d progress reports, got %d", len(want), len(progress))
	}
	for i := range want {
		if progress[i] != want[i] {
			t.Errorf("expected report %q, got %q", want[i], progress[i])
		}
	}

	// The good files are enriched, the bad one left pending
	pending, err := db.FilesPendingAnalysis(0)
	if err != nil {
		t.Fatalf("failed to list pending: %v", err)
	}
	if len(pending) != 1 || pending[0].Filename != "broken.wav" {
		t.Errorf("expected only broken.wav pending, got %d files", len(pending))
	}
}

func TestBatchAnalyzeCancelled(t *testing.T) {
	extractor := &fakeExtractor{results: map[string]*AudioInfo{}}
	analyzer, db := newTestAnalyzer(t, "test-analyze-cancel.db", extractor)

	files := []*store.File{insertTestFile(t, db, "/lib/a.wav")}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := analyzer.BatchAnalyze(ctx, files, nil)
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if result.Success != 0 || result.Failed != 0 {
		t.Errorf("expected untouched counters, got %+v", result)
	}
}
