package analyze

import (
	"context"
	"fmt"

	"github.com/timok/sample-librarian/internal/report"
	"github.com/timok/sample-librarian/internal/store"
	"github.com/timok/sample-librarian/internal/util"
)

// Analyzer enriches indexed files with audio metadata. Files within one
// batch are processed strictly sequentially; each file succeeds or fails on
// its own.
type Analyzer struct {
	store     *store.Store
	extractor Extractor
	logger    *report.EventLogger
}

// Config holds analyzer dependencies. Extractor defaults to the tag+ffprobe
// FileExtractor when nil.
type Config struct {
	Store     *store.Store
	Extractor Extractor
	Logger    *report.EventLogger
}

// New creates a new Analyzer
func New(cfg *Config) *Analyzer {
	extractor := cfg.Extractor
	if extractor == nil {
		extractor = &FileExtractor{}
	}

	return &Analyzer{
		store:     cfg.Store,
		extractor: extractor,
		logger:    cfg.Logger,
	}
}

// Result aggregates a batch outcome
type Result struct {
	Success int
	Failed  int
}

// ProgressFunc receives one report per file, before its extraction begins.
// current is 1-based.
type ProgressFunc func(current, total int, filename string)

// AnalyzeFile extracts metadata for one file and writes the audio fields to
// its record in a single update
func (a *Analyzer) AnalyzeFile(ctx context.Context, fileID int64, path string) error {
	info, err := a.extractor.Extract(ctx, path)
	if err != nil {
		a.logger.LogAnalyze(path, 0, "", err)
		return fmt.Errorf("extraction failed for %s: %w", path, err)
	}

	update := store.FileUpdate{
		Duration:   info.Duration,
		SampleRate: info.SampleRate,
		BitDepth:   info.BitDepth,
		Channels:   info.Channels,
		BPM:        info.BPM,
		Key:        info.Key,
		Scale:      info.Scale,
	}

	if info.BPM != nil {
		level := EnergyLevel(*info.BPM)
		update.EnergyLevel = &level
	}

	if err := a.store.UpdateFile(fileID, update); err != nil {
		return fmt.Errorf("failed to store metadata for %s: %w", path, err)
	}

	bpm := 0.0
	if info.BPM != nil {
		bpm = *info.BPM
	}
	key := ""
	if info.Key != nil {
		key = *info.Key
	}
	a.logger.LogAnalyze(path, bpm, key, nil)

	return nil
}

// BatchAnalyze enriches a list of files, reporting progress once per file.
// A per-file failure is counted and never aborts the batch; only context
// cancellation stops early.
func (a *Analyzer) BatchAnalyze(ctx context.Context, files []*store.File, onProgress ProgressFunc) (*Result, error) {
	result := &Result{}
	total := len(files)

	for i, file := range files {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if onProgress != nil {
			onProgress(i+1, total, file.Filename)
		}

		if err := a.AnalyzeFile(ctx, file.ID, file.Path); err != nil {
			util.WarnLog("Analysis failed for %s: %v", file.Path, err)
			result.Failed++
			continue
		}
		result.Success++
	}

	util.SuccessLog("Analysis complete: %d success, %d failed", result.Success, result.Failed)

	return result, nil
}
