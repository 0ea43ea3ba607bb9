package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/timok/sample-librarian/internal/report"
	"github.com/timok/sample-librarian/internal/store"
	"github.com/timok/sample-librarian/internal/util"
)

// Status is the lifecycle state of a scan invocation
type Status string

const (
	StatusScanning Status = "scanning"
	StatusComplete Status = "complete"
	StatusError    Status = "error"
)

// Progress is one progress report for an in-flight scan. Reports for a given
// invocation carry non-decreasing Processed and Indexed values. Processed
// counts every candidate file handled against Total, including unsupported
// and skipped ones; Indexed only those that became records.
type Progress struct {
	Total       int
	Processed   int
	Indexed     int
	CurrentFile string
	Status      Status
}

// TagPolicy controls what happens with heuristic tag suggestions
type TagPolicy string

const (
	// TagPolicyOff computes no suggestions
	TagPolicyOff TagPolicy = "off"
	// TagPolicySuggest logs suggestions without persisting them
	TagPolicySuggest TagPolicy = "suggest"
	// TagPolicyApply creates missing tags and associates them
	TagPolicyApply TagPolicy = "apply"
)

// ParseTagPolicy validates a policy string
func ParseTagPolicy(s string) (TagPolicy, error) {
	switch TagPolicy(s) {
	case TagPolicyOff, TagPolicySuggest, TagPolicyApply:
		return TagPolicy(s), nil
	}
	return "", fmt.Errorf("unknown tag policy %q (off, suggest, apply)", s)
}

// Options configure a single scan invocation
type Options struct {
	// Recursive walks the whole tree; otherwise only the root's direct files
	Recursive bool

	TagPolicy TagPolicy

	// SkipDuplicates blocks insertion of files whose content hash is already
	// indexed. Off by default: duplicates are counted and flagged but kept.
	SkipDuplicates bool

	// OnProgress, when set, receives progress reports. The first report has
	// Indexed 0 and status scanning; the last has status complete.
	OnProgress func(Progress)
}

// Config holds scanner dependencies
type Config struct {
	Store  *store.Store
	Logger *report.EventLogger
}

// Scanner indexes folders into the store. Files within one invocation are
// processed strictly sequentially, in walker order.
type Scanner struct {
	store  *store.Store
	logger *report.EventLogger
}

// New creates a new Scanner
func New(cfg *Config) *Scanner {
	return &Scanner{
		store:  cfg.Store,
		logger: cfg.Logger,
	}
}

// Result aggregates the outcome of a scan
type Result struct {
	Indexed    int
	Duplicates int
	AutoTagged int
	Errors     int
	Files      []*store.File
}

// progressInterval is the per-file cadence of progress reports
const progressInterval = 10

// ScanFolder indexes every supported file under root. Per-file failures are
// counted and logged; only a setup failure (unreadable root) fails the
// invocation as a whole.
func (s *Scanner) ScanFolder(ctx context.Context, root string, opts Options) (*Result, error) {
	util.InfoLog("Scanning folder: %s", root)

	paths, err := s.collectPaths(root, opts.Recursive)
	if err != nil {
		s.emit(opts, Progress{Status: StatusError})
		return nil, err
	}

	total := len(paths)
	s.emit(opts, Progress{Total: total, Indexed: 0, Status: StatusScanning})

	result := &Result{}

	for i, path := range paths {
		select {
		case <-ctx.Done():
			// Completed inserts stay durable; stop before the next file
			return result, ctx.Err()
		default:
		}

		s.processFile(path, opts, result)

		if opts.OnProgress != nil && (i%progressInterval == 0 || i == total-1) {
			s.emit(opts, Progress{
				Total:       total,
				Processed:   i + 1,
				Indexed:     result.Indexed,
				CurrentFile: filepath.Base(path),
				Status:      StatusScanning,
			})
		}
	}

	s.emit(opts, Progress{Total: total, Processed: total, Indexed: result.Indexed, Status: StatusComplete})

	util.SuccessLog("Scan complete: %d indexed, %d duplicates, %d errors",
		result.Indexed, result.Duplicates, result.Errors)

	return result, nil
}

// ScanFolders scans multiple roots and sums their results
func (s *Scanner) ScanFolders(ctx context.Context, roots []string, opts Options) (*Result, error) {
	combined := &Result{}

	for _, root := range roots {
		result, err := s.ScanFolder(ctx, root, opts)
		if result != nil {
			combined.Indexed += result.Indexed
			combined.Duplicates += result.Duplicates
			combined.AutoTagged += result.AutoTagged
			combined.Errors += result.Errors
			combined.Files = append(combined.Files, result.Files...)
		}
		if err != nil {
			return combined, err
		}
	}

	return combined, nil
}

// collectPaths enumerates candidate files up front so the total is known
// before the first progress report
func (s *Scanner) collectPaths(root string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("folder not accessible: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder: %w", err)
	}

	if !recursive {
		var paths []string
		for _, entry := range entries {
			if entry.Type().IsRegular() {
				paths = append(paths, filepath.Join(root, entry.Name()))
			}
		}
		return paths, nil
	}

	var paths []string
	for path := range Walk(root) {
		paths = append(paths, path)
	}
	return paths, nil
}

// processFile runs one file through classify -> stat -> hash -> insert -> tag.
// Failures are absorbed into the result counters.
func (s *Scanner) processFile(path string, opts Options, result *Result) {
	kind, ok := Classify(filepath.Ext(path))
	if !ok {
		// Unsupported extensions never become records
		return
	}

	file, err := s.buildRecord(path, kind)
	if err != nil {
		util.WarnLog("Failed to read %s: %v", path, err)
		s.logger.LogError(report.EventScan, path, err)
		result.Errors++
		return
	}

	if file.Hash != "" {
		existing, err := s.store.GetFileByHash(file.Hash)
		if err != nil {
			util.ErrorLog("Hash lookup failed for %s: %v", path, err)
			result.Errors++
			return
		}
		if existing != nil && existing.Path != path {
			result.Duplicates++
			s.logger.LogDuplicate(path, file.Hash, existing.Path)
			if opts.SkipDuplicates {
				return
			}
		}
	}

	if err := s.store.InsertFile(file); err != nil {
		if errors.Is(err, util.ErrDuplicate) {
			// Path already indexed (e.g. a rescan)
			result.Duplicates++
			return
		}
		util.ErrorLog("Failed to insert %s: %v", path, err)
		s.logger.LogError(report.EventScan, path, err)
		result.Errors++
		return
	}

	s.logger.LogScan(path, string(kind), file.Hash, file.SizeBytes)

	if opts.TagPolicy == TagPolicySuggest || opts.TagPolicy == TagPolicyApply {
		s.tagFile(file, opts.TagPolicy, result)
	}

	result.Indexed++
	result.Files = append(result.Files, file)
}

// buildRecord assembles a FileRecord with all audio fields unset
func (s *Scanner) buildRecord(path string, kind store.Kind) (*store.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	hash, err := HashFile(path)
	if err != nil {
		return nil, err
	}

	created, accessed := fileTimes(info)

	return &store.File{
		Path:       path,
		Filename:   filepath.Base(path),
		Kind:       kind,
		Extension:  strings.ToLower(filepath.Ext(path)),
		SizeBytes:  info.Size(),
		CreatedAt:  created,
		ModifiedAt: info.ModTime().UnixMilli(),
		AccessedAt: accessed,
		Hash:       hash,
		IndexedAt:  time.Now().UnixMilli(),
	}, nil
}

// tagFile computes heuristic suggestions and applies or logs them per policy
func (s *Scanner) tagFile(file *store.File, policy TagPolicy, result *Result) {
	tags := Dedup(SuggestTags(file.Path))
	if len(tags) == 0 {
		return
	}

	if policy == TagPolicySuggest {
		util.DebugLog("Suggested tags for %s: %s", file.Filename, strings.Join(tags, ", "))
		s.logger.LogAutoTag(file.Path, tags, false)
		return
	}

	applied := 0
	for _, name := range tags {
		tag, err := s.store.EnsureTag(name, seedCategory(name))
		if err != nil {
			util.WarnLog("Failed to create tag %q: %v", name, err)
			continue
		}
		if err := s.store.AddFileTag(file.ID, tag.ID); err != nil {
			util.WarnLog("Failed to tag %s with %q: %v", file.Filename, name, err)
			continue
		}
		applied++
	}

	if applied > 0 {
		result.AutoTagged++
		s.logger.LogAutoTag(file.Path, tags, true)
	}
}

// seedCategory looks a tag name up in the preset vocabulary
func seedCategory(name string) string {
	for _, t := range store.DefaultSeedTags {
		if t.Name == name {
			return t.Category
		}
	}
	return store.CategoryCustom
}

func (s *Scanner) emit(opts Options, p Progress) {
	if opts.OnProgress != nil {
		opts.OnProgress(p)
	}
}
