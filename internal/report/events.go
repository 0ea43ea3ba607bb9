package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// EventType represents the type of event
type EventType string

const (
	EventScan      EventType = "scan"
	EventDuplicate EventType = "duplicate"
	EventAutoTag   EventType = "autotag"
	EventAnalyze   EventType = "analyze"
	EventError     EventType = "error"
)

// EventLevel represents the severity level
type EventLevel string

const (
	LevelDebug   EventLevel = "debug"
	LevelInfo    EventLevel = "info"
	LevelWarning EventLevel = "warning"
	LevelError   EventLevel = "error"
)

// levelPriority maps event levels to numeric priorities for comparison
var levelPriority = map[EventLevel]int{
	LevelDebug:   0,
	LevelInfo:    1,
	LevelWarning: 2,
	LevelError:   3,
}

// Event represents a single event in the indexing pipeline
type Event struct {
	Timestamp time.Time         `json:"ts"`
	Level     EventLevel        `json:"level"`
	Event     EventType         `json:"event"`
	Path      string            `json:"path,omitempty"`
	FileKind  string            `json:"file_kind,omitempty"`
	Hash      string            `json:"hash,omitempty"`
	Tags      string            `json:"tags,omitempty"`
	Error     string            `json:"error,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// EventLogger writes events to a JSONL file
type EventLogger struct {
	file     *os.File
	encoder  *json.Encoder
	mu       sync.Mutex
	path     string
	minLevel EventLevel
}

// NewEventLogger creates a new event logger with a minimum log level
// minLevel determines which events are written (e.g., LevelInfo skips LevelDebug)
func NewEventLogger(outputDir string, minLevel EventLevel) (*EventLogger, error) {
	// Create output directory if it doesn't exist
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("events-%s.jsonl", timestamp)
	path := filepath.Join(outputDir, filename)

	// Open file for writing
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create event log: %w", err)
	}

	return &EventLogger{
		file:     file,
		encoder:  json.NewEncoder(file),
		path:     path,
		minLevel: minLevel,
	}, nil
}

// Log writes an event to the JSONL file
func (l *EventLogger) Log(event *Event) error {
	if l == nil || l.file == nil {
		return nil // Silently ignore if logger not initialized
	}

	// Filter by minimum level
	if levelPriority[event.Level] < levelPriority[l.minLevel] {
		return nil // Skip events below minimum level
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if err := l.encoder.Encode(event); err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	return nil
}

// LogScan logs an indexed file event
func (l *EventLogger) LogScan(path, fileKind, hash string, sizeBytes int64) error {
	return l.Log(&Event{
		Level:    LevelInfo,
		Event:    EventScan,
		Path:     path,
		FileKind: fileKind,
		Hash:     hash,
		Extra: map[string]string{
			"size_bytes": fmt.Sprintf("%d", sizeBytes),
		},
	})
}

// LogDuplicate logs a content-hash duplicate detection event
func (l *EventLogger) LogDuplicate(path, hash, existingPath string) error {
	return l.Log(&Event{
		Level: LevelWarning,
		Event: EventDuplicate,
		Path:  path,
		Hash:  hash,
		Extra: map[string]string{
			"existing_path": existingPath,
		},
	})
}

// LogAutoTag logs suggested or applied tags for a file
func (l *EventLogger) LogAutoTag(path string, tags []string, applied bool) error {
	return l.Log(&Event{
		Level: LevelInfo,
		Event: EventAutoTag,
		Path:  path,
		Tags:  strings.Join(tags, ","),
		Extra: map[string]string{
			"applied": fmt.Sprintf("%t", applied),
		},
	})
}

// LogAnalyze logs a metadata enrichment event
func (l *EventLogger) LogAnalyze(path string, bpm float64, key string, err error) error {
	level := LevelInfo
	errMsg := ""
	if err != nil {
		level = LevelError
		errMsg = err.Error()
	}

	return l.Log(&Event{
		Level: level,
		Event: EventAnalyze,
		Path:  path,
		Error: errMsg,
		Extra: map[string]string{
			"bpm": fmt.Sprintf("%.1f", bpm),
			"key": key,
		},
	})
}

// LogError logs an error event
func (l *EventLogger) LogError(event EventType, path string, err error) error {
	return l.Log(&Event{
		Level: LevelError,
		Event: event,
		Path:  path,
		Error: err.Error(),
	})
}

// Close closes the event log file
func (l *EventLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.file.Close()
}

// Path returns the path to the event log file
func (l *EventLogger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// NullLogger returns a no-op event logger
func NullLogger() *EventLogger {
	return nil
}
