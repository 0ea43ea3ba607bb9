package analyze

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
)

// AudioInfo holds extracted audio and musical attributes. Nil fields were
// not present in the source material.
type AudioInfo struct {
	Duration   *float64 // seconds
	SampleRate *int64   // Hz
	BitDepth   *int64
	Channels   *int64
	BPM        *float64
	Key        *string // pitch class, e.g. "F#"
	Scale      *string // "major" or "minor"
}

// Extractor is the boundary to audio metadata extraction. Implementations
// return an error when nothing useful could be read from the file.
type Extractor interface {
	Extract(ctx context.Context, path string) (*AudioInfo, error)
}

// FileExtractor reads musical tags with the tag library and audio properties
// with ffprobe, merging both. Either source alone is enough for a success.
type FileExtractor struct{}

// Extract implements Extractor
func (e *FileExtractor) Extract(ctx context.Context, path string) (*AudioInfo, error) {
	info := &AudioInfo{}

	tagErr := e.extractTags(path, info)
	probeErr := e.extractProperties(ctx, path, info)

	if tagErr != nil && probeErr != nil {
		return nil, fmt.Errorf("all extraction methods failed: tag: %v, ffprobe: %v", tagErr, probeErr)
	}

	// A source that succeeds without yielding a single field is not a success
	if info.empty() {
		return nil, fmt.Errorf("no usable metadata found")
	}

	return info, nil
}

// empty reports whether no field was extracted
func (a *AudioInfo) empty() bool {
	return a.Duration == nil && a.SampleRate == nil && a.BitDepth == nil &&
		a.Channels == nil && a.BPM == nil && a.Key == nil && a.Scale == nil
}

// extractTags reads BPM and initial-key frames via the tag library
func (e *FileExtractor) extractTags(path string, info *AudioInfo) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return fmt.Errorf("failed to read tags: %w", err)
	}

	raw := m.Raw()

	if v := rawString(raw, "TBPM", "tbpm", "bpm", "BPM"); v != "" {
		if bpm, err := strconv.ParseFloat(v, 64); err == nil && bpm > 0 {
			info.BPM = &bpm
		}
	}

	if v := rawString(raw, "TKEY", "tkey", "initialkey", "initial_key", "key"); v != "" {
		if key := mapKey(v); key != "" {
			info.Key = &key
		}
		if scale := mapScale(v); scale != "" {
			info.Scale = &scale
		}
	}

	return nil
}

// extractProperties fills duration, sample rate, bit depth and channel count
// from ffprobe output
func (e *FileExtractor) extractProperties(ctx context.Context, path string, info *AudioInfo) error {
	probe, err := runFFprobe(ctx, path)
	if err != nil {
		return err
	}

	for _, stream := range probe.Streams {
		if stream.CodecType != "audio" {
			continue
		}
		if stream.SampleRate > 0 {
			rate := int64(stream.SampleRate)
			info.SampleRate = &rate
		}
		if stream.Channels > 0 {
			ch := int64(stream.Channels)
			info.Channels = &ch
		}
		if bits := stream.BitsPerSample.Value; bits > 0 {
			depth := int64(bits)
			info.BitDepth = &depth
		} else if bits := stream.BitsPerRawSample.Value; bits > 0 {
			depth := int64(bits)
			info.BitDepth = &depth
		}
		if d, err := strconv.ParseFloat(stream.Duration, 64); err == nil && d > 0 {
			info.Duration = &d
		}
		break
	}

	if info.Duration == nil && probe.Format != nil {
		if d, err := strconv.ParseFloat(probe.Format.Duration, 64); err == nil && d > 0 {
			info.Duration = &d
		}
	}

	return nil
}

func rawString(raw map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			if s, ok := v.(string); ok && s != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

var keyPattern = regexp.MustCompile(`^([A-G][#b]?)`)

// mapKey extracts the pitch class from a key string such as "F# minor" or
// "Abm"
func mapKey(key string) string {
	m := keyPattern.FindStringSubmatch(strings.TrimSpace(key))
	if m == nil {
		return ""
	}
	return m[1]
}

// mapScale derives major/minor from a key string. Both the spelled-out form
// ("A minor") and the trailing-m convention ("Am") are recognized.
func mapScale(key string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	switch {
	case strings.Contains(k, "minor"), strings.HasSuffix(k, "m") && !strings.Contains(k, "major"):
		return "minor"
	case strings.Contains(k, "major"):
		return "major"
	}
	return ""
}
