package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
)

// ffprobeInfo represents the output from ffprobe
type ffprobeInfo struct {
	Streams []ffprobeStream `json:"streams"`
	Format  *ffprobeFormat  `json:"format"`
}

// intOrString can unmarshal both integers and strings from JSON
type intOrString struct {
	Value int
}

func (i *intOrString) UnmarshalJSON(data []byte) error {
	var intVal int
	if err := json.Unmarshal(data, &intVal); err == nil {
		i.Value = intVal
		return nil
	}

	var strVal string
	if err := json.Unmarshal(data, &strVal); err != nil {
		return err
	}

	if strVal == "" || strVal == "N/A" {
		i.Value = 0
		return nil
	}

	parsed, err := strconv.Atoi(strVal)
	if err != nil {
		i.Value = 0
		return nil
	}

	i.Value = parsed
	return nil
}

// ffprobeStream represents an audio stream
type ffprobeStream struct {
	Index            int         `json:"index"`
	CodecName        string      `json:"codec_name"`
	CodecType        string      `json:"codec_type"`
	SampleRate       int         `json:"sample_rate,string"`
	Channels         int         `json:"channels"`
	BitsPerSample    intOrString `json:"bits_per_sample"`
	BitsPerRawSample intOrString `json:"bits_per_raw_sample"`
	Duration         string      `json:"duration"`
}

// ffprobeFormat represents container format metadata
type ffprobeFormat struct {
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
}

// runFFprobe executes ffprobe and parses the JSON output
func runFFprobe(ctx context.Context, path string) (*ffprobeInfo, error) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return nil, fmt.Errorf("ffprobe not available: %w", err)
	}

	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("ffprobe failed: %s", string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("ffprobe execution failed: %w", err)
	}

	var info ffprobeInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	return &info, nil
}

// CheckFFprobeAvailable checks if ffprobe is available in PATH
func CheckFFprobeAvailable() bool {
	_, err := exec.LookPath("ffprobe")
	return err == nil
}
