package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"ytdl/internal/services"
)

// Probe is the decoded ffprobe report for one local media file.
type Probe struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index      int    `json:"index"`
	CodecName  string `json:"codec_name"`
	CodecType  string `json:"codec_type"`
	SampleRate string `json:"sample_rate"`
	Channels   int    `json:"channels"`
	BitRate    string `json:"bit_rate"`
}

// Format captures container-level metadata.
type Format struct {
	Filename   string `json:"filename"`
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
}

// Inspect runs ffprobe against path. Stderr is kept apart from the JSON
// document so warnings never break decoding. A non-zero exit is reported as a
// *services.ToolError.
func Inspect(ctx context.Context, binary, path string) (Probe, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	if strings.TrimSpace(path) == "" {
		return Probe{}, errors.New("ffprobe: empty path")
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-show_format", "-show_streams", "-of", "json", "--", path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Probe{}, &services.ToolError{
				Tool:     "ffprobe",
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(stderr.String()),
			}
		}
		return Probe{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	var probe Probe
	if err := json.Unmarshal(stdout.Bytes(), &probe); err != nil {
		return Probe{}, fmt.Errorf("ffprobe %s: decode: %w", path, err)
	}
	return probe, nil
}

// AudioStreams returns the audio streams in container order.
func (p Probe) AudioStreams() []Stream {
	var audio []Stream
	for _, s := range p.Streams {
		if strings.EqualFold(s.CodecType, "audio") {
			audio = append(audio, s)
		}
	}
	return audio
}

func (p Probe) HasAudio() bool {
	return len(p.AudioStreams()) > 0
}

// Duration reports the container duration, or zero when ffprobe omitted it.
func (p Probe) Duration() time.Duration {
	secs, err := strconv.ParseFloat(strings.TrimSpace(p.Format.Duration), 64)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

// SizeBytes reports the container size, or zero when unknown.
func (p Probe) SizeBytes() int64 {
	size, err := strconv.ParseInt(strings.TrimSpace(p.Format.Size), 10, 64)
	if err != nil || size < 0 {
		return 0
	}
	return size
}
