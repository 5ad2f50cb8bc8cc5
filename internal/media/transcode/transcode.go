// Package transcode drives ffmpeg for local audio extraction.
package transcode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"ytdl/internal/services"
)

// DefaultBitrate is the Opus target used when no bitrate is given.
const DefaultBitrate = "64k"

// OpusArgs returns the ffmpeg arguments that drop video and encode the audio
// of input as Opus at bitrate. The output path is always the last argument.
func OpusArgs(input, output, bitrate string) []string {
	if strings.TrimSpace(bitrate) == "" {
		bitrate = DefaultBitrate
	}
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", input,
		"-vn",
		"-c:a", "libopus",
		"-b:a", bitrate,
		output,
	}
}

// ExtractOpus runs ffmpeg with OpusArgs. A non-zero exit is reported as a
// *services.ToolError carrying ffmpeg's stderr.
func ExtractOpus(ctx context.Context, ffmpegBinary, input, output, bitrate string) error {
	if input == "" || output == "" {
		return fmt.Errorf("extract opus: input and output are required")
	}
	if input == output {
		return fmt.Errorf("extract opus: output %q would overwrite input", output)
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, ffmpegBinary, OpusArgs(input, output, bitrate)...) //nolint:gosec
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &services.ToolError{
				Tool:     "ffmpeg",
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(stderr.String()),
			}
		}
		return fmt.Errorf("run ffmpeg: %w", err)
	}
	return nil
}
