package preflight

import (
	"context"
	"time"

	"ytdl/internal/config"
	"ytdl/internal/deps"
)

// OutputDirectoryCheck names the gate's directory check.
const OutputDirectoryCheck = "Output directory"

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Optional bool   `json:"optional,omitempty"`
	Detail   string `json:"detail"`
}

// RunGate executes the local dependency checks in a fixed order: yt-dlp,
// ffmpeg, ffprobe (optional), then the output directory. Nothing touches the
// network and nothing is created on disk.
func RunGate(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	timeout := time.Duration(cfg.Tools.VersionTimeoutSeconds) * time.Second
	statuses := deps.CheckBinaries(ctx, ToolRequirements(cfg, true), timeout)

	results := make([]Result, 0, len(statuses)+1)
	for _, status := range statuses {
		results = append(results, FromStatus(status))
	}
	results = append(results, CheckOutputDirectory(OutputDirectoryCheck, cfg.Paths.OutputDir))
	return results
}

// Passed reports whether every required check passed. Optional failures are
// surfaced but do not fail the gate.
func Passed(results []Result) bool {
	return len(Failed(results)) == 0
}

// Failed returns the required checks that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed && !r.Optional {
			failed = append(failed, r)
		}
	}
	return failed
}
