package preflight

import (
	"context"
	"runtime"

	"ytdl/internal/config"
	"ytdl/internal/deps"
	"ytdl/internal/fileutil"
)

// Report is the informational environment summary printed by `ytdl doctor`.
type Report struct {
	GoVersion      string `json:"go"`
	Platform       string `json:"platform"`
	YtDlp          bool   `json:"yt_dlp"`
	FFmpeg         bool   `json:"ffmpeg"`
	FFprobe        bool   `json:"ffprobe"`
	OutputDir      string `json:"outdir"`
	OutdirWritable bool   `json:"outdir_writable"`
}

// Doctor gathers the report. Unlike RunGate it creates the output directory
// and writes a probe file, so the answer reflects what a download would see.
func Doctor(ctx context.Context, cfg *config.Config) Report {
	report := Report{
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if cfg == nil {
		return report
	}
	for _, status := range deps.CheckBinaries(ctx, ToolRequirements(cfg, false), 0) {
		switch status.Name {
		case "yt-dlp":
			report.YtDlp = status.Available
		case "ffmpeg":
			report.FFmpeg = status.Available
		case "ffprobe":
			report.FFprobe = status.Available
		}
	}
	report.OutputDir = cfg.Paths.OutputDir
	report.OutdirWritable = fileutil.ProbeWritable(cfg.Paths.OutputDir) == nil
	return report
}
