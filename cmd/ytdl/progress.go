package main

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"ytdl/internal/logging"
	"ytdl/internal/services/downloader"
)

// progressReporter renders download progress as a bar on a terminal, or as
// sampled log lines when stderr is not a terminal and --verbose is set.
type progressReporter struct {
	mu      sync.Mutex
	out     io.Writer
	tty     bool
	logger  *slog.Logger
	sampler *logging.ProgressSampler

	bar  *progressbar.ProgressBar
	file string
}

// newProgressReporter returns nil when progress should not be shown at all.
func newProgressReporter(out io.Writer, logger *slog.Logger, tty, verbose bool) *progressReporter {
	if !tty && !verbose {
		return nil
	}
	return &progressReporter{
		out:     out,
		tty:     tty,
		logger:  logger,
		sampler: logging.NewProgressSampler(10),
	}
}

func (p *progressReporter) update(pr downloader.Progress) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pr.Filename != "" && pr.Filename != p.file {
		p.finishLocked()
		p.file = pr.Filename
		p.sampler.Reset()
	}

	if !p.tty {
		if p.sampler.ShouldLog(pr.Percent, pr.Status) {
			attrs := []logging.Attr{
				logging.String("status", pr.Status),
				logging.String("downloaded", humanize.Bytes(uint64(max(pr.DownloadedBytes, 0)))),
			}
			if pr.Percent >= 0 {
				attrs = append(attrs, logging.Float64("percent", float64(int(pr.Percent*10))/10))
			}
			if pr.TotalBytes > 0 {
				attrs = append(attrs, logging.String("total", humanize.Bytes(uint64(pr.TotalBytes))))
			}
			if pr.ETA > 0 {
				attrs = append(attrs, logging.Duration("eta", pr.ETA.Round(time.Second)))
			}
			p.logger.Info("download progress", logging.Args(attrs...)...)
		}
		return
	}

	if p.bar == nil {
		total := pr.TotalBytes
		if total <= 0 {
			total = -1
		}
		description := pr.Title
		if description == "" {
			description = "downloading"
		}
		p.bar = progressbar.NewOptions64(total,
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionSetDescription(description),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(30),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	} else if pr.TotalBytes > 0 && p.bar.GetMax64() != pr.TotalBytes {
		p.bar.ChangeMax64(pr.TotalBytes)
	}
	_ = p.bar.Set64(pr.DownloadedBytes)
	if pr.Status == "finished" {
		p.finishLocked()
	}
}

func (p *progressReporter) finish() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finishLocked()
}

func (p *progressReporter) finishLocked() {
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}
