package downloader

import (
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// Progress is a snapshot of a running download.
type Progress struct {
	Status          string
	Title           string
	Filename        string
	DownloadedBytes int64
	TotalBytes      int64
	// Percent is -1 when yt-dlp does not know the total size.
	Percent float64
	ETA     time.Duration
}

const progressInterval = 250 * time.Millisecond

func progressFromUpdate(update ytdlp.ProgressUpdate) Progress {
	p := Progress{
		Status:          string(update.Status),
		Filename:        update.Filename,
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
		Percent:         -1,
	}
	if update.Info != nil && update.Info.Title != nil {
		p.Title = *update.Info.Title
	}
	if p.TotalBytes > 0 {
		p.Percent = float64(p.DownloadedBytes) / float64(p.TotalBytes) * 100
		if p.Percent > 100 {
			p.Percent = 100
		}
	}
	if eta := update.ETA(); eta > 0 {
		p.ETA = eta
	}
	return p
}
