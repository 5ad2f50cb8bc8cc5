package downloader

import (
	"encoding/json"
	"time"

	"ytdl/internal/captions"
)

// Metadata is the subset of yt-dlp's info document ytdl summarizes. Raw
// keeps the complete document as yt-dlp printed it.
type Metadata struct {
	Type           string  `json:"_type"`
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Uploader       string  `json:"uploader"`
	Channel        string  `json:"channel"`
	Duration       float64 `json:"duration"`
	WebpageURL     string  `json:"webpage_url"`
	UploadDate     string  `json:"upload_date"`
	ViewCount      int64   `json:"view_count"`
	Filesize       float64 `json:"filesize"`
	FilesizeApprox float64 `json:"filesize_approx"`
	PlaylistCount  int     `json:"playlist_count"`

	captions.Info

	Raw json.RawMessage `json:"-"`
}

// IsPlaylist reports whether the document describes a playlist.
func (m Metadata) IsPlaylist() bool {
	return m.Type == "playlist"
}

// DurationValue converts the duration in seconds to a time.Duration.
func (m Metadata) DurationValue() time.Duration {
	if m.Duration <= 0 {
		return 0
	}
	return time.Duration(m.Duration * float64(time.Second))
}

// SizeBytes prefers the exact filesize and falls back to yt-dlp's estimate.
func (m Metadata) SizeBytes() uint64 {
	switch {
	case m.Filesize > 0:
		return uint64(m.Filesize)
	case m.FilesizeApprox > 0:
		return uint64(m.FilesizeApprox)
	default:
		return 0
	}
}

// UploadDay parses upload_date (YYYYMMDD).
func (m Metadata) UploadDay() (time.Time, bool) {
	if len(m.UploadDate) != 8 {
		return time.Time{}, false
	}
	day, err := time.Parse("20060102", m.UploadDate)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

// UploaderName returns the uploader, falling back to the channel name.
func (m Metadata) UploaderName() string {
	if m.Uploader != "" {
		return m.Uploader
	}
	return m.Channel
}
