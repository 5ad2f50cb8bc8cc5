package downloader

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Mode selects what a download request persists.
type Mode int

const (
	// ModeVideo fetches the best combined video and audio stream.
	ModeVideo Mode = iota
	// ModeAudio extracts audio only.
	ModeAudio
)

func (m Mode) String() string {
	switch m {
	case ModeVideo:
		return "video"
	case ModeAudio:
		return "audio"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Request describes one download.
type Request struct {
	URL       string
	OutputDir string
	Mode      Mode
	Playlist  bool
	// FFmpeg is the resolved ffmpeg path. Empty means ffmpeg is unavailable:
	// video downloads fall back to a single pre-merged stream and audio
	// extraction is refused.
	FFmpeg string
}

// Result lists the files a download left in the output directory.
type Result struct {
	OutputDir string
	Files     []string
}

// ValidateURL rejects locators that cannot name a remote resource: anything
// that is not an absolute http(s) URL with a host.
func ValidateURL(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return errors.New("url is required")
	}
	parsed, err := url.ParseRequestURI(trimmed)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", raw, err)
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	default:
		return fmt.Errorf("invalid url %q: scheme must be http or https", raw)
	}
	if parsed.Host == "" {
		return fmt.Errorf("invalid url %q: missing host", raw)
	}
	return nil
}
