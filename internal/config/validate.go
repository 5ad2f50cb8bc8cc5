package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

var (
	mergeFormats   = []string{"avi", "flv", "mkv", "mov", "mp4", "webm"}
	audioFormats   = []string{"best", "aac", "alac", "flac", "m4a", "mp3", "opus", "vorbis", "wav"}
	captionFormats = []string{"best", "vtt", "srt", "ass", "json3", "ttml"}
	logLevels      = []string{"debug", "info", "warn", "error"}
	logFormats     = []string{"console", "json"}

	bitratePattern = regexp.MustCompile(`^[1-9][0-9]*k$`)
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateDownload(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateCaptions(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	return nil
}

func (c *Config) validateDownload() error {
	tmpl := c.Download.OutputTemplate
	if filepath.IsAbs(tmpl) {
		return errors.New("download.output_template must be relative to paths.output_dir")
	}
	if !strings.Contains(tmpl, "%(") {
		return fmt.Errorf("download.output_template %q must contain at least one %%(field)s placeholder", tmpl)
	}
	if !slices.Contains(mergeFormats, c.Download.MergeFormat) {
		return fmt.Errorf("download.merge_format %q must be one of %s", c.Download.MergeFormat, strings.Join(mergeFormats, ", "))
	}
	return nil
}

func (c *Config) validateAudio() error {
	if !slices.Contains(audioFormats, c.Audio.Format) {
		return fmt.Errorf("audio.format %q must be one of %s", c.Audio.Format, strings.Join(audioFormats, ", "))
	}
	if err := ValidateBitrate(c.Extract.Bitrate); err != nil {
		return fmt.Errorf("extract.bitrate: %w", err)
	}
	return nil
}

// ValidateBitrate accepts ffmpeg kilobit rates such as "64k".
func ValidateBitrate(bitrate string) error {
	if !bitratePattern.MatchString(bitrate) {
		return fmt.Errorf("bitrate %q must look like 64k", bitrate)
	}
	return nil
}

func (c *Config) validateCaptions() error {
	if !slices.Contains(captionFormats, c.Captions.Format) {
		return fmt.Errorf("captions.format %q must be one of %s", c.Captions.Format, strings.Join(captionFormats, ", "))
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !slices.Contains(logFormats, c.Logging.Format) {
		return fmt.Errorf("logging.format %q must be one of %s", c.Logging.Format, strings.Join(logFormats, ", "))
	}
	if !slices.Contains(logLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level %q must be one of %s", c.Logging.Level, strings.Join(logLevels, ", "))
	}
	return nil
}
