package config

import (
	"fmt"
	"os"
	"strings"

	"ytdl/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeDownload()
	c.normalizeAudio()
	c.normalizeCaptions()
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("YTDL_OUTPUT_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.OutputDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	var err error
	if c.Paths.OutputDir, err = ExpandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() {
	if value, ok := os.LookupEnv("YTDL_YTDLP_BINARY"); ok && strings.TrimSpace(value) != "" {
		c.Tools.YtdlpBinary = value
	}
	if value, ok := os.LookupEnv("YTDL_FFMPEG_BINARY"); ok && strings.TrimSpace(value) != "" {
		c.Tools.FFmpegBinary = value
	}
	c.Tools.YtdlpBinary = strings.TrimSpace(c.Tools.YtdlpBinary)
	if c.Tools.YtdlpBinary == "" {
		c.Tools.YtdlpBinary = defaultYtdlpBinary
	}
	c.Tools.FFmpegBinary = strings.TrimSpace(c.Tools.FFmpegBinary)
	if c.Tools.FFmpegBinary == "" {
		c.Tools.FFmpegBinary = defaultFFmpegBinary
	}
	c.Tools.FFprobeBinary = strings.TrimSpace(c.Tools.FFprobeBinary)
	if c.Tools.FFprobeBinary == "" {
		c.Tools.FFprobeBinary = defaultFFprobeBinary
	}
	if c.Tools.VersionTimeoutSeconds <= 0 {
		c.Tools.VersionTimeoutSeconds = defaultVersionTimeoutSeconds
	}
}

func (c *Config) normalizeDownload() {
	c.Download.OutputTemplate = strings.TrimSpace(c.Download.OutputTemplate)
	if c.Download.OutputTemplate == "" {
		c.Download.OutputTemplate = defaultOutputTemplate
	}
	c.Download.MergeFormat = strings.ToLower(strings.TrimSpace(c.Download.MergeFormat))
	if c.Download.MergeFormat == "" {
		c.Download.MergeFormat = defaultMergeFormat
	}
}

func (c *Config) normalizeAudio() {
	c.Audio.Format = strings.ToLower(strings.TrimSpace(c.Audio.Format))
	if c.Audio.Format == "" {
		c.Audio.Format = defaultAudioFormat
	}
	c.Audio.Quality = strings.TrimSpace(c.Audio.Quality)
	c.Extract.Bitrate = strings.ToLower(strings.TrimSpace(c.Extract.Bitrate))
	if c.Extract.Bitrate == "" {
		c.Extract.Bitrate = defaultExtractBitrate
	}
}

func (c *Config) normalizeCaptions() {
	c.Captions.Format = strings.ToLower(strings.TrimSpace(c.Captions.Format))
	if c.Captions.Format == "" {
		c.Captions.Format = defaultCaptionFormat
	}
	langs := language.NormalizeList(c.Captions.Languages)
	if len(langs) == 0 {
		langs = []string{defaultCaptionLanguage}
	}
	c.Captions.Languages = langs
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	switch c.Logging.Level {
	case "":
		c.Logging.Level = defaultLogLevel
	case "warning":
		c.Logging.Level = "warn"
	}
	if strings.TrimSpace(c.Logging.LogDir) != "" {
		var err error
		if c.Logging.LogDir, err = ExpandPath(strings.TrimSpace(c.Logging.LogDir)); err != nil {
			return fmt.Errorf("logging.log_dir: %w", err)
		}
	}
	return nil
}
