package config

const (
	defaultConfigPath            = "~/.config/ytdl/config.toml"
	projectConfigFile            = "ytdl.toml"
	defaultOutputDir             = "Downloads"
	defaultYtdlpBinary           = "yt-dlp"
	defaultFFmpegBinary          = "ffmpeg"
	defaultFFprobeBinary         = "ffprobe"
	defaultVersionTimeoutSeconds = 5
	defaultOutputTemplate        = "%(title)s [%(id)s].%(ext)s"
	defaultMergeFormat           = "mp4"
	defaultAudioFormat           = "best"
	defaultExtractBitrate        = "64k"
	defaultCaptionFormat         = "vtt"
	defaultCaptionLanguage       = "en"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
		},
		Tools: Tools{
			YtdlpBinary:           defaultYtdlpBinary,
			FFmpegBinary:          defaultFFmpegBinary,
			FFprobeBinary:         defaultFFprobeBinary,
			VersionTimeoutSeconds: defaultVersionTimeoutSeconds,
		},
		Download: Download{
			OutputTemplate:    defaultOutputTemplate,
			Playlist:          true,
			MergeFormat:       defaultMergeFormat,
			RestrictFilenames: true,
		},
		Audio: Audio{
			Format: defaultAudioFormat,
		},
		Extract: Extract{
			Bitrate: defaultExtractBitrate,
		},
		Captions: Captions{
			Languages: []string{defaultCaptionLanguage},
			Format:    defaultCaptionFormat,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
