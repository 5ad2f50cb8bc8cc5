package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	OutputDir string `toml:"output_dir"`
}

// Tools names the external executables ytdl drives.
type Tools struct {
	YtdlpBinary           string `toml:"ytdlp_binary"`
	FFmpegBinary          string `toml:"ffmpeg_binary"`
	FFprobeBinary         string `toml:"ffprobe_binary"`
	VersionTimeoutSeconds int    `toml:"version_timeout_seconds"`
}

// Download contains options for combined video+audio downloads.
type Download struct {
	OutputTemplate    string `toml:"output_template"`
	Playlist          bool   `toml:"playlist"`
	MergeFormat       string `toml:"merge_format"`
	RestrictFilenames bool   `toml:"restrict_filenames"`
	WriteInfoJSON     bool   `toml:"write_info_json"`
}

// Audio contains options for audio-only extraction.
type Audio struct {
	// Format is passed to --audio-format unless it is "best", in which case
	// yt-dlp keeps the source codec.
	Format  string `toml:"format"`
	Quality string `toml:"quality"`
}

// Extract contains options for local ffmpeg audio extraction.
type Extract struct {
	Bitrate string `toml:"bitrate"`
}

// Captions contains caption selection preferences.
type Captions struct {
	Languages []string `toml:"languages"`
	Format    string   `toml:"format"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	LogDir string `toml:"log_dir"`
}

// Config encapsulates all configuration values for ytdl.
//
// Configuration sections:
//   - Paths: output directory
//   - Tools: yt-dlp, ffmpeg and ffprobe executables
//   - Download: output template and combined-stream options
//   - Audio: audio-only extraction options
//   - Extract: local Opus extraction bitrate
//   - Captions: caption language preferences
//   - Logging: log format, level and optional file sink
type Config struct {
	Paths    Paths    `toml:"paths"`
	Tools    Tools    `toml:"tools"`
	Download Download `toml:"download"`
	Audio    Audio    `toml:"audio"`
	Extract  Extract  `toml:"extract"`
	Captions Captions `toml:"captions"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the per-user configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath(defaultConfigPath)
}

// Load reads, normalizes and validates the configuration. An explicit path is
// used as given and may be missing (defaults apply). Without one the per-user
// file is tried, then ./ytdl.toml. Load returns the path it settled on and
// whether that file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	source, exists, err := locate(path)
	if err != nil {
		return nil, "", false, err
	}
	if exists {
		if err := decodeFile(source, &cfg); err != nil {
			return nil, "", false, err
		}
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, source, exists, nil
}

func locate(path string) (string, bool, error) {
	candidates := []string{defaultConfigPath, projectConfigFile}
	explicit := strings.TrimSpace(path) != ""
	if explicit {
		candidates = []string{strings.TrimSpace(path)}
	}

	first := ""
	for _, candidate := range candidates {
		expanded, err := ExpandPath(candidate)
		if err != nil {
			return "", false, err
		}
		if first == "" {
			first = expanded
		}
		info, err := os.Stat(expanded)
		switch {
		case err == nil && !info.IsDir():
			return expanded, true, nil
		case err == nil && explicit:
			return "", false, fmt.Errorf("config %s is a directory", expanded)
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return "", false, fmt.Errorf("stat config: %w", err)
		}
	}
	return first, false, nil
}

// decodeFile rejects unknown keys so a typo in a section name is reported
// instead of silently ignored.
func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err = dec.Decode(cfg)

	var strict *toml.StrictMissingError
	var decodeErr *toml.DecodeError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &strict):
		return fmt.Errorf("parse config %s: %s", path, strings.TrimSpace(strict.String()))
	case errors.As(err, &decodeErr):
		row, col := decodeErr.Position()
		return fmt.Errorf("parse config %s:%d:%d: %w", path, row, col, err)
	default:
		return fmt.Errorf("parse config %s: %w", path, err)
	}
}

// ExpandPath resolves a leading ~ to the home directory and makes the result
// absolute. Empty input stays empty.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	absolute, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", path, err)
	}
	return absolute, nil
}

// CreateSample writes the annotated sample configuration to path, creating
// parent directories. Without overwrite an existing file is left alone and
// the returned error wraps fs.ErrExist.
func CreateSample(path string, overwrite bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	file, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := file.WriteString(sampleConfig); err != nil {
		file.Close()
		return fmt.Errorf("write sample config: %w", err)
	}
	return file.Close()
}
