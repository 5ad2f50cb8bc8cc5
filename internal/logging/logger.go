package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ytdl/internal/config"
)

// LogFileName is the file written inside logging.log_dir.
const LogFileName = "ytdl.log"

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// Writers receive every line; os.Stderr when empty.
	Writers   []io.Writer
	AddSource bool
}

// New builds a console or JSON logger. Unknown levels fall back to info;
// unknown formats are an error.
func New(opts Options) (*slog.Logger, error) {
	level := parseLevel(opts.Level)

	var w io.Writer
	switch len(opts.Writers) {
	case 0:
		w = os.Stderr
	case 1:
		w = opts.Writers[0]
	default:
		w = io.MultiWriter(opts.Writers...)
	}

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "console":
		return slog.New(newConsoleHandler(w, level, opts.AddSource)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			AddSource:   opts.AddSource || level <= slog.LevelDebug,
			ReplaceAttr: jsonReplaceAttr,
		})), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
}

// NewFromConfig builds the CLI logger. Lines go to stream (stderr when nil)
// and, when logging.log_dir is set, are appended to LogFileName there.
// verbose forces debug level. The returned closer releases the log file and
// is never nil.
func NewFromConfig(cfg *config.Config, stream io.Writer, verbose bool) (*slog.Logger, io.Closer, error) {
	if stream == nil {
		stream = os.Stderr
	}
	opts := Options{Level: "info", Writers: []io.Writer{stream}}
	var closer io.Closer = nopCloser{}
	if cfg != nil {
		opts.Level = cfg.Logging.Level
		opts.Format = cfg.Logging.Format
		if dir := strings.TrimSpace(cfg.Logging.LogDir); dir != "" {
			file, err := openLogFile(dir)
			if err != nil {
				return nil, nil, err
			}
			opts.Writers = append(opts.Writers, file)
			closer = file
		}
	}
	if verbose {
		opts.Level = "debug"
	}
	logger, err := New(opts)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}
	path := filepath.Join(dir, LogFileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}

func parseLevel(level string) slog.Level {
	var parsed slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "warning":
		return slog.LevelWarn
	case "":
		return slog.LevelInfo
	default:
		if err := parsed.UnmarshalText([]byte(level)); err != nil {
			return slog.LevelInfo
		}
		return parsed
	}
}

// jsonReplaceAttr emits "ts" in UTC RFC 3339, lowercase levels and a short
// file:line source.
func jsonReplaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		return slog.String("ts", a.Value.Time().UTC().Format(time.RFC3339))
	case slog.LevelKey:
		return slog.String(slog.LevelKey, strings.ToLower(a.Value.String()))
	case slog.SourceKey:
		if src, ok := a.Value.Any().(*slog.Source); ok && src != nil {
			return slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
		}
	}
	return a
}
