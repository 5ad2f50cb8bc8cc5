package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"ytdl/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted in a fresh temp directory. Tool paths
// point at absolute locations under <base>/bin that do not exist until a
// stub option writes them.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	binDir := filepath.Join(base, "bin")
	cfgVal.Paths.OutputDir = filepath.Join(base, "Downloads")
	cfgVal.Tools.YtdlpBinary = filepath.Join(binDir, "yt-dlp")
	cfgVal.Tools.FFmpegBinary = filepath.Join(binDir, "ffmpeg")
	cfgVal.Tools.FFprobeBinary = filepath.Join(binDir, "ffprobe")
	cfgVal.Tools.VersionTimeoutSeconds = 5

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithStubbedTools writes the yt-dlp, ffmpeg and ffprobe stubs (or only the
// named ones) into <base>/bin. The config already points there.
func WithStubbedTools(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"yt-dlp", "ffmpeg", "ffprobe"}
		}
		for _, name := range names {
			writeStub(b.t, filepath.Join(b.baseDir, "bin"), name)
		}
	}
}

// WithStubbedBinaries writes stubs for the provided names into a directory
// prepended to PATH and points the config at the bare command names, so
// resolution goes through PATH lookup.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"yt-dlp", "ffmpeg", "ffprobe"}
		}
		pathDir := filepath.Join(b.baseDir, "path")
		for _, name := range names {
			writeStub(b.t, pathDir, name)
		}
		b.cfg.Tools.YtdlpBinary = "yt-dlp"
		b.cfg.Tools.FFmpegBinary = "ffmpeg"
		b.cfg.Tools.FFprobeBinary = "ffprobe"
		b.t.Setenv("PATH", pathDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
}

// WriteConfig encodes cfg as TOML into a fresh temp directory and returns the path.
func WriteConfig(t testing.TB, cfg *config.Config) string {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "ytdl.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func writeStub(t testing.TB, dir, name string) {
	t.Helper()
	script, ok := stubScripts[name]
	if !ok {
		script = "#!/bin/sh\nexit 0\n"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir stub dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
}
