package downloader

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/lrstanley/go-ytdlp"

	"ytdl/internal/captions"
	"ytdl/internal/config"
	"ytdl/internal/services"
	"ytdl/internal/testsupport"
)

func newClient(t *testing.T, cfg *config.Config, opts ...Option) *Client {
	t.Helper()
	client, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func containsAny(args []string, candidates ...string) bool {
	for _, c := range candidates {
		if slices.Contains(args, c) {
			return true
		}
	}
	return false
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", false},
		{"http://example.com/video", false},
		{"", true},
		{"   ", true},
		{"not a url", true},
		{"ftp://example.com/video.mp4", true},
		{"https://", true},
		{"/local/path.mp4", true},
	}
	for _, tt := range tests {
		err := ValidateURL(tt.url)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
	}
}

func TestCommandLineVideo(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	client := newClient(t, cfg)

	args, err := client.CommandLine(context.Background(), Request{
		URL:       "https://example.com/watch?v=1",
		OutputDir: "/data/Downloads",
		Mode:      ModeVideo,
		Playlist:  false,
		FFmpeg:    "/usr/bin/ffmpeg",
	})
	if err != nil {
		t.Fatalf("CommandLine: %v", err)
	}
	if args[0] != cfg.Tools.YtdlpBinary {
		t.Fatalf("argv[0] = %q, want %q", args[0], cfg.Tools.YtdlpBinary)
	}
	for _, want := range []string{
		videoFormat,
		"mp4",
		"--no-playlist",
		"--restrict-filenames",
		"/usr/bin/ffmpeg",
		filepath.Join("/data/Downloads", config.Default().Download.OutputTemplate),
		"https://example.com/watch?v=1",
	} {
		if !slices.Contains(args, want) {
			t.Errorf("args %q missing %q", args, want)
		}
	}
	if slices.Contains(args, "--write-info-json") {
		t.Errorf("info json is off by default: %q", args)
	}
}

func TestCommandLineFlagsPrecedeURL(t *testing.T) {
	client := newClient(t, testsupport.NewConfig(t))

	args, err := client.CommandLine(context.Background(), Request{
		URL:       "https://example.com/last",
		OutputDir: "/tmp/out",
		Mode:      ModeVideo,
	})
	if err != nil {
		t.Fatalf("CommandLine: %v", err)
	}
	if len(args) < 3 {
		t.Fatalf("argv too short: %q", args)
	}
	if args[len(args)-1] != "https://example.com/last" {
		t.Fatalf("url must be the final argument: %q", args)
	}
	idx := slices.Index(args, "--output")
	if idx < 0 {
		idx = slices.Index(args, "-o")
	}
	if idx < 0 || idx+1 >= len(args)-1 {
		t.Fatalf("output flag and value missing before url: %q", args)
	}
	if args[idx+1] != filepath.Join("/tmp/out", config.Default().Download.OutputTemplate) {
		t.Fatalf("output value = %q", args[idx+1])
	}
}

func TestCommandLineCanceledContext(t *testing.T) {
	client := newClient(t, testsupport.NewConfig(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.CommandLine(ctx, Request{URL: "https://example.com/v", OutputDir: "/tmp/out", Mode: ModeVideo}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCommandLineVideoWithoutFFmpeg(t *testing.T) {
	client := newClient(t, testsupport.NewConfig(t))

	args, err := client.CommandLine(context.Background(), Request{
		URL:       "https://example.com/v",
		OutputDir: "/tmp/out",
		Mode:      ModeVideo,
		Playlist:  true,
	})
	if err != nil {
		t.Fatalf("CommandLine: %v", err)
	}
	if !slices.Contains(args, fallbackFormat) {
		t.Fatalf("expected single-file format in %q", args)
	}
	if slices.Contains(args, videoFormat) || slices.Contains(args, "--merge-output-format") {
		t.Fatalf("merge requested without ffmpeg: %q", args)
	}
	if !slices.Contains(args, "--yes-playlist") {
		t.Fatalf("expected playlist flag in %q", args)
	}
}

func TestCommandLineAudio(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Audio.Format = "opus"
	cfg.Audio.Quality = "0"
	client := newClient(t, cfg)

	args, err := client.CommandLine(context.Background(), Request{
		URL:       "https://example.com/v",
		OutputDir: "/tmp/out",
		Mode:      ModeAudio,
		FFmpeg:    "/usr/bin/ffmpeg",
	})
	if err != nil {
		t.Fatalf("CommandLine: %v", err)
	}
	if !containsAny(args, "-x", "--extract-audio") {
		t.Fatalf("expected extract audio flag in %q", args)
	}
	for _, want := range []string{audioFormat, "opus", "0"} {
		if !slices.Contains(args, want) {
			t.Errorf("args %q missing %q", args, want)
		}
	}
}

func TestCommandAudioRequiresFFmpeg(t *testing.T) {
	client := newClient(t, testsupport.NewConfig(t))
	_, err := client.Command(Request{URL: "https://example.com/v", OutputDir: "/tmp", Mode: ModeAudio})
	if !errors.Is(err, services.ErrMissingDependency) {
		t.Fatalf("expected missing dependency, got %v", err)
	}
	if !strings.Contains(err.Error(), "ffmpeg") {
		t.Fatalf("error should name ffmpeg: %v", err)
	}
}

func TestDownloadCreatesOneFile(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedTools())
	client := newClient(t, cfg)

	res, err := client.Download(context.Background(), Request{
		URL:       "https://example.com/watch?v=abc123",
		OutputDir: cfg.Paths.OutputDir,
		Mode:      ModeVideo,
		FFmpeg:    cfg.Tools.FFmpegBinary,
	})
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	want := filepath.Join(cfg.Paths.OutputDir, "Test Video [abc123].mp4")
	if len(res.Files) != 1 || res.Files[0] != want {
		t.Fatalf("files = %v, want [%s]", res.Files, want)
	}
}

func TestDownloadAudioFile(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedTools())
	client := newClient(t, cfg)

	res, err := client.Download(context.Background(), Request{
		URL:       "https://example.com/watch?v=abc123",
		OutputDir: cfg.Paths.OutputDir,
		Mode:      ModeAudio,
		FFmpeg:    cfg.Tools.FFmpegBinary,
	})
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if len(res.Files) != 1 || filepath.Ext(res.Files[0]) != ".m4a" {
		t.Fatalf("unexpected files: %v", res.Files)
	}
}

func TestDownloadUnsupportedURL(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedTools())
	client := newClient(t, cfg)

	_, err := client.Download(context.Background(), Request{
		URL:       "https://example.com/unsupported",
		OutputDir: cfg.Paths.OutputDir,
		Mode:      ModeVideo,
	})
	if !errors.Is(err, services.ErrDownload) {
		t.Fatalf("expected download error, got %v", err)
	}
	var toolErr *services.ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected ToolError in chain, got %v", err)
	}
	if toolErr.ExitCode != 1 || !strings.Contains(toolErr.Stderr, "Unsupported URL") {
		t.Fatalf("unexpected tool error: %#v", toolErr)
	}
	entries, _ := os.ReadDir(cfg.Paths.OutputDir)
	if len(entries) != 0 {
		t.Fatalf("expected no output files, found %d", len(entries))
	}
}

func TestDownloadPropagatesExitStatus(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedTools())
	client := newClient(t, cfg)

	_, err := client.Download(context.Background(), Request{
		URL:       "https://example.com/unavailable",
		OutputDir: cfg.Paths.OutputDir,
		Mode:      ModeVideo,
	})
	if code := services.ExitCode(err); code != 2 {
		t.Fatalf("exit code = %d, want 2 (err %v)", code, err)
	}
	if strings.Contains(err.Error(), "WARNING") {
		t.Fatalf("warnings should be dropped when ERROR lines exist: %v", err)
	}
}

func TestDownloadInvalidURLTouchesNothing(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedTools())
	client := newClient(t, cfg)

	_, err := client.Download(context.Background(), Request{
		URL:       "notaurl",
		OutputDir: cfg.Paths.OutputDir,
		Mode:      ModeVideo,
	})
	if !errors.Is(err, services.ErrDownload) {
		t.Fatalf("expected download error, got %v", err)
	}
	if _, statErr := os.Stat(cfg.Paths.OutputDir); !os.IsNotExist(statErr) {
		t.Fatalf("output directory should not be created, stat err = %v", statErr)
	}
}

func TestInfo(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedTools())
	client := newClient(t, cfg)

	meta, err := client.Info(context.Background(), "https://example.com/watch?v=abc123")
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if meta.Title != testsupport.StubTitle || meta.ID != testsupport.StubID {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
	if meta.SizeBytes() != 10485760 {
		t.Fatalf("size = %d", meta.SizeBytes())
	}
	var raw map[string]any
	if err := json.Unmarshal(meta.Raw, &raw); err != nil {
		t.Fatalf("raw is not JSON: %v", err)
	}
	if raw["title"] != testsupport.StubTitle {
		t.Fatalf("raw title = %v", raw["title"])
	}
	if len(meta.Subtitles) != 1 || len(meta.AutomaticCaptions) != 2 {
		t.Fatalf("caption maps not decoded: %+v", meta.Info)
	}
}

func TestInfoInvalidJSON(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	script := "#!/bin/sh\necho 'this is not json'\n"
	if err := os.MkdirAll(filepath.Dir(cfg.Tools.YtdlpBinary), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.Tools.YtdlpBinary, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	client := newClient(t, cfg)

	_, err := client.Info(context.Background(), "https://example.com/v")
	if !errors.Is(err, services.ErrMetadata) {
		t.Fatalf("expected metadata error, got %v", err)
	}
}

func TestInfoUnsupported(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedTools())
	client := newClient(t, cfg)

	_, err := client.Info(context.Background(), "https://example.com/unsupported")
	if !errors.Is(err, services.ErrMetadata) {
		t.Fatalf("expected metadata error, got %v", err)
	}
	if services.ExitCode(err) != 1 {
		t.Fatalf("exit code = %d, want 1", services.ExitCode(err))
	}
}

func TestCaptions(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedTools())
	client := newClient(t, cfg)

	res, err := client.Captions(context.Background(), "https://example.com/v",
		captions.Choice{Language: "en-GB"}, cfg.Paths.OutputDir)
	if err != nil {
		t.Fatalf("Captions: %v", err)
	}
	want := filepath.Join(cfg.Paths.OutputDir, "Test Video [abc123].en-GB.vtt")
	if len(res.Files) != 1 || res.Files[0] != want {
		t.Fatalf("files = %v, want [%s]", res.Files, want)
	}
}

func TestCaptionsRequiresLanguage(t *testing.T) {
	client := newClient(t, testsupport.NewConfig(t))
	if _, err := client.Captions(context.Background(), "https://example.com/v", captions.Choice{}, t.TempDir()); err == nil {
		t.Fatal("expected error without a language")
	}
}

func TestProgressFromUpdate(t *testing.T) {
	title := "Test Video"
	p := progressFromUpdate(ytdlp.ProgressUpdate{
		TotalBytes:      200,
		DownloadedBytes: 50,
		Filename:        "clip.mp4",
		Info:            &ytdlp.ExtractedInfo{Title: &title},
	})
	if p.Percent != 25 {
		t.Fatalf("percent = %v, want 25", p.Percent)
	}
	if p.Title != title || p.Filename != "clip.mp4" {
		t.Fatalf("unexpected progress: %+v", p)
	}

	unknown := progressFromUpdate(ytdlp.ProgressUpdate{DownloadedBytes: 10})
	if unknown.Percent != -1 {
		t.Fatalf("percent without total = %v, want -1", unknown.Percent)
	}
}

func TestMetadataHelpers(t *testing.T) {
	meta := Metadata{Channel: "Chan", UploadDate: "20240102", Duration: 90.5, FilesizeApprox: 1024}
	if meta.UploaderName() != "Chan" {
		t.Fatalf("uploader fallback = %q", meta.UploaderName())
	}
	day, ok := meta.UploadDay()
	if !ok || day.Format("2006-01-02") != "2024-01-02" {
		t.Fatalf("upload day = %v, %v", day, ok)
	}
	if meta.DurationValue().Seconds() != 90.5 {
		t.Fatalf("duration = %s", meta.DurationValue())
	}
	if meta.SizeBytes() != 1024 {
		t.Fatalf("size = %d", meta.SizeBytes())
	}
	if (Metadata{UploadDate: "2024"}).IsPlaylist() {
		t.Fatal("not a playlist")
	}
	if _, ok := (Metadata{UploadDate: "bad"}).UploadDay(); ok {
		t.Fatal("expected invalid date")
	}
}
