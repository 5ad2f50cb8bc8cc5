package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ytdl/internal/services"
	"ytdl/internal/testsupport"
)

const goodURL = "https://www.youtube.com/watch?v=abc123"

func TestDlCreatesExactlyOneFile(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedTools())

	stdout, stderr, err := env.run(t, "dl", goodURL)
	if err != nil {
		t.Fatalf("dl failed: %v\nstderr: %s", err, stderr)
	}
	files := outputFiles(t, env.cfg.Paths.OutputDir)
	if len(files) != 1 {
		t.Fatalf("expected exactly one output file, got %v", files)
	}
	if filepath.Base(files[0]) != "Test Video [abc123].mp4" {
		t.Fatalf("unexpected file %s", files[0])
	}
	requireContains(t, stdout, files[0])
	requireContains(t, stderr, "download complete")
}

func TestDlOutdirFlag(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedTools())
	outdir := filepath.Join(t.TempDir(), "elsewhere")

	if _, stderr, err := env.run(t, "dl", "--outdir", outdir, "--no-playlist", goodURL); err != nil {
		t.Fatalf("dl failed: %v\nstderr: %s", err, stderr)
	}
	if files := outputFiles(t, outdir); len(files) != 1 {
		t.Fatalf("expected one file in --outdir, got %v", files)
	}
	if files := outputFiles(t, env.cfg.Paths.OutputDir); len(files) != 0 {
		t.Fatalf("default output dir should be untouched, got %v", files)
	}
}

func TestRejectedURLsWriteNothing(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		marker  error
		created bool
	}{
		{"dl malformed", []string{"dl", "not-a-url"}, services.ErrDownload, false},
		{"audio malformed", []string{"audio", "ftp://example.com/a"}, services.ErrDownload, false},
		{"info malformed", []string{"info", "example.com"}, services.ErrMetadata, false},
		{"dl unsupported", []string{"dl", "https://example.com/unsupported"}, services.ErrDownload, true},
		{"audio unsupported", []string{"audio", "https://example.com/unsupported"}, services.ErrDownload, true},
		{"info unsupported", []string{"info", "https://example.com/unsupported"}, services.ErrMetadata, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupCLITestEnv(t, testsupport.WithStubbedTools())

			_, _, err := env.run(t, tt.args...)
			if err == nil {
				t.Fatal("expected failure")
			}
			if !errors.Is(err, tt.marker) {
				t.Fatalf("expected %v, got %v", tt.marker, err)
			}
			if services.ExitCode(err) == 0 {
				t.Fatal("expected non-zero exit code")
			}
			if files := outputFiles(t, env.cfg.Paths.OutputDir); len(files) != 0 {
				t.Fatalf("expected no output files, got %v", files)
			}
			_, statErr := os.Stat(env.cfg.Paths.OutputDir)
			if !tt.created && !os.IsNotExist(statErr) {
				t.Fatalf("output directory should not exist for a rejected URL, stat err=%v", statErr)
			}
		})
	}
}

func TestDlUnsupportedSurfacesToolMessage(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedTools())

	_, _, err := env.run(t, "dl", "https://example.com/unsupported")
	if err == nil || !strings.Contains(err.Error(), "ERROR: Unsupported URL: https://example.com/unsupported") {
		t.Fatalf("expected yt-dlp message verbatim, got %v", err)
	}
}

func TestDlPropagatesToolExitCode(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedTools())

	_, _, err := env.run(t, "dl", "https://example.com/unavailable")
	if code := services.ExitCode(err); code != 2 {
		t.Fatalf("exit code = %d, want 2 (err %v)", code, err)
	}
}

func TestDlWithoutFFmpegFallsBack(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedTools("yt-dlp"))

	_, stderr, err := env.run(t, "dl", goodURL)
	if err != nil {
		t.Fatalf("dl failed: %v", err)
	}
	requireContains(t, stderr, "ffmpeg not found")
	if files := outputFiles(t, env.cfg.Paths.OutputDir); len(files) != 1 {
		t.Fatalf("expected one file, got %v", files)
	}
}

func TestAudioExtractsOneFile(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedTools())

	stdout, stderr, err := env.run(t, "audio", goodURL)
	if err != nil {
		t.Fatalf("audio failed: %v\nstderr: %s", err, stderr)
	}
	files := outputFiles(t, env.cfg.Paths.OutputDir)
	if len(files) != 1 || filepath.Ext(files[0]) != ".m4a" {
		t.Fatalf("unexpected files %v", files)
	}
	requireContains(t, stdout, files[0])
}

func TestAudioRequiresFFmpeg(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedTools("yt-dlp"))

	_, _, err := env.run(t, "audio", goodURL)
	if !errors.Is(err, services.ErrMissingDependency) {
		t.Fatalf("expected missing dependency, got %v", err)
	}
	requireContains(t, err.Error(), "ffmpeg")
	if files := outputFiles(t, env.cfg.Paths.OutputDir); len(files) != 0 {
		t.Fatalf("expected no output, got %v", files)
	}
}

func TestDlMissingYtDlp(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := env.run(t, "dl", goodURL)
	if !errors.Is(err, services.ErrMissingDependency) {
		t.Fatalf("expected missing dependency, got %v", err)
	}
	requireContains(t, err.Error(), "yt-dlp")
}

func TestDlVerbosePrintsCommand(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedTools())

	_, stderr, err := env.run(t, "-v", "dl", goodURL)
	if err != nil {
		t.Fatalf("dl failed: %v", err)
	}
	requireContains(t, stderr, "$ "+env.cfg.Tools.YtdlpBinary)
	requireContains(t, stderr, goodURL)
}

func TestPlaylistFlagsAreExclusive(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedTools())

	if _, _, err := env.run(t, "dl", "--playlist", "--no-playlist", goodURL); err == nil {
		t.Fatal("expected error for conflicting playlist flags")
	}
}

func TestDlRequiresURLArgument(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedTools())

	if _, _, err := env.run(t, "dl"); err == nil {
		t.Fatal("expected error without url")
	}
}
