package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ytdl/internal/config"
	"ytdl/internal/services"
)

func TestNewConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writers: []io.Writer{&buf}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := services.WithCommand(services.WithRunID(context.Background(), "run-1"), "dl")
	logger = NewComponentLogger(WithContext(ctx, logger), "downloader")
	logger.Info("download complete", String("file", "Test Video.mp4"), Int("files", 1))

	line := buf.String()
	for _, want := range []string{"INFO [downloader] dl: download complete", `file="Test Video.mp4"`, "files=1"} {
		if !strings.Contains(line, want) {
			t.Fatalf("console line %q missing %q", line, want)
		}
	}
	if strings.Contains(line, "run-1") {
		t.Fatalf("console line should hide run id: %q", line)
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Writers: []io.Writer{&buf}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := services.WithRunID(context.Background(), "run-2")
	WithContext(ctx, logger).Warn("ffmpeg missing", String(FieldComponent, "cli"))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json line %q: %v", buf.String(), err)
	}
	if payload["level"] != "warn" {
		t.Fatalf("level = %v, want warn", payload["level"])
	}
	if payload[FieldRunID] != "run-2" {
		t.Fatalf("run_id = %v, want run-2", payload[FieldRunID])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts key in %v", payload)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Writers: []io.Writer{&buf}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hidden")
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", buf.String())
	}
	logger.Error("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected error line, got %q", buf.String())
	}
}

func TestNewFromConfigVerboseForcesDebug(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "error"

	var buf bytes.Buffer
	logger, closer, err := NewFromConfig(&cfg, &buf, true)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	if err := closer.Close(); err != nil {
		t.Fatalf("close without log file: %v", err)
	}
	logger.Debug("command line", String("argv", "yt-dlp --version"))
	if !strings.Contains(buf.String(), "command line") {
		t.Fatalf("expected debug line with verbose, got %q", buf.String())
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.LogDir = filepath.Join(t.TempDir(), "logs")

	var buf bytes.Buffer
	logger, closer, err := NewFromConfig(&cfg, &buf, false)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	logger.Info("to both sinks")
	if err := closer.Close(); err != nil {
		t.Fatalf("close log file: %v", err)
	}
	if err := closer.Close(); !errors.Is(err, os.ErrClosed) {
		t.Fatalf("expected log file to be closed, got %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfg.Logging.LogDir, LogFileName))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "to both sinks") {
		t.Fatalf("log file missing line: %q", data)
	}
	if !strings.Contains(buf.String(), "to both sinks") {
		t.Fatalf("stream missing line: %q", buf.String())
	}
}

func TestNewFromConfigRejectsUnknownFormat(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = "jsn"

	if _, _, err := NewFromConfig(&cfg, io.Discard, false); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestErrorAttr(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Writers: []io.Writer{&buf}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Warn("inspection skipped", Error(errors.New("not found")))
	if !strings.Contains(buf.String(), `error="not found"`) {
		t.Fatalf("expected error attribute, got %q", buf.String())
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(context.Background(), 100) {
		t.Fatal("nop logger should not be enabled")
	}
	logger.Error("discarded", Error(nil))
	NewComponentLogger(nil, "x").Info("discarded")
}
