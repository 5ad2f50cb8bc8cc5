package downloader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/lrstanley/go-ytdlp"

	"ytdl/internal/captions"
	"ytdl/internal/config"
	"ytdl/internal/fileutil"
	"ytdl/internal/logging"
	"ytdl/internal/services"
)

const (
	videoFormat    = "bestvideo*+bestaudio/best"
	fallbackFormat = "best"
	audioFormat    = "bestaudio/best"
)

// Option configures the client.
type Option func(*Client)

// WithLogger attaches a logger. The client logs under the "downloader" component.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "downloader")
		}
	}
}

// WithProgress registers a callback for download progress. Without one,
// yt-dlp runs with --no-progress.
func WithProgress(fn func(Progress)) Option {
	return func(c *Client) {
		c.progress = fn
	}
}

// Client drives yt-dlp through go-ytdlp.
type Client struct {
	binary        string
	template      string
	download      config.Download
	audio         config.Audio
	captionFormat string
	logger        *slog.Logger
	progress      func(Progress)
}

// New constructs a client from configuration.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("downloader: config required")
	}
	binary := strings.TrimSpace(cfg.Tools.YtdlpBinary)
	if binary == "" {
		return nil, errors.New("downloader: yt-dlp binary required")
	}
	client := &Client{
		binary:        binary,
		template:      cfg.Download.OutputTemplate,
		download:      cfg.Download,
		audio:         cfg.Audio,
		captionFormat: cfg.Captions.Format,
		logger:        logging.NewComponentLogger(nil, "downloader"),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Command builds the yt-dlp invocation for req without running it.
func (c *Client) Command(req Request) (*ytdlp.Command, error) {
	if strings.TrimSpace(req.OutputDir) == "" {
		return nil, errors.New("output directory required")
	}
	cmd := c.base().Output(filepath.Join(req.OutputDir, c.template))
	if req.Playlist {
		cmd.YesPlaylist()
	} else {
		cmd.NoPlaylist()
	}
	if c.download.RestrictFilenames {
		cmd.RestrictFilenames()
	}
	if c.download.WriteInfoJSON {
		cmd.WriteInfoJSON()
	}
	if req.FFmpeg != "" {
		cmd.FFmpegLocation(req.FFmpeg)
	}

	switch req.Mode {
	case ModeVideo:
		if req.FFmpeg == "" {
			cmd.Format(fallbackFormat)
		} else {
			cmd.Format(videoFormat).MergeOutputFormat(c.download.MergeFormat)
		}
	case ModeAudio:
		if req.FFmpeg == "" {
			return nil, services.Wrap(services.ErrMissingDependency, "", "ffmpeg", "audio extraction requires ffmpeg", nil)
		}
		cmd.Format(audioFormat).ExtractAudio()
		if c.audio.Format != "" && c.audio.Format != "best" {
			cmd.AudioFormat(c.audio.Format)
		}
		if c.audio.Quality != "" {
			cmd.AudioQuality(c.audio.Quality)
		}
	default:
		return nil, fmt.Errorf("unsupported mode %s", req.Mode)
	}

	if c.progress != nil {
		fn := c.progress
		cmd.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
			fn(progressFromUpdate(update))
		})
	} else {
		cmd.NoProgress()
	}
	return cmd, nil
}

// CommandLine returns the argv that Download would execute for req.
func (c *Client) CommandLine(ctx context.Context, req Request) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cmd, err := c.Command(req)
	if err != nil {
		return nil, err
	}
	argv := []string{c.binary}
	for _, flag := range cmd.GetFlagConfig().ToFlags() {
		argv = append(argv, flag.Raw()...)
	}
	return append(argv, req.URL), nil
}

// Download validates req, runs yt-dlp and reports the files it created.
// Every failure carries services.ErrDownload except a missing ffmpeg for
// audio, which carries services.ErrMissingDependency.
func (c *Client) Download(ctx context.Context, req Request) (Result, error) {
	if err := ValidateURL(req.URL); err != nil {
		return Result{}, services.Wrap(services.ErrDownload, "", "validate url", "", err)
	}
	cmd, err := c.Command(req)
	if err != nil {
		if errors.Is(err, services.ErrMissingDependency) {
			return Result{}, err
		}
		return Result{}, services.Wrap(services.ErrDownload, "", "build command", "", err)
	}
	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return Result{}, services.Wrap(services.ErrDownload, "", "create output directory", req.OutputDir, err)
	}
	before, err := fileutil.SnapshotFiles(req.OutputDir)
	if err != nil {
		return Result{}, services.Wrap(services.ErrDownload, "", "snapshot output directory", "", err)
	}

	c.logger.Debug("starting yt-dlp",
		logging.String(logging.FieldURL, req.URL),
		logging.String("mode", req.Mode.String()),
		logging.String("output_dir", req.OutputDir),
		logging.Bool("playlist", req.Playlist),
		logging.Bool("ffmpeg", req.FFmpeg != ""),
	)
	res, err := cmd.Run(ctx, req.URL)
	if err != nil {
		err = toolFailure(ctx, res, err)
		c.logger.Debug("yt-dlp failed", logging.String(logging.FieldURL, req.URL), logging.Error(err))
		return Result{}, services.Wrap(services.ErrDownload, "", "yt-dlp", "", err)
	}

	files, err := fileutil.NewFiles(req.OutputDir, before)
	if err != nil {
		return Result{}, services.Wrap(services.ErrDownload, "", "list output files", "", err)
	}
	if len(files) == 0 {
		c.logger.Info("yt-dlp created no new files; output may already exist",
			logging.String("output_dir", req.OutputDir))
	}
	return Result{OutputDir: req.OutputDir, Files: files}, nil
}

// Info fetches the metadata document for rawURL without downloading media.
// Failures carry services.ErrMetadata.
func (c *Client) Info(ctx context.Context, rawURL string) (Metadata, error) {
	if err := ValidateURL(rawURL); err != nil {
		return Metadata{}, services.Wrap(services.ErrMetadata, "", "validate url", "", err)
	}
	cmd := c.base().DumpSingleJSON().SkipDownload().NoProgress()

	c.logger.Debug("fetching metadata", logging.String(logging.FieldURL, rawURL))
	res, err := cmd.Run(ctx, rawURL)
	if err != nil {
		err = toolFailure(ctx, res, err)
		c.logger.Debug("metadata fetch failed", logging.String(logging.FieldURL, rawURL), logging.Error(err))
		return Metadata{}, services.Wrap(services.ErrMetadata, "", "yt-dlp", "", err)
	}
	return decodeMetadata([]byte(res.Stdout))
}

// Captions downloads only the chosen caption track into outputDir.
func (c *Client) Captions(ctx context.Context, rawURL string, choice captions.Choice, outputDir string) (Result, error) {
	if err := ValidateURL(rawURL); err != nil {
		return Result{}, services.Wrap(services.ErrDownload, "", "validate url", "", err)
	}
	if choice.Language == "" {
		return Result{}, services.Wrap(services.ErrDownload, "", "captions", "no caption language selected", nil)
	}
	cmd := c.base().
		Output(filepath.Join(outputDir, c.template)).
		SkipDownload().
		NoPlaylist().
		SubLangs(choice.Language).
		SubFormat(c.captionFormat + "/best").
		NoProgress()
	if choice.Automatic {
		cmd.WriteAutoSubs()
	} else {
		cmd.WriteSubs()
	}
	if c.download.RestrictFilenames {
		cmd.RestrictFilenames()
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Result{}, services.Wrap(services.ErrDownload, "", "create output directory", outputDir, err)
	}
	before, err := fileutil.SnapshotFiles(outputDir)
	if err != nil {
		return Result{}, services.Wrap(services.ErrDownload, "", "snapshot output directory", "", err)
	}
	res, err := cmd.Run(ctx, rawURL)
	if err != nil {
		return Result{}, services.Wrap(services.ErrDownload, "", "yt-dlp", "", toolFailure(ctx, res, err))
	}
	files, err := fileutil.NewFiles(outputDir, before)
	if err != nil {
		return Result{}, services.Wrap(services.ErrDownload, "", "list output files", "", err)
	}
	return Result{OutputDir: outputDir, Files: files}, nil
}

func (c *Client) base() *ytdlp.Command {
	return ytdlp.New().SetExecutable(c.binary)
}

func decodeMetadata(stdout []byte) (Metadata, error) {
	raw := bytes.TrimSpace(stdout)
	if len(raw) == 0 {
		return Metadata{}, services.Wrap(services.ErrMetadata, "", "decode", "yt-dlp printed no metadata", nil)
	}
	if !json.Valid(raw) {
		return Metadata{}, services.Wrap(services.ErrMetadata, "", "decode", "yt-dlp output is not valid JSON", nil)
	}
	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return Metadata{}, services.Wrap(services.ErrMetadata, "", "decode", "", err)
	}
	meta.Raw = append(json.RawMessage(nil), raw...)
	return meta, nil
}

// toolFailure converts a failed go-ytdlp run into a ToolError carrying
// yt-dlp's own exit status and diagnostics.
func toolFailure(ctx context.Context, res *ytdlp.Result, err error) error {
	if ctx != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	code := 0
	stderr := ""
	if res != nil {
		code = res.ExitCode
		stderr = res.Stderr
	}
	if code == 0 {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
	}
	if code <= 0 {
		return err
	}
	return &services.ToolError{Tool: "yt-dlp", ExitCode: code, Stderr: errorLines(stderr)}
}

// errorLines keeps yt-dlp's "ERROR:" lines when present, otherwise the whole
// trimmed stderr.
func errorLines(stderr string) string {
	var lines []string
	for _, line := range strings.Split(stderr, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "ERROR:") {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	if len(lines) > 0 {
		return strings.Join(lines, "\n")
	}
	return strings.TrimSpace(stderr)
}
