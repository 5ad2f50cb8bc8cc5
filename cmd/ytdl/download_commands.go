package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ytdl/internal/deps"
	"ytdl/internal/logging"
	"ytdl/internal/services"
	"ytdl/internal/services/downloader"
)

type downloadFlags struct {
	outdir     string
	playlist   bool
	noPlaylist bool
}

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var flags downloadFlags
	cmd := &cobra.Command{
		Use:   "dl <url>",
		Short: "Download the best video+audio for a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd, ctx, flags, downloader.ModeVideo, args[0])
		},
	}
	registerDownloadFlags(cmd, &flags)
	return cmd
}

func newAudioCommand(ctx *commandContext) *cobra.Command {
	var flags downloadFlags
	cmd := &cobra.Command{
		Use:   "audio <url>",
		Short: "Download audio only for a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd, ctx, flags, downloader.ModeAudio, args[0])
		},
	}
	registerDownloadFlags(cmd, &flags)
	return cmd
}

func registerDownloadFlags(cmd *cobra.Command, flags *downloadFlags) {
	cmd.Flags().StringVar(&flags.outdir, "outdir", "", "Output directory (defaults to paths.output_dir)")
	cmd.Flags().BoolVar(&flags.playlist, "playlist", false, "Download every item when the URL is a playlist")
	cmd.Flags().BoolVar(&flags.noPlaylist, "no-playlist", false, "Download only the referenced item of a playlist URL")
	cmd.MarkFlagsMutuallyExclusive("playlist", "no-playlist")
}

// playlistChoice applies --playlist/--no-playlist over download.playlist.
func playlistChoice(cmd *cobra.Command, flags downloadFlags, fallback bool) bool {
	switch {
	case cmd.Flags().Changed("no-playlist"):
		return !flags.noPlaylist
	case cmd.Flags().Changed("playlist"):
		return flags.playlist
	default:
		return fallback
	}
}

func runDownload(cmd *cobra.Command, ctx *commandContext, flags downloadFlags, mode downloader.Mode, rawURL string) error {
	runCtx, logger, cfg, err := ctx.scope(cmd)
	if err != nil {
		return err
	}
	command := cmd.Name()

	if err := downloader.ValidateURL(rawURL); err != nil {
		return services.Wrap(services.ErrDownload, command, "validate url", "", err)
	}
	outputDir, err := resolveOutputDir(flags.outdir, cfg)
	if err != nil {
		return err
	}

	if _, err := deps.Resolve("yt-dlp", cfg.Tools.YtdlpBinary); err != nil {
		return err
	}
	ffmpeg, err := deps.Resolve("ffmpeg", cfg.Tools.FFmpegBinary)
	if err != nil {
		if mode == downloader.ModeAudio {
			return err
		}
		logger.Warn("ffmpeg not found; downloading a single pre-merged stream instead of merging best video and audio",
			logging.String("ffmpeg_binary", cfg.Tools.FFmpegBinary),
			logging.Error(err))
		ffmpeg = ""
	}

	stderr := cmd.ErrOrStderr()
	reporter := newProgressReporter(stderr, logger, shouldColorize(stderr), ctx.verbose())
	opts := []downloader.Option{downloader.WithLogger(logger)}
	if reporter != nil {
		opts = append(opts, downloader.WithProgress(reporter.update))
	}
	client, err := downloader.New(cfg, opts...)
	if err != nil {
		return services.Wrap(services.ErrDownload, command, "init downloader", "", err)
	}

	req := downloader.Request{
		URL:       rawURL,
		OutputDir: outputDir,
		Mode:      mode,
		Playlist:  playlistChoice(cmd, flags, cfg.Download.Playlist),
		FFmpeg:    ffmpeg,
	}
	if ctx.verbose() {
		argv, err := client.CommandLine(runCtx, req)
		if err != nil {
			return err
		}
		printCommandLine(stderr, argv)
	}

	res, err := client.Download(runCtx, req)
	reporter.finish()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, file := range res.Files {
		fmt.Fprintln(out, file)
	}
	logger.Info("download complete",
		logging.String(logging.FieldURL, rawURL),
		logging.Int("files", len(res.Files)),
		logging.String("output_dir", res.OutputDir),
	)
	return nil
}
