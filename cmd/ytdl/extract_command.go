package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"ytdl/internal/config"
	"ytdl/internal/deps"
	"ytdl/internal/fileutil"
	"ytdl/internal/logging"
	"ytdl/internal/media/ffprobe"
	"ytdl/internal/media/transcode"
	"ytdl/internal/services"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var bitrate string
	var output string

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Convert a local media file to Opus audio with ffmpeg",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, logger, cfg, err := ctx.scope(cmd)
			if err != nil {
				return err
			}

			input, err := config.ExpandPath(args[0])
			if err != nil {
				return services.Wrap(services.ErrValidation, "extract", "resolve input", args[0], err)
			}
			info, err := os.Stat(input)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return services.Wrap(services.ErrValidation, "extract", "", fmt.Sprintf("input %s does not exist", input), nil)
				}
				return services.Wrap(services.ErrValidation, "extract", "stat input", input, err)
			}
			if info.IsDir() {
				return services.Wrap(services.ErrValidation, "extract", "", fmt.Sprintf("input %s is a directory", input), nil)
			}

			rate := strings.TrimSpace(bitrate)
			if rate == "" {
				rate = cfg.Extract.Bitrate
			}
			if err := config.ValidateBitrate(rate); err != nil {
				return services.Wrap(services.ErrValidation, "extract", "", "", err)
			}

			target := strings.TrimSpace(output)
			if target == "" {
				target = fileutil.ReplaceExt(input, ".opus")
			} else if target, err = config.ExpandPath(target); err != nil {
				return services.Wrap(services.ErrValidation, "extract", "resolve output", output, err)
			}
			if target == input {
				return services.Wrap(services.ErrValidation, "extract", "", "output would overwrite the input; pass --output", nil)
			}

			ffmpegPath, err := deps.Resolve("ffmpeg", cfg.Tools.FFmpegBinary)
			if err != nil {
				return err
			}
			if probePath, err := deps.Resolve("ffprobe", cfg.Tools.FFprobeBinary); err != nil {
				logger.Warn("ffprobe not found; skipping input inspection",
					logging.String("ffprobe_binary", cfg.Tools.FFprobeBinary),
					logging.Error(err))
			} else {
				probe, err := ffprobe.Inspect(runCtx, probePath, input)
				if err != nil {
					return services.Wrap(services.ErrTranscode, "extract", "inspect input", "", err)
				}
				if !probe.HasAudio() {
					return services.Wrap(services.ErrValidation, "extract", "", fmt.Sprintf("%s has no audio stream", input), nil)
				}
				logger.Debug("input inspected",
					logging.Int("audio_streams", len(probe.AudioStreams())),
					logging.Duration("duration", probe.Duration()),
				)
			}

			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return services.Wrap(services.ErrTranscode, "extract", "create output directory", "", err)
			}
			if ctx.verbose() {
				printCommandLine(cmd.ErrOrStderr(), append([]string{ffmpegPath}, transcode.OpusArgs(input, target, rate)...))
			}
			if err := transcode.ExtractOpus(runCtx, ffmpegPath, input, target, rate); err != nil {
				return services.Wrap(services.ErrTranscode, "extract", "ffmpeg", "", err)
			}

			attrs := []logging.Attr{logging.String("output", target), logging.String("bitrate", rate)}
			if st, err := os.Stat(target); err == nil {
				attrs = append(attrs, logging.String("size", humanize.Bytes(uint64(st.Size()))))
			}
			logger.Info("extract complete", logging.Args(attrs...)...)
			fmt.Fprintln(cmd.OutOrStdout(), target)
			return nil
		},
	}

	cmd.Flags().StringVar(&bitrate, "bitrate", "", "Opus bitrate such as 64k (defaults to extract.bitrate)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (defaults to the input with an .opus extension)")
	return cmd
}
