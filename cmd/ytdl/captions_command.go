package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ytdl/internal/captions"
	"ytdl/internal/deps"
	"ytdl/internal/language"
	"ytdl/internal/logging"
	"ytdl/internal/services"
	"ytdl/internal/services/downloader"
)

func newCaptionsCommand(ctx *commandContext) *cobra.Command {
	var langs []string
	var outdir string
	var list bool

	cmd := &cobra.Command{
		Use:   "captions <url>",
		Short: "Download the best matching caption track for a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, logger, cfg, err := ctx.scope(cmd)
			if err != nil {
				return err
			}
			rawURL := args[0]
			if err := downloader.ValidateURL(rawURL); err != nil {
				return services.Wrap(services.ErrDownload, "captions", "validate url", "", err)
			}
			if _, err := deps.Resolve("yt-dlp", cfg.Tools.YtdlpBinary); err != nil {
				return err
			}

			client, err := downloader.New(cfg, downloader.WithLogger(logger))
			if err != nil {
				return services.Wrap(services.ErrDownload, "captions", "init downloader", "", err)
			}
			meta, err := client.Info(runCtx, rawURL)
			if err != nil {
				return err
			}

			if list {
				fmt.Fprintln(cmd.OutOrStdout(), renderCaptionList(captions.List(meta.Info)))
				return nil
			}

			preferred := cfg.Captions.Languages
			if len(langs) > 0 {
				preferred = language.NormalizeList(langs)
			}
			choice, ok := captions.Choose(meta.Info, preferred)
			if !ok {
				return services.Wrap(services.ErrDownload, "captions", "",
					fmt.Sprintf("no captions available for %s (wanted %s)", rawURL, strings.Join(preferred, ", ")), nil)
			}
			logger.Info("caption track selected",
				logging.String("language", choice.Language),
				logging.Bool("automatic", choice.Automatic),
			)

			outputDir, err := resolveOutputDir(outdir, cfg)
			if err != nil {
				return err
			}
			res, err := client.Captions(runCtx, rawURL, choice, outputDir)
			if err != nil {
				return err
			}
			for _, file := range res.Files {
				fmt.Fprintln(cmd.OutOrStdout(), file)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&langs, "lang", nil, "Preferred caption languages in order (defaults to captions.languages)")
	cmd.Flags().StringVar(&outdir, "outdir", "", "Output directory (defaults to paths.output_dir)")
	cmd.Flags().BoolVar(&list, "list", false, "List available caption languages instead of downloading")
	return cmd
}

func renderCaptionList(listings []captions.Listing) string {
	rows := make([][]string, 0, len(listings))
	for _, l := range listings {
		kind := "manual"
		if l.Automatic {
			kind = "automatic"
		}
		rows = append(rows, []string{l.Language, l.Name, kind, strings.Join(l.Formats, ",")})
	}
	return renderTable([]string{"Language", "Name", "Type", "Formats"}, rows)
}
