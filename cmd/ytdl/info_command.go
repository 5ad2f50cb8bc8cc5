package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"ytdl/internal/deps"
	"ytdl/internal/services"
	"ytdl/internal/services/downloader"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "info <url>",
		Short: "Print metadata for a URL without downloading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, logger, cfg, err := ctx.scope(cmd)
			if err != nil {
				return err
			}
			rawURL := args[0]
			if err := downloader.ValidateURL(rawURL); err != nil {
				return services.Wrap(services.ErrMetadata, "info", "validate url", "", err)
			}
			if _, err := deps.Resolve("yt-dlp", cfg.Tools.YtdlpBinary); err != nil {
				return err
			}

			client, err := downloader.New(cfg, downloader.WithLogger(logger))
			if err != nil {
				return services.Wrap(services.ErrMetadata, "info", "init downloader", "", err)
			}
			meta, err := client.Info(runCtx, rawURL)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeRawJSON(cmd, meta.Raw)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderKeyValues(summaryRows(meta, rawURL)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the raw yt-dlp JSON document")
	return cmd
}

func summaryRows(meta downloader.Metadata, rawURL string) [][2]string {
	pageURL := meta.WebpageURL
	if pageURL == "" {
		pageURL = rawURL
	}
	rows := [][2]string{
		{"title", meta.Title},
		{"id", meta.ID},
		{"uploader", meta.UploaderName()},
	}
	if meta.IsPlaylist() {
		rows = append(rows, [2]string{"entries", strconv.Itoa(meta.PlaylistCount)})
	} else {
		rows = append(rows, [2]string{"duration", formatDuration(meta.DurationValue())})
	}
	rows = append(rows, [2]string{"url", pageURL})
	if day, ok := meta.UploadDay(); ok {
		rows = append(rows, [2]string{"uploaded", day.Format("2006-01-02")})
	}
	if meta.ViewCount > 0 {
		rows = append(rows, [2]string{"views", humanize.Comma(meta.ViewCount)})
	}
	if size := meta.SizeBytes(); size > 0 {
		rows = append(rows, [2]string{"size", "~" + humanize.Bytes(size)})
	}
	return rows
}

// formatDuration renders h:mm:ss, or m:ss under an hour.
func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "unknown"
	}
	total := int(d.Round(time.Second).Seconds())
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
