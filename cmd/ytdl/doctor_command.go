package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ytdl/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Report the runtime environment and tool availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, _, cfg, err := ctx.scope(cmd)
			if err != nil {
				return err
			}
			report := preflight.Doctor(runCtx, cfg)
			if jsonOutput {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("ytdl doctor", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("go", statusInfo, report.GoVersion+" "+report.Platform, colorize))
			fmt.Fprintln(out, toolLine("yt-dlp", report.YtDlp, false, colorize))
			fmt.Fprintln(out, toolLine("ffmpeg", report.FFmpeg, false, colorize))
			fmt.Fprintln(out, toolLine("ffprobe", report.FFprobe, true, colorize))
			dirKind := statusOK
			if !report.OutdirWritable {
				dirKind = statusError
			}
			fmt.Fprintln(out, renderStatusLine("outdir", dirKind,
				fmt.Sprintf("%s (writable: %s)", report.OutputDir, yesNo(report.OutdirWritable)), colorize))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the report as JSON")
	return cmd
}

func toolLine(name string, available, optional, colorize bool) string {
	switch {
	case available:
		return renderStatusLine(name, statusOK, "found", colorize)
	case optional:
		return renderStatusLine(name, statusWarn, "not found", colorize)
	default:
		return renderStatusLine(name, statusError, "not found", colorize)
	}
}
